package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/parking-service/internal/domain"
	"github.com/spec-kit/parking-service/internal/events"
	"github.com/spec-kit/parking-service/internal/observability"
	"github.com/spec-kit/parking-service/internal/service"
)

type fakeSpotRepo struct {
	reserveSpot  *domain.ParkingSpot
	reserveErr   error
	reserveCalls int
	nextSpot     *domain.ParkingSpot
	nextErr      error
	updated      []domain.ParkingSpot
	updateErr    error
}

func (f *fakeSpotRepo) NextAvailable(_ context.Context, _ domain.VehicleType) (*domain.ParkingSpot, error) {
	if f.nextErr != nil {
		return nil, f.nextErr
	}
	spot := *f.nextSpot
	return &spot, nil
}

func (f *fakeSpotRepo) Reserve(_ context.Context, _ domain.VehicleType) (*domain.ParkingSpot, error) {
	f.reserveCalls++
	if f.reserveErr != nil {
		return nil, f.reserveErr
	}
	spot := *f.reserveSpot
	spot.Available = false
	return &spot, nil
}

func (f *fakeSpotRepo) Update(_ context.Context, spot *domain.ParkingSpot) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, *spot)
	return nil
}

func (f *fakeSpotRepo) Availability(_ context.Context) (map[domain.VehicleType]int, error) {
	return map[domain.VehicleType]int{}, nil
}

type fakeTicketRepo struct {
	open      *domain.Ticket
	openErr   error
	openCalls int
	count     int
	countErr  error
	saved     []*domain.Ticket
	saveErr   error
	updatedTk []*domain.Ticket
	updateErr error
}

func (f *fakeTicketRepo) Save(_ context.Context, ticket *domain.Ticket) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	ticket.ID = int64(len(f.saved) + 1)
	f.saved = append(f.saved, ticket)
	return nil
}

func (f *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedTk = append(f.updatedTk, ticket)
	return nil
}

func (f *fakeTicketRepo) GetOpen(_ context.Context, _ string) (*domain.Ticket, error) {
	f.openCalls++
	if f.openErr != nil {
		return nil, f.openErr
	}
	ticket := *f.open
	return &ticket, nil
}

func (f *fakeTicketRepo) CountByRegistration(_ context.Context, _ string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.count, nil
}

func (f *fakeTicketRepo) ListByRegistration(_ context.Context, _ string, _, _ int) ([]domain.Ticket, error) {
	return nil, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

type fakeGuard struct {
	acquireErr error
	acquired   []string
	released   int
}

func (g *fakeGuard) Acquire(_ context.Context, registration string) (func(), error) {
	if g.acquireErr != nil {
		return nil, g.acquireErr
	}
	g.acquired = append(g.acquired, registration)
	return func() { g.released++ }, nil
}

func newTestService(spots *fakeSpotRepo, tickets *fakeTicketRepo, dispatcher events.Dispatcher) *service.ParkingService {
	return newGuardedService(spots, tickets, dispatcher, nil)
}

func newGuardedService(spots *fakeSpotRepo, tickets *fakeTicketRepo, dispatcher events.Dispatcher, guard service.RegistrationGuard) *service.ParkingService {
	return service.NewParkingService(service.ParkingDependencies{
		SpotRepo:           spots,
		TicketRepo:         tickets,
		Fare:               service.NewFareCalculator(testFareConfig()),
		Guard:              guard,
		Dispatcher:         dispatcher,
		Metrics:            observability.NewMetrics(),
		LoyaltyMinSessions: 2,
	})
}

func carSpot() *domain.ParkingSpot {
	return &domain.ParkingSpot{ID: 1, Type: domain.VehicleTypeCar, Available: true}
}

func openCarTicket(parkedFor time.Duration) *domain.Ticket {
	return &domain.Ticket{
		ID:               1,
		ReceiptNumber:    "PRK-TEST0001",
		VehicleRegNumber: "ABCDEF",
		Spot:             domain.ParkingSpot{ID: 1, Type: domain.VehicleTypeCar, Available: false},
		InTime:           time.Now().Add(-parkedFor),
	}
}

func Test_ProcessIncomingVehicle_FirstVisit(t *testing.T) {
	spots := &fakeSpotRepo{reserveSpot: carSpot()}
	tickets := &fakeTicketRepo{count: 0}
	dispatcher := &recordingDispatcher{}
	svc := newTestService(spots, tickets, dispatcher)

	result, err := svc.ProcessIncomingVehicle(context.Background(), domain.VehicleTypeCar, "ABCDEF")

	require.NoError(t, err)
	require.Len(t, tickets.saved, 1)
	assert.False(t, result.RecurringUser)
	assert.Equal(t, "ABCDEF", result.Ticket.VehicleRegNumber)
	assert.Equal(t, 1, result.Ticket.Spot.ID)
	assert.True(t, result.Ticket.IsOpen())
	assert.Zero(t, result.Ticket.Price)
	assert.NotEmpty(t, result.Ticket.ReceiptNumber)
	assert.WithinDuration(t, time.Now(), result.Ticket.InTime, time.Second)
	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventVehicleEntered, dispatcher.published[0].Type)
}

func Test_ProcessIncomingVehicle_RecurringUserWelcomed(t *testing.T) {
	spots := &fakeSpotRepo{reserveSpot: carSpot()}
	tickets := &fakeTicketRepo{count: 2}
	svc := newTestService(spots, tickets, &recordingDispatcher{})

	result, err := svc.ProcessIncomingVehicle(context.Background(), domain.VehicleTypeCar, "ABCDEF")

	require.NoError(t, err)
	assert.True(t, result.RecurringUser)
	assert.Contains(t, result.Message, "Welcome back")
}

func Test_ProcessIncomingVehicle_NoAvailableSpot(t *testing.T) {
	spots := &fakeSpotRepo{reserveErr: pgx.ErrNoRows}
	tickets := &fakeTicketRepo{}
	svc := newTestService(spots, tickets, &recordingDispatcher{})

	_, err := svc.ProcessIncomingVehicle(context.Background(), domain.VehicleTypeCar, "ABCDEF")

	assert.ErrorIs(t, err, domain.ErrNoAvailableSpot)
	assert.Empty(t, tickets.saved)
	assert.Empty(t, spots.updated)
}

func Test_ProcessIncomingVehicle_UnsupportedType(t *testing.T) {
	spots := &fakeSpotRepo{reserveSpot: carSpot()}
	tickets := &fakeTicketRepo{}
	svc := newTestService(spots, tickets, &recordingDispatcher{})

	_, err := svc.ProcessIncomingVehicle(context.Background(), domain.VehicleType("TRUCK"), "ABCDEF")

	assert.ErrorIs(t, err, domain.ErrUnsupportedVehicleType)
	assert.Empty(t, tickets.saved)
}

func Test_ProcessIncomingVehicle_SaveFailureReleasesSpot(t *testing.T) {
	spots := &fakeSpotRepo{reserveSpot: carSpot()}
	tickets := &fakeTicketRepo{saveErr: assert.AnError}
	svc := newTestService(spots, tickets, &recordingDispatcher{})

	_, err := svc.ProcessIncomingVehicle(context.Background(), domain.VehicleTypeCar, "ABCDEF")

	require.Error(t, err)
	require.Len(t, spots.updated, 1)
	assert.True(t, spots.updated[0].Available)
	assert.Equal(t, 1, spots.updated[0].ID)
}

func Test_ProcessIncomingVehicle_BusyRegistrationRejected(t *testing.T) {
	spots := &fakeSpotRepo{reserveSpot: carSpot()}
	tickets := &fakeTicketRepo{}
	guard := &fakeGuard{acquireErr: domain.ErrRegistrationBusy}
	svc := newGuardedService(spots, tickets, &recordingDispatcher{}, guard)

	_, err := svc.ProcessIncomingVehicle(context.Background(), domain.VehicleTypeCar, "ABCDEF")

	assert.ErrorIs(t, err, domain.ErrRegistrationBusy)
	assert.Zero(t, spots.reserveCalls)
	assert.Empty(t, tickets.saved)
	assert.Empty(t, spots.updated)
}

func Test_ProcessIncomingVehicle_LeaseReleasedAfterEntry(t *testing.T) {
	spots := &fakeSpotRepo{reserveSpot: carSpot()}
	tickets := &fakeTicketRepo{}
	guard := &fakeGuard{}
	svc := newGuardedService(spots, tickets, &recordingDispatcher{}, guard)

	_, err := svc.ProcessIncomingVehicle(context.Background(), domain.VehicleTypeCar, "ABCDEF")

	require.NoError(t, err)
	assert.Equal(t, []string{"ABCDEF"}, guard.acquired)
	assert.Equal(t, 1, guard.released)
}

func Test_ProcessIncomingVehicle_FailedSpotReleaseIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	spots := &fakeSpotRepo{reserveSpot: carSpot(), updateErr: assert.AnError}
	tickets := &fakeTicketRepo{saveErr: assert.AnError}
	svc := service.NewParkingService(service.ParkingDependencies{
		SpotRepo:           spots,
		TicketRepo:         tickets,
		Fare:               service.NewFareCalculator(testFareConfig()),
		Dispatcher:         &recordingDispatcher{},
		Metrics:            observability.NewMetrics(),
		Logger:             zap.New(core),
		LoyaltyMinSessions: 2,
	})

	_, err := svc.ProcessIncomingVehicle(context.Background(), domain.VehicleTypeCar, "ABCDEF")

	require.Error(t, err)
	entries := logs.FilterMessage("spot release failed, spot stays marked occupied").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["spot_id"])
}

func Test_ProcessExitingVehicle_OneHourCarFare(t *testing.T) {
	spots := &fakeSpotRepo{}
	tickets := &fakeTicketRepo{open: openCarTicket(time.Hour), count: 1}
	dispatcher := &recordingDispatcher{}
	svc := newTestService(spots, tickets, dispatcher)

	result, err := svc.ProcessExitingVehicle(context.Background(), "ABCDEF")

	require.NoError(t, err)
	assert.False(t, result.Discounted)
	assert.False(t, result.FreeExit)
	assert.InDelta(t, 1.5, result.Ticket.Price, 0.001)
	require.NotNil(t, result.Ticket.OutTime)
	assert.WithinDuration(t, time.Now(), *result.Ticket.OutTime, time.Second)

	require.Len(t, tickets.updatedTk, 1)
	require.Len(t, spots.updated, 1)
	assert.True(t, spots.updated[0].Available)
	assert.Equal(t, 1, spots.updated[0].ID)

	require.Len(t, dispatcher.published, 2)
	assert.Equal(t, events.EventVehicleExited, dispatcher.published[0].Type)
	assert.Equal(t, events.EventSpotReleased, dispatcher.published[1].Type)
}

func Test_ProcessExitingVehicle_ThirdVisitIsDiscounted(t *testing.T) {
	spots := &fakeSpotRepo{}
	tickets := &fakeTicketRepo{open: openCarTicket(time.Hour), count: 3}
	svc := newTestService(spots, tickets, &recordingDispatcher{})

	result, err := svc.ProcessExitingVehicle(context.Background(), "ABCDEF")

	require.NoError(t, err)
	assert.True(t, result.Discounted)
	assert.InDelta(t, 1.425, result.Ticket.Price, 0.001)
}

func Test_ProcessExitingVehicle_GracePeriodIsFree(t *testing.T) {
	spots := &fakeSpotRepo{}
	tickets := &fakeTicketRepo{open: openCarTicket(10 * time.Minute), count: 1}
	svc := newTestService(spots, tickets, &recordingDispatcher{})

	result, err := svc.ProcessExitingVehicle(context.Background(), "ABCDEF")

	require.NoError(t, err)
	assert.True(t, result.FreeExit)
	assert.Zero(t, result.Ticket.Price)
	require.Len(t, spots.updated, 1)
	assert.True(t, spots.updated[0].Available)
}

func Test_ProcessExitingVehicle_NoOpenTicket(t *testing.T) {
	spots := &fakeSpotRepo{}
	tickets := &fakeTicketRepo{openErr: pgx.ErrNoRows}
	svc := newTestService(spots, tickets, &recordingDispatcher{})

	_, err := svc.ProcessExitingVehicle(context.Background(), "ABCDEF")

	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
	assert.Empty(t, spots.updated)
}

func Test_ProcessExitingVehicle_UpdateFailureKeepsSpotOccupied(t *testing.T) {
	spots := &fakeSpotRepo{}
	tickets := &fakeTicketRepo{open: openCarTicket(time.Hour), count: 1, updateErr: assert.AnError}
	svc := newTestService(spots, tickets, &recordingDispatcher{})

	_, err := svc.ProcessExitingVehicle(context.Background(), "ABCDEF")

	require.Error(t, err)
	assert.Empty(t, spots.updated)
}

func Test_ProcessExitingVehicle_BusyRegistrationRejected(t *testing.T) {
	spots := &fakeSpotRepo{}
	tickets := &fakeTicketRepo{open: openCarTicket(time.Hour), count: 1}
	guard := &fakeGuard{acquireErr: domain.ErrRegistrationBusy}
	svc := newGuardedService(spots, tickets, &recordingDispatcher{}, guard)

	_, err := svc.ProcessExitingVehicle(context.Background(), "ABCDEF")

	assert.ErrorIs(t, err, domain.ErrRegistrationBusy)
	assert.Zero(t, tickets.openCalls)
	assert.Empty(t, tickets.updatedTk)
	assert.Empty(t, spots.updated)
}

func Test_ProcessExitingVehicle_LeaseReleasedAfterExit(t *testing.T) {
	spots := &fakeSpotRepo{}
	tickets := &fakeTicketRepo{open: openCarTicket(time.Hour), count: 1}
	guard := &fakeGuard{}
	svc := newGuardedService(spots, tickets, &recordingDispatcher{}, guard)

	_, err := svc.ProcessExitingVehicle(context.Background(), "ABCDEF")

	require.NoError(t, err)
	assert.Equal(t, []string{"ABCDEF"}, guard.acquired)
	assert.Equal(t, 1, guard.released)
}

func Test_NextAvailableSpot(t *testing.T) {
	spots := &fakeSpotRepo{nextSpot: carSpot()}
	svc := newTestService(spots, &fakeTicketRepo{}, &recordingDispatcher{})

	spot, err := svc.NextAvailableSpot(context.Background(), domain.VehicleTypeCar)

	require.NoError(t, err)
	assert.Equal(t, 1, spot.ID)
	assert.True(t, spot.Available)
}

func Test_NextAvailableSpot_NoneFree(t *testing.T) {
	spots := &fakeSpotRepo{nextErr: pgx.ErrNoRows}
	svc := newTestService(spots, &fakeTicketRepo{}, &recordingDispatcher{})

	_, err := svc.NextAvailableSpot(context.Background(), domain.VehicleTypeBike)

	assert.ErrorIs(t, err, domain.ErrNoAvailableSpot)
}
