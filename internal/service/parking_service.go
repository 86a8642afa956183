package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/parking-service/internal/domain"
	"github.com/spec-kit/parking-service/internal/events"
	"github.com/spec-kit/parking-service/internal/observability"
	"github.com/spec-kit/parking-service/internal/repository"
)

// RegistrationGuard serializes entry/exit processing for one registration.
// Acquire returns a release callback, or an error when the registration is
// already being processed.
type RegistrationGuard interface {
	Acquire(ctx context.Context, registration string) (func(), error)
}

// ParkingService orchestrates the vehicle lifecycle: spot assignment on
// entry, fare computation and spot release on exit.
type ParkingService struct {
	spots      repository.SpotRepository
	tickets    repository.TicketRepository
	fare       *FareCalculator
	guard      RegistrationGuard
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	loyaltyMin int
	now        func() time.Time
}

// ParkingDependencies bundles collaborators for the parking service.
type ParkingDependencies struct {
	SpotRepo   repository.SpotRepository
	TicketRepo repository.TicketRepository
	Fare       *FareCalculator
	Guard      RegistrationGuard
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	// LoyaltyMinSessions is the session count (current one included) from
	// which the loyalty discount applies.
	LoyaltyMinSessions int
}

// EntryResult reports a completed vehicle entry.
type EntryResult struct {
	Ticket        *domain.Ticket
	RecurringUser bool
	Message       string
}

// ExitResult reports a completed vehicle exit.
type ExitResult struct {
	Ticket     *domain.Ticket
	Discounted bool
	FreeExit   bool
	Message    string
}

// NewParkingService constructs the service.
func NewParkingService(deps ParkingDependencies) *ParkingService {
	loyaltyMin := deps.LoyaltyMinSessions
	if loyaltyMin <= 0 {
		loyaltyMin = 2
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParkingService{
		spots:      deps.SpotRepo,
		tickets:    deps.TicketRepo,
		fare:       deps.Fare,
		guard:      deps.Guard,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		loyaltyMin: loyaltyMin,
		now:        time.Now,
	}
}

// ProcessIncomingVehicle reserves a spot of the requested type and opens a
// ticket for the registration.
func (s *ParkingService) ProcessIncomingVehicle(ctx context.Context, vehicleType domain.VehicleType, registration string) (*EntryResult, error) {
	registration = strings.TrimSpace(registration)
	if registration == "" {
		return nil, errors.New("vehicle registration required")
	}
	switch vehicleType {
	case domain.VehicleTypeCar, domain.VehicleTypeBike:
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedVehicleType, vehicleType)
	}

	release, err := s.acquire(ctx, registration)
	if err != nil {
		return nil, err
	}
	defer release()

	spot, err := s.spots.Reserve(ctx, vehicleType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNoAvailableSpot, vehicleType)
		}
		return nil, err
	}

	priorSessions, err := s.tickets.CountByRegistration(ctx, registration)
	if err != nil {
		s.releaseSpot(ctx, spot)
		return nil, err
	}
	recurring := priorSessions >= 1

	ticket := &domain.Ticket{
		ReceiptNumber:    generateReceiptNumber(),
		VehicleRegNumber: registration,
		Spot:             *spot,
		InTime:           s.now(),
	}
	if err := s.tickets.Save(ctx, ticket); err != nil {
		// Compensate the reservation so the spot is not orphaned.
		s.releaseSpot(ctx, spot)
		return nil, err
	}

	s.metrics.RecordEntry(vehicleType)
	s.publishEvent(ctx, events.Event{
		Type:         events.EventVehicleEntered,
		Registration: registration,
		Payload: events.VehicleEnteredPayload{
			TicketID:      ticket.ID,
			ReceiptNumber: ticket.ReceiptNumber,
			SpotID:        spot.ID,
			VehicleType:   vehicleType,
			InTime:        ticket.InTime,
			RecurringUser: recurring,
		},
	})

	message := fmt.Sprintf("Generated ticket %s; please park in spot %d", ticket.ReceiptNumber, spot.ID)
	if recurring {
		message += ". Welcome back! Your loyalty discount will apply on exit"
	}
	return &EntryResult{Ticket: ticket, RecurringUser: recurring, Message: message}, nil
}

// ProcessExitingVehicle closes the registration's open ticket, computes the
// fare and frees the spot.
func (s *ParkingService) ProcessExitingVehicle(ctx context.Context, registration string) (*ExitResult, error) {
	registration = strings.TrimSpace(registration)
	if registration == "" {
		return nil, errors.New("vehicle registration required")
	}

	release, err := s.acquire(ctx, registration)
	if err != nil {
		return nil, err
	}
	defer release()

	ticket, err := s.tickets.GetOpen(ctx, registration)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTicketNotFound, registration)
		}
		return nil, err
	}

	outTime := s.now()
	ticket.OutTime = &outTime

	// One session-count query at fare time decides the discount; the current
	// open ticket counts toward the total.
	sessions, err := s.tickets.CountByRegistration(ctx, registration)
	if err != nil {
		return nil, err
	}
	discounted := sessions >= s.loyaltyMin

	if err := s.fare.ComputeFare(ticket, discounted); err != nil {
		return nil, err
	}

	// Ticket update must succeed before the spot is released; on failure the
	// spot stays occupied.
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	spot := ticket.Spot
	spot.Available = true
	if err := s.spots.Update(ctx, &spot); err != nil {
		return nil, err
	}
	ticket.Spot.Available = true

	freeExit := ticket.Price == 0
	s.metrics.RecordExit(spot.Type, ticket.Price)
	s.publishEvent(ctx, events.Event{
		Type:         events.EventVehicleExited,
		Registration: registration,
		Payload: events.VehicleExitedPayload{
			TicketID:      ticket.ID,
			ReceiptNumber: ticket.ReceiptNumber,
			SpotID:        spot.ID,
			VehicleType:   spot.Type,
			OutTime:       outTime,
			Price:         ticket.Price,
			Discounted:    discounted,
			FreeExit:      freeExit,
		},
	})
	s.publishEvent(ctx, events.Event{
		Type:         events.EventSpotReleased,
		Registration: registration,
		Payload: events.SpotReleasedPayload{
			SpotID:      spot.ID,
			VehicleType: spot.Type,
		},
	})

	message := fmt.Sprintf("Please pay %.2f and see you soon", ticket.Price)
	if freeExit {
		message = "Parked under the grace period, exit is free"
	}
	return &ExitResult{Ticket: ticket, Discounted: discounted, FreeExit: freeExit, Message: message}, nil
}

// NextAvailableSpot reports the lowest-numbered free spot without claiming it.
func (s *ParkingService) NextAvailableSpot(ctx context.Context, vehicleType domain.VehicleType) (*domain.ParkingSpot, error) {
	switch vehicleType {
	case domain.VehicleTypeCar, domain.VehicleTypeBike:
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedVehicleType, vehicleType)
	}
	spot, err := s.spots.NextAvailable(ctx, vehicleType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNoAvailableSpot, vehicleType)
		}
		return nil, err
	}
	return spot, nil
}

// Availability reports free spot counts per vehicle type.
func (s *ParkingService) Availability(ctx context.Context) (map[domain.VehicleType]int, error) {
	return s.spots.Availability(ctx)
}

// TicketHistory returns past sessions for a registration, most recent first.
func (s *ParkingService) TicketHistory(ctx context.Context, registration string, limit, offset int) ([]domain.Ticket, error) {
	registration = strings.TrimSpace(registration)
	if registration == "" {
		return nil, errors.New("vehicle registration required")
	}
	return s.tickets.ListByRegistration(ctx, registration, limit, offset)
}

func (s *ParkingService) acquire(ctx context.Context, registration string) (func(), error) {
	if s.guard == nil {
		return func() {}, nil
	}
	return s.guard.Acquire(ctx, registration)
}

func (s *ParkingService) releaseSpot(ctx context.Context, spot *domain.ParkingSpot) {
	spot.Available = true
	if err := s.spots.Update(ctx, spot); err != nil {
		s.logger.Warn("spot release failed, spot stays marked occupied",
			zap.Int("spot_id", spot.ID),
			zap.String("spot_type", string(spot.Type)),
			zap.Error(err),
		)
	}
}

func (s *ParkingService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.Error(err),
		)
	}
}

func generateReceiptNumber() string {
	return "PRK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
