package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/parking-service/internal/domain"
)

// SpotRepository encapsulates the spot directory: which spots exist, their
// type and availability.
type SpotRepository interface {
	// NextAvailable returns the lowest-numbered free spot of the given type
	// without claiming it. pgx.ErrNoRows signals a full pool.
	NextAvailable(ctx context.Context, vehicleType domain.VehicleType) (*domain.ParkingSpot, error)
	// Reserve atomically claims the lowest-numbered free spot of the given
	// type and returns it marked occupied. pgx.ErrNoRows signals a full pool.
	Reserve(ctx context.Context, vehicleType domain.VehicleType) (*domain.ParkingSpot, error)
	// Update persists the spot's current availability flag.
	Update(ctx context.Context, spot *domain.ParkingSpot) error
	// Availability reports free spot counts per vehicle type.
	Availability(ctx context.Context) (map[domain.VehicleType]int, error)
}

type spotRepository struct {
	pool *pgxpool.Pool
}

// NewSpotRepository instantiates a Postgres-backed spot directory.
func NewSpotRepository(pool *pgxpool.Pool) SpotRepository {
	return &spotRepository{pool: pool}
}

func (r *spotRepository) NextAvailable(ctx context.Context, vehicleType domain.VehicleType) (*domain.ParkingSpot, error) {
	const query = `
        SELECT id, vehicle_type, available, updated_at
        FROM parking_spots
        WHERE vehicle_type=$1 AND available
        ORDER BY id
        LIMIT 1`
	return r.fetchSingle(ctx, query, vehicleType)
}

// Reserve claims the spot in a single statement; FOR UPDATE SKIP LOCKED keeps
// two concurrent entries from racing onto the same spot.
func (r *spotRepository) Reserve(ctx context.Context, vehicleType domain.VehicleType) (*domain.ParkingSpot, error) {
	const query = `
        UPDATE parking_spots SET available=FALSE, updated_at=NOW()
        WHERE id = (
            SELECT id FROM parking_spots
            WHERE vehicle_type=$1 AND available
            ORDER BY id
            LIMIT 1
            FOR UPDATE SKIP LOCKED
        )
        RETURNING id, vehicle_type, available, updated_at`
	return r.fetchSingle(ctx, query, vehicleType)
}

func (r *spotRepository) Update(ctx context.Context, spot *domain.ParkingSpot) error {
	const query = `
        UPDATE parking_spots SET available=$1, updated_at=NOW()
        WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, spot.Available, spot.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *spotRepository) Availability(ctx context.Context) (map[domain.VehicleType]int, error) {
	const query = `
        SELECT vehicle_type, COUNT(*) FILTER (WHERE available)
        FROM parking_spots
        GROUP BY vehicle_type`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[domain.VehicleType]int)
	for rows.Next() {
		var vehicleType domain.VehicleType
		var free int
		if err := rows.Scan(&vehicleType, &free); err != nil {
			return nil, err
		}
		result[vehicleType] = free
	}
	return result, rows.Err()
}

func (r *spotRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.ParkingSpot, error) {
	var spot domain.ParkingSpot
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&spot.ID,
		&spot.Type,
		&spot.Available,
		&spot.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &spot, nil
}
