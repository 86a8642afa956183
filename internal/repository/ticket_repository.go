package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/parking-service/internal/domain"
)

// TicketRepository encapsulates the ticket ledger.
type TicketRepository interface {
	// Save inserts a new ticket and assigns its id.
	Save(ctx context.Context, ticket *domain.Ticket) error
	// Update persists exit time and price for an existing ticket.
	Update(ctx context.Context, ticket *domain.Ticket) error
	// GetOpen returns the open ticket for a registration, pgx.ErrNoRows when
	// the vehicle is not parked.
	GetOpen(ctx context.Context, registration string) (*domain.Ticket, error)
	// CountByRegistration counts all sessions recorded for a registration,
	// the current open one included.
	CountByRegistration(ctx context.Context, registration string) (int, error)
	// ListByRegistration returns session history, most recent first.
	ListByRegistration(ctx context.Context, registration string, limit, offset int) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates a Postgres-backed ticket ledger.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Save(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (receipt_number, vehicle_reg_number, spot_id, in_time, out_time, price)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		ticket.ReceiptNumber,
		ticket.VehicleRegNumber,
		ticket.Spot.ID,
		ticket.InTime,
		ticket.OutTime,
		ticket.Price,
	).Scan(&ticket.ID)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET out_time=$1, price=$2
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.OutTime,
		ticket.Price,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetOpen(ctx context.Context, registration string) (*domain.Ticket, error) {
	const query = `
        SELECT t.id, t.receipt_number, t.vehicle_reg_number, t.in_time, t.out_time, t.price,
               s.id, s.vehicle_type, s.available, s.updated_at
        FROM tickets t
        JOIN parking_spots s ON s.id = t.spot_id
        WHERE t.vehicle_reg_number=$1 AND t.out_time IS NULL`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, registration).Scan(
		&ticket.ID,
		&ticket.ReceiptNumber,
		&ticket.VehicleRegNumber,
		&ticket.InTime,
		&ticket.OutTime,
		&ticket.Price,
		&ticket.Spot.ID,
		&ticket.Spot.Type,
		&ticket.Spot.Available,
		&ticket.Spot.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) CountByRegistration(ctx context.Context, registration string) (int, error) {
	const query = `SELECT COUNT(*) FROM tickets WHERE vehicle_reg_number=$1`
	var count int
	if err := r.pool.QueryRow(ctx, query, registration).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ticketRepository) ListByRegistration(ctx context.Context, registration string, limit, offset int) ([]domain.Ticket, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT t.id, t.receipt_number, t.vehicle_reg_number, t.in_time, t.out_time, t.price,
               s.id, s.vehicle_type, s.available, s.updated_at
        FROM tickets t
        JOIN parking_spots s ON s.id = t.spot_id
        WHERE t.vehicle_reg_number=$1
        ORDER BY t.in_time DESC
        LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, registration, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.ReceiptNumber,
			&ticket.VehicleRegNumber,
			&ticket.InTime,
			&ticket.OutTime,
			&ticket.Price,
			&ticket.Spot.ID,
			&ticket.Spot.Type,
			&ticket.Spot.Available,
			&ticket.Spot.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
