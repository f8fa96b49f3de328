package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-hotel-booking/internal/model"
)

// TicketRepo reads tickets together with their type flags.  Tickets
// are owned by the payments subsystem; booking only needs the status
// and the type's hotel/remote flags for eligibility checks.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a new TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// GetByEnrollmentID fetches the ticket bought under an enrollment,
// joined with its ticket type.  It returns ErrTicketNotFound when the
// enrollment has no ticket.
func (r *TicketRepo) GetByEnrollmentID(ctx context.Context, enrollmentID uint64) (model.Ticket, error) {
	const q = `SELECT t.id, t.enrollment_id, t.ticket_type_id, t.status,
	                  tt.id, tt.name, tt.price_cents, tt.is_remote, tt.includes_hotel
	           FROM tickets t
	           JOIN ticket_types tt ON tt.id = t.ticket_type_id
	           WHERE t.enrollment_id = ? LIMIT 1`
	var t model.Ticket
	err := r.db.QueryRowContext(ctx, q, enrollmentID).Scan(
		&t.ID, &t.EnrollmentID, &t.TicketTypeID, &t.Status,
		&t.TicketType.ID, &t.TicketType.Name, &t.TicketType.PriceCents,
		&t.TicketType.IsRemote, &t.TicketType.IncludesHotel,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Ticket{}, ErrTicketNotFound
	}
	if err != nil {
		return model.Ticket{}, err
	}
	return t, nil
}
