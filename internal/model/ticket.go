package model

import "time"

// Ticket statuses as stored in tickets.status.
const (
	TicketStatusReserved = "RESERVED" // chosen but not yet paid
	TicketStatusPaid     = "PAID"     // payment confirmed
)

// Enrollment links a user to their event registration details.  It is
// owned by the registration subsystem; the booking service only reads
// it to resolve the user's ticket.
type Enrollment struct {
	ID        uint64    `json:"id"`         // enrollments.id
	UserID    uint64    `json:"user_id"`    // enrollments.user_id
	Name      string    `json:"name"`       // enrollments.name
	CPF       string    `json:"cpf"`        // enrollments.cpf
	Phone     string    `json:"phone"`      // enrollments.phone
	CreatedAt time.Time `json:"created_at"` // enrollments.created_at
	UpdatedAt time.Time `json:"updated_at"` // enrollments.updated_at
}

// TicketType classifies a ticket.  IsRemote marks remote-only
// attendance and IncludesHotel marks hotel access; both gate whether
// the holder may book a room.
type TicketType struct {
	ID            uint64 `json:"id"`             // ticket_types.id
	Name          string `json:"name"`           // ticket_types.name
	PriceCents    uint32 `json:"price_cents"`    // ticket_types.price_cents
	IsRemote      bool   `json:"is_remote"`      // ticket_types.is_remote
	IncludesHotel bool   `json:"includes_hotel"` // ticket_types.includes_hotel
}

// Ticket records a user's paid/reserved status for the event.  The
// booking service reads it, via the user's enrollment, to decide
// eligibility; it never writes tickets.
type Ticket struct {
	ID           uint64     `json:"id"`            // tickets.id
	EnrollmentID uint64     `json:"enrollment_id"` // tickets.enrollment_id
	TicketTypeID uint64     `json:"ticket_type_id"`
	Status       string     `json:"status"` // RESERVED or PAID
	TicketType   TicketType `json:"ticket_type"`
}
