package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/event-hotel-booking/internal/model"
	"github.com/iliyamo/event-hotel-booking/internal/queue"
	"github.com/iliyamo/event-hotel-booking/internal/repository"
)

// EnrollmentStore resolves a user's event enrollment.
type EnrollmentStore interface {
	GetByUserID(ctx context.Context, userID uint64) (model.Enrollment, error)
}

// TicketStore resolves the ticket bought under an enrollment.
type TicketStore interface {
	GetByEnrollmentID(ctx context.Context, enrollmentID uint64) (model.Ticket, error)
}

// RoomStore resolves rooms by id.
type RoomStore interface {
	GetByID(ctx context.Context, id uint64) (model.Room, error)
}

// BookingStore is the persistence surface the rule engine needs for
// bookings.  The two *Capped writes enforce room capacity atomically;
// the service relies on that instead of doing its own check-then-write.
type BookingStore interface {
	ListByUser(ctx context.Context, userID uint64) ([]model.BookingWithRoom, error)
	GetByID(ctx context.Context, id uint64) (model.Booking, error)
	CreateRoomCapped(ctx context.Context, userID, roomID uint64) (model.Booking, error)
	ReassignRoomCapped(ctx context.Context, bookingID, roomID uint64) (model.Booking, error)
}

// EventPublisher emits booking domain events after a successful write.
// Implementations must not block the request longer than necessary;
// failures are logged and ignored by the service.
type EventPublisher interface {
	BookingCreated(ctx context.Context, ev queue.BookingEvent) error
	BookingUpdated(ctx context.Context, ev queue.BookingEvent) error
}

// BookingService enforces the booking business rules on top of the
// repositories.  Handlers call it and forward whatever error comes
// back; they never re-check rules themselves.
type BookingService struct {
	enrollments EnrollmentStore
	tickets     TicketStore
	rooms       RoomStore
	bookings    BookingStore
	events      EventPublisher // optional; nil disables event publishing
}

// NewBookingService constructs the rule engine.  The events publisher
// may be nil when the broker is unavailable.
func NewBookingService(enrollments EnrollmentStore, tickets TicketStore, rooms RoomStore, bookings BookingStore, events EventPublisher) *BookingService {
	if enrollments == nil || tickets == nil || rooms == nil || bookings == nil {
		panic("nil store passed to NewBookingService")
	}
	return &BookingService{
		enrollments: enrollments,
		tickets:     tickets,
		rooms:       rooms,
		bookings:    bookings,
		events:      events,
	}
}

// ListBooking returns the user's booking with its room embedded.  A
// user holds at most one booking, so only the first is returned.  When
// the user has none, the error wraps ErrNotFound.
func (s *BookingService) ListBooking(ctx context.Context, userID uint64) (model.BookingWithRoom, error) {
	list, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return model.BookingWithRoom{}, err
	}
	if len(list) == 0 {
		return model.BookingWithRoom{}, fmt.Errorf("user %d has no booking: %w", userID, ErrNotFound)
	}
	return list[0], nil
}

// checkEligibility resolves the user's enrollment and ticket and
// verifies the ticket grants hotel access.  Missing enrollment or
// ticket wraps ErrNotFound; an ineligible ticket wraps ErrCannotBook.
func (s *BookingService) checkEligibility(ctx context.Context, userID uint64) error {
	enr, err := s.enrollments.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrEnrollmentNotFound) {
			return fmt.Errorf("user %d: %w: %w", userID, err, ErrNotFound)
		}
		return err
	}
	tk, err := s.tickets.GetByEnrollmentID(ctx, enr.ID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return fmt.Errorf("enrollment %d: %w: %w", enr.ID, err, ErrNotFound)
		}
		return err
	}
	switch {
	case !tk.TicketType.IncludesHotel:
		return fmt.Errorf("ticket does not include hotel access: %w", ErrCannotBook)
	case tk.TicketType.IsRemote:
		return fmt.Errorf("ticket is for remote attendance: %w", ErrCannotBook)
	case tk.Status == model.TicketStatusReserved:
		return fmt.Errorf("ticket has not been paid: %w", ErrCannotBook)
	}
	return nil
}

// CreateBooking reserves a room for the user.  The ticket must be
// paid, non-remote and include hotel access; the user must not already
// hold a booking; the room must exist and have a free slot.  The
// capacity check and the insert are atomic in the store, so the room
// can never be overbooked even under concurrent requests.
func (s *BookingService) CreateBooking(ctx context.Context, userID, roomID uint64) (model.Booking, error) {
	if err := s.checkEligibility(ctx, userID); err != nil {
		return model.Booking{}, err
	}

	existing, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return model.Booking{}, err
	}
	if len(existing) > 0 {
		return model.Booking{}, fmt.Errorf("user %d already has a booking: %w", userID, ErrCannotBook)
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return model.Booking{}, fmt.Errorf("room %d: %w: %w", roomID, err, ErrNotFound)
		}
		return model.Booking{}, err
	}

	b, err := s.bookings.CreateRoomCapped(ctx, userID, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomFull) {
			return model.Booking{}, fmt.Errorf("room %d: %w: %w", roomID, err, ErrCannotBook)
		}
		if errors.Is(err, repository.ErrRoomNotFound) {
			return model.Booking{}, fmt.Errorf("room %d: %w: %w", roomID, err, ErrNotFound)
		}
		return model.Booking{}, err
	}

	s.publish(ctx, queue.BookingCreatedQueue, b, room)
	return b, nil
}

// UpdateBooking moves the user's booking to another room.  The booking
// id must belong to the caller: a missing id wraps ErrNotFound, an id
// owned by someone else wraps ErrCannotBook.  Capacity is enforced the
// same way as on create, except the booking's own slot on the target
// room does not count against it, so a self-move always succeeds.
func (s *BookingService) UpdateBooking(ctx context.Context, userID, bookingID, roomID uint64) (model.Booking, error) {
	own, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return model.Booking{}, err
	}
	if len(own) == 0 {
		return model.Booking{}, fmt.Errorf("user %d has no booking to update: %w", userID, ErrCannotBook)
	}
	if own[0].ID != bookingID {
		// The id either belongs to another user or does not exist at
		// all; look it up to report the right kind.
		if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
			if errors.Is(err, repository.ErrBookingNotFound) {
				return model.Booking{}, fmt.Errorf("booking %d: %w: %w", bookingID, err, ErrNotFound)
			}
			return model.Booking{}, err
		}
		return model.Booking{}, fmt.Errorf("booking %d does not belong to user %d: %w", bookingID, userID, ErrCannotBook)
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return model.Booking{}, fmt.Errorf("room %d: %w: %w", roomID, err, ErrNotFound)
		}
		return model.Booking{}, err
	}

	b, err := s.bookings.ReassignRoomCapped(ctx, bookingID, roomID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomFull):
			return model.Booking{}, fmt.Errorf("room %d: %w: %w", roomID, err, ErrCannotBook)
		case errors.Is(err, repository.ErrBookingNotFound):
			return model.Booking{}, fmt.Errorf("booking %d: %w: %w", bookingID, err, ErrNotFound)
		case errors.Is(err, repository.ErrRoomNotFound):
			return model.Booking{}, fmt.Errorf("room %d: %w: %w", roomID, err, ErrNotFound)
		}
		return model.Booking{}, err
	}

	s.publish(ctx, queue.BookingUpdatedQueue, b, room)
	return b, nil
}

// publish emits a booking event on a best-effort basis.  Broker
// failures must never fail the request, so errors are only logged.
func (s *BookingService) publish(ctx context.Context, queueName string, b model.Booking, room model.Room) {
	if s.events == nil {
		return
	}
	ev := queue.BookingEvent{
		BookingID: b.ID,
		UserID:    b.UserID,
		RoomID:    room.ID,
		RoomName:  room.Name,
		HotelID:   room.HotelID,
		At:        time.Now().UTC().Format(time.RFC3339),
	}
	var err error
	if queueName == queue.BookingUpdatedQueue {
		err = s.events.BookingUpdated(ctx, ev)
	} else {
		err = s.events.BookingCreated(ctx, ev)
	}
	if err != nil {
		log.Printf("booking-service: publish %s failed: %v", queueName, err)
	}
}
