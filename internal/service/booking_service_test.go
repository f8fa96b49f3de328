package service

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/event-hotel-booking/internal/model"
	"github.com/iliyamo/event-hotel-booking/internal/queue"
	"github.com/iliyamo/event-hotel-booking/internal/repository"
)

// fakeStore is an in-memory stand-in for the repositories.  Its
// capacity semantics mirror the SQL layer: CreateRoomCapped refuses a
// full room and ReassignRoomCapped excludes the moving booking from
// the occupancy count.
type fakeStore struct {
	enrollments map[uint64]model.Enrollment // keyed by user id
	tickets     map[uint64]model.Ticket     // keyed by enrollment id
	rooms       map[uint64]model.Room
	bookings    map[uint64]model.Booking // keyed by booking id
	nextID      uint64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		enrollments: map[uint64]model.Enrollment{},
		tickets:     map[uint64]model.Ticket{},
		rooms:       map[uint64]model.Room{},
		bookings:    map[uint64]model.Booking{},
	}
}

func (f *fakeStore) GetByUserID(_ context.Context, userID uint64) (model.Enrollment, error) {
	e, ok := f.enrollments[userID]
	if !ok {
		return model.Enrollment{}, repository.ErrEnrollmentNotFound
	}
	return e, nil
}

func (f *fakeStore) GetByEnrollmentID(_ context.Context, enrollmentID uint64) (model.Ticket, error) {
	t, ok := f.tickets[enrollmentID]
	if !ok {
		return model.Ticket{}, repository.ErrTicketNotFound
	}
	return t, nil
}

func (f *fakeStore) GetByID(_ context.Context, id uint64) (model.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return model.Room{}, repository.ErrRoomNotFound
	}
	return r, nil
}

// bookingStore wraps fakeStore to satisfy BookingStore without the
// GetByID method clash between rooms and bookings.
type bookingStore struct{ f *fakeStore }

func (b bookingStore) ListByUser(_ context.Context, userID uint64) ([]model.BookingWithRoom, error) {
	out := []model.BookingWithRoom{}
	for _, bk := range b.f.bookings {
		if bk.UserID == userID {
			out = append(out, model.BookingWithRoom{ID: bk.ID, Room: b.f.rooms[bk.RoomID]})
		}
	}
	return out, nil
}

func (b bookingStore) GetByID(_ context.Context, id uint64) (model.Booking, error) {
	bk, ok := b.f.bookings[id]
	if !ok {
		return model.Booking{}, repository.ErrBookingNotFound
	}
	return bk, nil
}

func (b bookingStore) occupancy(roomID, excludeBooking uint64) uint32 {
	var n uint32
	for _, bk := range b.f.bookings {
		if bk.RoomID == roomID && bk.ID != excludeBooking {
			n++
		}
	}
	return n
}

func (b bookingStore) CreateRoomCapped(_ context.Context, userID, roomID uint64) (model.Booking, error) {
	room, ok := b.f.rooms[roomID]
	if !ok {
		return model.Booking{}, repository.ErrRoomNotFound
	}
	if b.occupancy(roomID, 0) >= room.Capacity {
		return model.Booking{}, repository.ErrRoomFull
	}
	b.f.nextID++
	bk := model.Booking{ID: b.f.nextID, UserID: userID, RoomID: roomID}
	b.f.bookings[bk.ID] = bk
	return bk, nil
}

func (b bookingStore) ReassignRoomCapped(_ context.Context, bookingID, roomID uint64) (model.Booking, error) {
	bk, ok := b.f.bookings[bookingID]
	if !ok {
		return model.Booking{}, repository.ErrBookingNotFound
	}
	room, ok := b.f.rooms[roomID]
	if !ok {
		return model.Booking{}, repository.ErrRoomNotFound
	}
	if b.occupancy(roomID, bookingID) >= room.Capacity {
		return model.Booking{}, repository.ErrRoomFull
	}
	bk.RoomID = roomID
	b.f.bookings[bookingID] = bk
	return bk, nil
}

// eventRecorder captures published events.
type eventRecorder struct {
	created []queue.BookingEvent
	updated []queue.BookingEvent
}

func (r *eventRecorder) BookingCreated(_ context.Context, ev queue.BookingEvent) error {
	r.created = append(r.created, ev)
	return nil
}

func (r *eventRecorder) BookingUpdated(_ context.Context, ev queue.BookingEvent) error {
	r.updated = append(r.updated, ev)
	return nil
}

// addEligibleUser wires enrollment + paid hotel ticket for a user.
func (f *fakeStore) addEligibleUser(userID uint64) {
	enrID := userID + 100
	f.enrollments[userID] = model.Enrollment{ID: enrID, UserID: userID}
	f.tickets[enrID] = model.Ticket{
		ID:           enrID,
		EnrollmentID: enrID,
		Status:       model.TicketStatusPaid,
		TicketType:   model.TicketType{IncludesHotel: true, IsRemote: false},
	}
}

func newService(f *fakeStore, rec *eventRecorder) *BookingService {
	var events EventPublisher
	if rec != nil {
		events = rec
	}
	return NewBookingService(f, f, f, bookingStore{f}, events)
}

func TestListBooking(t *testing.T) {
	f := newFakeStore()
	f.rooms[1] = model.Room{ID: 1, Name: "1020", Capacity: 3, HotelID: 9}
	svc := newService(f, nil)
	ctx := context.Background()

	if _, err := svc.ListBooking(ctx, 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for user without booking, got %v", err)
	}

	f.bookings[1] = model.Booking{ID: 1, UserID: 7, RoomID: 1}
	got, err := svc.ListBooking(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 1 || got.Room.ID != 1 || got.Room.Name != "1020" {
		t.Fatalf("unexpected booking: %+v", got)
	}
}

func TestCreateBookingEligibility(t *testing.T) {
	tests := []struct {
		name   string
		ticket model.Ticket
		want   error
	}{
		{
			name: "ticket without hotel access",
			ticket: model.Ticket{
				Status:     model.TicketStatusPaid,
				TicketType: model.TicketType{IncludesHotel: false},
			},
			want: ErrCannotBook,
		},
		{
			name: "remote ticket",
			ticket: model.Ticket{
				Status:     model.TicketStatusPaid,
				TicketType: model.TicketType{IncludesHotel: true, IsRemote: true},
			},
			want: ErrCannotBook,
		},
		{
			name: "unpaid ticket",
			ticket: model.Ticket{
				Status:     model.TicketStatusReserved,
				TicketType: model.TicketType{IncludesHotel: true},
			},
			want: ErrCannotBook,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFakeStore()
			f.rooms[1] = model.Room{ID: 1, Capacity: 2}
			f.enrollments[7] = model.Enrollment{ID: 107, UserID: 7}
			tk := tc.ticket
			tk.EnrollmentID = 107
			f.tickets[107] = tk
			svc := newService(f, nil)

			_, err := svc.CreateBooking(context.Background(), 7, 1)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if len(f.bookings) != 0 {
				t.Fatalf("no booking row may be created on rule violation")
			}
		})
	}
}

func TestCreateBookingMissingRecords(t *testing.T) {
	ctx := context.Background()

	f := newFakeStore()
	svc := newService(f, nil)
	if _, err := svc.CreateBooking(ctx, 7, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing enrollment: expected ErrNotFound, got %v", err)
	}

	f.enrollments[7] = model.Enrollment{ID: 107, UserID: 7}
	if _, err := svc.CreateBooking(ctx, 7, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing ticket: expected ErrNotFound, got %v", err)
	}

	f.addEligibleUser(7)
	if _, err := svc.CreateBooking(ctx, 7, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing room: expected ErrNotFound, got %v", err)
	}
}

func TestCreateBookingCapacity(t *testing.T) {
	f := newFakeStore()
	f.rooms[1] = model.Room{ID: 1, Name: "A", Capacity: 1, HotelID: 3}
	f.addEligibleUser(7)
	f.addEligibleUser(8)
	rec := &eventRecorder{}
	svc := newService(f, rec)
	ctx := context.Background()

	// First eligible user fills the single slot.
	b, err := svc.CreateBooking(ctx, 7, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.RoomID != 1 || b.UserID != 7 {
		t.Fatalf("unexpected booking: %+v", b)
	}
	if len(rec.created) != 1 || rec.created[0].BookingID != b.ID {
		t.Fatalf("expected one created event, got %+v", rec.created)
	}

	// Second eligible user finds the room full.
	if _, err := svc.CreateBooking(ctx, 8, 1); !errors.Is(err, ErrCannotBook) {
		t.Fatalf("full room: expected ErrCannotBook, got %v", err)
	}
	if len(f.bookings) != 1 {
		t.Fatalf("full room must not gain bookings, have %d", len(f.bookings))
	}
}

func TestCreateBookingZeroCapacity(t *testing.T) {
	f := newFakeStore()
	f.rooms[1] = model.Room{ID: 1, Capacity: 0}
	f.addEligibleUser(7)
	svc := newService(f, nil)

	if _, err := svc.CreateBooking(context.Background(), 7, 1); !errors.Is(err, ErrCannotBook) {
		t.Fatalf("zero-capacity room: expected ErrCannotBook, got %v", err)
	}
}

func TestCreateBookingOnlyOnePerUser(t *testing.T) {
	f := newFakeStore()
	f.rooms[1] = model.Room{ID: 1, Capacity: 5}
	f.rooms[2] = model.Room{ID: 2, Capacity: 5}
	f.addEligibleUser(7)
	svc := newService(f, nil)
	ctx := context.Background()

	if _, err := svc.CreateBooking(ctx, 7, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.CreateBooking(ctx, 7, 2); !errors.Is(err, ErrCannotBook) {
		t.Fatalf("second booking: expected ErrCannotBook, got %v", err)
	}
}

func TestUpdateBooking(t *testing.T) {
	ctx := context.Background()

	setup := func() (*fakeStore, *eventRecorder, *BookingService) {
		f := newFakeStore()
		f.rooms[1] = model.Room{ID: 1, Name: "A", Capacity: 1, HotelID: 3}
		f.rooms[2] = model.Room{ID: 2, Name: "C", Capacity: 1, HotelID: 3}
		f.rooms[3] = model.Room{ID: 3, Name: "full", Capacity: 1, HotelID: 3}
		f.bookings[10] = model.Booking{ID: 10, UserID: 7, RoomID: 1}
		f.bookings[11] = model.Booking{ID: 11, UserID: 9, RoomID: 3}
		rec := &eventRecorder{}
		return f, rec, newService(f, rec)
	}

	t.Run("user without booking", func(t *testing.T) {
		_, _, svc := setup()
		if _, err := svc.UpdateBooking(ctx, 42, 10, 2); !errors.Is(err, ErrCannotBook) {
			t.Fatalf("expected ErrCannotBook, got %v", err)
		}
	})

	t.Run("booking owned by someone else", func(t *testing.T) {
		_, _, svc := setup()
		if _, err := svc.UpdateBooking(ctx, 7, 11, 2); !errors.Is(err, ErrCannotBook) {
			t.Fatalf("expected ErrCannotBook, got %v", err)
		}
	})

	t.Run("booking id does not exist", func(t *testing.T) {
		_, _, svc := setup()
		if _, err := svc.UpdateBooking(ctx, 7, 999, 2); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("target room absent", func(t *testing.T) {
		_, _, svc := setup()
		if _, err := svc.UpdateBooking(ctx, 7, 10, 99); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("target room full", func(t *testing.T) {
		f, _, svc := setup()
		if _, err := svc.UpdateBooking(ctx, 7, 10, 3); !errors.Is(err, ErrCannotBook) {
			t.Fatalf("expected ErrCannotBook, got %v", err)
		}
		if f.bookings[10].RoomID != 1 {
			t.Fatalf("failed update must leave the booking's room unchanged")
		}
	})

	t.Run("successful move", func(t *testing.T) {
		f, rec, svc := setup()
		b, err := svc.UpdateBooking(ctx, 7, 10, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.RoomID != 2 || f.bookings[10].RoomID != 2 {
			t.Fatalf("booking room not reassigned: %+v", b)
		}
		if len(rec.updated) != 1 || rec.updated[0].RoomID != 2 {
			t.Fatalf("expected one updated event, got %+v", rec.updated)
		}
	})

	t.Run("self move within a full room", func(t *testing.T) {
		// Room 1 has capacity 1 and only this user's booking; moving
		// to the same room must succeed because the booking's own
		// slot does not count against it.
		f, _, svc := setup()
		b, err := svc.UpdateBooking(ctx, 7, 10, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.RoomID != 1 || f.bookings[10].RoomID != 1 {
			t.Fatalf("self move failed: %+v", b)
		}
	})
}
