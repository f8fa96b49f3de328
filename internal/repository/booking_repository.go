package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-hotel-booking/internal/model"
)

// BookingRepo provides CRUD operations for room bookings.  The writes
// that touch room capacity (CreateRoomCapped, ReassignRoomCapped) run
// inside a transaction that locks the room row, so the count-then-write
// sequence cannot race with a concurrent request for the same room.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingCols = `id, user_id, room_id, created_at, updated_at`

func scanBooking(row *sql.Row) (model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrBookingNotFound
	}
	if err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

// GetByID fetches a single booking.  It returns ErrBookingNotFound
// when no row matches.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id = ? LIMIT 1`
	return scanBooking(r.db.QueryRowContext(ctx, q, id))
}

// ListByUser returns the user's bookings joined with their rooms,
// oldest first.  A user is expected to hold at most one booking, but
// the query does not assume it.  An empty slice means no booking.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.BookingWithRoom, error) {
	const q = `SELECT b.id,
	                  rm.id, rm.name, rm.capacity, rm.hotel_id, rm.created_at, rm.updated_at
	           FROM bookings b
	           JOIN rooms rm ON rm.id = b.room_id
	           WHERE b.user_id = ?
	           ORDER BY b.id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.BookingWithRoom, 0)
	for rows.Next() {
		var bw model.BookingWithRoom
		if err := rows.Scan(
			&bw.ID,
			&bw.Room.ID, &bw.Room.Name, &bw.Room.Capacity, &bw.Room.HotelID,
			&bw.Room.CreatedAt, &bw.Room.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, bw)
	}
	return out, rows.Err()
}

// ListByRoom returns all bookings on a room, unordered.
func (r *BookingRepo) ListByRoom(ctx context.Context, roomID uint64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE room_id = ?`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.RoomID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// lockRoomCapacity reads a room's capacity under FOR UPDATE so that
// concurrent capacity checks on the same room serialize until the
// surrounding transaction commits.  Returns ErrRoomNotFound when the
// room does not exist.
func lockRoomCapacity(ctx context.Context, tx *sql.Tx, roomID uint64) (uint32, error) {
	const q = `SELECT capacity FROM rooms WHERE id = ? FOR UPDATE`
	var capacity uint32
	err := tx.QueryRowContext(ctx, q, roomID).Scan(&capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrRoomNotFound
	}
	if err != nil {
		return 0, err
	}
	return capacity, nil
}

// CreateRoomCapped inserts a booking for the user on the given room,
// but only if the room still has a free slot.  The capacity check and
// the insert run in one transaction holding a lock on the room row, so
// two concurrent requests for the last open slot cannot both succeed.
// Returns ErrRoomNotFound when the room is absent and ErrRoomFull when
// the booking count already equals the capacity.
func (r *BookingRepo) CreateRoomCapped(ctx context.Context, userID, roomID uint64) (model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	capacity, err := lockRoomCapacity(ctx, tx, roomID)
	if err != nil {
		return model.Booking{}, err
	}
	var occupied uint32
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE room_id = ?`, roomID).Scan(&occupied); err != nil {
		return model.Booking{}, err
	}
	if occupied >= capacity {
		return model.Booking{}, ErrRoomFull
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (user_id, room_id) VALUES (?, ?)`, userID, roomID)
	if err != nil {
		return model.Booking{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Booking{}, err
	}
	// Query back the full row to populate timestamps and defaults.
	b, err := scanBooking(tx.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE id = ?`, uint64(id)))
	if err != nil {
		return model.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, err
	}
	committed = true
	return b, nil
}

// ReassignRoomCapped moves an existing booking to another room under
// the same capacity guarantee as CreateRoomCapped.  The booking's own
// row is excluded from the occupancy count, so moving within a room
// that is full only because of this booking succeeds.  Returns
// ErrBookingNotFound, ErrRoomNotFound or ErrRoomFull accordingly.
func (r *BookingRepo) ReassignRoomCapped(ctx context.Context, bookingID, roomID uint64) (model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Booking{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	capacity, err := lockRoomCapacity(ctx, tx, roomID)
	if err != nil {
		return model.Booking{}, err
	}
	var occupied uint32
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE room_id = ? AND id <> ?`,
		roomID, bookingID).Scan(&occupied); err != nil {
		return model.Booking{}, err
	}
	if occupied >= capacity {
		return model.Booking{}, ErrRoomFull
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE bookings SET room_id = ? WHERE id = ?`, roomID, bookingID)
	if err != nil {
		return model.Booking{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Booking{}, err
	}
	if n == 0 {
		// The UPDATE may also report zero rows when the booking already
		// points at the target room; re-check existence to tell the two
		// cases apart.
		var exists uint64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM bookings WHERE id = ? LIMIT 1`, bookingID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, ErrBookingNotFound
		}
		if err != nil {
			return model.Booking{}, err
		}
	}
	b, err := scanBooking(tx.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE id = ?`, bookingID))
	if err != nil {
		return model.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Booking{}, err
	}
	committed = true
	return b, nil
}
