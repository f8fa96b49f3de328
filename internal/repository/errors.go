// Package repository defines sentinel error values shared across the
// data access layer.  Higher layers compare against these with
// errors.Is to distinguish failure scenarios: the booking service maps
// them onto its two domain error kinds, which the HTTP layer in turn
// maps onto status codes.
package repository

import "errors"

// ErrRoomNotFound indicates that no room exists with the requested id.
var ErrRoomNotFound = errors.New("room not found")

// ErrBookingNotFound indicates that no booking exists with the
// requested id.
var ErrBookingNotFound = errors.New("booking not found")

// ErrHotelNotFound indicates that no hotel exists with the requested id.
var ErrHotelNotFound = errors.New("hotel not found")

// ErrEnrollmentNotFound indicates that the user has no enrollment
// record and therefore no ticket to check eligibility against.
var ErrEnrollmentNotFound = errors.New("enrollment not found")

// ErrTicketNotFound indicates that the enrollment has no ticket yet.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrRoomFull is returned by the capacity-checked booking writes when
// the target room already holds as many bookings as its capacity
// allows.  The check and the write happen inside one transaction, so
// concurrent requests for the last free slot serialize and the loser
// receives this error.
var ErrRoomFull = errors.New("room is at full capacity")
