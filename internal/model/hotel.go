package model

import "time"

// Hotel is a partner hotel offering rooms to event participants.
// Hotels and their rooms are managed outside this service and are
// read-only from the booking subsystem's perspective.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the hotel.
//  Image     – URL of the hotel's cover image.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Hotel struct {
	ID        uint64    `json:"id"`         // hotels.id
	Name      string    `json:"name"`       // hotels.name
	Image     string    `json:"image"`      // hotels.image
	CreatedAt time.Time `json:"created_at"` // hotels.created_at
	UpdatedAt time.Time `json:"updated_at"` // hotels.updated_at
}

// Room is a bookable hotel room.  Capacity bounds how many bookings
// may reference the room at the same time; the booking service never
// lets the active booking count exceed it.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – room number or label (e.g. "1020").
//  Capacity  – maximum simultaneous bookings (>= 0).
//  HotelID   – hotel this room belongs to.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Room struct {
	ID        uint64    `json:"id"`         // rooms.id
	Name      string    `json:"name"`       // rooms.name
	Capacity  uint32    `json:"capacity"`   // rooms.capacity
	HotelID   uint64    `json:"hotel_id"`   // rooms.hotel_id
	CreatedAt time.Time `json:"created_at"` // rooms.created_at
	UpdatedAt time.Time `json:"updated_at"` // rooms.updated_at
}
