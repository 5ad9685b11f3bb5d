package persistence

import "context"

// UserRepository stores the user registry as one wholesale mapping.
type UserRepository interface {
	LoadUsers(ctx context.Context) (map[string]User, error)
	SaveUsers(ctx context.Context, users map[string]User) error
	// AddUser inserts a user under its registry lock. It reports false without
	// touching storage when the identifier is already present.
	AddUser(ctx context.Context, id string, user User) (bool, error)
}

// RoomRepository stores the ordered room catalog.
type RoomRepository interface {
	LoadRooms(ctx context.Context) ([]Room, error)
	// SaveRooms persists the catalog wholesale. It fails with ErrDuplicateID
	// before writing anything when two rooms share an identifier.
	SaveRooms(ctx context.Context, rooms []Room) error
}

// BookingRange narrows a cross-date booking scan. Nil bounds are unbounded;
// bounds are inclusive. An empty RoomIDs slice matches every room.
type BookingRange struct {
	Start   *Date
	End     *Date
	RoomIDs []string
}

// BookingRepository stores bookings in one file per calendar date.
type BookingRepository interface {
	// ReadBookings returns the date's bookings with user references resolved
	// against the registry. Absent files yield an empty list.
	ReadBookings(ctx context.Context, date Date) ([]Booking, error)
	// WriteBookings overwrites the date's file wholesale.
	WriteBookings(ctx context.Context, date Date, bookings []Booking) error
	// UpdateBookings runs mutate under the date file's lock, persisting the
	// returned slice. The lock is held across the full read-mutate-write
	// sequence so concurrent updates to one date cannot lose writes.
	UpdateBookings(ctx context.Context, date Date, mutate func([]Booking) ([]Booking, error)) error
	// BookingsInRange scans the data folder for date files inside the range
	// and returns their bookings, resolved the same way ReadBookings resolves.
	BookingsInRange(ctx context.Context, r BookingRange) ([]Booking, error)
}
