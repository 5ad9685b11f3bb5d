package jsonfile

import (
	"context"

	"github.com/example/roombook/internal/persistence"
)

// BookingRepository implements persistence.BookingRepository with one JSON
// file per calendar date.
type BookingRepository struct {
	store *Store
	users *UserRepository
}

// NewBookingRepository creates a booking repository backed by the store. The
// user repository is consulted to resolve booked_by and participant
// references on every read.
func NewBookingRepository(store *Store, users *UserRepository) *BookingRepository {
	return &BookingRepository{store: store, users: users}
}

// FilePath returns the deterministic file path holding the date's bookings.
func (r *BookingRepository) FilePath(date persistence.Date) string {
	return r.store.filePath(date.String() + fileExt)
}

// readRaw loads the date file under its lock without resolving references.
func (r *BookingRepository) readRaw(date persistence.Date) ([]persistence.Booking, error) {
	path := r.FilePath(date)
	var bookings []persistence.Booking
	err := r.store.withPathLock(path, func() error {
		_, err := r.store.readJSON(path, &bookings)
		return err
	})
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []persistence.Booking{}
	}
	return bookings, nil
}

// resolve replaces unresolved user references with registry-backed ones.
// Identifiers with no registry entry stay unresolved.
func resolve(bookings []persistence.Booking, users map[string]persistence.User) {
	resolveRef := func(ref *persistence.UserRef) {
		if ref.Resolved {
			return
		}
		if user, ok := users[ref.ID]; ok {
			*ref = persistence.ResolvedRef(ref.ID, user)
		}
	}
	for i := range bookings {
		resolveRef(&bookings[i].BookedBy)
		for j := range bookings[i].Participants {
			resolveRef(&bookings[i].Participants[j])
		}
	}
}

// ReadBookings returns the date's bookings with user references resolved.
func (r *BookingRepository) ReadBookings(ctx context.Context, date persistence.Date) ([]persistence.Booking, error) {
	bookings, err := r.readRaw(date)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return bookings, nil
	}
	users, err := r.users.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	resolve(bookings, users)
	return bookings, nil
}

// WriteBookings overwrites the date's file wholesale.
func (r *BookingRepository) WriteBookings(ctx context.Context, date persistence.Date, bookings []persistence.Booking) error {
	if bookings == nil {
		bookings = []persistence.Booking{}
	}
	path := r.FilePath(date)
	return r.store.withPathLock(path, func() error {
		return r.store.writeJSON(path, bookings)
	})
}

// UpdateBookings runs mutate under the date file's lock and persists the
// returned slice. Because the lock spans the full read-mutate-write sequence,
// concurrent updates to the same date serialize instead of losing writes.
func (r *BookingRepository) UpdateBookings(ctx context.Context, date persistence.Date, mutate func([]persistence.Booking) ([]persistence.Booking, error)) error {
	path := r.FilePath(date)
	return r.store.withPathLock(path, func() error {
		var bookings []persistence.Booking
		if _, err := r.store.readJSON(path, &bookings); err != nil {
			return err
		}
		if bookings == nil {
			bookings = []persistence.Booking{}
		}
		updated, err := mutate(bookings)
		if err != nil {
			return err
		}
		if updated == nil {
			updated = []persistence.Booking{}
		}
		return r.store.writeJSON(path, updated)
	})
}

// BookingsInRange scans the data folder for date files inside the inclusive
// range, filters by room when requested, and concatenates results in date
// order. References are resolved the same way ReadBookings resolves them.
func (r *BookingRepository) BookingsInRange(ctx context.Context, rng persistence.BookingRange) ([]persistence.Booking, error) {
	dates, err := r.store.dateFiles()
	if err != nil {
		return nil, err
	}

	var roomFilter map[string]struct{}
	if len(rng.RoomIDs) > 0 {
		roomFilter = make(map[string]struct{}, len(rng.RoomIDs))
		for _, id := range rng.RoomIDs {
			roomFilter[id] = struct{}{}
		}
	}

	matched := []persistence.Booking{}
	for _, date := range dates {
		if rng.Start != nil && date.Before(*rng.Start) {
			continue
		}
		if rng.End != nil && date.After(*rng.End) {
			continue
		}
		bookings, err := r.readRaw(date)
		if err != nil {
			return nil, err
		}
		for _, booking := range bookings {
			if roomFilter != nil {
				if _, ok := roomFilter[booking.RoomID]; !ok {
					continue
				}
			}
			matched = append(matched, booking)
		}
	}

	if len(matched) == 0 {
		return matched, nil
	}
	users, err := r.users.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	resolve(matched, users)
	return matched, nil
}
