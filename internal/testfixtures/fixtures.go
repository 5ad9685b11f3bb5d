package testfixtures

import (
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/example/roombook/internal/persistence"
)

var bookingCounter uint64

// RegisteredUsers returns the registry mapping shared by fixtures: two known
// users, one with a nickname.
func RegisteredUsers() map[string]persistence.User {
	return map[string]persistence.User{
		"alice": {Name: "Alice Liddell", Nickname: "@alice"},
		"bob":   {Name: "Bob Gray"},
	}
}

// SampleRooms returns a small ordered catalog.
func SampleRooms() []persistence.Room {
	return []persistence.Room{
		roomWith("r1", map[string]any{"name": "Huddle", "capacity": 4}),
		roomWith("r2", map[string]any{"name": "Boardroom", "capacity": 12}),
	}
}

func roomWith(id string, fields map[string]any) persistence.Room {
	extra := make(map[string]json.RawMessage, len(fields))
	for key, value := range fields {
		raw, err := json.Marshal(value)
		if err != nil {
			panic(fmt.Sprintf("testfixtures: encode room field %s: %v", key, err))
		}
		extra[key] = raw
	}
	return persistence.Room{ID: id, Extra: extra}
}

// BookingOption configures the generated booking fixture.
type BookingOption func(*persistence.Booking)

// NewBooking returns a deterministic unresolved booking on 2024-01-05, room
// r1, 09:00-10:00, booked by alice, with optional overrides.
func NewBooking(opts ...BookingOption) persistence.Booking {
	idx := atomic.AddUint64(&bookingCounter, 1)
	booking := persistence.Booking{
		ID:        fmt.Sprintf("booking-%03d", idx),
		Date:      persistence.NewDate(2024, 1, 5),
		RoomID:    "r1",
		StartTime: mustClockTime("09:00"),
		EndTime:   mustClockTime("10:00"),
		BookedBy:  persistence.UnresolvedRef("alice"),
		Participants: []persistence.UserRef{
			persistence.UnresolvedRef("alice"),
		},
	}
	for _, opt := range opts {
		opt(&booking)
	}
	return booking
}

// WithBookingID overrides the generated booking identifier.
func WithBookingID(id string) BookingOption {
	return func(b *persistence.Booking) {
		b.ID = id
	}
}

// WithBookingDate overrides the booking date.
func WithBookingDate(date persistence.Date) BookingOption {
	return func(b *persistence.Booking) {
		b.Date = date
	}
}

// WithBookingRoom overrides the room identifier.
func WithBookingRoom(roomID string) BookingOption {
	return func(b *persistence.Booking) {
		b.RoomID = roomID
	}
}

// WithBookingTimes overrides the start and end times, given as HH:MM strings.
func WithBookingTimes(start, end string) BookingOption {
	return func(b *persistence.Booking) {
		b.StartTime = mustClockTime(start)
		b.EndTime = mustClockTime(end)
	}
}

// WithBookingParticipants replaces the participant references with unresolved
// references to the supplied identifiers.
func WithBookingParticipants(ids ...string) BookingOption {
	return func(b *persistence.Booking) {
		refs := make([]persistence.UserRef, 0, len(ids))
		for _, id := range ids {
			refs = append(refs, persistence.UnresolvedRef(id))
		}
		b.Participants = refs
	}
}

func mustClockTime(s string) persistence.ClockTime {
	ct, err := persistence.ParseClockTime(s)
	if err != nil {
		panic(fmt.Sprintf("testfixtures: %v", err))
	}
	return ct
}
