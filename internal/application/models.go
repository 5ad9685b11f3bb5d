package application

import "encoding/json"

// UserInput captures caller provided user attributes.
type UserInput struct {
	ID       string
	Name     string
	Nickname string
}

// BookingInput captures caller provided booking fields. Date and times arrive
// as the wire strings (ISO date, 24-hour HH:MM) and are validated by the
// service. Extra fields round-trip into storage untouched.
type BookingInput struct {
	ID           string
	Date         string
	RoomID       string
	StartTime    string
	EndTime      string
	BookedBy     string
	Participants []string
	Extra        map[string]json.RawMessage
}

// AvailabilityQuery describes a proposed reservation to test against the
// bookings already stored for the date.
type AvailabilityQuery struct {
	Date      string
	RoomID    string
	StartTime string
	EndTime   string
}

// RangeQuery narrows a cross-date booking listing. Empty bounds are
// unbounded; bounds are inclusive. An empty RoomIDs slice matches every room.
type RangeQuery struct {
	Start   string
	End     string
	RoomIDs []string
}
