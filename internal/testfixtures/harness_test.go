package testfixtures

import (
	"context"
	"testing"

	"github.com/spf13/afero"

	"github.com/example/roombook/internal/application"
)

func TestHarness_EndToEndBookingFlow(t *testing.T) {
	harness := NewHarness(t)
	harness.SeedRegistry(t)
	services := harness.NewServices(ServiceDeps{})
	ctx := context.Background()

	booking, err := services.Bookings.CreateBooking(ctx, application.BookingInput{
		Date:         "2024-01-05",
		RoomID:       "r1",
		StartTime:    "09:00",
		EndTime:      "10:00",
		BookedBy:     "alice",
		Participants: []string{"alice", "visitor"},
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if booking.ID != "booking-1" {
		t.Errorf("Expected deterministic id booking-1, got %s", booking.ID)
	}

	// The booking lands in the date file, not the registries.
	exists, err := afero.Exists(harness.Fs, "/data/2024-01-05.json")
	if err != nil || !exists {
		t.Fatalf("Expected /data/2024-01-05.json to exist (err=%v)", err)
	}

	available, err := services.Bookings.CheckRoomAvailability(ctx, application.AvailabilityQuery{
		Date: "2024-01-05", RoomID: "r1", StartTime: "09:30", EndTime: "09:45",
	})
	if err != nil {
		t.Fatalf("CheckRoomAvailability failed: %v", err)
	}
	if available {
		t.Error("Expected the booked slot to be unavailable")
	}

	listed, err := services.Bookings.BookingsInRange(ctx, application.RangeQuery{
		Start: "2024-01-01", End: "2024-01-31",
	})
	if err != nil {
		t.Fatalf("BookingsInRange failed: %v", err)
	}
	if len(listed) != 1 || !listed[0].BookedBy.Resolved {
		t.Errorf("Expected one resolved booking in range, got %+v", listed)
	}
	if len(listed[0].Guests) != 1 || listed[0].Guests[0] != "visitor" {
		t.Errorf("Expected guest list to survive storage, got %v", listed[0].Guests)
	}
}

func TestNewBooking_Options(t *testing.T) {
	booking := NewBooking(
		WithBookingID("custom"),
		WithBookingRoom("r9"),
		WithBookingTimes("13:00", "14:30"),
		WithBookingParticipants("bob", "guest-1"),
	)

	if booking.ID != "custom" || booking.RoomID != "r9" {
		t.Errorf("Unexpected overrides: %+v", booking)
	}
	if booking.StartTime.String() != "13:00" || booking.EndTime.String() != "14:30" {
		t.Errorf("Unexpected times: %s-%s", booking.StartTime, booking.EndTime)
	}
	if len(booking.Participants) != 2 || booking.Participants[0].ID != "bob" {
		t.Errorf("Unexpected participants: %+v", booking.Participants)
	}
}

func TestNewBooking_UniqueIDs(t *testing.T) {
	a := NewBooking()
	b := NewBooking()
	if a.ID == b.ID {
		t.Errorf("Expected distinct generated ids, got %s twice", a.ID)
	}
}
