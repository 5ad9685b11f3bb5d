package persistence

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUserRef_UnresolvedRoundTrip(t *testing.T) {
	ref := UnresolvedRef("alice")

	data, err := json.Marshal(ref)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"alice"` {
		t.Errorf("Expected bare string encoding, got %s", data)
	}

	var decoded UserRef
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Resolved {
		t.Error("Expected unresolved reference after round trip")
	}
	if decoded.ID != "alice" {
		t.Errorf("Expected id 'alice', got %q", decoded.ID)
	}
}

func TestUserRef_ResolvedRoundTrip(t *testing.T) {
	ref := ResolvedRef("alice", User{Name: "Alice Liddell", Nickname: "@alice"})

	data, err := json.Marshal(ref)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"telegram_id":"@alice"`) {
		t.Errorf("Expected telegram_id in object encoding, got %s", data)
	}

	var decoded UserRef
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !decoded.Resolved {
		t.Error("Expected resolved reference after round trip")
	}
	if decoded.Name != "Alice Liddell" || decoded.TelegramID != "@alice" {
		t.Errorf("Unexpected decoded reference: %+v", decoded)
	}
}

func TestUserRef_RejectsOtherShapes(t *testing.T) {
	var ref UserRef
	if err := json.Unmarshal([]byte(`42`), &ref); err == nil {
		t.Fatal("Expected error for numeric user reference, got nil")
	}
}

func TestRoom_ExtraFieldsRoundTrip(t *testing.T) {
	raw := `{"id":"r1","floor":3,"projector":true,"name":"War Room"}`

	var room Room
	if err := json.Unmarshal([]byte(raw), &room); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if room.ID != "r1" {
		t.Errorf("Expected id 'r1', got %q", room.ID)
	}
	if len(room.Extra) != 3 {
		t.Errorf("Expected 3 extra fields, got %d", len(room.Extra))
	}

	data, err := json.Marshal(room)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal of re-encoded room failed: %v", err)
	}
	if decoded["floor"] != float64(3) || decoded["projector"] != true || decoded["name"] != "War Room" {
		t.Errorf("Extra fields did not round trip: %v", decoded)
	}
}

func TestBooking_ExtraFieldsRoundTrip(t *testing.T) {
	raw := `{
		"id": "b1",
		"date": "2024-01-05",
		"room_id": "r1",
		"start_time": "09:00",
		"end_time": "10:30",
		"booked_by": "alice",
		"participants": ["alice", "ghost"],
		"note": "quarterly review",
		"priority": 2
	}`

	var booking Booking
	if err := json.Unmarshal([]byte(raw), &booking); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if booking.ID != "b1" || booking.RoomID != "r1" {
		t.Errorf("Unexpected core fields: %+v", booking)
	}
	if booking.Date.String() != "2024-01-05" {
		t.Errorf("Expected date 2024-01-05, got %s", booking.Date)
	}
	if booking.StartTime.String() != "09:00" || booking.EndTime.String() != "10:30" {
		t.Errorf("Unexpected times: %s-%s", booking.StartTime, booking.EndTime)
	}
	if booking.BookedBy.Resolved {
		t.Error("Expected unresolved booked_by on raw input")
	}
	if len(booking.Participants) != 2 || booking.Participants[0].ID != "alice" {
		t.Errorf("Unexpected participants: %+v", booking.Participants)
	}
	if len(booking.Extra) != 2 {
		t.Fatalf("Expected 2 extra fields, got %d: %v", len(booking.Extra), booking.Extra)
	}

	data, err := json.Marshal(booking)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal of re-encoded booking failed: %v", err)
	}
	if decoded["note"] != "quarterly review" || decoded["priority"] != float64(2) {
		t.Errorf("Extra fields did not round trip: %v", decoded)
	}
	if _, present := decoded["guests"]; present {
		t.Error("Expected guests to be absent before creation derives them")
	}
}

func TestBooking_GuestsSerializedOnceDerived(t *testing.T) {
	booking := Booking{
		ID:       "b1",
		Date:     NewDate(2024, 1, 5),
		RoomID:   "r1",
		BookedBy: UnresolvedRef("alice"),
		Guests:   []string{},
	}

	data, err := json.Marshal(booking)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	guests, present := decoded["guests"]
	if !present {
		t.Fatal("Expected guests key once the slice is non-nil")
	}
	if list, ok := guests.([]any); !ok || len(list) != 0 {
		t.Errorf("Expected empty guests list, got %v", guests)
	}
}
