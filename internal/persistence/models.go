package persistence

import (
	"encoding/json"
	"fmt"
)

// User represents a registered account in the booking domain. Users are keyed
// by identifier in the registry file, so the struct carries only the payload.
type User struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname,omitempty"`
}

// UserRef references a user from a booking. It is either unresolved (a bare
// identifier, serialized as a JSON string) or resolved against the user
// registry (serialized as an object with id, name, and telegram_id).
type UserRef struct {
	ID         string
	Name       string
	TelegramID string
	Resolved   bool
}

// UnresolvedRef returns a reference that carries only the identifier.
func UnresolvedRef(id string) UserRef {
	return UserRef{ID: id}
}

// ResolvedRef expands an identifier into a full reference using the supplied
// registry record. The user's nickname is exposed as telegram_id.
func ResolvedRef(id string, user User) UserRef {
	return UserRef{ID: id, Name: user.Name, TelegramID: user.Nickname, Resolved: true}
}

type resolvedRefJSON struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TelegramID string `json:"telegram_id,omitempty"`
}

// MarshalJSON encodes unresolved references as bare strings and resolved
// references as objects.
func (r UserRef) MarshalJSON() ([]byte, error) {
	if !r.Resolved {
		return json.Marshal(r.ID)
	}
	return json.Marshal(resolvedRefJSON{ID: r.ID, Name: r.Name, TelegramID: r.TelegramID})
}

// UnmarshalJSON accepts either encoding.
func (r *UserRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*r = UnresolvedRef(id)
		return nil
	}
	var obj resolvedRefJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("user reference must be a string or an object: %w", err)
	}
	*r = UserRef{ID: obj.ID, Name: obj.Name, TelegramID: obj.TelegramID, Resolved: true}
	return nil
}

// Room is a catalog entry with a unique identifier. Descriptive fields vary
// by deployment and round-trip through Extra untouched.
type Room struct {
	ID    string
	Extra map[string]json.RawMessage
}

// MarshalJSON flattens the identifier and the extra fields into one object.
func (r Room) MarshalJSON() ([]byte, error) {
	payload := make(map[string]json.RawMessage, len(r.Extra)+1)
	for key, value := range r.Extra {
		payload[key] = value
	}
	id, err := json.Marshal(r.ID)
	if err != nil {
		return nil, err
	}
	payload["id"] = id
	return json.Marshal(payload)
}

// UnmarshalJSON extracts the identifier and keeps every other field verbatim.
func (r *Room) UnmarshalJSON(data []byte) error {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	room := Room{}
	if raw, ok := payload["id"]; ok {
		if err := json.Unmarshal(raw, &room.ID); err != nil {
			return fmt.Errorf("room id must be a string: %w", err)
		}
		delete(payload, "id")
	}
	if len(payload) > 0 {
		room.Extra = payload
	}
	*r = room
	return nil
}

// Booking is one reservation within a date file. Caller-defined fields beyond
// the core contract round-trip through Extra untouched.
type Booking struct {
	ID           string
	Date         Date
	RoomID       string
	StartTime    ClockTime
	EndTime      ClockTime
	BookedBy     UserRef
	Participants []UserRef
	Guests       []string
	Extra        map[string]json.RawMessage
}

var bookingCoreFields = []string{
	"id", "date", "room_id", "start_time", "end_time", "booked_by", "participants", "guests",
}

// MarshalJSON writes the core contract fields plus any extra fields. Core
// fields always win over extras with the same name. Guests are written only
// once derived (a nil slice means the booking has not been through creation).
func (b Booking) MarshalJSON() ([]byte, error) {
	payload := make(map[string]json.RawMessage, len(b.Extra)+len(bookingCoreFields))
	for key, value := range b.Extra {
		payload[key] = value
	}

	set := func(key string, value any) error {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode booking %s: %w", key, err)
		}
		payload[key] = raw
		return nil
	}

	if err := set("id", b.ID); err != nil {
		return nil, err
	}
	if err := set("date", b.Date); err != nil {
		return nil, err
	}
	if err := set("room_id", b.RoomID); err != nil {
		return nil, err
	}
	if err := set("start_time", b.StartTime); err != nil {
		return nil, err
	}
	if err := set("end_time", b.EndTime); err != nil {
		return nil, err
	}
	if err := set("booked_by", b.BookedBy); err != nil {
		return nil, err
	}
	participants := b.Participants
	if participants == nil {
		participants = []UserRef{}
	}
	if err := set("participants", participants); err != nil {
		return nil, err
	}
	if b.Guests != nil {
		if err := set("guests", b.Guests); err != nil {
			return nil, err
		}
	} else {
		delete(payload, "guests")
	}

	return json.Marshal(payload)
}

// UnmarshalJSON decodes the core fields and preserves the rest in Extra.
func (b *Booking) UnmarshalJSON(data []byte) error {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}

	booking := Booking{}
	get := func(key string, out any) error {
		raw, ok := payload[key]
		if !ok {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode booking %s: %w", key, err)
		}
		return nil
	}

	if err := get("id", &booking.ID); err != nil {
		return err
	}
	if err := get("date", &booking.Date); err != nil {
		return err
	}
	if err := get("room_id", &booking.RoomID); err != nil {
		return err
	}
	if err := get("start_time", &booking.StartTime); err != nil {
		return err
	}
	if err := get("end_time", &booking.EndTime); err != nil {
		return err
	}
	if err := get("booked_by", &booking.BookedBy); err != nil {
		return err
	}
	if err := get("participants", &booking.Participants); err != nil {
		return err
	}
	if err := get("guests", &booking.Guests); err != nil {
		return err
	}

	for _, key := range bookingCoreFields {
		delete(payload, key)
	}
	if len(payload) > 0 {
		booking.Extra = payload
	}
	*b = booking
	return nil
}
