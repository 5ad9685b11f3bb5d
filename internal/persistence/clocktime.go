package persistence

import (
	"encoding/json"
	"fmt"
)

// ClockTime is a time of day with minute precision, serialized as a 24-hour
// HH:MM string.
type ClockTime struct {
	minutes int
}

// NewClockTime constructs a time of day from hour and minute components.
func NewClockTime(hour, minute int) (ClockTime, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("invalid time %02d:%02d", hour, minute)
	}
	return ClockTime{minutes: hour*60 + minute}, nil
}

// ParseClockTime parses a 24-hour HH:MM string.
func ParseClockTime(s string) (ClockTime, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%2d:%2d", &hour, &minute); err != nil || len(s) != 5 || s[2] != ':' {
		return ClockTime{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	t, err := NewClockTime(hour, minute)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid time %q: out of range", s)
	}
	return t, nil
}

// String formats the time as HH:MM.
func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// Minutes returns the time as minutes since midnight.
func (t ClockTime) Minutes() int {
	return t.minutes
}

// Before reports whether t is strictly earlier than other.
func (t ClockTime) Before(other ClockTime) bool {
	return t.minutes < other.minutes
}

// After reports whether t is strictly later than other.
func (t ClockTime) After(other ClockTime) bool {
	return t.minutes > other.minutes
}

// MarshalJSON encodes the time as an HH:MM string.
func (t ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes an HH:MM string.
func (t *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
