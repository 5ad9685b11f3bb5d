// Package conflict implements the overlap test used for room availability.
package conflict

// Interval is a half-open [Start, End) span of minutes within one day.
type Interval struct {
	Start int
	End   int
}

// Valid reports whether the interval has positive length within a day.
func (i Interval) Valid() bool {
	return 0 <= i.Start && i.Start < i.End && i.End <= 24*60
}

// Overlaps reports whether two half-open intervals share any minute.
// Touching endpoints (one booking ending exactly when another starts) do not
// overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}
