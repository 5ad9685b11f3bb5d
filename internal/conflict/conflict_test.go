package conflict

import "testing"

func TestInterval_Overlaps(t *testing.T) {
	existing := Interval{Start: 9 * 60, End: 10 * 60} // 09:00-10:00

	cases := []struct {
		name     string
		proposed Interval
		want     bool
	}{
		{"ends when existing starts", Interval{8 * 60, 9 * 60}, false},
		{"starts when existing ends", Interval{10 * 60, 11 * 60}, false},
		{"fully inside", Interval{9*60 + 30, 9*60 + 45}, true},
		{"straddles start", Interval{8*60 + 30, 9*60 + 30}, true},
		{"straddles end", Interval{9*60 + 30, 10*60 + 30}, true},
		{"fully covers", Interval{8 * 60, 11 * 60}, true},
		{"identical", Interval{9 * 60, 10 * 60}, true},
		{"well before", Interval{7 * 60, 8 * 60}, false},
		{"well after", Interval{11 * 60, 12 * 60}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.proposed.Overlaps(existing); got != tc.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tc.proposed, existing, got, tc.want)
			}
			if got := existing.Overlaps(tc.proposed); got != tc.want {
				t.Errorf("Overlaps is not symmetric for %v", tc.proposed)
			}
		})
	}
}

func TestInterval_Valid(t *testing.T) {
	if !(Interval{Start: 0, End: 24 * 60}).Valid() {
		t.Error("Expected full-day interval to be valid")
	}
	for _, bad := range []Interval{{10, 10}, {20, 10}, {-1, 10}, {0, 24*60 + 1}} {
		if bad.Valid() {
			t.Errorf("Expected %v to be invalid", bad)
		}
	}
}
