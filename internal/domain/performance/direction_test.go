package performance

import "testing"

func TestDirectionForUnit(t *testing.T) {
	t.Parallel()

	lower := []string{"s", "sec", "seconds", "ms", "min", "minutes", "h", "hours", "time", " Seconds ", "SEC"}
	for _, u := range lower {
		if DirectionForUnit(u) != LowerIsBetter {
			t.Errorf("%q: want lower-is-better", u)
		}
	}

	higher := []string{"kg", "m", "reps", "points", "cm", "", "laps"}
	for _, u := range higher {
		if DirectionForUnit(u) != HigherIsBetter {
			t.Errorf("%q: want higher-is-better", u)
		}
	}

	// Fullwidth "sec" folds to the plain form under NFKC.
	if DirectionForUnit("ｓｅｃ") != LowerIsBetter {
		t.Error("fullwidth sec: want lower-is-better")
	}
}

func TestDirectionImproves(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dir                Direction
		candidate, current float64
		want               bool
	}{
		{LowerIsBetter, 11.9, 12.4, true},
		{LowerIsBetter, 12.4, 11.9, false},
		{LowerIsBetter, 11.9, 11.9, false}, // ties never improve
		{HigherIsBetter, 105, 100, true},
		{HigherIsBetter, 100, 105, false},
		{HigherIsBetter, 100, 100, false},
	}
	for _, tt := range tests {
		if got := tt.dir.Improves(tt.candidate, tt.current); got != tt.want {
			t.Errorf("dir=%v Improves(%v, %v) = %v, want %v", tt.dir, tt.candidate, tt.current, got, tt.want)
		}
	}
}

func TestDirectionMeets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dir           Direction
		value, target float64
		want          bool
	}{
		{LowerIsBetter, 11.9, 12.0, true},
		{LowerIsBetter, 12.0, 12.0, true}, // exact target counts
		{LowerIsBetter, 12.1, 12.0, false},
		{HigherIsBetter, 105, 100, true},
		{HigherIsBetter, 100, 100, true},
		{HigherIsBetter, 99, 100, false},
	}
	for _, tt := range tests {
		if got := tt.dir.Meets(tt.value, tt.target); got != tt.want {
			t.Errorf("dir=%v Meets(%v, %v) = %v, want %v", tt.dir, tt.value, tt.target, got, tt.want)
		}
	}
}
