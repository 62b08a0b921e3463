package performance

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Direction says which way a value must move to count as an improvement for
// a category.
type Direction int

const (
	HigherIsBetter Direction = iota
	LowerIsBetter
)

// Time-like units where a smaller value is the better result. The match is
// purely lexical; anything not listed here is treated as higher-is-better
// (weight, distance, count, points).
var lowerIsBetterUnits = map[string]bool{
	"s":            true,
	"sec":          true,
	"secs":         true,
	"second":       true,
	"seconds":      true,
	"ms":           true,
	"millisecond":  true,
	"milliseconds": true,
	"min":          true,
	"mins":         true,
	"minute":       true,
	"minutes":      true,
	"h":            true,
	"hr":           true,
	"hrs":          true,
	"hour":         true,
	"hours":        true,
	"time":         true,
}

// DirectionForUnit classifies a unit string. Unicode compatibility folding
// keeps width and ligature variants of the same unit from misclassifying.
func DirectionForUnit(unit string) Direction {
	u := strings.ToLower(strings.TrimSpace(norm.NFKC.String(unit)))
	if lowerIsBetterUnits[u] {
		return LowerIsBetter
	}
	return HigherIsBetter
}

// Improves reports whether candidate strictly beats current. Ties are not
// improvements.
func (d Direction) Improves(candidate, current float64) bool {
	if d == LowerIsBetter {
		return candidate < current
	}
	return candidate > current
}

// Meets reports whether value crosses target in the favorable direction
// (value ≤ target for lower-is-better, value ≥ target otherwise).
func (d Direction) Meets(value, target float64) bool {
	if d == LowerIsBetter {
		return value <= target
	}
	return value >= target
}
