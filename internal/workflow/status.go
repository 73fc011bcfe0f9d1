package workflow

import (
	"strings"
	"unicode/utf8"
)

type Limits struct {
	Min int
	Max int
}

func DefaultLimits() Limits {
	return Limits{Min: 10, Max: 2000}
}

type LengthTier string

const (
	LengthShort LengthTier = "short"
	LengthReady LengthTier = "ready"
	LengthLong  LengthTier = "long"
)

// LengthStatus is a pure measurement of a draft against the limits.
// Exactly one of Needed, Excess and Remaining is meaningful per tier.
type LengthStatus struct {
	Count     int
	Tier      LengthTier
	Needed    int
	Excess    int
	Remaining int
}

// MeasureLength counts the draft as typed, in Unicode characters. Submission
// trims before validating, so a padded draft can read ready here and still
// be rejected; that mirrors what the visitor sees in the text box.
func MeasureLength(text string, limits Limits) LengthStatus {
	n := utf8.RuneCountInString(text)

	st := LengthStatus{Count: n}
	switch {
	case n < limits.Min:
		st.Tier = LengthShort
		st.Needed = limits.Min - n
	case n > limits.Max:
		st.Tier = LengthLong
		st.Excess = n - limits.Max
	default:
		st.Tier = LengthReady
		st.Remaining = limits.Max - n
	}
	return st
}

func trimmedLength(text string) int {
	return utf8.RuneCountInString(strings.TrimSpace(text))
}
