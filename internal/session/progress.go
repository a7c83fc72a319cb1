package session

import (
	"fmt"
	"strconv"
)

// Progress describes completion through the active pack. Index is the
// zero-based index of the displayed riddle; Total is the pack's riddle count.
type Progress struct {
	Index int
	Total int
}

// Text renders the literal "i / n" progress string. A non-positive total
// renders the neutral empty state instead of a fraction.
func (p Progress) Text() string {
	if p.Total <= 0 {
		return "0 / 0"
	}
	return fmt.Sprintf("%d / %d", p.Index+1, p.Total)
}

// Fraction returns the fractional completion (index+1)/total, or 0 when the
// total is non-positive.
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Index+1) / float64(p.Total)
}

// Width renders the fraction as a percentage width, e.g. "2%" for riddle 1
// of 50.
func (p Progress) Width() string {
	return strconv.FormatFloat(p.Fraction()*100, 'f', -1, 64) + "%"
}
