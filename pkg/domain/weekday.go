package domain

import (
	"strconv"
	"strings"
	"targets/pkg/serrors"
	"time"
)

// Weekday identifies a day of the week with a fixed, locale-independent
// numbering: Sunday is 0 and Saturday is 6.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// Valid reports whether w is one of the seven weekdays.
func (w Weekday) Valid() bool {
	return w >= Sunday && w <= Saturday
}

// String returns the English name of the weekday.
func (w Weekday) String() string {
	if !w.Valid() {
		return "Weekday(" + strconv.Itoa(int(w)) + ")"
	}

	return time.Weekday(w).String()
}

// ExclusionSet is a set of weekdays that are not counted as working days.
// The zero value is an empty set.
type ExclusionSet struct {
	mask uint8
}

// NewExclusionSet builds a set from the given weekdays. Duplicates collapse.
// It fails when any weekday is outside Sunday..Saturday.
func NewExclusionSet(days ...Weekday) (ExclusionSet, error) {
	var s ExclusionSet
	for _, d := range days {
		if !d.Valid() {
			return ExclusionSet{}, serrors.With(serrors.ErrBadRequest, "invalid weekday %d, expected 0 (Sunday) to 6 (Saturday)", int(d))
		}
		s.mask |= 1 << uint(d)
	}

	return s, nil
}

// MustExclusionSet is like NewExclusionSet but panics on invalid weekdays.
// It is meant for constant inputs.
func MustExclusionSet(days ...Weekday) ExclusionSet {
	s, err := NewExclusionSet(days...)
	if err != nil {
		panic(err)
	}

	return s
}

// Contains reports whether d is excluded.
func (s ExclusionSet) Contains(d Weekday) bool {
	return d.Valid() && s.mask&(1<<uint(d)) != 0
}

// Len returns the number of distinct weekdays in the set.
func (s ExclusionSet) Len() int {
	n := 0
	for d := Sunday; d <= Saturday; d++ {
		if s.Contains(d) {
			n++
		}
	}

	return n
}

// Weekdays returns the excluded weekdays in ascending order.
func (s ExclusionSet) Weekdays() []Weekday {
	out := make([]Weekday, 0, s.Len())
	for d := Sunday; d <= Saturday; d++ {
		if s.Contains(d) {
			out = append(out, d)
		}
	}

	return out
}

// String returns a comma-separated list of excluded weekday names.
func (s ExclusionSet) String() string {
	names := make([]string, 0, s.Len())
	for _, d := range s.Weekdays() {
		names = append(names, d.String())
	}

	return strings.Join(names, ",")
}
