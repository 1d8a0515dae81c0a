package domain

import (
	"strings"
	"targets/pkg/serrors"
	"time"
)

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// Validate fails with serrors.ErrInvalidRange when Start is after End.
func (r DateRange) Validate() error {
	if r.Start.After(r.End) {
		return serrors.With(serrors.ErrInvalidRange, "start %s is after end %s", r.Start, r.End)
	}

	return nil
}

// Months returns the number of calendar months the range touches, counting
// both the first and the last month. It returns 0 for an inverted range.
func (r DateRange) Months() int {
	if r.Start.After(r.End) {
		return 0
	}

	return r.End.MonthIndex() - r.Start.MonthIndex() + 1
}

// Mode selects how a month's allocation is derived from its day counts.
type Mode string

const (
	// ModeLiteral splits the target into flat twelfths. Day counts are only
	// reported; the working-day ratio always evaluates to one.
	ModeLiteral Mode = "literal"
	// ModeWeighted scales each twelfth by the share of the month's effective
	// calendar days that are working days.
	ModeWeighted Mode = "weighted"
)

// ParseMode returns the Mode named by s. An empty string yields ModeLiteral.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeLiteral:
		return ModeLiteral, nil
	case ModeWeighted:
		return ModeWeighted, nil
	default:
		return "", serrors.With(serrors.ErrBadRequest, "unknown mode %q, expected %q or %q", s, ModeLiteral, ModeWeighted)
	}
}

// MonthSegment is one calendar month intersected with a DateRange.
type MonthSegment struct {
	// Year and Month identify the calendar month.
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	// First and Last are the effective dates considered, clamped to the range.
	First Date `json:"first"`
	Last  Date `json:"last"`

	// CalendarDays is the number of dates between First and Last, inclusive.
	CalendarDays int `json:"calendarDays"`
	// CountedDays is the number of dates whose weekday is not excluded.
	CountedDays int `json:"countedDays"`
	// WorkedDays mirrors CountedDays; both are reported for parity with existing consumers.
	WorkedDays int `json:"workedDays"`

	// Allocation is the share of the target assigned to this month.
	Allocation float64 `json:"allocation"`
}

// Label returns the month as YYYY-MM.
func (s MonthSegment) Label() string {
	return s.First.String()[:7]
}

// DistributionResult is the per-month split of a target over a DateRange.
type DistributionResult struct {
	Mode     Mode           `json:"mode"`
	Range    DateRange      `json:"range"`
	Excluded ExclusionSet   `json:"-"`
	Segments []MonthSegment `json:"months"`
	// Total is the sum of all segment allocations, accumulated chronologically.
	Total float64 `json:"total"`
}

// CountedDays returns the counted-day figure of every month, in order.
func (r *DistributionResult) CountedDays() []int {
	out := make([]int, len(r.Segments))
	for i, s := range r.Segments {
		out[i] = s.CountedDays
	}

	return out
}

// WorkedDays returns the worked-day figure of every month, in order.
func (r *DistributionResult) WorkedDays() []int {
	out := make([]int, len(r.Segments))
	for i, s := range r.Segments {
		out[i] = s.WorkedDays
	}

	return out
}

// Allocations returns the allocation of every month, in order.
func (r *DistributionResult) Allocations() []float64 {
	out := make([]float64, len(r.Segments))
	for i, s := range r.Segments {
		out[i] = s.Allocation
	}

	return out
}
