package distributor

import (
	"math"
	"targets/pkg/domain"
	"targets/pkg/serrors"
)

// monthsPerYear is the number of baseline shares an annual target is split into.
const monthsPerYear = 12

// Distribute splits totalTarget over every calendar month touched by r.
//
// Each month receives a baseline share of totalTarget/12. In ModeLiteral the
// share is scaled by worked/counted days, which is one whenever the month has
// a counted day, so the split is flat. In ModeWeighted the share is scaled by
// counted days over the calendar days of the month's effective sub-range.
// A month with a zero denominator contributes nothing.
//
// Distribute is pure and safe for concurrent use.
func Distribute(r domain.DateRange, totalTarget float64, excluded domain.ExclusionSet, mode domain.Mode) (*domain.DistributionResult, error) {
	if math.IsNaN(totalTarget) || math.IsInf(totalTarget, 0) {
		return nil, serrors.With(serrors.ErrInvalidTarget, "target must be a finite number, got %v", totalTarget)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if mode != domain.ModeLiteral && mode != domain.ModeWeighted {
		return nil, serrors.With(serrors.ErrBadRequest, "unknown mode %q", mode)
	}

	baseline := totalTarget / monthsPerYear
	res := &domain.DistributionResult{
		Mode:     mode,
		Range:    r,
		Excluded: excluded,
		Segments: make([]domain.MonthSegment, 0, r.Months()),
	}

	for idx := r.Start.MonthIndex(); idx <= r.End.MonthIndex(); idx++ {
		seg := Segment(r, idx, excluded)
		seg.Allocation = allocate(seg, baseline, mode)

		res.Segments = append(res.Segments, seg)
		res.Total += seg.Allocation
	}

	return res, nil
}

// Segment returns the day counts of the month with the given month index,
// clamped to r. The allocation is left at zero.
func Segment(r domain.DateRange, monthIndex int, excluded domain.ExclusionSet) domain.MonthSegment {
	first := domain.MonthStart(monthIndex)
	last := first.LastOfMonth()
	if r.Start.After(first) {
		first = r.Start
	}
	if r.End.Before(last) {
		last = r.End
	}

	seg := domain.MonthSegment{
		Year:  first.Year,
		Month: first.Month,
		First: first,
		Last:  last,
	}
	seg.CalendarDays = first.DaysUntil(last) + 1
	seg.CountedDays = CountDays(first, seg.CalendarDays, excluded)
	seg.WorkedDays = seg.CountedDays

	return seg
}

// CountDays counts the dates among the n days starting at from whose weekday
// is not excluded.
func CountDays(from domain.Date, n int, excluded domain.ExclusionSet) int {
	if n <= 0 {
		return 0
	}

	// whole weeks contribute every non-excluded weekday once
	count := (n / 7) * (7 - excluded.Len())
	wd := from.Weekday()
	for i := 0; i < n%7; i++ {
		if !excluded.Contains((wd + domain.Weekday(i)) % 7) {
			count++
		}
	}

	return count
}

func allocate(seg domain.MonthSegment, baseline float64, mode domain.Mode) float64 {
	numerator, denominator := seg.WorkedDays, seg.CountedDays
	if mode == domain.ModeWeighted {
		numerator, denominator = seg.CountedDays, seg.CalendarDays
	}
	if denominator == 0 {
		return 0
	}

	return float64(numerator) / float64(denominator) * baseline
}
