// Package calendar converts external date and weekday representations into
// the domain values consumed by the distributor.
package calendar

import (
	"strconv"
	"strings"
	"targets/pkg/domain"
	"targets/pkg/serrors"
	"time"
)

// weekdayNames maps lower-case full and abbreviated English names to weekdays.
var weekdayNames = func() map[string]domain.Weekday { //nolint: gochecknoglobals
	m := make(map[string]domain.Weekday, 14)
	for d := domain.Sunday; d <= domain.Saturday; d++ {
		name := strings.ToLower(d.String())
		m[name] = d
		m[name[:3]] = d
	}

	return m
}()

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (domain.Date, error) {
	t, err := time.Parse(domain.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return domain.Date{}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid date %q", s)
	}

	return domain.DateOf(t), nil
}

// ParseRange parses both ends of an inclusive range and checks that start is
// not after end.
func ParseRange(start, end string) (domain.DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return domain.DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return domain.DateRange{}, err
	}

	r := domain.DateRange{Start: s, End: e}
	if err := r.Validate(); err != nil {
		return domain.DateRange{}, err
	}

	return r, nil
}

// ParseWeekday accepts a number from 0 (Sunday) to 6 (Saturday), a full
// English weekday name or its three-letter abbreviation, case-insensitively.
func ParseWeekday(s string) (domain.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if d := domain.Weekday(n); d.Valid() {
			return d, nil
		}

		return 0, serrors.With(serrors.ErrBadRequest, "weekday %d out of range 0-6", n)
	}
	if d, ok := weekdayNames[s]; ok {
		return d, nil
	}

	return 0, serrors.With(serrors.ErrBadRequest, "unknown weekday %q", s)
}

// ParseExclusions builds an exclusion set from the given items. Each item may
// hold several comma-separated weekdays; blank entries are ignored.
func ParseExclusions(items ...string) (domain.ExclusionSet, error) {
	var days []domain.Weekday
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			d, err := ParseWeekday(part)
			if err != nil {
				return domain.ExclusionSet{}, err
			}
			days = append(days, d)
		}
	}

	return domain.NewExclusionSet(days...)
}
