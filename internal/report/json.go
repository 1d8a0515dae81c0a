package report

import (
	"targets/pkg/domain"

	"github.com/go-faster/jx"
)

// EncodeJSON writes res as a JSON object. Besides the per-month breakdown it
// carries the flat sequences daysExcludingSpecified, daysWorkedExcludingSpecified
// and monthlyTargets along with totalTarget.
func EncodeJSON(e *jx.Encoder, res *domain.DistributionResult) {
	e.ObjStart()

	e.FieldStart("mode")
	e.Str(string(res.Mode))
	e.FieldStart("start")
	e.Str(res.Range.Start.String())
	e.FieldStart("end")
	e.Str(res.Range.End.String())

	e.FieldStart("excludedWeekdays")
	e.ArrStart()
	for _, d := range res.Excluded.Weekdays() {
		e.Int(int(d))
	}
	e.ArrEnd()

	e.FieldStart("months")
	e.ArrStart()
	for _, s := range res.Segments {
		encodeSegment(e, s)
	}
	e.ArrEnd()

	e.FieldStart("daysExcludingSpecified")
	encodeInts(e, res.CountedDays())
	e.FieldStart("daysWorkedExcludingSpecified")
	encodeInts(e, res.WorkedDays())
	e.FieldStart("monthlyTargets")
	e.ArrStart()
	for _, v := range res.Allocations() {
		e.Float64(v)
	}
	e.ArrEnd()
	e.FieldStart("totalTarget")
	e.Float64(res.Total)

	e.ObjEnd()
}

// MarshalJSON returns res encoded by EncodeJSON.
func MarshalJSON(res *domain.DistributionResult) []byte {
	var e jx.Encoder
	EncodeJSON(&e, res)

	return e.Bytes()
}

func encodeSegment(e *jx.Encoder, s domain.MonthSegment) {
	e.ObjStart()
	e.FieldStart("month")
	e.Str(s.Label())
	e.FieldStart("first")
	e.Str(s.First.String())
	e.FieldStart("last")
	e.Str(s.Last.String())
	e.FieldStart("calendarDays")
	e.Int(s.CalendarDays)
	e.FieldStart("countedDays")
	e.Int(s.CountedDays)
	e.FieldStart("workedDays")
	e.Int(s.WorkedDays)
	e.FieldStart("allocation")
	e.Float64(s.Allocation)
	e.ObjEnd()
}

func encodeInts(e *jx.Encoder, values []int) {
	e.ArrStart()
	for _, v := range values {
		e.Int(v)
	}
	e.ArrEnd()
}
