// Package report renders distribution results as text tables, CSV and JSON.
package report

import (
	"fmt"
	"io"
	"strings"
	"targets/pkg/domain"
	"targets/pkg/serrors"
	"text/tabwriter"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// Format names an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

// ParseFormat returns the Format named by s. An empty string yields FormatTable.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", serrors.With(serrors.ErrBadRequest, "unknown format %q, expected table, csv or json", s)
	}
}

// Write renders res to w in the given format.
func Write(w io.Writer, format Format, res *domain.DistributionResult) error {
	switch format {
	case FormatTable:
		return WriteTable(w, res)
	case FormatCSV:
		return WriteCSV(w, res)
	case FormatJSON:
		b := MarshalJSON(res)
		b = append(b, '\n')
		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("could not write json: %w", err)
		}

		return nil
	default:
		return serrors.With(serrors.ErrBadRequest, "unknown format %q", format)
	}
}

// Amount formats v with two decimals.
func Amount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// WriteTable renders one row per month followed by a total row.
func WriteTable(w io.Writer, res *domain.DistributionResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(tw, "MONTH\tFROM\tTO\tDAYS\tCOUNTED\tWORKED\tTARGET\t")

	var calendarDays, counted, worked int
	for _, s := range res.Segments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\t\n",
			s.Label(), s.First, s.Last, s.CalendarDays, s.CountedDays, s.WorkedDays, Amount(s.Allocation))
		calendarDays += s.CalendarDays
		counted += s.CountedDays
		worked += s.WorkedDays
	}
	fmt.Fprintf(tw, "TOTAL\t\t\t%d\t%d\t%d\t%s\t\n", calendarDays, counted, worked, Amount(res.Total))

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("could not write table: %w", err)
	}

	return nil
}

// Row is the CSV representation of a single month.
type Row struct {
	Month        string `csv:"month"`
	From         string `csv:"from"`
	To           string `csv:"to"`
	CalendarDays int    `csv:"calendar_days"`
	CountedDays  int    `csv:"counted_days"`
	WorkedDays   int    `csv:"worked_days"`
	Target       string `csv:"target"`
}

// Rows converts res into CSV rows, one per month.
func Rows(res *domain.DistributionResult) []*Row {
	rows := make([]*Row, 0, len(res.Segments))
	for _, s := range res.Segments {
		rows = append(rows, &Row{
			Month:        s.Label(),
			From:         s.First.String(),
			To:           s.Last.String(),
			CalendarDays: s.CalendarDays,
			CountedDays:  s.CountedDays,
			WorkedDays:   s.WorkedDays,
			Target:       Amount(s.Allocation),
		})
	}

	return rows
}

// WriteCSV renders one CSV row per month with a header line.
func WriteCSV(w io.Writer, res *domain.DistributionResult) error {
	rows := Rows(res)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("could not write csv: %w", err)
	}

	return nil
}
