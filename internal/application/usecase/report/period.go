// Package report contains reporting and insight use cases.
package report

import (
	"fmt"
	"time"

	domainerror "github.com/finance-assistant/backend/internal/domain/error"
)

// PeriodKind selects the window a report covers within a month/year pair.
type PeriodKind string

const (
	PeriodWeekly    PeriodKind = "semanal"
	PeriodMonthly   PeriodKind = "mensal"
	PeriodQuarterly PeriodKind = "trimestral"
)

// IsValid reports whether the period kind is one of the known windows.
func (k PeriodKind) IsValid() bool {
	switch k {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly:
		return true
	}
	return false
}

// periodBounds resolves the inclusive date range for a report window.
// Weekly covers the first seven days of the month, monthly the whole
// month, quarterly the calendar quarter containing the month.
func periodBounds(month, year int, kind PeriodKind) (start, end string, err error) {
	if month < 1 || month > 12 {
		return "", "", domainerror.NewReportError(domainerror.ErrCodeInvalidReportMonth,
			fmt.Sprintf("month %d is out of range", month), domainerror.ErrInvalidReportMonth)
	}

	switch kind {
	case PeriodWeekly:
		start = fmt.Sprintf("%04d-%02d-01", year, month)
		end = fmt.Sprintf("%04d-%02d-07", year, month)
	case PeriodMonthly:
		start = fmt.Sprintf("%04d-%02d-01", year, month)
		end = fmt.Sprintf("%04d-%02d-%02d", year, month, lastDay(year, month))
	case PeriodQuarterly:
		first := (month-1)/3*3 + 1
		last := first + 2
		start = fmt.Sprintf("%04d-%02d-01", year, first)
		end = fmt.Sprintf("%04d-%02d-%02d", year, last, lastDay(year, last))
	default:
		return "", "", domainerror.NewReportError(domainerror.ErrCodeInvalidPeriodKind,
			fmt.Sprintf("unknown period kind %q", kind), domainerror.ErrInvalidPeriodKind)
	}
	return start, end, nil
}

// priorMonth steps one month back, wrapping January to the previous
// year's December.
func priorMonth(month, year int) (int, int) {
	if month == 1 {
		return 12, year - 1
	}
	return month - 1, year
}

// lastDay returns the number of days in the month.
func lastDay(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
