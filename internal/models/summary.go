package models

import (
	"fmt"
	"time"
)

// Period is the bucket size of a summary.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Periods lists every summary period, finest first.
var Periods = []Period{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear}

func ParsePeriod(s string) (Period, bool) {
	for _, p := range Periods {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// AxisTitle names the period for a chart's category axis.
func (p Period) AxisTitle() string {
	switch p {
	case PeriodDay:
		return "Day"
	case PeriodWeek:
		return "Week"
	case PeriodMonth:
		return "Month"
	default:
		return "Year"
	}
}

// Heading is the page title of the period's summary.
func (p Period) Heading() string {
	switch p {
	case PeriodDay:
		return "Daily Summary"
	case PeriodWeek:
		return "Weekly Summary"
	case PeriodMonth:
		return "Monthly Summary"
	default:
		return "Yearly Summary"
	}
}

// Label formats the start date of a bucket the way the period is displayed:
// "2024", "January 2024", "2024-W05" or "2024-03-05".
func (p Period) Label(start time.Time) string {
	switch p {
	case PeriodDay:
		return start.Format("2006-01-02")
	case PeriodWeek:
		year, week := start.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case PeriodMonth:
		return start.Format("January 2006")
	default:
		return start.Format("2006")
	}
}

type SummaryRow struct {
	Period       Period    `json:"period"`
	Start        time.Time `json:"start"`
	Label        string    `json:"label"`
	Workouts     int       `json:"workouts"`
	TotalMeters  float64   `json:"total_meters"`
	TotalSeconds float64   `json:"total_seconds"`
	SplitSeconds float64   `json:"split_seconds"`
	TotalIsoReps float64   `json:"total_isoreps"`
}

type OverallTotals struct {
	Workouts     int     `json:"workouts"`
	TotalMeters  float64 `json:"total_meters"`
	TotalSeconds float64 `json:"total_seconds"`
	SplitSeconds float64 `json:"split_seconds"`
	TotalIsoReps float64 `json:"total_isoreps"`
}

// SummaryPage is one page of period totals plus the chart series built
// from the same rows in chronological order.
type SummaryPage struct {
	Period     Period       `json:"period"`
	Rows       []SummaryRow `json:"rows"`
	Page       int          `json:"page"`
	PerPage    int          `json:"per_page"`
	TotalRows  int          `json:"total_rows"`
	TotalPages int          `json:"total_pages"`
	Chart      ChartData    `json:"chart"`
}

// ChartData holds aligned category labels and nullable metric series.
type ChartData struct {
	Categories []string   `json:"categories"`
	Meters     []*float64 `json:"meters"`
	Seconds    []*float64 `json:"seconds"`
	Split      []*float64 `json:"split"`
	IsoReps    []*float64 `json:"isoreps"`
}
