package domain

import (
	"fmt"
	"time"
)

// MonthShortNames are the fixed month labels used by tables and heatmaps.
var MonthShortNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthIndex returns the zero-based calendar month of t.
func MonthIndex(t time.Time) int {
	return int(t.Month()) - 1
}

// YearMonthKey returns year*12 + MonthIndex(t), a total order over calendar
// months. Two dates compare equal under this key iff they share year and month.
func YearMonthKey(t time.Time) int {
	return t.Year()*12 + MonthIndex(t)
}

// ShortDate formats t as YYYY-MM-DD. Labels double as sort and merge keys,
// so formatting must not depend on platform locale.
func ShortDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// YearMonthLabel formats t as YYYY-MM.
func YearMonthLabel(t time.Time) string {
	return t.Format("2006-01")
}

// FormatYearMonth renders a year and zero-based month index as YYYY-MM.
func FormatYearMonth(year, monthIndex int) string {
	return fmt.Sprintf("%04d-%02d", year, monthIndex+1)
}
