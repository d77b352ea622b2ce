package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is an account's final reconstructed balance.
type AccountBalance struct {
	Name    string
	Balance decimal.Decimal
}

// AccountSeries is an account's running-balance history prepared for
// display. Balances and Labels always have the same length.
type AccountSeries struct {
	Name     string
	Balances []decimal.Decimal
	Labels   []string
}

// Totals are the ledger-wide aggregates derived from a full replay.
type Totals struct {
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
	NetWorth    decimal.Decimal
}

// BalanceReport is the Balance Reconstructor's output.
type BalanceReport struct {
	PerAccount map[string]AccountSeries
	Totals     Totals
}

// CategoryBreakdown is a percentage-labeled per-category roll-up.
// Labels and Amounts are parallel and equal in length.
type CategoryBreakdown struct {
	Labels  []string
	Amounts []decimal.Decimal
}

// PeriodRow is one labeled row of a PeriodTable.
type PeriodRow struct {
	Row  string
	Data []decimal.Decimal
}

// PeriodTable is a period-by-category grid with synthetic Total and
// Average slots appended.
type PeriodTable struct {
	Columns []string
	Rows    []PeriodRow
}

// HeatmapPoint is one (year, total) cell of a heatmap series.
type HeatmapPoint struct {
	X string
	Y int64
}

// HeatmapSeries is one calendar month's row of the seasonal heatmap.
type HeatmapSeries struct {
	Name   string
	Points []HeatmapPoint
}

// Milestone reports whether and when a net-worth threshold was first
// crossed. AchievedDate and DaysToAchieve are nil until achievement.
type Milestone struct {
	Amount        decimal.Decimal
	Achieved      bool
	AchievedDate  *time.Time
	DaysToAchieve *int
}

// ForecastSeries is a labeled value series; forecasts append synthetic
// labels and values after the historical ones.
type ForecastSeries struct {
	Labels []string
	Data   []float64
}
