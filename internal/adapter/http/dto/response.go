package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/findash/internal/domain"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AccountSeriesResponse is one account's running-balance series.
type AccountSeriesResponse struct {
	Labels   []string          `json:"labels"`
	Balances []decimal.Decimal `json:"balances"`
	Final    decimal.Decimal   `json:"final"`
}

// TotalsResponse holds the portfolio totals.
type TotalsResponse struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	NetWorth    decimal.Decimal `json:"net_worth"`
}

// BalanceReportResponse represents the balances report in API responses.
type BalanceReportResponse struct {
	Accounts map[string]AccountSeriesResponse `json:"accounts"`
	Totals   TotalsResponse                   `json:"totals"`
}

// BalanceReportFromDomain converts a balance report to a response.
func BalanceReportFromDomain(report domain.BalanceReport) BalanceReportResponse {
	accounts := make(map[string]AccountSeriesResponse, len(report.PerAccount))
	for name, series := range report.PerAccount {
		resp := AccountSeriesResponse{
			Labels:   series.Labels,
			Balances: series.Balances,
		}
		if n := len(series.Balances); n > 0 {
			resp.Final = series.Balances[n-1]
		}
		accounts[name] = resp
	}
	return BalanceReportResponse{
		Accounts: accounts,
		Totals: TotalsResponse{
			Assets:      report.Totals.Assets,
			Liabilities: report.Totals.Liabilities,
			NetWorth:    report.Totals.NetWorth,
		},
	}
}

// BreakdownResponse represents a category breakdown in API responses.
type BreakdownResponse struct {
	Labels  []string          `json:"labels"`
	Amounts []decimal.Decimal `json:"amounts"`
}

// BreakdownFromDomain converts a category breakdown to a response.
func BreakdownFromDomain(b domain.CategoryBreakdown) BreakdownResponse {
	return BreakdownResponse{Labels: b.Labels, Amounts: b.Amounts}
}

// MonthAmountsResponse carries one amount per calendar month.
type MonthAmountsResponse struct {
	Months  []string          `json:"months"`
	Amounts []decimal.Decimal `json:"amounts"`
}

// MonthAmountsFromDomain converts the 12-slot month vector to a response.
func MonthAmountsFromDomain(amounts []decimal.Decimal) MonthAmountsResponse {
	return MonthAmountsResponse{
		Months:  domain.MonthShortNames[:],
		Amounts: amounts,
	}
}

// PeriodRowResponse is one row of a period table.
type PeriodRowResponse struct {
	Label   string            `json:"label"`
	Amounts []decimal.Decimal `json:"amounts"`
}

// PeriodTableResponse represents a period table in API responses.
type PeriodTableResponse struct {
	Columns []string            `json:"columns"`
	Rows    []PeriodRowResponse `json:"rows"`
}

// PeriodTableFromDomain converts a period table to a response.
func PeriodTableFromDomain(table domain.PeriodTable) PeriodTableResponse {
	rows := make([]PeriodRowResponse, len(table.Rows))
	for i, row := range table.Rows {
		rows[i] = PeriodRowResponse{Label: row.Row, Amounts: row.Data}
	}
	return PeriodTableResponse{Columns: table.Columns, Rows: rows}
}

// HeatmapPointResponse is one cell of the heatmap.
type HeatmapPointResponse struct {
	X string `json:"x"`
	Y int64  `json:"y"`
}

// HeatmapSeriesResponse is one month row of the heatmap.
type HeatmapSeriesResponse struct {
	Name string                 `json:"name"`
	Data []HeatmapPointResponse `json:"data"`
}

// HeatmapFromDomain converts the heatmap series to responses.
func HeatmapFromDomain(series []domain.HeatmapSeries) []HeatmapSeriesResponse {
	result := make([]HeatmapSeriesResponse, len(series))
	for i, s := range series {
		points := make([]HeatmapPointResponse, len(s.Points))
		for j, p := range s.Points {
			points[j] = HeatmapPointResponse{X: p.X, Y: p.Y}
		}
		result[i] = HeatmapSeriesResponse{Name: s.Name, Data: points}
	}
	return result
}

// MilestoneResponse represents a net-worth milestone in API responses.
type MilestoneResponse struct {
	Amount        decimal.Decimal `json:"amount"`
	Achieved      bool            `json:"achieved"`
	AchievedDate  *string         `json:"achieved_date,omitempty"`
	DaysToAchieve *int            `json:"days_to_achieve,omitempty"`
}

// MilestonesFromDomain converts milestones to responses.
func MilestonesFromDomain(milestones []domain.Milestone) []MilestoneResponse {
	result := make([]MilestoneResponse, len(milestones))
	for i, m := range milestones {
		resp := MilestoneResponse{
			Amount:        m.Amount,
			Achieved:      m.Achieved,
			DaysToAchieve: m.DaysToAchieve,
		}
		if m.AchievedDate != nil {
			date := domain.ShortDate(*m.AchievedDate)
			resp.AchievedDate = &date
		}
		result[i] = resp
	}
	return result
}

// ForecastResponse represents a forecast series in API responses.
type ForecastResponse struct {
	Labels []string  `json:"labels,omitempty"`
	Data   []float64 `json:"data"`
}

// ForecastFromDomain converts a forecast series to a response.
func ForecastFromDomain(series domain.ForecastSeries) ForecastResponse {
	return ForecastResponse{Labels: series.Labels, Data: series.Data}
}

// OverviewResponse aggregates every dashboard view in one payload.
type OverviewResponse struct {
	Balances          BalanceReportResponse   `json:"balances"`
	IncomeByCategory  BreakdownResponse       `json:"income_by_category"`
	ExpenseByCategory BreakdownResponse       `json:"expense_by_category"`
	NetChange         PeriodTableResponse     `json:"net_change"`
	IncomeHeatmap     []HeatmapSeriesResponse `json:"income_heatmap"`
	ExpenseHeatmap    []HeatmapSeriesResponse `json:"expense_heatmap"`
	Milestones        []MilestoneResponse     `json:"milestones"`
	SkippedRecords    int                     `json:"skipped_records"`
}
