package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/findash/internal/adapter/http/dto"
	"github.com/iho/findash/internal/domain"
	"github.com/iho/findash/internal/infrastructure/metrics"
	"github.com/iho/findash/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	Balances(ctx context.Context) (domain.BalanceReport, error)
	Breakdown(ctx context.Context, typ domain.EntryType) (domain.CategoryBreakdown, error)
	MonthAmounts(ctx context.Context, typ domain.EntryType, year int) ([]decimal.Decimal, error)
	TableByYear(ctx context.Context, typ domain.EntryType) (domain.PeriodTable, error)
	TableByMonth(ctx context.Context, typ domain.EntryType) (domain.PeriodTable, error)
	NetChange(ctx context.Context, year int) (domain.PeriodTable, error)
	Heatmap(ctx context.Context, typ domain.EntryType) ([]domain.HeatmapSeries, error)
	Milestones(ctx context.Context) ([]domain.Milestone, error)
	BuildOverview(ctx context.Context) (usecase.Overview, error)
}

// ReportHandler handles dashboard report requests.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Balances returns the per-account running balances and totals.
func (h *ReportHandler) Balances(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportUC.Balances(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build balances", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceReportFromDomain(report))
}

// Breakdown returns the per-category roll-up for the requested type.
func (h *ReportHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	typ, ok := parseEntryType(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid type", "type must be Income or Expense")
		return
	}

	breakdown, err := h.reportUC.Breakdown(r.Context(), typ)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build breakdown", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BreakdownFromDomain(breakdown))
}

// Months returns the 12-slot per-month vector for the requested type.
func (h *ReportHandler) Months(w http.ResponseWriter, r *http.Request) {
	typ, ok := parseEntryType(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid type", "type must be Income or Expense")
		return
	}
	year := parseIntQuery(r, "year", 0)

	amounts, err := h.reportUC.MonthAmounts(r.Context(), typ, year)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build month totals", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MonthAmountsFromDomain(amounts))
}

// TableByYear returns the year-by-category table for the requested type.
func (h *ReportHandler) TableByYear(w http.ResponseWriter, r *http.Request) {
	typ, ok := parseEntryType(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid type", "type must be Income or Expense")
		return
	}

	table, err := h.reportUC.TableByYear(r.Context(), typ)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build year table", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PeriodTableFromDomain(table))
}

// TableByMonth returns the month-by-category table for the requested type.
func (h *ReportHandler) TableByMonth(w http.ResponseWriter, r *http.Request) {
	typ, ok := parseEntryType(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid type", "type must be Income or Expense")
		return
	}

	table, err := h.reportUC.TableByMonth(r.Context(), typ)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build month table", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PeriodTableFromDomain(table))
}

// NetChange returns the income/expense/net/end-balance table for a year.
func (h *ReportHandler) NetChange(w http.ResponseWriter, r *http.Request) {
	year := parseIntQuery(r, "year", 0)

	table, err := h.reportUC.NetChange(r.Context(), year)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build net change", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PeriodTableFromDomain(table))
}

// Heatmap returns the month-by-year seasonal heatmap for the requested type.
func (h *ReportHandler) Heatmap(w http.ResponseWriter, r *http.Request) {
	typ, ok := parseEntryType(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid type", "type must be Income or Expense")
		return
	}

	series, err := h.reportUC.Heatmap(r.Context(), typ)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build heatmap", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.HeatmapFromDomain(series))
}

// Milestones returns the configured net-worth milestones.
func (h *ReportHandler) Milestones(w http.ResponseWriter, r *http.Request) {
	milestones, err := h.reportUC.Milestones(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build milestones", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MilestonesFromDomain(milestones))
}

// Overview returns every dashboard view in one payload.
func (h *ReportHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.reportUC.BuildOverview(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build overview", err.Error())
		return
	}

	metrics.SkippedRecords.Set(float64(overview.SkippedRecords))

	writeJSON(w, http.StatusOK, dto.OverviewResponse{
		Balances:          dto.BalanceReportFromDomain(overview.Balances),
		IncomeByCategory:  dto.BreakdownFromDomain(overview.IncomeByCategory),
		ExpenseByCategory: dto.BreakdownFromDomain(overview.ExpenseByCategory),
		NetChange:         dto.PeriodTableFromDomain(overview.NetChange),
		IncomeHeatmap:     dto.HeatmapFromDomain(overview.IncomeHeatmap),
		ExpenseHeatmap:    dto.HeatmapFromDomain(overview.ExpenseHeatmap),
		Milestones:        dto.MilestonesFromDomain(overview.Milestones),
		SkippedRecords:    overview.SkippedRecords,
	})
}
