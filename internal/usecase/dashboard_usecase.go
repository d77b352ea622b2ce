package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/iho/findash/internal/domain"
	"github.com/iho/findash/internal/engine"
)

// DashboardUseCase turns the raw ledger into every derived view the
// dashboard displays. All computation is delegated to the pure engine;
// this type owns fetching, normalization and memoization only.
type DashboardUseCase struct {
	ledgerRepo LedgerRepository
	loanRepo   LoanRepository
	cache      Cache
	thresholds []decimal.Decimal
	cacheTTL   time.Duration
	now        func() time.Time
}

// DashboardOptions configures a DashboardUseCase.
type DashboardOptions struct {
	// MilestoneThresholds are the net-worth milestones to track, in
	// display order.
	MilestoneThresholds []decimal.Decimal

	// CacheTTL bounds derived-view staleness. Zero means DefaultCacheTTL.
	CacheTTL time.Duration

	// Now supplies the reference time for "current year" spans. Nil means
	// time.Now in UTC.
	Now func() time.Time
}

// NewDashboardUseCase creates a new DashboardUseCase. cache may be nil, in
// which case every view is recomputed on every call.
func NewDashboardUseCase(ledgerRepo LedgerRepository, loanRepo LoanRepository, cache Cache, opts DashboardOptions) *DashboardUseCase {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	return &DashboardUseCase{
		ledgerRepo: ledgerRepo,
		loanRepo:   loanRepo,
		cache:      cache,
		thresholds: opts.MilestoneThresholds,
		cacheTTL:   opts.CacheTTL,
		now:        opts.Now,
	}
}

// LedgerSnapshot is one normalized fetch of the full ledger.
type LedgerSnapshot struct {
	Entries []domain.LedgerEntry
	Loans   []domain.LoanEvent

	// SkippedRecords counts raw records excluded because their amount did
	// not parse to a finite number.
	SkippedRecords int
}

// Snapshot fetches and normalizes the ledger and loan events.
func (uc *DashboardUseCase) Snapshot(ctx context.Context) (LedgerSnapshot, error) {
	rawEntries, err := uc.ledgerRepo.ListEntries(ctx)
	if err != nil {
		return LedgerSnapshot{}, err
	}
	entries, skippedEntries, err := engine.Normalize(rawEntries)
	if err != nil {
		return LedgerSnapshot{}, err
	}

	rawLoans, err := uc.loanRepo.ListEvents(ctx)
	if err != nil {
		return LedgerSnapshot{}, err
	}
	loans, skippedLoans, err := engine.NormalizeLoanEvents(rawLoans)
	if err != nil {
		return LedgerSnapshot{}, err
	}

	return LedgerSnapshot{
		Entries:        entries,
		Loans:          loans,
		SkippedRecords: skippedEntries + skippedLoans,
	}, nil
}

// Balances reconstructs the per-account running balances and totals.
func (uc *DashboardUseCase) Balances(ctx context.Context) (domain.BalanceReport, error) {
	var report domain.BalanceReport
	err := uc.cached(ctx, "balances", &report, func() (any, error) {
		snap, err := uc.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return engine.Reconstruct(snap.Entries, snap.Loans), nil
	})
	return report, err
}

// Breakdown groups the ledger by category for the given entry type.
func (uc *DashboardUseCase) Breakdown(ctx context.Context, typ domain.EntryType) (domain.CategoryBreakdown, error) {
	var breakdown domain.CategoryBreakdown
	err := uc.cached(ctx, "breakdown:"+string(typ), &breakdown, func() (any, error) {
		snap, err := uc.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return engine.CategoryBreakdown(snap.Entries, typ), nil
	})
	return breakdown, err
}

// MonthAmounts returns the 12-slot month-of-year vector for a type,
// optionally restricted to one calendar year.
func (uc *DashboardUseCase) MonthAmounts(ctx context.Context, typ domain.EntryType, year int) ([]decimal.Decimal, error) {
	snap, err := uc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return engine.MonthAmounts(snap.Entries, typ, year), nil
}

// TableByYear builds the year-by-category table for a type.
func (uc *DashboardUseCase) TableByYear(ctx context.Context, typ domain.EntryType) (domain.PeriodTable, error) {
	var table domain.PeriodTable
	err := uc.cached(ctx, "table:year:"+string(typ), &table, func() (any, error) {
		snap, err := uc.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return engine.TableByYear(snap.Entries, typ, uc.now()), nil
	})
	return table, err
}

// TableByMonth builds the month-by-category table for a type.
func (uc *DashboardUseCase) TableByMonth(ctx context.Context, typ domain.EntryType) (domain.PeriodTable, error) {
	var table domain.PeriodTable
	err := uc.cached(ctx, "table:month:"+string(typ), &table, func() (any, error) {
		snap, err := uc.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return engine.TableByMonth(snap.Entries, typ), nil
	})
	return table, err
}

// NetChange builds the Income/Expense/NET/End Balance table, optionally
// restricted to one calendar year.
func (uc *DashboardUseCase) NetChange(ctx context.Context, year int) (domain.PeriodTable, error) {
	snap, err := uc.Snapshot(ctx)
	if err != nil {
		return domain.PeriodTable{}, err
	}
	return engine.NetChangeTable(snap.Entries, year), nil
}

// Heatmap builds the month-by-year seasonal grid for a type.
func (uc *DashboardUseCase) Heatmap(ctx context.Context, typ domain.EntryType) ([]domain.HeatmapSeries, error) {
	var series []domain.HeatmapSeries
	err := uc.cached(ctx, "heatmap:"+string(typ), &series, func() (any, error) {
		snap, err := uc.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return engine.Heatmap(snap.Entries, typ, uc.now()), nil
	})
	return series, err
}

// Milestones tracks the configured net-worth thresholds.
func (uc *DashboardUseCase) Milestones(ctx context.Context) ([]domain.Milestone, error) {
	snap, err := uc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return engine.TrackMilestones(snap.Entries, snap.Loans, uc.thresholds), nil
}

// Overview is the full dashboard payload computed from one snapshot.
type Overview struct {
	Balances          domain.BalanceReport
	IncomeByCategory  domain.CategoryBreakdown
	ExpenseByCategory domain.CategoryBreakdown
	NetChange         domain.PeriodTable
	IncomeHeatmap     []domain.HeatmapSeries
	ExpenseHeatmap    []domain.HeatmapSeries
	Milestones        []domain.Milestone
	SkippedRecords    int
}

// BuildOverview computes every dashboard view from a single ledger
// snapshot. The engine is pure and the snapshot is read-only, so the views
// are computed concurrently.
func (uc *DashboardUseCase) BuildOverview(ctx context.Context) (Overview, error) {
	var overview Overview
	err := uc.cached(ctx, "overview", &overview, func() (any, error) {
		snap, err := uc.Snapshot(ctx)
		if err != nil {
			return nil, err
		}

		now := uc.now()
		built := Overview{SkippedRecords: snap.SkippedRecords}

		g, _ := errgroup.WithContext(ctx)
		g.Go(func() error {
			built.Balances = engine.Reconstruct(snap.Entries, snap.Loans)
			return nil
		})
		g.Go(func() error {
			built.IncomeByCategory = engine.CategoryBreakdown(snap.Entries, domain.TypeIncome)
			built.ExpenseByCategory = engine.CategoryBreakdown(snap.Entries, domain.TypeExpense)
			return nil
		})
		g.Go(func() error {
			built.NetChange = engine.NetChangeTable(snap.Entries, now.Year())
			return nil
		})
		g.Go(func() error {
			built.IncomeHeatmap = engine.Heatmap(snap.Entries, domain.TypeIncome, now)
			built.ExpenseHeatmap = engine.Heatmap(snap.Entries, domain.TypeExpense, now)
			return nil
		})
		g.Go(func() error {
			built.Milestones = engine.TrackMilestones(snap.Entries, snap.Loans, uc.thresholds)
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		return built, nil
	})
	return overview, err
}

// cached runs compute through the view cache when one is configured.
// Cache failures degrade to recomputation, never to request failure.
func (uc *DashboardUseCase) cached(ctx context.Context, key string, out any, compute func() (any, error)) error {
	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, key); err == nil {
			if err := json.Unmarshal(data, out); err == nil {
				return nil
			}
		}
	}

	value, err := compute()
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if uc.cache != nil {
		_ = uc.cache.Set(ctx, key, data, uc.cacheTTL)
	}
	return json.Unmarshal(data, out)
}
