package usecase

import (
	"context"
	"fmt"

	"github.com/iho/findash/internal/domain"
	"github.com/iho/findash/internal/engine"
)

// MethodLinear selects the regression forecast over the monthly net-worth
// series; the other methods are flat continuations of an account's
// running-balance series.
const MethodLinear = "linear"

// ForecastUseCase produces balance projections from the reconstructed
// ledger history.
type ForecastUseCase struct {
	dashboard *DashboardUseCase
}

// NewForecastUseCase creates a new ForecastUseCase.
func NewForecastUseCase(dashboard *DashboardUseCase) *ForecastUseCase {
	return &ForecastUseCase{dashboard: dashboard}
}

// ForecastInput selects the series, method and parameters for a forecast.
type ForecastInput struct {
	// Account selects the running-balance series to project. Empty means
	// the monthly net-worth series.
	Account string

	// Method is engine.MethodMovingAverage, engine.MethodExponentialSmoothing
	// or MethodLinear.
	Method string

	Window  int
	Alpha   float64
	Horizon int
}

// Forecast projects the selected series. Flat-continuation methods return
// only the projected values; the linear method returns the historical
// series with predictions appended.
func (uc *ForecastUseCase) Forecast(ctx context.Context, input ForecastInput) (domain.ForecastSeries, error) {
	snap, err := uc.dashboard.Snapshot(ctx)
	if err != nil {
		return domain.ForecastSeries{}, err
	}

	if input.Method == MethodLinear {
		hist := engine.MonthlyNetWorthSeries(snap.Entries, snap.Loans)
		return engine.LinearForecast(hist, input.Horizon)
	}

	series, err := uc.historicalSeries(snap, input.Account)
	if err != nil {
		return domain.ForecastSeries{}, err
	}

	data, err := engine.Forecast(series.Data, input.Horizon, engine.ForecastMethod(input.Method), engine.ForecastParams{
		Window: input.Window,
		Alpha:  input.Alpha,
	})
	if err != nil {
		return domain.ForecastSeries{}, err
	}
	return domain.ForecastSeries{Data: data}, nil
}

func (uc *ForecastUseCase) historicalSeries(snap LedgerSnapshot, account string) (domain.ForecastSeries, error) {
	if account == "" {
		return engine.MonthlyNetWorthSeries(snap.Entries, snap.Loans), nil
	}

	report := engine.Reconstruct(snap.Entries, snap.Loans)
	series, ok := report.PerAccount[account]
	if !ok {
		return domain.ForecastSeries{}, fmt.Errorf("%w: account %q has no ledger history", domain.ErrAccountNotFound, account)
	}
	return engine.BalanceSeries(series), nil
}
