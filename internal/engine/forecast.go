package engine

import (
	"fmt"
	"time"

	"github.com/iho/findash/internal/domain"
)

// ForecastMethod selects the flat-continuation forecasting heuristic.
type ForecastMethod string

const (
	MethodMovingAverage        ForecastMethod = "moving-average"
	MethodExponentialSmoothing ForecastMethod = "exponential-smoothing"
)

// DefaultLinearForecastMonths is the default linear-regression horizon.
const DefaultLinearForecastMonths = 3 * 12

// ForecastParams carries per-method parameters: Window for moving average,
// Alpha for exponential smoothing.
type ForecastParams struct {
	Window int
	Alpha  float64
}

// MovingAverage computes the window-w moving average of series: one value
// per index i in [0, len-w], averaging series[i..i+w).
func MovingAverage(series []float64, window int) ([]float64, error) {
	if len(series) == 0 {
		return nil, nil
	}
	if window < 1 || window > len(series) {
		return nil, fmt.Errorf("%w: moving-average window %d out of range [1, %d]", domain.ErrInvalidArgument, window, len(series))
	}

	out := make([]float64, 0, len(series)-window+1)
	sum := 0.0
	for i, v := range series {
		sum += v
		if i >= window {
			sum -= series[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out, nil
}

// ExponentialSmoothing smooths series with factor alpha in (0, 1]:
// s[0] = series[0], s[i] = alpha*series[i] + (1-alpha)*s[i-1].
func ExponentialSmoothing(series []float64, alpha float64) ([]float64, error) {
	if len(series) == 0 {
		return nil, nil
	}
	if alpha <= 0 || alpha > 1 {
		return nil, fmt.Errorf("%w: smoothing factor %v outside (0, 1]", domain.ErrInvalidArgument, alpha)
	}

	out := make([]float64, len(series))
	out[0] = series[0]
	for i := 1; i < len(series); i++ {
		out[i] = alpha*series[i] + (1-alpha)*out[i-1]
	}
	return out, nil
}

// Forecast projects horizon values beyond series by repeating the last
// value computed by the chosen method: a flat continuation, not a rolling
// projection. A degenerate horizon is a caller error, never clamped.
func Forecast(series []float64, horizon int, method ForecastMethod, params ForecastParams) ([]float64, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("%w: forecast horizon %d must be positive", domain.ErrInvalidArgument, horizon)
	}
	if len(series) == 0 {
		return nil, nil
	}

	var (
		computed []float64
		err      error
	)
	switch method {
	case MethodMovingAverage:
		computed, err = MovingAverage(series, params.Window)
	case MethodExponentialSmoothing:
		computed, err = ExponentialSmoothing(series, params.Alpha)
	default:
		return nil, fmt.Errorf("%w: unknown forecast method %q", domain.ErrInvalidArgument, method)
	}
	if err != nil {
		return nil, err
	}

	last := computed[len(computed)-1]
	out := make([]float64, horizon)
	for i := range out {
		out[i] = last
	}
	return out, nil
}

// LinearForecast fits an ordinary least-squares regression of value
// against month index over hist and appends months predicted values with
// continued YYYY-MM labels, rolling over at month 12.
//
// Precondition: hist is a monthly series whose index 0 is a leading
// placeholder (empty label); the placeholder is trimmed before the fit,
// which therefore needs at least three total points. See
// MonthlyNetWorthSeries for the producing shape.
func LinearForecast(hist domain.ForecastSeries, months int) (domain.ForecastSeries, error) {
	if months <= 0 {
		return domain.ForecastSeries{}, fmt.Errorf("%w: forecast months %d must be positive", domain.ErrInvalidArgument, months)
	}
	if len(hist.Data) == 0 {
		return domain.ForecastSeries{}, nil
	}
	if len(hist.Data) < 3 {
		return domain.ForecastSeries{}, fmt.Errorf("%w: %w", domain.ErrInvalidArgument, domain.ErrInsufficientData)
	}
	if len(hist.Labels) != len(hist.Data) {
		return domain.ForecastSeries{}, fmt.Errorf("%w: %d labels for %d values", domain.ErrInvalidArgument, len(hist.Labels), len(hist.Data))
	}

	lastLabel := hist.Labels[len(hist.Labels)-1]
	lastMonth, err := time.Parse("2006-01", lastLabel)
	if err != nil {
		return domain.ForecastSeries{}, fmt.Errorf("%w: label %q is not YYYY-MM", domain.ErrInvalidArgument, lastLabel)
	}

	// Index 0 is the placeholder; fit over the real observations only.
	slope, intercept := leastSquares(hist.Data[1:])

	n := len(hist.Data)
	labels := append([]string(nil), hist.Labels...)
	data := append([]float64(nil), hist.Data...)

	year, monthIdx := lastMonth.Year(), domain.MonthIndex(lastMonth)
	for i := 0; i < months; i++ {
		monthIdx++
		if monthIdx == 12 {
			monthIdx = 0
			year++
		}
		labels = append(labels, domain.FormatYearMonth(year, monthIdx))
		data = append(data, intercept+slope*float64(n+i))
	}

	return domain.ForecastSeries{Labels: labels, Data: data}, nil
}

// leastSquares fits y = intercept + slope*x over values, where values[k]
// sits at x = k+1 (the trimmed placeholder occupied x = 0).
func leastSquares(values []float64) (slope, intercept float64) {
	n := float64(len(values))
	var sumX, sumY, sumXY, sumXX float64
	for k, y := range values {
		x := float64(k + 1)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}
