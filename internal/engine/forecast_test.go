package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/findash/internal/domain"
)

func TestMovingAverage(t *testing.T) {
	tests := []struct {
		name    string
		series  []float64
		window  int
		want    []float64
		wantErr bool
	}{
		{
			name:   "window two",
			series: []float64{1, 2, 3, 4},
			window: 2,
			want:   []float64{1.5, 2.5, 3.5},
		},
		{
			name:   "window equals length",
			series: []float64{2, 4, 6},
			window: 3,
			want:   []float64{4},
		},
		{
			name:   "window one is identity",
			series: []float64{5, 7},
			window: 1,
			want:   []float64{5, 7},
		},
		{
			name:   "empty series",
			series: nil,
			window: 3,
			want:   nil,
		},
		{
			name:    "window larger than series",
			series:  []float64{1, 2},
			window:  3,
			wantErr: true,
		},
		{
			name:    "zero window",
			series:  []float64{1, 2},
			window:  0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MovingAverage(tt.series, tt.window)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExponentialSmoothing(t *testing.T) {
	got, err := ExponentialSmoothing([]float64{10, 20, 30}, 0.5)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{10, 15, 22.5}, got, 1e-9)

	identity, err := ExponentialSmoothing([]float64{10, 20, 30}, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, identity)

	empty, err := ExponentialSmoothing(nil, 0.5)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, alpha := range []float64{0, -0.1, 1.5} {
		_, err := ExponentialSmoothing([]float64{1}, alpha)
		require.ErrorIs(t, err, domain.ErrInvalidArgument, "alpha %v", alpha)
	}
}

func TestForecastFlatContinuation(t *testing.T) {
	series := []float64{1, 2, 3, 4}

	ma, err := Forecast(series, 3, MethodMovingAverage, ForecastParams{Window: 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{3.5, 3.5, 3.5}, ma, "repeats the last moving-average value")

	es, err := Forecast(series, 2, MethodExponentialSmoothing, ForecastParams{Alpha: 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 4}, es)
}

func TestForecastInvalidArguments(t *testing.T) {
	_, err := Forecast([]float64{1, 2}, 0, MethodMovingAverage, ForecastParams{Window: 1})
	require.ErrorIs(t, err, domain.ErrInvalidArgument, "horizon must never be clamped")

	_, err = Forecast([]float64{1, 2}, 1, ForecastMethod("bogus"), ForecastParams{})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	empty, err := Forecast(nil, 5, MethodMovingAverage, ForecastParams{Window: 1})
	require.NoError(t, err)
	assert.Empty(t, empty, "empty history forecasts to nothing")
}

func TestLinearForecast(t *testing.T) {
	hist := domain.ForecastSeries{
		Labels: []string{"", "2024-01", "2024-02", "2024-03"},
		Data:   []float64{0, 10, 20, 30},
	}

	got, err := LinearForecast(hist, 2)
	require.NoError(t, err)

	require.Len(t, got.Labels, 6)
	assert.Equal(t, []string{"", "2024-01", "2024-02", "2024-03", "2024-04", "2024-05"}, got.Labels)
	assert.InDeltaSlice(t, []float64{0, 10, 20, 30, 40, 50}, got.Data, 1e-9)
}

func TestLinearForecastLabelRollover(t *testing.T) {
	hist := domain.ForecastSeries{
		Labels: []string{"", "2023-11", "2023-12"},
		Data:   []float64{0, 5, 10},
	}

	got, err := LinearForecast(hist, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, got.Labels[3:])
}

func TestLinearForecastDefaultHorizon(t *testing.T) {
	hist := domain.ForecastSeries{
		Labels: []string{"", "2024-01", "2024-02"},
		Data:   []float64{0, 100, 110},
	}

	got, err := LinearForecast(hist, DefaultLinearForecastMonths)
	require.NoError(t, err)
	assert.Len(t, got.Data, len(hist.Data)+36)
}

func TestLinearForecastErrors(t *testing.T) {
	hist := domain.ForecastSeries{
		Labels: []string{"", "2024-01", "2024-02"},
		Data:   []float64{0, 1, 2},
	}

	_, err := LinearForecast(hist, 0)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	// After trimming the placeholder a single point remains: not enough.
	short := domain.ForecastSeries{Labels: []string{"", "2024-01"}, Data: []float64{0, 1}}
	_, err = LinearForecast(short, 12)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
	require.ErrorIs(t, err, domain.ErrInsufficientData)

	badLabel := domain.ForecastSeries{Labels: []string{"", "x", "y"}, Data: []float64{0, 1, 2}}
	_, err = LinearForecast(badLabel, 12)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	ragged := domain.ForecastSeries{Labels: []string{"", "2024-01"}, Data: []float64{0, 1, 2}}
	_, err = LinearForecast(ragged, 12)
	require.ErrorIs(t, err, domain.ErrInvalidArgument, "mismatched label and value lengths must not panic")

	empty, err := LinearForecast(domain.ForecastSeries{}, 12)
	require.NoError(t, err)
	assert.Empty(t, empty.Data, "empty history is the no-data affordance, not an error")
}
