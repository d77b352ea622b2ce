package handler

import (
	"context"
	"net/http"

	"github.com/iho/findash/internal/adapter/http/dto"
	"github.com/iho/findash/internal/domain"
	"github.com/iho/findash/internal/engine"
	"github.com/iho/findash/internal/usecase"
)

// ForecastService defines the behavior needed by ForecastHandler.
type ForecastService interface {
	Forecast(ctx context.Context, input usecase.ForecastInput) (domain.ForecastSeries, error)
}

// ForecastHandler handles balance projection requests.
type ForecastHandler struct {
	forecastUC ForecastService

	defaultWindow  int
	defaultAlpha   float64
	defaultHorizon int
}

// NewForecastHandler creates a new ForecastHandler.
func NewForecastHandler(forecastUC ForecastService) *ForecastHandler {
	return &ForecastHandler{
		forecastUC:     forecastUC,
		defaultWindow:  3,
		defaultAlpha:   0.5,
		defaultHorizon: usecase.DefaultForecastHorizon,
	}
}

// Forecast projects the selected balance series.
func (h *ForecastHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Query().Get("method")
	if method == "" {
		method = string(engine.MethodMovingAverage)
	}
	horizon := parseIntQuery(r, "horizon", h.defaultHorizon)
	if method == usecase.MethodLinear && r.URL.Query().Get("horizon") == "" {
		horizon = engine.DefaultLinearForecastMonths
	}

	series, err := h.forecastUC.Forecast(r.Context(), usecase.ForecastInput{
		Account: r.URL.Query().Get("account"),
		Method:  method,
		Window:  parseIntQuery(r, "window", h.defaultWindow),
		Alpha:   parseFloatQuery(r, "alpha", h.defaultAlpha),
		Horizon: horizon,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build forecast", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ForecastFromDomain(series))
}
