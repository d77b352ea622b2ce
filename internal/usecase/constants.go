package usecase

import "time"

const (
	// DefaultCacheTTL bounds how stale a memoized derived view may get.
	// Every view is recomputed from scratch once its cache entry expires.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultForecastHorizon is the projection length used when a caller
	// does not specify one.
	DefaultForecastHorizon = 12
)
