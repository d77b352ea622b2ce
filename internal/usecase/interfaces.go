package usecase

import (
	"context"
	"time"

	"github.com/iho/findash/internal/engine"
)

// LedgerRepository fetches raw transaction records for normalization.
type LedgerRepository interface {
	ListEntries(ctx context.Context) ([]engine.RawRecord, error)
}

// LoanRepository fetches raw loan-event records for normalization.
type LoanRepository interface {
	ListEvents(ctx context.Context) ([]engine.RawRecord, error)
}

// Cache defines caching operations for derived views.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
