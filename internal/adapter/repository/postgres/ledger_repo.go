package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/iho/findash/internal/engine"
	"github.com/iho/findash/internal/infrastructure/metrics"
)

// LedgerRepository implements usecase.LedgerRepository over PostgreSQL.
//
// Rows come back as raw records for the normalizer: the database is just
// one more untrusted source, so parsing and validation stay in one place.
type LedgerRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool, logger zerolog.Logger) *LedgerRepository {
	return &LedgerRepository{
		pool:    pool,
		retrier: NewRetrier(logger),
	}
}

const listTransactionsQuery = `
SELECT id, occurred_on, entry_type, category, amount::text, description, account
FROM transactions
ORDER BY occurred_on, id
`

// ListEntries fetches every ledger transaction in chronological order.
func (r *LedgerRepository) ListEntries(ctx context.Context) ([]engine.RawRecord, error) {
	metrics.LedgerFetches.WithLabelValues("transactions").Inc()

	var records []engine.RawRecord

	err := r.retrier.Retry(ctx, func() error {
		rows, err := r.pool.Query(ctx, listTransactionsQuery)
		if err != nil {
			return err
		}
		defer rows.Close()

		records, err = scanTransactionRows(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func scanTransactionRows(rows pgx.Rows) ([]engine.RawRecord, error) {
	var records []engine.RawRecord
	for rows.Next() {
		var (
			id          int64
			occurredOn  time.Time
			entryType   string
			category    string
			amount      string
			description string
			account     string
		)
		if err := rows.Scan(&id, &occurredOn, &entryType, &category, &amount, &description, &account); err != nil {
			return nil, err
		}
		records = append(records, engine.RawRecord{
			engine.FieldID:          id,
			engine.FieldDate:        occurredOn,
			engine.FieldType:        entryType,
			engine.FieldCategory:    category,
			engine.FieldAmount:      amount,
			engine.FieldDescription: description,
			engine.FieldAccount:     account,
		})
	}
	return records, rows.Err()
}
