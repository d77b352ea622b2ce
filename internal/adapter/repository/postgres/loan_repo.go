package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/iho/findash/internal/engine"
	"github.com/iho/findash/internal/infrastructure/metrics"
)

// LoanRepository implements usecase.LoanRepository over PostgreSQL.
type LoanRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewLoanRepository creates a new LoanRepository.
func NewLoanRepository(pool *pgxpool.Pool, logger zerolog.Logger) *LoanRepository {
	return &LoanRepository{
		pool:    pool,
		retrier: NewRetrier(logger),
	}
}

const listLoanEventsQuery = `
SELECT id, occurred_on, event_type, amount::text
FROM loan_events
ORDER BY occurred_on, id
`

// ListEvents fetches every loan event in chronological order.
func (r *LoanRepository) ListEvents(ctx context.Context) ([]engine.RawRecord, error) {
	metrics.LedgerFetches.WithLabelValues("loan_events").Inc()

	var records []engine.RawRecord

	err := r.retrier.Retry(ctx, func() error {
		rows, err := r.pool.Query(ctx, listLoanEventsQuery)
		if err != nil {
			return err
		}
		defer rows.Close()

		records = records[:0]
		for rows.Next() {
			var (
				id         int64
				occurredOn time.Time
				eventType  string
				amount     string
			)
			if err := rows.Scan(&id, &occurredOn, &eventType, &amount); err != nil {
				return err
			}
			records = append(records, engine.RawRecord{
				engine.FieldID:     id,
				engine.FieldDate:   occurredOn,
				engine.FieldType:   eventType,
				engine.FieldAmount: amount,
			})
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
