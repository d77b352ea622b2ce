package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/findash/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entry(t *testing.T, account, amount, category string, at time.Time, typ domain.EntryType) domain.LedgerEntry {
	t.Helper()
	return domain.LedgerEntry{
		Account:  account,
		Amount:   dec(t, amount),
		Category: category,
		Date:     at,
		Type:     typ,
	}
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}
