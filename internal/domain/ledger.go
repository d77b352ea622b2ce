package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies a ledger entry. Amounts are stored as non-negative
// magnitudes; the sign of an entry's effect is implied by its type.
type EntryType string

const (
	TypeIncome      EntryType = "Income"
	TypeExpense     EntryType = "Expense"
	TypeTransferOut EntryType = "Transfer-Out"
)

// LedgerEntry is a canonical, validated financial event.
//
// For TypeTransferOut entries, Account is the source account and Category
// holds the destination account name. Transfers are the only entry type
// where Category denotes an account rather than a spending category.
type LedgerEntry struct {
	ID       int64
	Account  string
	Amount   decimal.Decimal
	Category string
	Date     time.Time
	Note     string
	Type     EntryType
}

// LoanEvent is a principal change on an outstanding loan.
type LoanEvent struct {
	ID     int64
	Amount decimal.Decimal
	Date   time.Time
	Kind   string
}

// LedgerEntry converts a loan event into a synthetic expense entry so loan
// principal changes flow through the same replay logic as ordinary expenses.
func (e LoanEvent) LedgerEntry() LedgerEntry {
	return LedgerEntry{
		ID:       e.ID,
		Account:  "Loan",
		Amount:   e.Amount,
		Category: "Loan",
		Date:     e.Date,
		Type:     TypeExpense,
	}
}
