package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/findash/internal/domain"
)

// RawRecord is a loosely-typed row as delivered by the fetch layer.
// Values are strings or numbers depending on the import source.
type RawRecord map[string]any

// Raw record field names shared with the fetch layer.
const (
	FieldID          = "ID"
	FieldDate        = "Date"
	FieldType        = "Type"
	FieldCategory    = "Category"
	FieldAmount      = "Amount"
	FieldDescription = "Description"
	FieldAccount     = "Account"
)

// Spreadsheet serial day-numbers count days from 1899-12-30; serial 25569
// is 1970-01-01.
const spreadsheetEpochOffset = 25569

var requiredEntryFields = []string{FieldDate, FieldType, FieldCategory, FieldAmount, FieldAccount}

var requiredLoanFields = []string{FieldDate, FieldType, FieldAmount}

// Normalize validates a raw batch and converts it into canonical ledger
// entries. Validation is all-or-nothing: a record missing any required
// field rejects the whole batch. A record whose Amount does not parse to a
// finite number is excluded from the result and counted in skipped, so
// unparseable amounts never reach a sum.
func Normalize(raw []RawRecord) (entries []domain.LedgerEntry, skipped int, err error) {
	if len(raw) == 0 || isEmptyTemplate(raw) {
		return nil, 0, nil
	}

	entries = make([]domain.LedgerEntry, 0, len(raw))
	for i, rec := range raw {
		if missing, ok := firstMissingField(rec, requiredEntryFields); !ok {
			return nil, 0, fmt.Errorf("%w: record %d: %w %q", domain.ErrValidation, i, domain.ErrMissingField, missing)
		}

		date, derr := parseRawDate(rec[FieldDate])
		if derr != nil {
			return nil, 0, fmt.Errorf("%w: record %d: %v", domain.ErrValidation, i, derr)
		}

		amount, ok := parseRawAmount(rec[FieldAmount])
		if !ok {
			skipped++
			continue
		}

		entries = append(entries, domain.LedgerEntry{
			ID:       parseRawID(rec[FieldID]),
			Account:  stringField(rec, FieldAccount),
			Amount:   amount,
			Category: stringField(rec, FieldCategory),
			Date:     date,
			Note:     stringField(rec, FieldDescription),
			Type:     domain.EntryType(stringField(rec, FieldType)),
		})
	}

	return entries, skipped, nil
}

// NormalizeLoanEvents validates a raw batch of loan events with the same
// all-or-nothing and skipped-amount policies as Normalize.
func NormalizeLoanEvents(raw []RawRecord) (events []domain.LoanEvent, skipped int, err error) {
	if len(raw) == 0 || isEmptyTemplate(raw) {
		return nil, 0, nil
	}

	events = make([]domain.LoanEvent, 0, len(raw))
	for i, rec := range raw {
		if missing, ok := firstMissingField(rec, requiredLoanFields); !ok {
			return nil, 0, fmt.Errorf("%w: loan record %d: %w %q", domain.ErrValidation, i, domain.ErrMissingField, missing)
		}

		date, derr := parseRawDate(rec[FieldDate])
		if derr != nil {
			return nil, 0, fmt.Errorf("%w: loan record %d: %v", domain.ErrValidation, i, derr)
		}

		amount, ok := parseRawAmount(rec[FieldAmount])
		if !ok {
			skipped++
			continue
		}

		events = append(events, domain.LoanEvent{
			ID:     parseRawID(rec[FieldID]),
			Amount: amount,
			Date:   date,
			Kind:   stringField(rec, FieldType),
		})
	}

	return events, skipped, nil
}

// RawRecordFromEntry converts a canonical entry back into the raw shape
// produced by the fetch layer.
func RawRecordFromEntry(e domain.LedgerEntry) RawRecord {
	return RawRecord{
		FieldID:          e.ID,
		FieldDate:        domain.ShortDate(e.Date),
		FieldType:        string(e.Type),
		FieldCategory:    e.Category,
		FieldAmount:      e.Amount.String(),
		FieldDescription: e.Note,
		FieldAccount:     e.Account,
	}
}

// isEmptyTemplate reports whether the batch is the conventional "empty
// template" sentinel emitted by spreadsheet import tooling: exactly one
// record with all five value fields present as empty strings.
func isEmptyTemplate(raw []RawRecord) bool {
	if len(raw) != 1 {
		return false
	}
	for _, field := range []string{FieldDate, FieldDescription, FieldAmount, FieldType, FieldCategory} {
		v, ok := raw[0][field]
		if !ok {
			return false
		}
		s, ok := v.(string)
		if !ok || s != "" {
			return false
		}
	}
	return true
}

func firstMissingField(rec RawRecord, required []string) (string, bool) {
	for _, field := range required {
		v, ok := rec[field]
		if !ok || v == nil {
			return field, false
		}
		if s, isStr := v.(string); isStr && s == "" {
			return field, false
		}
	}
	return "", true
}

func stringField(rec RawRecord, key string) string {
	if s, ok := rec[key].(string); ok {
		return s
	}
	return ""
}

// parseRawDate accepts YYYY-MM-DD strings, RFC 3339 strings, and
// spreadsheet serial day-numbers. Results are truncated to day precision.
func parseRawDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case string:
		if t, err := time.Parse("2006-01-02", d); err == nil {
			return t, nil
		}
		t, err := time.Parse(time.RFC3339, d)
		if err != nil {
			return time.Time{}, fmt.Errorf("unparseable date %q", d)
		}
		return t.UTC().Truncate(24 * time.Hour), nil
	case time.Time:
		return d.UTC().Truncate(24 * time.Hour), nil
	case float64:
		return serialDate(int(d)), nil
	case int:
		return serialDate(d), nil
	case int64:
		return serialDate(int(d)), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported date value %v", v)
	}
}

func serialDate(serial int) time.Time {
	return time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, serial-spreadsheetEpochOffset)
}

// parseRawAmount parses a monetary magnitude. It returns ok=false for
// values that do not parse to a finite number.
func parseRawAmount(v any) (decimal.Decimal, bool) {
	switch a := v.(type) {
	case string:
		d, err := decimal.NewFromString(a)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case float64:
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(a), true
	case int:
		return decimal.NewFromInt(int64(a)), true
	case int64:
		return decimal.NewFromInt(a), true
	case decimal.Decimal:
		return a, true
	default:
		return decimal.Zero, false
	}
}

func parseRawID(v any) int64 {
	switch id := v.(type) {
	case int64:
		return id
	case int:
		return int64(id)
	case float64:
		return int64(id)
	default:
		return 0
	}
}
