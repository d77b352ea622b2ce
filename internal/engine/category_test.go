package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/findash/internal/domain"
)

func TestCategoryBreakdown(t *testing.T) {
	ledger := []domain.LedgerEntry{
		entry(t, "Checking", "750", "Rent", date(2024, time.January, 1), domain.TypeExpense),
		entry(t, "Checking", "250", "Groceries", date(2024, time.January, 8), domain.TypeExpense),
		entry(t, "Checking", "9999", "Salary", date(2024, time.January, 5), domain.TypeIncome),
	}

	breakdown := CategoryBreakdown(ledger, domain.TypeExpense)

	wantLabels := []string{"Groceries (25.00%)", "Rent (75.00%)"}
	if len(breakdown.Labels) != 2 {
		t.Fatalf("labels = %v, want %v", breakdown.Labels, wantLabels)
	}
	for i, want := range wantLabels {
		if breakdown.Labels[i] != want {
			t.Errorf("label[%d] = %q, want %q", i, breakdown.Labels[i], want)
		}
	}
	if !breakdown.Amounts[0].Equal(dec(t, "250")) || !breakdown.Amounts[1].Equal(dec(t, "750")) {
		t.Errorf("amounts = %v", breakdown.Amounts)
	}
}

func TestCategoryBreakdownPercentagesSumToHundred(t *testing.T) {
	ledger := []domain.LedgerEntry{
		entry(t, "Checking", "33.33", "A", date(2024, time.January, 1), domain.TypeIncome),
		entry(t, "Checking", "41.17", "B", date(2024, time.February, 1), domain.TypeIncome),
		entry(t, "Checking", "99.01", "C", date(2024, time.March, 1), domain.TypeIncome),
	}

	breakdown := CategoryBreakdown(ledger, domain.TypeIncome)

	sum := 0.0
	for _, label := range breakdown.Labels {
		open := strings.LastIndex(label, "(")
		pct := strings.TrimSuffix(label[open+1:], "%)")
		d, err := decimal.NewFromString(pct)
		if err != nil {
			t.Fatalf("label %q has no parseable percentage", label)
		}
		sum += d.InexactFloat64()
	}
	if sum < 99.97 || sum > 100.03 {
		t.Errorf("percentages sum to %v, want 100 within tolerance", sum)
	}
}

func TestCategoryBreakdownDropsNegativeCategories(t *testing.T) {
	ledger := []domain.LedgerEntry{
		entry(t, "Checking", "100", "Good", date(2024, time.January, 1), domain.TypeIncome),
		// Sign anomaly: a negative magnitude slipped through an import.
		{Account: "Checking", Amount: dec(t, "-40"), Category: "Bad", Date: date(2024, time.January, 2), Type: domain.TypeIncome},
	}

	breakdown := CategoryBreakdown(ledger, domain.TypeIncome)

	if len(breakdown.Labels) != 1 || !strings.HasPrefix(breakdown.Labels[0], "Good") {
		t.Errorf("negative-sum category must be dropped, got %v", breakdown.Labels)
	}
	if breakdown.Labels[0] != "Good (100.00%)" {
		t.Errorf("surviving category must own the full total, got %q", breakdown.Labels[0])
	}
}

func TestCategoryBreakdownPlaceholder(t *testing.T) {
	breakdown := CategoryBreakdown(nil, domain.TypeIncome)

	if len(breakdown.Labels) != 1 || breakdown.Labels[0] != "No Income" {
		t.Fatalf("empty breakdown must emit the placeholder, got %v", breakdown.Labels)
	}
	if !breakdown.Amounts[0].Equal(decimal.NewFromInt(1)) {
		t.Errorf("placeholder amount = %s, want 1", breakdown.Amounts[0])
	}
}

func TestMonthAmounts(t *testing.T) {
	ledger := []domain.LedgerEntry{
		entry(t, "Checking", "100", "Salary", date(2023, time.March, 1), domain.TypeIncome),
		entry(t, "Checking", "200", "Salary", date(2024, time.March, 15), domain.TypeIncome),
		entry(t, "Checking", "50", "Bonus", date(2024, time.July, 1), domain.TypeIncome),
		entry(t, "Checking", "999", "Rent", date(2024, time.March, 1), domain.TypeExpense),
	}

	all := MonthAmounts(ledger, domain.TypeIncome, 0)
	if len(all) != 12 {
		t.Fatalf("vector length = %d, want 12", len(all))
	}
	if !all[2].Equal(dec(t, "300")) {
		t.Errorf("March across years = %s, want 300", all[2])
	}

	only2024 := MonthAmounts(ledger, domain.TypeIncome, 2024)
	if !only2024[2].Equal(dec(t, "200")) {
		t.Errorf("March 2024 = %s, want 200", only2024[2])
	}
	if !only2024[6].Equal(dec(t, "50")) {
		t.Errorf("July 2024 = %s, want 50", only2024[6])
	}
	if !only2024[0].IsZero() {
		t.Errorf("empty month must stay zero, got %s", only2024[0])
	}
}

func TestTableByYearEmitsEmptyYears(t *testing.T) {
	// Ledger spans only 2023 but the span runs through the current year:
	// the 2024 row must exist with all zeros, not be omitted.
	ledger := []domain.LedgerEntry{
		entry(t, "Checking", "120", "Rent", date(2023, time.May, 1), domain.TypeExpense),
		entry(t, "Checking", "60", "Groceries", date(2023, time.June, 1), domain.TypeExpense),
	}
	now := date(2024, time.August, 15)

	table := TableByYear(ledger, domain.TypeExpense, now)

	wantColumns := []string{"Groceries", "Rent", "Total", "Average"}
	if len(table.Columns) != len(wantColumns) {
		t.Fatalf("columns = %v, want %v", table.Columns, wantColumns)
	}
	for i, want := range wantColumns {
		if table.Columns[i] != want {
			t.Errorf("column[%d] = %q, want %q", i, table.Columns[i], want)
		}
	}

	// 2023, 2024, Total, Average.
	if len(table.Rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(table.Rows))
	}
	if table.Rows[1].Row != "2024" {
		t.Fatalf("row[1] = %q, want 2024", table.Rows[1].Row)
	}
	for i, v := range table.Rows[1].Data {
		if !v.IsZero() {
			t.Errorf("2024 row slot %d = %s, want 0", i, v)
		}
	}

	year2023 := table.Rows[0]
	if !year2023.Data[2].Equal(dec(t, "180")) {
		t.Errorf("2023 Total = %s, want 180", year2023.Data[2])
	}
	if !year2023.Data[3].Equal(dec(t, "90")) {
		t.Errorf("2023 Average = %s, want 90 (total over 2 categories)", year2023.Data[3])
	}

	averageRow := table.Rows[3]
	if averageRow.Row != "Average" {
		t.Fatalf("last row = %q, want Average", averageRow.Row)
	}
	// 180 over a two-year span.
	if !averageRow.Data[2].Equal(dec(t, "90")) {
		t.Errorf("span Average total = %s, want 90", averageRow.Data[2])
	}
}

func TestTableByMonth(t *testing.T) {
	ledger := []domain.LedgerEntry{
		entry(t, "Checking", "100", "Rent", date(2024, time.January, 1), domain.TypeExpense),
		entry(t, "Checking", "100", "Rent", date(2024, time.February, 1), domain.TypeExpense),
		entry(t, "Checking", "60", "Groceries", date(2024, time.February, 10), domain.TypeExpense),
	}

	table := TableByMonth(ledger, domain.TypeExpense)

	// Jan..Dec plus Total and Average.
	if len(table.Rows) != 14 {
		t.Fatalf("rows = %d, want 14", len(table.Rows))
	}
	if table.Rows[0].Row != "Jan" || table.Rows[11].Row != "Dec" {
		t.Errorf("month rows out of order: %q .. %q", table.Rows[0].Row, table.Rows[11].Row)
	}

	feb := table.Rows[1]
	if !feb.Data[0].Equal(dec(t, "60")) || !feb.Data[1].Equal(dec(t, "100")) {
		t.Errorf("Feb data = %v, want [60 100 ...]", feb.Data)
	}
	if !feb.Data[2].Equal(dec(t, "160")) {
		t.Errorf("Feb Total = %s, want 160", feb.Data[2])
	}

	totalRow := table.Rows[12]
	if !totalRow.Data[2].Equal(dec(t, "260")) {
		t.Errorf("grand total = %s, want 260", totalRow.Data[2])
	}
}

func TestTableEmptyLedger(t *testing.T) {
	if table := TableByYear(nil, domain.TypeExpense, date(2024, time.January, 1)); len(table.Rows) != 0 {
		t.Errorf("empty ledger must yield an empty table, got %+v", table)
	}
	if table := TableByMonth(nil, domain.TypeExpense); len(table.Rows) != 0 {
		t.Errorf("empty ledger must yield an empty table, got %+v", table)
	}
}

func TestNetChangeTable(t *testing.T) {
	ledger := []domain.LedgerEntry{
		entry(t, "Checking", "1000", "Salary", date(2024, time.January, 5), domain.TypeIncome),
		entry(t, "Checking", "400", "Rent", date(2024, time.January, 6), domain.TypeExpense),
		entry(t, "Checking", "1000", "Salary", date(2024, time.February, 5), domain.TypeIncome),
		entry(t, "Checking", "700", "Rent", date(2024, time.February, 6), domain.TypeExpense),
	}

	table := NetChangeTable(ledger, 2024)

	wantRows := []string{"Income", "Expense", "NET", "End Balance"}
	if len(table.Rows) != len(wantRows) {
		t.Fatalf("rows = %d, want %d", len(table.Rows), len(wantRows))
	}
	for i, want := range wantRows {
		if table.Rows[i].Row != want {
			t.Errorf("row[%d] = %q, want %q", i, table.Rows[i].Row, want)
		}
		if len(table.Rows[i].Data) != 14 {
			t.Errorf("row %q has %d slots, want 14", want, len(table.Rows[i].Data))
		}
	}

	net := table.Rows[2].Data
	if !net[0].Equal(dec(t, "600")) || !net[1].Equal(dec(t, "300")) {
		t.Errorf("NET Jan/Feb = %s/%s, want 600/300", net[0], net[1])
	}
	// Total of 900 averaged over all 12 months regardless of data density.
	if !net[12].Equal(dec(t, "900")) || !net[13].Equal(dec(t, "75")) {
		t.Errorf("NET Total/Average = %s/%s, want 900/75", net[12], net[13])
	}

	endBalance := table.Rows[3].Data
	if !endBalance[1].Equal(dec(t, "900")) {
		t.Errorf("End Balance Feb = %s, want 900", endBalance[1])
	}
	if !endBalance[11].Equal(dec(t, "900")) {
		t.Errorf("End Balance Dec must carry the cumulative sum, got %s", endBalance[11])
	}
}
