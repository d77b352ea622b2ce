package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/findash/internal/domain"
)

func TestReconstructSingleIncome(t *testing.T) {
	ledger := []domain.LedgerEntry{
		entry(t, "Checking", "1000", "Salary", date(2024, time.January, 5), domain.TypeIncome),
	}

	report := Reconstruct(ledger, nil)

	series, ok := report.PerAccount["Checking"]
	if !ok {
		t.Fatal("missing Checking series")
	}
	if len(series.Balances) != 1 || !series.Balances[0].Equal(dec(t, "1000")) {
		t.Errorf("Checking balance = %v, want [1000]", series.Balances)
	}
	if !report.Totals.Assets.Equal(dec(t, "1000")) {
		t.Errorf("assets = %s, want 1000", report.Totals.Assets)
	}
	if !report.Totals.NetWorth.Equal(dec(t, "1000")) {
		t.Errorf("net worth = %s, want 1000", report.Totals.NetWorth)
	}
}

func TestReconstructTransferZeroSum(t *testing.T) {
	ledger := []domain.LedgerEntry{
		entry(t, "Checking", "200", "Savings", date(2024, time.January, 10), domain.TypeTransferOut),
		entry(t, "Savings", "75", "Checking", date(2024, time.February, 1), domain.TypeTransferOut),
	}

	report := Reconstruct(ledger, nil)

	checking := report.PerAccount["Checking"]
	savings := report.PerAccount["Savings"]
	finalChecking := checking.Balances[len(checking.Balances)-1]
	finalSavings := savings.Balances[len(savings.Balances)-1]

	if !finalChecking.Equal(dec(t, "-125")) {
		t.Errorf("Checking = %s, want -125", finalChecking)
	}
	if !finalSavings.Equal(dec(t, "125")) {
		t.Errorf("Savings = %s, want 125", finalSavings)
	}
	if !finalChecking.Add(finalSavings).IsZero() {
		t.Error("transfer-only ledger must be zero-sum across both accounts")
	}
}

func TestReconstructBalanceConservation(t *testing.T) {
	var ledger []domain.LedgerEntry
	expected := decimal.Zero
	for i := 0; i < 25; i++ {
		amount := decimal.NewFromInt(int64(10 + i*3))
		typ := domain.TypeIncome
		if i%3 == 0 {
			typ = domain.TypeExpense
			expected = expected.Sub(amount)
		} else {
			expected = expected.Add(amount)
		}
		ledger = append(ledger, domain.LedgerEntry{
			Account:  "Checking",
			Amount:   amount,
			Category: "Misc",
			Date:     date(2023, time.January, 1).AddDate(0, 0, i),
			Type:     typ,
		})
	}

	report := Reconstruct(ledger, nil)
	if !report.Totals.Assets.Equal(expected) {
		t.Errorf("assets = %s, want %s", report.Totals.Assets, expected)
	}
}

func TestReconstructChronologicalReplay(t *testing.T) {
	// Entries arrive out of order; replay must still apply them by date.
	ledger := []domain.LedgerEntry{
		entry(t, "Checking", "50", "Groceries", date(2024, time.March, 1), domain.TypeExpense),
		entry(t, "Checking", "1000", "Salary", date(2024, time.January, 5), domain.TypeIncome),
	}

	report := Reconstruct(ledger, nil)
	series := report.PerAccount["Checking"]

	want := []string{"1000", "950"}
	for i, w := range want {
		if !series.Balances[i].Equal(dec(t, w)) {
			t.Errorf("balance[%d] = %s, want %s", i, series.Balances[i], w)
		}
	}
	if series.Labels[0] != "2024-01-05" {
		t.Errorf("label[0] = %q, want 2024-01-05", series.Labels[0])
	}
}

func TestReconstructDisplayTruncation(t *testing.T) {
	var ledger []domain.LedgerEntry
	for i := 0; i < 100; i++ {
		ledger = append(ledger, entry(t, "Checking", "1", "Misc",
			date(2020, time.January, 1).AddDate(0, 0, i), domain.TypeIncome))
	}

	report := Reconstruct(ledger, nil)
	series := report.PerAccount["Checking"]

	if len(series.Balances) != displaySeriesLimit {
		t.Fatalf("series length = %d, want %d", len(series.Balances), displaySeriesLimit)
	}
	if len(series.Labels) != displaySeriesLimit {
		t.Fatalf("labels length = %d, want %d", len(series.Labels), displaySeriesLimit)
	}

	// The running balance is computed over full history before truncation.
	final := series.Balances[len(series.Balances)-1]
	if !final.Equal(dec(t, "100")) {
		t.Errorf("final balance = %s, want 100", final)
	}

	nonEmpty := 0
	for _, l := range series.Labels {
		if l != "" {
			nonEmpty++
		}
	}
	if nonEmpty > displayLabelTarget {
		t.Errorf("thinned labels keep %d non-empty entries, want at most %d", nonEmpty, displayLabelTarget)
	}
}

func TestReconstructLoanLiabilities(t *testing.T) {
	ledger := []domain.LedgerEntry{
		entry(t, "Checking", "5000", "Salary", date(2024, time.January, 5), domain.TypeIncome),
	}
	loans := []domain.LoanEvent{
		{ID: 1, Amount: dec(t, "1200"), Date: date(2024, time.February, 1), Kind: "Disbursement"},
		{ID: 2, Amount: dec(t, "300"), Date: date(2024, time.March, 1), Kind: "Accrual"},
	}

	report := Reconstruct(ledger, loans)

	if !report.Totals.Liabilities.Equal(dec(t, "1500")) {
		t.Errorf("liabilities = %s, want 1500", report.Totals.Liabilities)
	}
	if !report.Totals.NetWorth.Equal(dec(t, "3500")) {
		t.Errorf("net worth = %s, want 3500", report.Totals.NetWorth)
	}
}

func TestFinalBalances(t *testing.T) {
	ledger := []domain.LedgerEntry{
		entry(t, "Savings", "10", "Interest", date(2024, time.January, 1), domain.TypeIncome),
		entry(t, "Checking", "1000", "Salary", date(2024, time.January, 5), domain.TypeIncome),
		entry(t, "Checking", "400", "Rent", date(2024, time.January, 6), domain.TypeExpense),
	}

	balances := FinalBalances(Reconstruct(ledger, nil))

	if len(balances) != 2 {
		t.Fatalf("got %d accounts, want 2", len(balances))
	}
	if balances[0].Name != "Checking" || balances[1].Name != "Savings" {
		t.Errorf("accounts must be sorted by name, got %v", []string{balances[0].Name, balances[1].Name})
	}
	if !balances[0].Balance.Equal(dec(t, "600")) {
		t.Errorf("Checking = %s, want 600", balances[0].Balance)
	}
}

func TestMonthlyNetWorthSeries(t *testing.T) {
	ledger := []domain.LedgerEntry{
		entry(t, "Checking", "1000", "Salary", date(2024, time.January, 5), domain.TypeIncome),
		entry(t, "Checking", "200", "Rent", date(2024, time.March, 1), domain.TypeExpense),
	}
	loans := []domain.LoanEvent{
		{Amount: dec(t, "100"), Date: date(2024, time.February, 10), Kind: "Disbursement"},
	}

	series := MonthlyNetWorthSeries(ledger, loans)

	wantLabels := []string{"", "2024-01", "2024-02", "2024-03"}
	wantData := []float64{0, 1000, 900, 700}
	if len(series.Labels) != len(wantLabels) {
		t.Fatalf("labels = %v, want %v", series.Labels, wantLabels)
	}
	for i := range wantLabels {
		if series.Labels[i] != wantLabels[i] {
			t.Errorf("label[%d] = %q, want %q", i, series.Labels[i], wantLabels[i])
		}
		if series.Data[i] != wantData[i] {
			t.Errorf("data[%d] = %v, want %v", i, series.Data[i], wantData[i])
		}
	}

	empty := MonthlyNetWorthSeries(nil, nil)
	if len(empty.Labels) != 0 || len(empty.Data) != 0 {
		t.Errorf("empty ledger must yield an empty series, got %+v", empty)
	}
}

func TestThinLabels(t *testing.T) {
	labels := make([]string, 20)
	for i := range labels {
		labels[i] = fmt.Sprintf("2024-01-%02d", i+1)
	}

	thinned := thinLabels(labels)
	if len(thinned) != len(labels) {
		t.Fatalf("thinning must preserve length, got %d", len(thinned))
	}
	if thinned[0] == "" {
		t.Error("first label must survive thinning")
	}

	short := []string{"a", "b", "c"}
	for i, l := range thinLabels(short) {
		if l != short[i] {
			t.Error("short series must keep every label")
		}
	}
}
