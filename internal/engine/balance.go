package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/iho/findash/internal/domain"
)

const (
	// displaySeriesLimit caps each displayed account series at the most
	// recent observations. Balances are still computed over full history.
	displaySeriesLimit = 40

	// displayLabelTarget is the approximate number of non-empty labels
	// kept per rendered series.
	displayLabelTarget = 7
)

// Reconstruct replays the ledger chronologically and returns per-account
// running-balance series plus ledger-wide totals. Loan events participate
// in the liabilities total only; they do not create account series.
func Reconstruct(entries []domain.LedgerEntry, loans []domain.LoanEvent) domain.BalanceReport {
	ordered := sortChronological(entries)

	balances := make(map[string][]decimal.Decimal)
	labels := make(map[string][]string)

	for _, e := range ordered {
		for _, eff := range entryEffects(e) {
			prev := decimal.Zero
			if series := balances[eff.account]; len(series) > 0 {
				prev = series[len(series)-1]
			}
			balances[eff.account] = append(balances[eff.account], prev.Add(eff.delta))
			labels[eff.account] = append(labels[eff.account], domain.ShortDate(e.Date))
		}
	}

	perAccount := make(map[string]domain.AccountSeries, len(balances))
	for name, series := range balances {
		series, seriesLabels := truncateSeries(series, labels[name])
		perAccount[name] = domain.AccountSeries{
			Name:     name,
			Balances: series,
			Labels:   thinLabels(seriesLabels),
		}
	}

	return domain.BalanceReport{
		PerAccount: perAccount,
		Totals:     totals(entries, loans),
	}
}

// FinalBalances extracts each account's last reconstructed balance,
// sorted by account name for stable presentation.
func FinalBalances(report domain.BalanceReport) []domain.AccountBalance {
	out := make([]domain.AccountBalance, 0, len(report.PerAccount))
	for name, series := range report.PerAccount {
		balance := decimal.Zero
		if len(series.Balances) > 0 {
			balance = series.Balances[len(series.Balances)-1]
		}
		out = append(out, domain.AccountBalance{Name: name, Balance: balance})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// BalanceSeries converts an account's reconstructed series into the
// float-valued historical series consumed by the forecaster.
func BalanceSeries(series domain.AccountSeries) domain.ForecastSeries {
	data := make([]float64, len(series.Balances))
	for i, b := range series.Balances {
		data[i] = b.InexactFloat64()
	}
	return domain.ForecastSeries{
		Labels: append([]string(nil), series.Labels...),
		Data:   data,
	}
}

// MonthlyNetWorthSeries rolls the ledger (loan events merged in as
// synthetic expenses) into a cumulative month-end net-worth series labeled
// YYYY-MM, covering every month from the earliest entry to the latest.
// Index 0 is a leading placeholder with an empty label, the shape
// LinearForecast expects.
func MonthlyNetWorthSeries(entries []domain.LedgerEntry, loans []domain.LoanEvent) domain.ForecastSeries {
	merged := append([]domain.LedgerEntry(nil), entries...)
	for _, ev := range loans {
		merged = append(merged, ev.LedgerEntry())
	}
	if len(merged) == 0 {
		return domain.ForecastSeries{}
	}

	firstKey, lastKey := domain.YearMonthKey(merged[0].Date), domain.YearMonthKey(merged[0].Date)
	monthly := make(map[int]decimal.Decimal)
	for _, e := range merged {
		key := domain.YearMonthKey(e.Date)
		if key < firstKey {
			firstKey = key
		}
		if key > lastKey {
			lastKey = key
		}
		switch e.Type {
		case domain.TypeIncome:
			monthly[key] = monthly[key].Add(e.Amount)
		case domain.TypeExpense:
			monthly[key] = monthly[key].Sub(e.Amount)
		}
	}

	series := domain.ForecastSeries{
		Labels: make([]string, 0, lastKey-firstKey+2),
		Data:   make([]float64, 0, lastKey-firstKey+2),
	}
	series.Labels = append(series.Labels, "")
	series.Data = append(series.Data, 0)

	running := decimal.Zero
	for key := firstKey; key <= lastKey; key++ {
		running = running.Add(monthly[key])
		series.Labels = append(series.Labels, domain.FormatYearMonth(key/12, key%12))
		series.Data = append(series.Data, running.InexactFloat64())
	}

	return series
}

type ledgerEffect struct {
	account string
	delta   decimal.Decimal
}

// entryEffects expands an entry into its balance effects. A Transfer-Out
// entry yields two effects: the Category field names the destination
// account.
func entryEffects(e domain.LedgerEntry) []ledgerEffect {
	switch e.Type {
	case domain.TypeIncome:
		return []ledgerEffect{{account: e.Account, delta: e.Amount}}
	case domain.TypeExpense:
		return []ledgerEffect{{account: e.Account, delta: e.Amount.Neg()}}
	case domain.TypeTransferOut:
		return []ledgerEffect{
			{account: e.Account, delta: e.Amount.Neg()},
			{account: e.Category, delta: e.Amount},
		}
	default:
		return nil
	}
}

// sortChronological returns a date-ordered copy of the ledger. The sort is
// stable: same-day entries keep their original relative order.
func sortChronological(entries []domain.LedgerEntry) []domain.LedgerEntry {
	ordered := append([]domain.LedgerEntry(nil), entries...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})
	return ordered
}

func totals(entries []domain.LedgerEntry, loans []domain.LoanEvent) domain.Totals {
	assets := decimal.Zero
	for _, e := range entries {
		switch e.Type {
		case domain.TypeIncome:
			assets = assets.Add(e.Amount)
		case domain.TypeExpense:
			assets = assets.Sub(e.Amount)
		}
	}

	liabilities := decimal.Zero
	for _, ev := range loans {
		liabilities = liabilities.Add(ev.Amount)
	}

	return domain.Totals{
		Assets:      assets,
		Liabilities: liabilities,
		NetWorth:    assets.Sub(liabilities),
	}
}

func truncateSeries(balances []decimal.Decimal, labels []string) ([]decimal.Decimal, []string) {
	if len(balances) <= displaySeriesLimit {
		return balances, labels
	}
	start := len(balances) - displaySeriesLimit
	return balances[start:], labels[start:]
}

// thinLabels keeps roughly displayLabelTarget evenly spaced labels and
// blanks the rest, so dense series stay legible on chart axes.
func thinLabels(labels []string) []string {
	if len(labels) <= displayLabelTarget {
		return labels
	}
	step := (len(labels) + displayLabelTarget - 1) / displayLabelTarget
	thinned := make([]string, len(labels))
	for i, l := range labels {
		if i%step == 0 {
			thinned[i] = l
		}
	}
	return thinned
}
