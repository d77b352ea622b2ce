package engine

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/findash/internal/domain"
)

// TrackMilestones replays the ledger chronologically (loan events merged
// in as synthetic expenses) and detects the first crossing of each
// net-worth threshold. Results come back in the same order as thresholds,
// freshly constructed per call; the thresholds slice is never mutated.
//
// Achievement is monotonic: once crossed, a milestone stays achieved even
// if net worth later drops below the threshold. Every threshold crossed by
// a single entry shares that entry's date and measures DaysToAchieve from
// the achievement date preceding the entry (or the ledger's first entry
// date, for the first achievement).
func TrackMilestones(entries []domain.LedgerEntry, loans []domain.LoanEvent, thresholds []decimal.Decimal) []domain.Milestone {
	milestones := make([]domain.Milestone, len(thresholds))
	for i, amount := range thresholds {
		milestones[i] = domain.Milestone{Amount: amount}
	}

	merged := append([]domain.LedgerEntry(nil), entries...)
	for _, ev := range loans {
		merged = append(merged, ev.LedgerEntry())
	}
	if len(merged) == 0 || len(thresholds) == 0 {
		return milestones
	}
	ordered := sortChronological(merged)

	// Evaluate thresholds in ascending amount order per entry so a single
	// entry crossing several of them resolves each against the true
	// previous-achievement date.
	byAmount := make([]int, len(thresholds))
	for i := range byAmount {
		byAmount[i] = i
	}
	sort.SliceStable(byAmount, func(a, b int) bool {
		return thresholds[byAmount[a]].LessThan(thresholds[byAmount[b]])
	})

	prevAchieved := ordered[0].Date
	netWorth := decimal.Zero

	for _, e := range ordered {
		switch e.Type {
		case domain.TypeIncome:
			netWorth = netWorth.Add(e.Amount)
		case domain.TypeExpense:
			netWorth = netWorth.Sub(e.Amount)
		default:
			continue
		}

		crossed := false
		for _, idx := range byAmount {
			if milestones[idx].Achieved || netWorth.LessThan(thresholds[idx]) {
				continue
			}
			achievedDate := e.Date
			days := wholeDays(prevAchieved, achievedDate)
			milestones[idx].Achieved = true
			milestones[idx].AchievedDate = &achievedDate
			milestones[idx].DaysToAchieve = &days
			crossed = true
		}
		if crossed {
			prevAchieved = e.Date
		}
	}

	return milestones
}

func wholeDays(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
