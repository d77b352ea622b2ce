package engine

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/findash/internal/domain"
)

// Heatmap buckets amounts of the given type into a dense month-by-year
// grid. It always returns exactly 12 series, December first, each with one
// point per calendar year from the ledger's earliest entry through now's
// year in ascending order. Cells with no matching entries hold zero; no
// (month, year) pair is ever omitted.
func Heatmap(entries []domain.LedgerEntry, typ domain.EntryType, now time.Time) []domain.HeatmapSeries {
	firstYear := earliestYear(entries)
	lastYear := now.Year()
	if firstYear == 0 || firstYear > lastYear {
		firstYear = lastYear
	}

	sums := make(map[int]map[int]decimal.Decimal, 12)
	for _, e := range entries {
		if e.Type != typ {
			continue
		}
		m := domain.MonthIndex(e.Date)
		if sums[m] == nil {
			sums[m] = make(map[int]decimal.Decimal)
		}
		sums[m][e.Date.Year()] = sums[m][e.Date.Year()].Add(e.Amount)
	}

	series := make([]domain.HeatmapSeries, 0, 12)
	for m := 11; m >= 0; m-- {
		points := make([]domain.HeatmapPoint, 0, lastYear-firstYear+1)
		for y := firstYear; y <= lastYear; y++ {
			points = append(points, domain.HeatmapPoint{
				X: strconv.Itoa(y),
				Y: sums[m][y].Round(0).IntPart(),
			})
		}
		series = append(series, domain.HeatmapSeries{
			Name:   domain.MonthShortNames[m],
			Points: points,
		})
	}

	return series
}
