package engine

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/findash/internal/domain"
)

// noDataLabel is a display-safety sentinel: charts never render with zero
// slices, so an empty breakdown yields this single label with amount 1.
// The amount is not a financial value and callers must not treat it as one.
const noDataLabel = "No Income"

var monthsPerYear = decimal.NewFromInt(12)

// CategoryBreakdown sums amounts per category over entries of the given
// type and labels each surviving category with its percentage share.
// Categories whose summed amount is negative are dropped before the
// percentages are computed; this guards against sign anomalies in
// imported data.
func CategoryBreakdown(entries []domain.LedgerEntry, typ domain.EntryType) domain.CategoryBreakdown {
	sums := make(map[string]decimal.Decimal)
	for _, e := range entries {
		if e.Type != typ {
			continue
		}
		sums[e.Category] = sums[e.Category].Add(e.Amount)
	}

	categories := make([]string, 0, len(sums))
	total := decimal.Zero
	for cat, sum := range sums {
		if sum.IsNegative() {
			continue
		}
		categories = append(categories, cat)
		total = total.Add(sum)
	}

	if len(categories) == 0 {
		return domain.CategoryBreakdown{
			Labels:  []string{noDataLabel},
			Amounts: []decimal.Decimal{decimal.NewFromInt(1)},
		}
	}

	sort.Strings(categories)

	breakdown := domain.CategoryBreakdown{
		Labels:  make([]string, 0, len(categories)),
		Amounts: make([]decimal.Decimal, 0, len(categories)),
	}
	hundred := decimal.NewFromInt(100)
	for _, cat := range categories {
		pct := decimal.Zero
		if !total.IsZero() {
			pct = sums[cat].Mul(hundred).Div(total)
		}
		breakdown.Labels = append(breakdown.Labels, fmt.Sprintf("%s (%s%%)", cat, pct.StringFixed(2)))
		breakdown.Amounts = append(breakdown.Amounts, sums[cat])
	}

	return breakdown
}

// MonthAmounts accumulates amounts of the given type into a fixed 12-slot
// Jan..Dec vector. A non-zero year restricts the accumulation to that
// calendar year first.
func MonthAmounts(entries []domain.LedgerEntry, typ domain.EntryType, year int) []decimal.Decimal {
	amounts := make([]decimal.Decimal, 12)
	for _, e := range entries {
		if e.Type != typ {
			continue
		}
		if year != 0 && e.Date.Year() != year {
			continue
		}
		m := domain.MonthIndex(e.Date)
		amounts[m] = amounts[m].Add(e.Amount)
	}
	return amounts
}

// TableByYear builds a year-by-category grid over the ledger's yearly span,
// [earliest entry's year, now's year] inclusive. Years with no entries
// contribute zero rows rather than being omitted. Synthetic Total and
// Average slots follow the category columns, and Total and Average rows
// follow the year rows; Average divides by the distinct-category count per
// year and by the span length per category.
func TableByYear(entries []domain.LedgerEntry, typ domain.EntryType, now time.Time) domain.PeriodTable {
	categories := distinctCategories(entries, typ)
	if len(categories) == 0 {
		return domain.PeriodTable{}
	}

	firstYear := earliestYear(entries)
	lastYear := now.Year()
	if lastYear < firstYear {
		lastYear = firstYear
	}

	sums := make(map[int]map[string]decimal.Decimal)
	for _, e := range entries {
		if e.Type != typ {
			continue
		}
		y := e.Date.Year()
		if sums[y] == nil {
			sums[y] = make(map[string]decimal.Decimal)
		}
		sums[y][e.Category] = sums[y][e.Category].Add(e.Amount)
	}

	rows := make([]domain.PeriodRow, 0, lastYear-firstYear+3)
	for y := firstYear; y <= lastYear; y++ {
		data := make([]decimal.Decimal, 0, len(categories))
		for _, cat := range categories {
			data = append(data, sums[y][cat])
		}
		rows = append(rows, domain.PeriodRow{Row: strconv.Itoa(y), Data: data})
	}

	spanYears := decimal.NewFromInt(int64(lastYear - firstYear + 1))
	return finishPeriodTable(categories, rows, spanYears)
}

// TableByMonth builds a month-of-year-by-category grid aggregated across
// the ledger's full history, with the same Total/Average convention as
// TableByYear; the per-category Average divides by the 12 months.
func TableByMonth(entries []domain.LedgerEntry, typ domain.EntryType) domain.PeriodTable {
	categories := distinctCategories(entries, typ)
	if len(categories) == 0 {
		return domain.PeriodTable{}
	}

	sums := make([]map[string]decimal.Decimal, 12)
	for i := range sums {
		sums[i] = make(map[string]decimal.Decimal)
	}
	for _, e := range entries {
		if e.Type != typ {
			continue
		}
		m := domain.MonthIndex(e.Date)
		sums[m][e.Category] = sums[m][e.Category].Add(e.Amount)
	}

	rows := make([]domain.PeriodRow, 0, 14)
	for m := 0; m < 12; m++ {
		data := make([]decimal.Decimal, 0, len(categories))
		for _, cat := range categories {
			data = append(data, sums[m][cat])
		}
		rows = append(rows, domain.PeriodRow{Row: domain.MonthShortNames[m], Data: data})
	}

	return finishPeriodTable(categories, rows, monthsPerYear)
}

// NetChangeTable reports monthly Income, Expense, NET (income minus
// expense) and End Balance (cumulative NET) rows, each with 14 slots:
// Jan..Dec plus Total and Average, where Average is always the 12-month
// total divided by 12. A non-zero year restricts the input first.
func NetChangeTable(entries []domain.LedgerEntry, year int) domain.PeriodTable {
	income := MonthAmounts(entries, domain.TypeIncome, year)
	expense := MonthAmounts(entries, domain.TypeExpense, year)

	net := make([]decimal.Decimal, 12)
	endBalance := make([]decimal.Decimal, 12)
	running := decimal.Zero
	for m := 0; m < 12; m++ {
		net[m] = income[m].Sub(expense[m])
		running = running.Add(net[m])
		endBalance[m] = running
	}

	columns := append(append([]string(nil), domain.MonthShortNames[:]...), "Total", "Average")
	rows := []domain.PeriodRow{
		{Row: "Income", Data: withTotalAndAverage(income)},
		{Row: "Expense", Data: withTotalAndAverage(expense)},
		{Row: "NET", Data: withTotalAndAverage(net)},
		{Row: "End Balance", Data: withTotalAndAverage(endBalance)},
	}

	return domain.PeriodTable{Columns: columns, Rows: rows}
}

// finishPeriodTable appends the synthetic Total/Average columns to every
// row and the Total/Average rows to the grid. periods is the divisor for
// the per-category Average row.
func finishPeriodTable(categories []string, rows []domain.PeriodRow, periods decimal.Decimal) domain.PeriodTable {
	catCount := decimal.NewFromInt(int64(len(categories)))

	columnTotals := make([]decimal.Decimal, len(categories))
	for i := range rows {
		rowTotal := decimal.Zero
		for c, v := range rows[i].Data {
			rowTotal = rowTotal.Add(v)
			columnTotals[c] = columnTotals[c].Add(v)
		}
		rows[i].Data = append(rows[i].Data, rowTotal, rowTotal.Div(catCount))
	}

	grandTotal := decimal.Zero
	for _, v := range columnTotals {
		grandTotal = grandTotal.Add(v)
	}

	totalRow := append(append([]decimal.Decimal(nil), columnTotals...), grandTotal, grandTotal.Div(catCount))
	averageRow := make([]decimal.Decimal, 0, len(totalRow))
	for _, v := range totalRow {
		averageRow = append(averageRow, v.Div(periods))
	}

	rows = append(rows,
		domain.PeriodRow{Row: "Total", Data: totalRow},
		domain.PeriodRow{Row: "Average", Data: averageRow},
	)

	columns := append(append([]string(nil), categories...), "Total", "Average")
	return domain.PeriodTable{Columns: columns, Rows: rows}
}

func withTotalAndAverage(months []decimal.Decimal) []decimal.Decimal {
	total := decimal.Zero
	for _, v := range months {
		total = total.Add(v)
	}
	return append(append([]decimal.Decimal(nil), months...), total, total.Div(monthsPerYear))
}

func distinctCategories(entries []domain.LedgerEntry, typ domain.EntryType) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, e := range entries {
		if e.Type != typ || seen[e.Category] {
			continue
		}
		seen[e.Category] = true
		categories = append(categories, e.Category)
	}
	sort.Strings(categories)
	return categories
}

func earliestYear(entries []domain.LedgerEntry) int {
	year := 0
	for _, e := range entries {
		if year == 0 || e.Date.Year() < year {
			year = e.Date.Year()
		}
	}
	return year
}
