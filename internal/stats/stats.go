package stats

import (
	"sort"
	"time"

	"github.com/MrJamesThe3rd/moneywise/internal/finance"
)

// Period represents a predefined reporting window ending at the
// evaluation moment.
type Period int

const (
	PeriodToday Period = iota
	PeriodWeek
	PeriodMonth
	PeriodYear
)

func (p Period) String() string {
	switch p {
	case PeriodToday:
		return "Today"
	case PeriodWeek:
		return "Week"
	case PeriodMonth:
		return "Month"
	case PeriodYear:
		return "Year"
	}

	return "Unknown"
}

// Range returns the inclusive start and end instants for the period,
// evaluated at now. The end is always the last second of the current
// day.
func (p Period) Range(now time.Time) (time.Time, time.Time) {
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	var start time.Time

	switch p {
	case PeriodToday:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case PeriodWeek:
		start = now.AddDate(0, 0, -7)
	case PeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case PeriodYear:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	default:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}

	return start, end
}

// Summary holds the income/expense totals and their difference for a
// date window.
type Summary struct {
	Income  float64
	Expense float64
	Balance float64
}

// Summarize totals the transactions dated within [start, end].
func Summarize(txs []finance.Transaction, start, end time.Time) Summary {
	var s Summary

	for _, tx := range txs {
		if !inRange(tx.Date, start, end) {
			continue
		}

		switch tx.Type {
		case finance.TypeIncome:
			s.Income += tx.Amount
		case finance.TypeExpense:
			s.Expense += tx.Amount
		}
	}

	s.Balance = s.Income - s.Expense

	return s
}

// unknownColor is the neutral gray used for dangling category
// references.
const unknownColor = "#64748b"

// maxBreakdownEntries caps the breakdown at the largest spending
// groups.
const maxBreakdownEntries = 6

// BreakdownEntry is one slice of the expense breakdown.
type BreakdownEntry struct {
	CategoryID string
	Name       string
	Color      string
	Total      float64
	// Percentage is relative to the total of the returned (truncated)
	// set, not the full unfiltered expense total.
	Percentage float64
}

// ExpenseBreakdown groups expense transactions in [start, end] by
// category, resolves display name and color (falling back to
// "Unknown"/gray for dangling references), sorts descending by total
// and keeps the top entries.
func ExpenseBreakdown(txs []finance.Transaction, categories []finance.Category, start, end time.Time) []BreakdownEntry {
	totals := make(map[string]float64)

	for _, tx := range txs {
		if tx.Type != finance.TypeExpense || !inRange(tx.Date, start, end) {
			continue
		}

		totals[tx.CategoryID] += tx.Amount
	}

	if len(totals) == 0 {
		return nil
	}

	byID := make(map[string]finance.Category, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}

	entries := make([]BreakdownEntry, 0, len(totals))

	for id, total := range totals {
		entry := BreakdownEntry{
			CategoryID: id,
			Name:       finance.UnknownCategoryName,
			Color:      unknownColor,
			Total:      total,
		}

		if cat, ok := byID[id]; ok {
			entry.Name = cat.Name
			entry.Color = cat.Color
		}

		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}

		return entries[i].Name < entries[j].Name
	})

	if len(entries) > maxBreakdownEntries {
		entries = entries[:maxBreakdownEntries]
	}

	var shown float64
	for _, e := range entries {
		shown += e.Total
	}

	// All-zero amounts leave nothing to apportion; percentages stay 0.
	if shown > 0 {
		for i := range entries {
			entries[i].Percentage = entries[i].Total / shown * 100
		}
	}

	return entries
}

// inRange reports whether t falls within [start, end], inclusive on
// both bounds.
func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
