package stats_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/moneywise/internal/finance"
	"github.com/MrJamesThe3rd/moneywise/internal/stats"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestSummarize_JanuaryScenario(t *testing.T) {
	txs := []finance.Transaction{
		{Amount: 1000, Type: finance.TypeIncome, Date: date(2024, 1, 5)},
		{Amount: 300, Type: finance.TypeExpense, CategoryID: "6", Date: date(2024, 1, 10)},
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	s := stats.Summarize(txs, start, end)

	assert.Equal(t, 1000.0, s.Income)
	assert.Equal(t, 300.0, s.Expense)
	assert.Equal(t, 700.0, s.Balance)
}

func TestSummarize_BalanceIdentityAcrossPeriods(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

	txs := []finance.Transaction{
		{Amount: 5000, Type: finance.TypeIncome, Date: date(2024, 6, 15)},
		{Amount: 120, Type: finance.TypeExpense, Date: date(2024, 6, 14)},
		{Amount: 900, Type: finance.TypeExpense, Date: date(2024, 6, 1)},
		{Amount: 2500, Type: finance.TypeIncome, Date: date(2024, 2, 2)},
		{Amount: 40, Type: finance.TypeExpense, Date: date(2023, 12, 31)},
	}

	for _, p := range []stats.Period{stats.PeriodToday, stats.PeriodWeek, stats.PeriodMonth, stats.PeriodYear} {
		t.Run(p.String(), func(t *testing.T) {
			start, end := p.Range(now)
			s := stats.Summarize(txs, start, end)
			assert.Equal(t, s.Income-s.Expense, s.Balance)
		})
	}
}

func TestPeriod_Range(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)
	endOfDay := time.Date(2024, 6, 15, 23, 59, 59, 0, time.UTC)

	type testCase struct {
		name      string
		period    stats.Period
		wantStart time.Time
	}

	tests := []testCase{
		{"Today", stats.PeriodToday, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"Week", stats.PeriodWeek, time.Date(2024, 6, 8, 14, 30, 0, 0, time.UTC)},
		{"Month", stats.PeriodMonth, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"Year", stats.PeriodYear, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.period.Range(now)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, endOfDay, end)
		})
	}
}

func TestSummarize_RangeBoundsAreInclusive(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	txs := []finance.Transaction{
		{Amount: 10, Type: finance.TypeExpense, Date: start},
		{Amount: 20, Type: finance.TypeExpense, Date: end},
		{Amount: 40, Type: finance.TypeExpense, Date: end.Add(time.Second)},
	}

	s := stats.Summarize(txs, start, end)
	assert.Equal(t, 30.0, s.Expense)
}

func TestExpenseBreakdown(t *testing.T) {
	categories := []finance.Category{
		{ID: "5", Name: "Food & Dining", Color: "#ef4444", Type: finance.TypeExpense},
		{ID: "6", Name: "Transport", Color: "#3b82f6", Type: finance.TypeExpense},
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	txs := []finance.Transaction{
		{Amount: 300, Type: finance.TypeExpense, CategoryID: "5", Date: date(2024, 1, 3)},
		{Amount: 100, Type: finance.TypeExpense, CategoryID: "6", Date: date(2024, 1, 4)},
		{Amount: 100, Type: finance.TypeExpense, CategoryID: "gone", Date: date(2024, 1, 5)},
		{Amount: 500, Type: finance.TypeIncome, CategoryID: "1", Date: date(2024, 1, 6)},
		{Amount: 999, Type: finance.TypeExpense, CategoryID: "5", Date: date(2024, 2, 1)},
	}

	entries := stats.ExpenseBreakdown(txs, categories, start, end)
	require.Len(t, entries, 3)

	assert.Equal(t, "Food & Dining", entries[0].Name)
	assert.Equal(t, 300.0, entries[0].Total)
	assert.InDelta(t, 60.0, entries[0].Percentage, 0.0001)

	// Dangling reference renders as Unknown with the neutral gray.
	names := []string{entries[1].Name, entries[2].Name}
	assert.Contains(t, names, finance.UnknownCategoryName)

	for _, e := range entries[1:] {
		assert.Equal(t, 100.0, e.Total)
		assert.InDelta(t, 20.0, e.Percentage, 0.0001)

		if e.Name == finance.UnknownCategoryName {
			assert.Equal(t, "#64748b", e.Color)
		}
	}
}

func TestExpenseBreakdown_TruncatesToTopSix(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	var categories []finance.Category

	var txs []finance.Transaction

	// Eight categories with totals 100, 200, ..., 800.
	for i := 1; i <= 8; i++ {
		id := string(rune('a' + i - 1))
		categories = append(categories, finance.Category{ID: id, Name: id, Type: finance.TypeExpense})
		txs = append(txs, finance.Transaction{
			Amount:     float64(i * 100),
			Type:       finance.TypeExpense,
			CategoryID: id,
			Date:       date(2024, 1, 10),
		})
	}

	entries := stats.ExpenseBreakdown(txs, categories, start, end)
	require.Len(t, entries, 6)

	assert.Equal(t, 800.0, entries[0].Total)
	assert.Equal(t, 300.0, entries[5].Total)

	// Percentages are relative to the displayed set (800+...+300=3300),
	// not the full total (3600), and sum to 100.
	var pctSum float64
	for _, e := range entries {
		pctSum += e.Percentage
	}

	assert.InDelta(t, 100.0, pctSum, 0.0001)
	assert.InDelta(t, 800.0/3300.0*100, entries[0].Percentage, 0.0001)
}

func TestExpenseBreakdown_AllZeroAmounts(t *testing.T) {
	categories := []finance.Category{
		{ID: "5", Name: "Food & Dining", Color: "#ef4444", Type: finance.TypeExpense},
		{ID: "6", Name: "Transport", Color: "#3b82f6", Type: finance.TypeExpense},
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	txs := []finance.Transaction{
		{Amount: 0, Type: finance.TypeExpense, CategoryID: "5", Date: date(2024, 1, 3)},
		{Amount: 0, Type: finance.TypeExpense, CategoryID: "6", Date: date(2024, 1, 4)},
	}

	entries := stats.ExpenseBreakdown(txs, categories, start, end)
	require.Len(t, entries, 2)

	for _, e := range entries {
		assert.Equal(t, 0.0, e.Total)
		assert.Equal(t, 0.0, e.Percentage)
		assert.False(t, math.IsNaN(e.Percentage))
	}
}

func TestExpenseBreakdown_Empty(t *testing.T) {
	start, end := stats.PeriodMonth.Range(time.Now())
	assert.Nil(t, stats.ExpenseBreakdown(nil, finance.DefaultCategories(), start, end))
}
