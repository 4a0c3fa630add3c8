package insight

import (
	"fmt"
	"sort"
	"time"

	"github.com/MrJamesThe3rd/moneywise/internal/clock"
	"github.com/MrJamesThe3rd/moneywise/internal/finance"
)

// budgetWarningThreshold is the percentage of a category budget at
// which a warning is emitted.
const budgetWarningThreshold = 75

// emergencyFundMonths is the number of average monthly expense totals
// the emergency fund should cover.
const emergencyFundMonths = 3

// unusualSpendingFactor flags expense transactions exceeding this
// multiple of the category's mean amount.
const unusualSpendingFactor = 2

// maxAlerts caps the number of unusual-spending alerts reported.
const maxAlerts = 3

// BudgetWarning reports a category close to or over its monthly
// budget. Percentage is uncapped so callers can distinguish "nearly
// there" from "over budget"; Progress caps it for bar rendering.
type BudgetWarning struct {
	Category   finance.Category
	Spent      float64
	Percentage float64
}

func (w BudgetWarning) Progress() float64 {
	return min(w.Percentage, 100)
}

func (w BudgetWarning) OverBudget() bool {
	return w.Percentage >= 100
}

// EmergencyFund describes the savings target derived from historical
// spending.
type EmergencyFund struct {
	Target     float64
	Current    float64
	Progress   float64
	AvgMonthly float64
}

// Tip is a static saving suggestion with an estimated weekly saving.
type Tip struct {
	Text    string
	Savings float64
}

// Alert flags a recent expense well above its category's usual size.
type Alert struct {
	Transaction finance.Transaction
	Category    finance.Category
	AvgAmount   float64
	// Deviation is the transaction amount as a percentage of the
	// category mean.
	Deviation float64
}

// Report bundles all derivations of a single insight pass.
type Report struct {
	BudgetWarnings []BudgetWarning
	EmergencyFund  *EmergencyFund
	WeeklyTip      Tip

	Alerts []Alert

	// TransactionCount is the total history size, used by the
	// suppression rule.
	TransactionCount int
}

// Empty reports whether the insight panel should be suppressed
// entirely: no warnings, no fund data, no alerts and no transaction
// history at all. Once any history exists the weekly tip alone keeps
// the panel visible.
func (r Report) Empty() bool {
	return len(r.BudgetWarnings) == 0 &&
		r.EmergencyFund == nil &&
		len(r.Alerts) == 0 &&
		r.TransactionCount == 0
}

// weeklyTips is a fixed rotation; the active entry is keyed by the
// current epoch week.
var weeklyTips = []Tip{
	{Text: "Skip 2 takeout meals this week", Savings: 400},
	{Text: "Use public transport twice instead of cab", Savings: 300},
	{Text: "Make coffee at home for a week", Savings: 500},
	{Text: "Cancel one unused subscription", Savings: 200},
	{Text: "Pack lunch for 3 days this week", Savings: 450},
	{Text: "Avoid impulse purchases for 7 days", Savings: 600},
	{Text: "Use coupons for your next grocery run", Savings: 250},
	{Text: "Walk for short distances instead of rides", Savings: 150},
}

// Service derives insights from the full transaction and category
// collections. It is stateless apart from the clock.
type Service struct {
	clock clock.Clock
}

func NewService(c clock.Clock) *Service {
	return &Service{clock: c}
}

// Report runs all derivations over read-only snapshots of the
// collections.
func (s *Service) Report(txs []finance.Transaction, categories []finance.Category) Report {
	now := s.clock.Now()

	return Report{
		BudgetWarnings:   s.budgetWarnings(txs, categories, now),
		EmergencyFund:    emergencyFund(txs),
		WeeklyTip:        weeklyTip(now),
		Alerts:           unusualSpending(txs, categories, now),
		TransactionCount: len(txs),
	}
}

// budgetWarnings checks each budgeted expense category against the
// current calendar month, regardless of any period selected in the UI.
func (s *Service) budgetWarnings(txs []finance.Transaction, categories []finance.Category, now time.Time) []BudgetWarning {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

	var warnings []BudgetWarning

	for _, cat := range categories {
		if cat.Budget == nil || *cat.Budget <= 0 || cat.Type != finance.TypeExpense {
			continue
		}

		var spent float64

		for _, tx := range txs {
			if tx.CategoryID != cat.ID || tx.Type != finance.TypeExpense {
				continue
			}

			if tx.Date.Before(monthStart) || tx.Date.After(monthEnd) {
				continue
			}

			spent += tx.Amount
		}

		percentage := spent / *cat.Budget * 100
		if percentage >= budgetWarningThreshold {
			warnings = append(warnings, BudgetWarning{
				Category:   cat,
				Spent:      spent,
				Percentage: percentage,
			})
		}
	}

	sort.Slice(warnings, func(i, j int) bool {
		return warnings[i].Percentage > warnings[j].Percentage
	})

	return warnings
}

// emergencyFund averages per-month expense totals over every calendar
// month that has at least one expense transaction. Returns nil when no
// such month exists.
func emergencyFund(txs []finance.Transaction) *EmergencyFund {
	monthlyExpenses := make(map[string]float64)

	var totalIncome, totalExpense float64

	for _, tx := range txs {
		switch tx.Type {
		case finance.TypeIncome:
			totalIncome += tx.Amount
		case finance.TypeExpense:
			totalExpense += tx.Amount

			key := fmt.Sprintf("%d-%d", tx.Date.Year(), tx.Date.Month())
			monthlyExpenses[key] += tx.Amount
		}
	}

	if len(monthlyExpenses) == 0 {
		return nil
	}

	var sum float64
	for _, total := range monthlyExpenses {
		sum += total
	}

	avgMonthly := sum / float64(len(monthlyExpenses))
	target := avgMonthly * emergencyFundMonths
	current := max(0, totalIncome-totalExpense)

	progress := 0.0
	if target > 0 {
		progress = min(current/target*100, 100)
	}

	return &EmergencyFund{
		Target:     target,
		Current:    current,
		Progress:   progress,
		AvgMonthly: avgMonthly,
	}
}

// weeklyTip is deterministic per calendar week: the epoch week number
// modulo the rotation length.
func weeklyTip(now time.Time) Tip {
	week := now.UnixMilli() / (7 * 24 * time.Hour).Milliseconds()
	return weeklyTips[week%int64(len(weeklyTips))]
}

// unusualSpending flags expense transactions from the trailing 7 days
// whose amount is more than twice the category's historical mean.
// Categories need at least two expense transactions before a mean is
// considered meaningful.
func unusualSpending(txs []finance.Transaction, categories []finance.Category, now time.Time) []Alert {
	sevenDaysAgo := now.AddDate(0, 0, -7)

	var alerts []Alert

	for _, cat := range categories {
		if cat.Type != finance.TypeExpense {
			continue
		}

		var catTxs []finance.Transaction

		for _, tx := range txs {
			if tx.CategoryID == cat.ID && tx.Type == finance.TypeExpense {
				catTxs = append(catTxs, tx)
			}
		}

		if len(catTxs) < 2 {
			continue
		}

		var sum float64
		for _, tx := range catTxs {
			sum += tx.Amount
		}

		avg := sum / float64(len(catTxs))
		threshold := avg * unusualSpendingFactor

		for _, tx := range catTxs {
			if tx.Date.Before(sevenDaysAgo) || tx.Amount <= threshold {
				continue
			}

			alerts = append(alerts, Alert{
				Transaction: tx,
				Category:    cat,
				AvgAmount:   avg,
				Deviation:   tx.Amount / avg * 100,
			})
		}
	}

	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].Deviation > alerts[j].Deviation
	})

	if len(alerts) > maxAlerts {
		alerts = alerts[:maxAlerts]
	}

	return alerts
}
