package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/moneywise/internal/finance"
	"github.com/MrJamesThe3rd/moneywise/internal/stats"
)

var (
	balanceStyle = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))

	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// DashboardModel shows the balance card and the expense breakdown for
// the selected period.
type DashboardModel struct {
	CommonModel
	financeSvc *finance.Service
	symbol     string

	period stats.Period
}

func NewDashboardModel(financeSvc *finance.Service, symbol string) DashboardModel {
	return DashboardModel{
		financeSvc: financeSvc,
		symbol:     symbol,
		period:     stats.PeriodMonth,
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	return "Esc: back | p: switch period"
}

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "p":
			m.period = (m.period + 1) % 4
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	start, end := m.period.Range(time.Now())

	txs := m.financeSvc.Transactions()
	summary := stats.Summarize(txs, start, end)
	breakdown := stats.ExpenseBreakdown(txs, m.financeSvc.Categories(), start, end)

	periods := make([]string, 0, 4)

	for p := stats.PeriodToday; p <= stats.PeriodYear; p++ {
		label := p.String()
		if p == m.period {
			label = activeStyle(label)
		}

		periods = append(periods, label)
	}

	card := balanceStyle.Render(fmt.Sprintf(
		"Total Balance\n%s\n\n%s  %s\n%s  %s",
		lipgloss.NewStyle().Bold(true).Render(FormatAmount(m.symbol, summary.Balance)),
		incomeStyle.Render("▲ Income"), FormatAmount(m.symbol, summary.Income),
		expenseStyle.Render("▼ Expenses"), FormatAmount(m.symbol, summary.Expense),
	))

	content := lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(periods, " | "),
		"",
		card,
		"",
		m.renderBreakdown(breakdown),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m DashboardModel) renderBreakdown(entries []stats.BreakdownEntry) string {
	if len(entries) == 0 {
		return faintStyle.Render("No expenses in this period")
	}

	var sb strings.Builder

	sb.WriteString("Expense Breakdown\n")

	categories := m.financeSvc.Categories()

	for _, e := range entries {
		glyph := defaultGlyph

		for _, cat := range categories {
			if cat.ID == e.CategoryID {
				glyph = CategoryGlyph(cat.Icon)
				break
			}
		}

		bar := strings.Repeat("█", int(e.Percentage/5))

		sb.WriteString(fmt.Sprintf("\n%s %-16s %-20s %6s  %s",
			glyph,
			e.Name,
			expenseStyle.Render(bar),
			FormatPercent(e.Percentage),
			FormatAmount(m.symbol, e.Total),
		))
	}

	return sb.String()
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render(s)
}
