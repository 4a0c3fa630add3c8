package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/moneywise/internal/finance"
	"github.com/MrJamesThe3rd/moneywise/internal/insight"
)

const progressBarWidth = 20

var (
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	overStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))

	panelStyle = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
)

// InsightsModel renders the derived insight report.
type InsightsModel struct {
	CommonModel
	financeSvc *finance.Service
	insightSvc *insight.Service
	symbol     string
}

func NewInsightsModel(financeSvc *finance.Service, insightSvc *insight.Service, symbol string) InsightsModel {
	return InsightsModel{
		financeSvc: financeSvc,
		insightSvc: insightSvc,
		symbol:     symbol,
	}
}

func (m InsightsModel) Title() string { return "Insights" }

func (m InsightsModel) ShortHelp() string {
	return "Esc: back"
}

func (m InsightsModel) Init() tea.Cmd {
	return nil
}

func (m InsightsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m InsightsModel) View() string {
	report := m.insightSvc.Report(m.financeSvc.Transactions(), m.financeSvc.Categories())

	if report.Empty() {
		return lipgloss.NewStyle().Padding(2).Render(
			faintStyle.Render("Add some transactions to see insights."),
		)
	}

	sections := []string{
		m.renderBudgetWarnings(report.BudgetWarnings),
		m.renderEmergencyFund(report.EmergencyFund),
		m.renderWeeklyTip(report.WeeklyTip),
		m.renderAlerts(report.Alerts),
	}

	var nonEmpty []string

	for _, s := range sections {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, nonEmpty...),
	)
}

func (m InsightsModel) renderBudgetWarnings(warnings []insight.BudgetWarning) string {
	if len(warnings) == 0 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString("Budget Watch\n")

	for _, w := range warnings {
		bar := progressBar(w.Progress())

		tag := warnStyle.Render(FormatPercent(w.Percentage))
		if w.OverBudget() {
			tag = overStyle.Render("OVER " + FormatPercent(w.Percentage))
		}

		budget := 0.0
		if w.Category.Budget != nil {
			budget = *w.Category.Budget
		}

		sb.WriteString(fmt.Sprintf("\n%s %-16s %s %s\n  %s of %s spent this month",
			CategoryGlyph(w.Category.Icon),
			w.Category.Name,
			bar,
			tag,
			FormatAmount(m.symbol, w.Spent),
			FormatAmount(m.symbol, budget),
		))
	}

	return panelStyle.Render(sb.String())
}

func (m InsightsModel) renderEmergencyFund(fund *insight.EmergencyFund) string {
	if fund == nil {
		return ""
	}

	return panelStyle.Render(fmt.Sprintf(
		"Emergency Fund\n\n%s %s\n%s saved of %s target (3x avg monthly spend %s)",
		progressBar(fund.Progress),
		goodStyle.Render(FormatPercent(fund.Progress)),
		FormatAmount(m.symbol, fund.Current),
		FormatAmount(m.symbol, fund.Target),
		FormatAmount(m.symbol, fund.AvgMonthly),
	))
}

func (m InsightsModel) renderWeeklyTip(tip insight.Tip) string {
	return panelStyle.Render(fmt.Sprintf(
		"Tip of the Week\n\n%s\nEstimated saving: %s",
		tip.Text,
		goodStyle.Render(FormatAmount(m.symbol, tip.Savings)),
	))
}

func (m InsightsModel) renderAlerts(alerts []insight.Alert) string {
	if len(alerts) == 0 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString("Unusual Spending\n")

	for _, a := range alerts {
		sb.WriteString(fmt.Sprintf("\n%s %s on %s: %s (usually around %s)",
			warnStyle.Render("!"),
			FormatAmount(m.symbol, a.Transaction.Amount),
			a.Category.Name,
			FormatDate(a.Transaction.Date),
			FormatAmount(m.symbol, a.AvgAmount),
		))
	}

	return panelStyle.Render(sb.String())
}

func progressBar(pct float64) string {
	filled := int(pct / 100 * progressBarWidth)
	if filled > progressBarWidth {
		filled = progressBarWidth
	}

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled) + "]"
}
