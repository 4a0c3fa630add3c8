package view

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/moneywise/internal/finance"
	"github.com/MrJamesThe3rd/moneywise/internal/stats"
)

type txState int

const (
	txStateBrowse txState = iota
	txStateForm
	txStateConfirmDelete
)

// frequencyNever is the "not recurring" choice in the entry form.
const frequencyNever = "never"

// TransactionsModel lists, filters and edits transactions.
type TransactionsModel struct {
	CommonModel
	financeSvc *finance.Service
	symbol     string

	state txState
	table table.Model
	txs   []finance.Transaction

	// Date filter cycling: 0 = all time, 1..4 = period presets.
	dateFilterIdx int

	form   *huh.Form
	editID string

	formType      string
	formAmount    string
	formCategory  string
	formNote      string
	formDate      string
	formFrequency string

	confirmDelete bool
	deleteID      string

	status string
}

func NewTransactionsModel(financeSvc *finance.Service, symbol string) TransactionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 8},
		{Title: "Category", Width: 18},
		{Title: "Amount", Width: 12},
		{Title: "Note", Width: 30},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := TransactionsModel{
		financeSvc: financeSvc,
		symbol:     symbol,
		table:      t,
	}
	m.refresh()

	return m
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateForm:
		return "Navigate form | Esc: cancel"
	case txStateConfirmDelete:
		return "Confirm deletion"
	}

	return "Esc: back | a: add | e: edit | x: delete | d: date filter"
}

func (m TransactionsModel) Init() tea.Cmd {
	return nil
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if sizeMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.table.SetHeight(sizeMsg.Height - 10)
		return m, nil
	}

	switch m.state {
	case txStateBrowse:
		return m.updateBrowse(msg)
	case txStateForm:
		return m.updateForm(msg)
	case txStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			return m.enterForm(nil)
		case "e":
			// Re-fetch by id so the form prefills from live state, not
			// the cached filter snapshot.
			if tx := m.selectedTx(); tx != nil {
				if fresh := m.financeSvc.Transaction(tx.ID); fresh != nil {
					return m.enterForm(fresh)
				}
			}

			return m, nil
		case "x":
			if tx := m.selectedTx(); tx != nil {
				return m.enterConfirmDelete(tx)
			}

			return m, nil
		case "d":
			m.dateFilterIdx = (m.dateFilterIdx + 1) % 5
			m.refresh()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TransactionsModel) enterForm(tx *finance.Transaction) (tea.Model, tea.Cmd) {
	if tx != nil {
		m.editID = tx.ID
		m.formType = string(tx.Type)
		m.formAmount = strconv.FormatFloat(tx.Amount, 'f', -1, 64)
		m.formCategory = tx.CategoryID
		m.formNote = tx.Note
		m.formDate = FormatDate(tx.Date)
		m.formFrequency = frequencyNever

		if tx.IsRecurring {
			m.formFrequency = string(tx.RecurringFrequency)
		}
	} else {
		m.editID = ""
		m.formType = string(finance.TypeExpense)
		m.formAmount = ""
		m.formCategory = ""
		m.formNote = ""
		m.formDate = FormatDate(time.Now())
		m.formFrequency = frequencyNever
	}

	quickAmounts := make([]string, len(finance.QuickAmounts))
	for i, a := range finance.QuickAmounts {
		quickAmounts[i] = strconv.FormatFloat(a, 'f', -1, 64)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", string(finance.TypeExpense)),
					huh.NewOption("Income", string(finance.TypeIncome)),
				).
				Value(&m.formType),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder(strings.Join(quickAmounts, " / ")).
				Value(&m.formAmount).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("amount is required")
					}

					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || v < 0 {
						return fmt.Errorf("amount must be a non-negative number")
					}

					return nil
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				OptionsFunc(func() []huh.Option[string] {
					return m.categoryOptions()
				}, &m.formType).
				Value(&m.formCategory).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("select a category")
					}

					return nil
				}),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, s); err != nil {
						return fmt.Errorf("invalid date (YYYY-MM-DD)")
					}

					return nil
				}),

			huh.NewInput().
				Key("note").
				Title("Note (optional)").
				Value(&m.formNote),

			huh.NewSelect[string]().
				Key("frequency").
				Title("Repeats").
				Options(
					huh.NewOption("Never", frequencyNever),
					huh.NewOption("Daily", string(finance.FrequencyDaily)),
					huh.NewOption("Weekly", string(finance.FrequencyWeekly)),
					huh.NewOption("Monthly", string(finance.FrequencyMonthly)),
					huh.NewOption("Yearly", string(finance.FrequencyYearly)),
				).
				Value(&m.formFrequency),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransactionsModel) categoryOptions() []huh.Option[string] {
	var opts []huh.Option[string]

	for _, cat := range m.financeSvc.Categories() {
		if string(cat.Type) != m.formType {
			continue
		}

		opts = append(opts, huh.NewOption(CategoryGlyph(cat.Icon)+" "+cat.Name, cat.ID))
	}

	return opts
}

func (m TransactionsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m.leaveForm(""), nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m.saveForm(), nil
}

func (m TransactionsModel) saveForm() tea.Model {
	// Read the completed values from the form, not the bound fields:
	// bubbletea copies the model on every Update, so the form's
	// bindings point at an earlier copy.
	amount, err := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("amount")), 64)
	if err != nil {
		return m.leaveForm(fmt.Sprintf("Error: invalid amount: %v", err))
	}

	date, err := time.Parse(time.DateOnly, m.form.GetString("date"))
	if err != nil {
		return m.leaveForm(fmt.Sprintf("Error: invalid date: %v", err))
	}

	txType := finance.Type(m.form.GetString("type"))
	categoryID := m.form.GetString("category")
	note := m.form.GetString("note")

	freq := m.form.GetString("frequency")
	isRecurring := freq != frequencyNever

	frequency := finance.Frequency("")
	if isRecurring {
		frequency = finance.Frequency(freq)
	}

	ctx, cancel := SaveCtx()
	defer cancel()

	if m.editID == "" {
		m.financeSvc.AddTransaction(ctx, finance.CreateTransactionParams{
			Amount:             amount,
			Type:               txType,
			CategoryID:         categoryID,
			Note:               note,
			Date:               date,
			IsRecurring:        isRecurring,
			RecurringFrequency: frequency,
		})

		return m.leaveForm("Transaction added")
	}

	m.financeSvc.UpdateTransaction(ctx, m.editID, finance.TransactionUpdate{
		Amount:             &amount,
		Type:               &txType,
		CategoryID:         &categoryID,
		Note:               &note,
		Date:               &date,
		IsRecurring:        &isRecurring,
		RecurringFrequency: &frequency,
	})

	return m.leaveForm("Transaction updated")
}

func (m TransactionsModel) leaveForm(status string) TransactionsModel {
	m.state = txStateBrowse
	m.form = nil
	m.status = status
	m.table.Focus()
	m.refresh()

	return m
}

func (m TransactionsModel) enterConfirmDelete(tx *finance.Transaction) (tea.Model, tea.Cmd) {
	m.deleteID = tx.ID
	m.confirmDelete = false

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete %s of %s?", tx.Type, FormatAmount(m.symbol, tx.Amount))).
				Description("This cannot be undone.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.confirmDelete),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateConfirmDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransactionsModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m.leaveForm(""), nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !m.form.GetBool("confirm") {
		return m.leaveForm(""), nil
	}

	ctx, cancel := SaveCtx()
	defer cancel()

	m.financeSvc.DeleteTransaction(ctx, m.deleteID)

	return m.leaveForm("Transaction deleted"), nil
}

func (m TransactionsModel) View() string {
	dateLabels := []string{"All Time", "Today", "Week", "Month", "Year"}

	header := fmt.Sprintf("Filter: [d] Date: %s", activeStyle(dateLabels[m.dateFilterIdx]))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if (m.state == txStateForm || m.state == txStateConfirmDelete) && m.form != nil {
		title := "Add Transaction"
		if m.editID != "" {
			title = "Edit Transaction"
		}

		if m.state == txStateConfirmDelete {
			title = "Delete Transaction"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(54).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *TransactionsModel) selectedTx() *finance.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	return &m.txs[idx]
}

// refresh re-reads the snapshot, applies the date filter and sorts by
// date, newest first.
func (m *TransactionsModel) refresh() {
	txs := m.financeSvc.Transactions()

	if m.dateFilterIdx > 0 {
		period := stats.Period(m.dateFilterIdx - 1)
		start, end := period.Range(time.Now())

		filtered := txs[:0]

		for _, tx := range txs {
			if !tx.Date.Before(start) && !tx.Date.After(end) {
				filtered = append(filtered, tx)
			}
		}

		txs = filtered
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})

	m.txs = txs

	data := m.financeSvc.Snapshot()

	rows := make([]table.Row, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			string(tx.Type),
			data.CategoryName(tx.CategoryID),
			FormatAmount(m.symbol, tx.Amount),
			tx.Note,
		})
	}

	m.table.SetRows(rows)
}
