package view

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/moneywise/internal/finance"
)

type catState int

const (
	catStateBrowse catState = iota
	catStateForm
	catStateConfirmDelete
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// CategoriesModel manages the category list.
type CategoriesModel struct {
	CommonModel
	financeSvc *finance.Service
	symbol     string

	state catState
	table table.Model
	cats  []finance.Category

	form   *huh.Form
	editID string

	formName   string
	formType   string
	formColor  string
	formIcon   string
	formBudget string

	confirmDelete bool
	deleteID      string

	status string
}

func NewCategoriesModel(financeSvc *finance.Service, symbol string) CategoriesModel {
	columns := []table.Column{
		{Title: "", Width: 3},
		{Title: "Name", Width: 20},
		{Title: "Type", Width: 8},
		{Title: "Color", Width: 9},
		{Title: "Budget", Width: 12},
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

	m := CategoriesModel{
		financeSvc: financeSvc,
		symbol:     symbol,
		table:      t,
	}
	m.refresh()

	return m
}

func (m CategoriesModel) Title() string { return "Categories" }

func (m CategoriesModel) ShortHelp() string {
	switch m.state {
	case catStateForm:
		return "Navigate form | Esc: cancel"
	case catStateConfirmDelete:
		return "Confirm deletion"
	}

	return "Esc: back | a: add | e: edit | x: delete"
}

func (m CategoriesModel) Init() tea.Cmd {
	return nil
}

func (m CategoriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if sizeMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.table.SetHeight(sizeMsg.Height - 10)
		return m, nil
	}

	switch m.state {
	case catStateBrowse:
		return m.updateBrowse(msg)
	case catStateForm:
		return m.updateForm(msg)
	case catStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m CategoriesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			return m.enterForm(nil)
		case "e":
			if cat := m.selectedCat(); cat != nil {
				return m.enterForm(cat)
			}

			return m, nil
		case "x":
			if cat := m.selectedCat(); cat != nil {
				return m.enterConfirmDelete(cat)
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CategoriesModel) enterForm(cat *finance.Category) (tea.Model, tea.Cmd) {
	if cat != nil {
		m.editID = cat.ID
		m.formName = cat.Name
		m.formType = string(cat.Type)
		m.formColor = cat.Color
		m.formIcon = cat.Icon
		m.formBudget = ""

		if cat.Budget != nil {
			m.formBudget = strconv.FormatFloat(*cat.Budget, 'f', -1, 64)
		}
	} else {
		m.editID = ""
		m.formName = ""
		m.formType = string(finance.TypeExpense)
		m.formColor = "#64748b"
		m.formIcon = "Circle"
		m.formBudget = ""
	}

	iconOpts := make([]huh.Option[string], 0, len(IconNames()))
	for _, name := range IconNames() {
		iconOpts = append(iconOpts, huh.NewOption(CategoryGlyph(name)+" "+name, name))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}

					return nil
				}),

			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", string(finance.TypeExpense)),
					huh.NewOption("Income", string(finance.TypeIncome)),
				).
				Value(&m.formType),

			huh.NewInput().
				Key("color").
				Title("Color").
				Placeholder("#22c55e").
				Value(&m.formColor).
				Validate(func(s string) error {
					if !hexColorRe.MatchString(s) {
						return fmt.Errorf("color must look like #rrggbb")
					}

					return nil
				}),

			huh.NewSelect[string]().
				Key("icon").
				Title("Icon").
				Options(iconOpts...).
				Value(&m.formIcon),

			huh.NewInput().
				Key("budget").
				Title("Monthly Budget (optional)").
				Description("Only applies to expense categories").
				Value(&m.formBudget).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}

					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || v < 0 {
						return fmt.Errorf("budget must be a non-negative number")
					}

					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = catStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m CategoriesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m CategoriesModel) saveForm() tea.Model {
	// Completed values come from the form; the copy's bound fields go
	// stale across bubbletea updates.
	name := strings.TrimSpace(m.form.GetString("name"))
	catType := finance.Type(m.form.GetString("type"))
	color := m.form.GetString("color")
	icon := m.form.GetString("icon")

	var budget *float64

	if s := strings.TrimSpace(m.form.GetString("budget")); s != "" && catType == finance.TypeExpense {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return m.leaveForm(fmt.Sprintf("Error: invalid budget: %v", err))
		}

		budget = &v
	}

	ctx, cancel := SaveCtx()
	defer cancel()

	if m.editID == "" {
		m.financeSvc.AddCategory(ctx, finance.CreateCategoryParams{
			Name:   name,
			Type:   catType,
			Color:  color,
			Icon:   icon,
			Budget: budget,
		})

		return m.leaveForm("Category added")
	}

	m.financeSvc.UpdateCategory(ctx, m.editID, finance.CategoryUpdate{
		Name:   &name,
		Type:   &catType,
		Color:  &color,
		Icon:   &icon,
		Budget: budget,
	})

	return m.leaveForm("Category updated")
}

func (m CategoriesModel) leaveForm(status string) CategoriesModel {
	m.state = catStateBrowse
	m.form = nil
	m.status = status
	m.table.Focus()
	m.refresh()

	return m
}

func (m CategoriesModel) enterConfirmDelete(cat *finance.Category) (tea.Model, tea.Cmd) {
	m.deleteID = cat.ID
	m.confirmDelete = false

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title(fmt.Sprintf("Delete category %q?", cat.Name)).
				Description("Existing transactions keep their category reference and will show as Unknown.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.confirmDelete),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = catStateConfirmDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m CategoriesModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	m.financeSvc.DeleteCategory(ctx, m.deleteID)

	return m.leaveForm("Category deleted"), nil
}

func (m CategoriesModel) View() string {
	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := tableView

	if (m.state == catStateForm || m.state == catStateConfirmDelete) && m.form != nil {
		title := "Add Category"
		if m.editID != "" {
			title = "Edit Category"
		}

		if m.state == catStateConfirmDelete {
			title = "Delete Category"
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

func (m *CategoriesModel) selectedCat() *finance.Category {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.cats) {
		return nil
	}

	return &m.cats[idx]
}

func (m *CategoriesModel) refresh() {
	m.cats = m.financeSvc.Categories()

	rows := make([]table.Row, 0, len(m.cats))
	for _, cat := range m.cats {
		budget := "-"
		if cat.Budget != nil {
			budget = FormatAmount(m.symbol, *cat.Budget)
		}

		rows = append(rows, table.Row{
			CategoryGlyph(cat.Icon),
			cat.Name,
			string(cat.Type),
			cat.Color,
			budget,
		})
	}

	m.table.SetRows(rows)
}
