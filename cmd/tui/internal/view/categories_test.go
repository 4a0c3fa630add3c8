package view_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/moneywise/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/moneywise/internal/finance"
)

func TestCategoriesView_AddFormCreatesCategory(t *testing.T) {
	svc := finance.NewService(context.Background(), &stubStorage{})

	m := tea.Model(view.NewCategoriesModel(svc, "₹"))
	m = drive(t, m, keys("a")...)

	// Walk the form: name, type (Expense), color (prefilled), icon
	// (prefilled Circle), budget.
	m = drive(t, m, append(keys("Pets"), enter)...)
	m = drive(t, m, enter)
	m = drive(t, m, enter)
	m = drive(t, m, enter)
	m = drive(t, m, append(keys("1500"), enter)...)

	_, ok := m.(view.CategoriesModel)
	require.True(t, ok)

	cats := svc.Categories()
	require.Len(t, cats, 13)

	added := cats[12]
	assert.Equal(t, "Pets", added.Name, "the typed name must survive form completion")
	assert.Equal(t, finance.TypeExpense, added.Type)
	assert.Equal(t, "#64748b", added.Color)
	assert.Equal(t, "Circle", added.Icon)
	require.NotNil(t, added.Budget)
	assert.Equal(t, 1500.0, *added.Budget)
}

func TestCategoriesView_DeleteConfirmKeepsTransactions(t *testing.T) {
	storage := &stubStorage{data: &finance.Data{
		Transactions: []finance.Transaction{{ID: "t1", CategoryID: "5", Type: finance.TypeExpense}},
		Categories:   finance.DefaultCategories(),
	}}
	svc := finance.NewService(context.Background(), storage)

	m := tea.Model(view.NewCategoriesModel(svc, "₹"))

	// Cursor starts on the first category ("1" Salary); confirm its
	// deletion.
	m = drive(t, m, keys("x")...)
	m = drive(t, m, tea.KeyMsg{Type: tea.KeyLeft}, enter)

	cats := svc.Categories()
	require.Len(t, cats, 11)
	assert.Equal(t, "Freelance", cats[0].Name)

	// No cascade: the transaction keeps its category reference.
	require.Len(t, svc.Transactions(), 1)
	assert.Equal(t, "5", svc.Transactions()[0].CategoryID)
}
