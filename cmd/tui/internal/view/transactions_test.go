package view_test

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/moneywise/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/moneywise/internal/finance"
)

type stubStorage struct {
	data *finance.Data
}

func (s *stubStorage) Load(context.Context) (*finance.Data, error) {
	return s.data, nil
}

func (s *stubStorage) Save(_ context.Context, data *finance.Data) error {
	s.data = data
	return nil
}

// drive feeds messages into the model one at a time, executing the
// returned commands and feeding their messages back in until the model
// goes quiet, the way the bubbletea runtime does.
func drive(t *testing.T, m tea.Model, msgs ...tea.Msg) tea.Model {
	t.Helper()

	for _, msg := range msgs {
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		m = settle(t, m, cmd)
	}

	return m
}

func settle(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()

	queue := []tea.Cmd{cmd}

	for i := 0; len(queue) > 0; i++ {
		require.Less(t, i, 1000, "command loop did not settle")

		next := queue[0]
		queue = queue[1:]

		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case cursor.BlinkMsg, spinner.TickMsg:
			// Cosmetic ticks reschedule themselves forever; drop them.
		default:
			var cmd tea.Cmd
			m, cmd = m.Update(msg)
			queue = append(queue, cmd)
		}
	}

	return m
}

func keys(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	return msgs
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestTransactionsView_AddFormCreatesTransaction(t *testing.T) {
	svc := finance.NewService(context.Background(), &stubStorage{})

	m := tea.Model(view.NewTransactionsModel(svc, "₹"))
	m = drive(t, m, keys("a")...)

	// Walk the form: type (Expense), amount, category (first expense
	// category), date (prefilled with today), note, repeats (Never).
	m = drive(t, m, enter)
	m = drive(t, m, append(keys("500"), enter)...)
	m = drive(t, m, enter)
	m = drive(t, m, enter)
	m = drive(t, m, append(keys("lunch"), enter)...)
	m = drive(t, m, enter)

	_, ok := m.(view.TransactionsModel)
	require.True(t, ok)

	txs := svc.Transactions()
	require.Len(t, txs, 1)

	assert.Equal(t, 500.0, txs[0].Amount, "the typed amount must survive form completion")
	assert.Equal(t, finance.TypeExpense, txs[0].Type)
	assert.Equal(t, "5", txs[0].CategoryID, "first expense category is preselected")
	assert.Equal(t, "lunch", txs[0].Note)
	assert.Equal(t, time.Now().Format(time.DateOnly), txs[0].Date.Format(time.DateOnly))
	assert.False(t, txs[0].IsRecurring)
}

func TestTransactionsView_EditFormSavesTypedChanges(t *testing.T) {
	storage := &stubStorage{data: &finance.Data{
		Transactions: []finance.Transaction{{
			ID:         "t1",
			Amount:     42,
			Type:       finance.TypeExpense,
			CategoryID: "5",
			Note:       "old",
			Date:       time.Now(),
		}},
		Categories: finance.DefaultCategories(),
	}}
	svc := finance.NewService(context.Background(), storage)

	m := tea.Model(view.NewTransactionsModel(svc, "₹"))
	m = drive(t, m, keys("e")...)

	// Append a digit to the prefilled amount (42 -> 421), keep the
	// rest as prefilled.
	m = drive(t, m, enter)
	m = drive(t, m, append(keys("1"), enter)...)
	m = drive(t, m, enter)
	m = drive(t, m, enter)
	m = drive(t, m, enter)
	m = drive(t, m, enter)

	txs := svc.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, 421.0, txs[0].Amount, "edits must not be discarded on save")
	assert.Equal(t, "old", txs[0].Note)
}

func TestTransactionsView_DeleteConfirm(t *testing.T) {
	storage := &stubStorage{data: &finance.Data{
		Transactions: []finance.Transaction{{
			ID:         "t1",
			Amount:     42,
			Type:       finance.TypeExpense,
			CategoryID: "5",
			Date:       time.Now(),
		}},
		Categories: finance.DefaultCategories(),
	}}
	svc := finance.NewService(context.Background(), storage)

	m := tea.Model(view.NewTransactionsModel(svc, "₹"))

	// Submitting with the default "Keep" leaves the transaction alone.
	m = drive(t, m, keys("x")...)
	m = drive(t, m, enter)
	require.Len(t, svc.Transactions(), 1)

	// Selecting "Delete" removes it.
	m = drive(t, m, keys("x")...)
	m = drive(t, m, tea.KeyMsg{Type: tea.KeyLeft}, enter)
	assert.Empty(t, svc.Transactions())
}
