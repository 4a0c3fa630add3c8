package view_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/moneywise/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/moneywise/internal/clock"
	"github.com/MrJamesThe3rd/moneywise/internal/export"
	"github.com/MrJamesThe3rd/moneywise/internal/finance"
	"github.com/MrJamesThe3rd/moneywise/internal/importer"
)

var down = tea.KeyMsg{Type: tea.KeyDown}

func TestBackupView_PasteRestoreReplacesAggregate(t *testing.T) {
	storage := &stubStorage{data: &finance.Data{
		Transactions: []finance.Transaction{{ID: "t1", Amount: 10, Type: finance.TypeExpense}},
		Categories:   finance.DefaultCategories(),
	}}
	svc := finance.NewService(context.Background(), storage)
	expSvc := export.NewService(svc, clock.SystemClock{})
	impSvc := importer.NewService(svc)

	m := tea.Model(view.NewBackupModel(expSvc, impSvc, t.TempDir()))

	// Navigate to "Restore backup from pasted text", paste a minimal
	// valid backup and submit.
	m = drive(t, m, down, down, down, enter)
	m = drive(t, m, append(keys(`{"transactions":[],"categories":[]}`), enter)...)

	_, ok := m.(view.BackupModel)
	require.True(t, ok)

	// The pasted payload must reach the restore, replacing the
	// aggregate wholesale.
	assert.Empty(t, svc.Transactions())
	assert.Empty(t, svc.Categories())
}

func TestBackupView_PasteRestoreRejectsInvalidPayload(t *testing.T) {
	storage := &stubStorage{data: &finance.Data{
		Transactions: []finance.Transaction{{ID: "t1", Amount: 10, Type: finance.TypeExpense}},
		Categories:   finance.DefaultCategories(),
	}}
	svc := finance.NewService(context.Background(), storage)
	expSvc := export.NewService(svc, clock.SystemClock{})
	impSvc := importer.NewService(svc)

	m := tea.Model(view.NewBackupModel(expSvc, impSvc, t.TempDir()))

	m = drive(t, m, down, down, down, enter)
	m = drive(t, m, append(keys(`{"transactions":[]}`), enter)...)

	// Missing members leave the aggregate untouched.
	require.Len(t, svc.Transactions(), 1)
	assert.Len(t, svc.Categories(), 12)
}
