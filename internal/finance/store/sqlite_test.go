package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/moneywise/internal/database"
	"github.com/MrJamesThe3rd/moneywise/internal/finance/store"
)

func TestSQLiteStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()

	db, err := database.Open(filepath.Join(t.TempDir(), "moneywise.db"))
	require.NoError(t, err)
	defer db.Close()

	storage, err := store.NewSQLite(ctx, db)
	require.NoError(t, err)

	// Nothing persisted yet.
	loaded, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	require.NoError(t, storage.Save(ctx, sampleData()))

	loaded, err = storage.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleData(), loaded)

	// A second save overwrites the single row under the storage key.
	updated := sampleData()
	updated.Transactions = nil
	updated.Transactions = append(updated.Transactions, sampleData().Transactions[0], sampleData().Transactions[0])
	updated.Transactions[1].ID = "t2"

	require.NoError(t, storage.Save(ctx, updated))

	loaded, err = storage.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Transactions, 2)
	assert.Equal(t, "t2", loaded.Transactions[1].ID)
}
