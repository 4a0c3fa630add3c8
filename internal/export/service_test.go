package export_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/moneywise/internal/clock"
	"github.com/MrJamesThe3rd/moneywise/internal/export"
	"github.com/MrJamesThe3rd/moneywise/internal/finance"
)

// stubStorage keeps everything in memory; export never needs a real
// backend.
type stubStorage struct {
	data *finance.Data
}

func (s *stubStorage) Load(_ context.Context) (*finance.Data, error) { return s.data, nil }
func (s *stubStorage) Save(_ context.Context, _ *finance.Data) error { return nil }

func newService(t *testing.T, data *finance.Data, now time.Time) *export.Service {
	t.Helper()

	financeSvc := finance.NewService(context.Background(), &stubStorage{data: data})

	return export.NewService(financeSvc, &clock.MockClock{FixedNow: now})
}

func testData() *finance.Data {
	return &finance.Data{
		Transactions: []finance.Transaction{
			{
				ID:         "t1",
				Amount:     1250.5,
				Type:       finance.TypeExpense,
				CategoryID: "6",
				Note:       `monthly "flex" pass`,
				Date:       time.Date(2024, 3, 12, 9, 30, 0, 0, time.UTC),
			},
			{
				ID:         "t2",
				Amount:     50000,
				Type:       finance.TypeIncome,
				CategoryID: "gone",
				Note:       "",
				Date:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		Categories: []finance.Category{
			{ID: "6", Name: "Transport", Color: "#3b82f6", Icon: "Car", Type: finance.TypeExpense},
		},
	}
}

func TestService_CSV(t *testing.T) {
	svc := newService(t, testData(), time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))

	want := "Date,Type,Category,Amount,Note\n" +
		"2024-03-12,expense,Transport,1250.5,\"monthly \"\"flex\"\" pass\"\n" +
		"2024-03-01,income,Unknown,50000,\"\""

	assert.Equal(t, want, svc.CSV())
}

func TestService_JSONRoundTrip(t *testing.T) {
	svc := newService(t, testData(), time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))

	raw, err := svc.JSON()
	require.NoError(t, err)

	assert.Contains(t, string(raw), "\n  \"transactions\"")
	assert.Contains(t, string(raw), "\n  \"categories\"")

	var restored finance.Data
	require.NoError(t, json.Unmarshal(raw, &restored))
	assert.Equal(t, *testData(), restored)
}

func TestService_Filenames(t *testing.T) {
	svc := newService(t, testData(), time.Date(2024, 3, 15, 18, 45, 0, 0, time.UTC))

	assert.Equal(t, "finance-backup-2024-03-15.json", svc.BackupFilename())
	assert.Equal(t, "transactions-2024-03-15.csv", svc.CSVFilename())
}

func TestService_WriteFiles(t *testing.T) {
	svc := newService(t, testData(), time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	dir := t.TempDir()

	backupPath, err := svc.WriteBackup(dir)
	require.NoError(t, err)
	assert.FileExists(t, backupPath)

	csvPath, err := svc.WriteCSV(dir)
	require.NoError(t, err)

	raw, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, svc.CSV(), string(raw))
}
