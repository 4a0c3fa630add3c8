package importer

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/moneywise/internal/encoding"
	"github.com/MrJamesThe3rd/moneywise/internal/finance"
)

// ErrInvalidBackup is returned when a restore payload parses as JSON
// but is not a finance backup.
var ErrInvalidBackup = errors.New("backup must contain transactions and categories")

// Service restores JSON backups (full replace) and re-imports CSV
// exports (append).
type Service struct {
	finance *finance.Service
}

func NewService(financeSvc *finance.Service) *Service {
	return &Service{finance: financeSvc}
}

// Restore parses a backup document and replaces the whole aggregate
// with it. The payload is accepted when it is valid JSON carrying both
// a transactions and a categories member; contents beyond that are
// taken as-is. On any failure the current aggregate is left untouched.
func (s *Service) Restore(ctx context.Context, r io.Reader) error {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return fmt.Errorf("detect encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return fmt.Errorf("reading backup: %w", err)
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return fmt.Errorf("parsing backup: %w", err)
	}

	if _, ok := members["transactions"]; !ok {
		return ErrInvalidBackup
	}

	if _, ok := members["categories"]; !ok {
		return ErrInvalidBackup
	}

	var data finance.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parsing backup: %w", err)
	}

	s.finance.Replace(ctx, &data)

	return nil
}

// RestoreText restores from a pasted payload.
func (s *Service) RestoreText(ctx context.Context, payload string) error {
	return s.Restore(ctx, strings.NewReader(payload))
}

// RestoreFile restores from a backup file on disk.
func (s *Service) RestoreFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening backup: %w", err)
	}
	defer f.Close()

	return s.Restore(ctx, f)
}

// ImportCSV reads a Date,Type,Category,Amount,Note projection (the
// shape this app exports) and appends its rows as new transactions in
// a single persist. Categories are resolved by name; unresolvable
// names produce dangling references that render as "Unknown", same as
// a deleted category. Rows that don't look like data (header, blanks,
// unparsable dates or amounts) are skipped. Returns the number of
// imported transactions.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return 0, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("reading csv: %w", err)
	}

	categoryIDs := categoryIDsByName(s.finance.Categories())

	var params []finance.CreateTransactionParams

	for _, row := range rows {
		p, ok := parseRow(row, categoryIDs)
		if !ok {
			continue
		}

		params = append(params, p)
	}

	s.finance.AddTransactions(ctx, params)

	return len(params), nil
}

func categoryIDsByName(categories []finance.Category) map[string]string {
	ids := make(map[string]string, len(categories))
	for _, cat := range categories {
		ids[strings.ToLower(cat.Name)] = cat.ID
	}

	return ids
}

func parseRow(row []string, categoryIDs map[string]string) (finance.CreateTransactionParams, bool) {
	if len(row) < 5 {
		return finance.CreateTransactionParams{}, false
	}

	date, err := time.Parse(time.DateOnly, strings.TrimSpace(row[0]))
	if err != nil {
		return finance.CreateTransactionParams{}, false
	}

	txType := finance.Type(strings.ToLower(strings.TrimSpace(row[1])))
	if txType != finance.TypeIncome && txType != finance.TypeExpense {
		return finance.CreateTransactionParams{}, false
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(row[3]))
	if err != nil || amount.IsNegative() {
		return finance.CreateTransactionParams{}, false
	}

	return finance.CreateTransactionParams{
		Amount:     amount.InexactFloat64(),
		Type:       txType,
		CategoryID: categoryIDs[strings.ToLower(strings.TrimSpace(row[2]))],
		Note:       row[4],
		Date:       date,
	}, true
}
