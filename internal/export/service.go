package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/moneywise/internal/clock"
	"github.com/MrJamesThe3rd/moneywise/internal/finance"
)

// csvHeader is the fixed column layout of the CSV projection.
const csvHeader = "Date,Type,Category,Amount,Note"

// Service renders the aggregate as a JSON backup or a CSV projection
// and writes either to an output directory. The clock only feeds the
// date stamp in generated filenames.
type Service struct {
	finance *finance.Service
	clock   clock.Clock
}

func NewService(financeSvc *finance.Service, c clock.Clock) *Service {
	return &Service{finance: financeSvc, clock: c}
}

// JSON renders the full aggregate, pretty-printed with two-space
// indentation. The same bytes serve the downloadable backup and the
// copy-as-text path.
func (s *Service) JSON() ([]byte, error) {
	data := s.finance.Snapshot()

	raw, err := json.MarshalIndent(&data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding backup: %w", err)
	}

	return raw, nil
}

// CSV renders one row per transaction with the category resolved by id
// (falling back to "Unknown"). The note is always quoted, with
// embedded quotes doubled.
func (s *Service) CSV() string {
	data := s.finance.Snapshot()

	var sb strings.Builder

	sb.WriteString(csvHeader)

	for _, tx := range data.Transactions {
		sb.WriteByte('\n')
		sb.WriteString(strings.Join([]string{
			tx.Date.Format(time.DateOnly),
			string(tx.Type),
			data.CategoryName(tx.CategoryID),
			strconv.FormatFloat(tx.Amount, 'f', -1, 64),
			quoteNote(tx.Note),
		}, ","))
	}

	return sb.String()
}

// BackupFilename returns finance-backup-<ISO date>.json for today.
func (s *Service) BackupFilename() string {
	return fmt.Sprintf("finance-backup-%s.json", s.clock.Now().Format(time.DateOnly))
}

// CSVFilename returns transactions-<ISO date>.csv for today.
func (s *Service) CSVFilename() string {
	return fmt.Sprintf("transactions-%s.csv", s.clock.Now().Format(time.DateOnly))
}

// WriteBackup writes the JSON backup into dir and returns the full
// path.
func (s *Service) WriteBackup(dir string) (string, error) {
	raw, err := s.JSON()
	if err != nil {
		return "", err
	}

	return s.writeFile(dir, s.BackupFilename(), raw)
}

// WriteCSV writes the CSV projection into dir and returns the full
// path.
func (s *Service) WriteCSV(dir string) (string, error) {
	return s.writeFile(dir, s.CSVFilename(), []byte(s.CSV()))
}

func (s *Service) writeFile(dir, name string, content []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}

	return path, nil
}

// quoteNote wraps the note in quotes unconditionally, doubling any
// embedded quote per standard CSV escaping.
func quoteNote(note string) string {
	return `"` + strings.ReplaceAll(note, `"`, `""`) + `"`
}
