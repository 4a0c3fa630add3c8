package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MrJamesThe3rd/moneywise/internal/finance"
)

// FileStorage persists the aggregate as a pretty-printed JSON document
// at a fixed path.
type FileStorage struct {
	path string
}

func NewFile(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load reads the aggregate from disk. A missing file is not an error:
// it returns (nil, nil) so the caller seeds defaults.
func (s *FileStorage) Load(_ context.Context) (*finance.Data, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var data finance.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}

	return &data, nil
}

// Save rewrites the whole document. The write goes through a temp file
// and a rename so a crash mid-write cannot leave a truncated document
// behind.
func (s *FileStorage) Save(_ context.Context, data *finance.Data) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding finance data: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}

	return nil
}
