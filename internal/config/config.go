package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	App struct {
		Name string `envconfig:"MONEYWISE_APP_NAME" default:"MoneyWise"`
	}

	Storage struct {
		// Backend selects how the aggregate is persisted: a plain JSON
		// document ("file") or a local SQLite database ("sqlite").
		Backend string `envconfig:"MONEYWISE_STORAGE_BACKEND" default:"file"`
		// Path of the data file. Defaults under ~/.moneywise.
		Path string `envconfig:"MONEYWISE_DATA_PATH"`
	}

	Export struct {
		Dir string `envconfig:"MONEYWISE_EXPORT_DIR" default:"."`
	}

	Currency struct {
		Symbol string `envconfig:"MONEYWISE_CURRENCY_SYMBOL" default:"₹"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Storage.Backend != BackendFile && cfg.Storage.Backend != BackendSQLite {
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}

	if cfg.Storage.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}

		name := "finance_data.json"
		if cfg.Storage.Backend == BackendSQLite {
			name = "moneywise.db"
		}

		cfg.Storage.Path = filepath.Join(home, ".moneywise", name)
	}

	return &cfg, nil
}
