package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Fatura"`
	}

	Store struct {
		// Path of the BoltDB file holding the invoice collection.
		Path string `envconfig:"FATURA_DB_PATH" default:"fatura.db"`
	}

	List struct {
		PageSize int `envconfig:"FATURA_PAGE_SIZE" default:"5"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.List.PageSize < 1 {
		return nil, fmt.Errorf("page size must be at least 1, got %d", cfg.List.PageSize)
	}

	return &cfg, nil
}
