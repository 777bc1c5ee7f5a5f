package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"budgetmd"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Vault struct {
		// Dir is the root the budget folder and data file live under.
		Dir      string `envconfig:"VAULT_DIR" default:"."`
		DataFile string `envconfig:"DATA_FILE" default:"budget-data.json"`
	}

	// Locale overrides detection ("en" or "pl"); empty means detect
	// from the environment.
	Locale string `envconfig:"LOCALE" default:""`

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
