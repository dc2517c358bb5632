// Package config loads the process configuration from the environment
// and the gameplay tuning from a YAML file.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Addr       string `env:"GEOFORGE_ADDR"        envDefault:":8080"`
	SessionID  string `env:"GEOFORGE_SESSION_ID"  envDefault:"default"`
	TuningPath string `env:"GEOFORGE_TUNING"      envDefault:"configs/tuning.yaml"`

	// Persistence tier selection: Postgres when DBDSN is set, a local
	// SQLite file when SQLitePath is set, in-memory otherwise.
	DBDSN         string `env:"GEOFORGE_DB_DSN"`
	SQLitePath    string `env:"GEOFORGE_SQLITE_PATH"`
	MigrationsDir string `env:"GEOFORGE_MIGRATIONS_DIR" envDefault:"migrations"`
}

func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
