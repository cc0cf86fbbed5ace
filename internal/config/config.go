// Package config parses server settings from the environment and flags.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds server configuration. Flags override environment values.
type Config struct {
	Addr        string `env:"TRAIL_ADDR" envDefault:":8080"`
	StorePath   string `env:"TRAIL_STORE_PATH"`
	Seed        int64  `env:"TRAIL_SEED"`
	CatalogPath string `env:"TRAIL_CATALOG_PATH"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.StorePath, "store", cfg.StorePath, "SQLite file for wagon trains (empty keeps them in memory)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for deterministic dice (0 uses crypto randomness)")
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "Catalog YAML file (empty uses the built-in catalog)")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	return cfg, nil
}
