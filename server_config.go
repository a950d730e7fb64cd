package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ServerConfig controls the web server and export behavior.
//
// These values come from the environment so deployment settings stay out of
// the YAML scenario file.
type ServerConfig struct {
	Addr      string `env:"RENTORSELL_ADDR" envDefault:"localhost:8080"`
	ExportDir string `env:"RENTORSELL_EXPORT_DIR" envDefault:"exports"`
	Language  string `env:"RENTORSELL_LANG"` // overrides the system locale when set
}

// LoadServerConfig loads server configuration from the environment, reading a
// .env file first when one is present.
func LoadServerConfig() (ServerConfig, error) {
	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
