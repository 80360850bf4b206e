/*
Package config loads server configuration from the environment.

PURPOSE:
  All knobs live in one struct, populated by envconfig with sane defaults
  so the server runs with no environment at all. Command-line flags in
  cmd/server override the environment for local development.

ENVIRONMENT VARIABLES:
  CARD_ENGINE_PORT            HTTP port             (default 8080)
  CARD_ENGINE_STORE_BACKEND   "memory" | "sqlite"   (default memory)
  CARD_ENGINE_STORE_DSN       SQLite path           (default cards.db)
  CARD_ENGINE_ISSUER_PREFIX   accepted card prefix  (default "4")
*/
package config

import "github.com/kelseyhightower/envconfig"

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

type ServerConfig struct {
	Port int `envconfig:"CARD_ENGINE_PORT" default:"8080"`
}

type StoreConfig struct {
	Backend string `envconfig:"CARD_ENGINE_STORE_BACKEND" default:"memory"`
	DSN     string `envconfig:"CARD_ENGINE_STORE_DSN" default:"cards.db"`
}

type GatewayConfig struct {
	IssuerPrefix string `envconfig:"CARD_ENGINE_ISSUER_PREFIX" default:"4"`
}

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Gateway GatewayConfig
}

// Load populates Config from the process environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
