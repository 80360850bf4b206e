package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/card-engine/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, config.BackendMemory, cfg.Store.Backend)
	assert.Equal(t, "cards.db", cfg.Store.DSN)
	assert.Equal(t, "4", cfg.Gateway.IssuerPrefix)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("CARD_ENGINE_PORT", "9090")
	t.Setenv("CARD_ENGINE_STORE_BACKEND", "sqlite")
	t.Setenv("CARD_ENGINE_ISSUER_PREFIX", "51")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, config.BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "51", cfg.Gateway.IssuerPrefix)
}
