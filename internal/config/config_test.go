package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, ":3001", cfg.Addr())
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, StoreMemory, cfg.Store())
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvFileDoesNotOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORT=9999\nPETS_FILE=./pets.json\n"), 0o600))

	t.Setenv("PORT", "4000")
	t.Setenv("PETS_FILE", "")
	t.Setenv("JWT_SECRET", "x")

	cfg, err := Load(envFile, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port)
}

func TestConfig_StoreSelection(t *testing.T) {
	assert.Equal(t, StorePostgres, Config{DatabaseDSN: "postgres://x", PetsFile: "p.json"}.Store())
	assert.Equal(t, StoreJSONFile, Config{HeroesFile: "h.json"}.Store())
	assert.Equal(t, StoreMemory, Config{}.Store())
}

func TestConfig_Validate(t *testing.T) {
	assert.ErrorIs(t, Config{TokenTTL: time.Hour, LoginRatePerSec: 1}.Validate(), ErrMissingJWTSecret)
	assert.Error(t, Config{JWTSecret: "x", TokenTTL: 0, LoginRatePerSec: 1}.Validate())
	assert.NoError(t, Config{JWTSecret: "x", TokenTTL: time.Hour, LoginRatePerSec: 1}.Validate())
}

func TestConfig_AllowedOrigins(t *testing.T) {
	cfg := Config{CORSAllowedOrigins: " http://a.test , ,http://b.test"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}
