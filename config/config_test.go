package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"PORT", "JWT_SECRET_KEY", "JWT_SECRET", "DATABASE_URL", "LOG_LEVEL", "BOUNTY_EXPIRY_INTERVAL", "ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, InsecureJWTSecret, cfg.Auth.JWTSecret)
	assert.True(t, cfg.Auth.IsInsecure())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Zero(t, cfg.Jobs.BountyExpiryInterval)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = 8080
allowed_origins = "http://a.test, http://b.test"

[auth]
jwt_secret = "from-file"

[log]
level = "debug"
`), 0o600))

	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("BOUNTY_EXPIRY_INTERVAL", "5m")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.False(t, cfg.Auth.IsInsecure())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5*time.Minute, cfg.Jobs.BountyExpiryInterval)
	assert.Equal(t, "http://a.test,http://b.test", cfg.Server.Origins())
	// untouched by the file
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
}

func TestJWTSecretKeyWinsOverJWTSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET_KEY", "primary")
	t.Setenv("JWT_SECRET", "secondary")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.Auth.JWTSecret)
}

func TestMissingFileIsIgnored(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
}

func TestBadPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "abc")
	_, err := Load("")
	assert.Error(t, err)
}
