package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8088
  mode: debug
database:
  driver: sqlite
  path: /tmp/rent-test.db
jwt:
  secret: s3cret
  expire_hours: 2
log:
  level: debug
  env: dev
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "0.0.0.0", cfg.Server.Address)
	assert.Equal(t, "/tmp/rent-test.db", cfg.Database.Path)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 2, cfg.JWT.ExpireHours)
	assert.Equal(t, 12, cfg.Security.BcryptCost)
	assert.Equal(t, "dev", cfg.Log.Env)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: from-file\n")
	t.Setenv("RENT_SERVER_PORT", "9100")
	t.Setenv("RENT_JWT_SECRET", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("RENT_JWT_SECRET", "x")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"no secret", Config{Database: DatabaseConfig{Driver: "sqlite", Path: "a.db"}}, false},
		{"sqlite ok", Config{JWT: JWTConfig{Secret: "k"}, Database: DatabaseConfig{Driver: "sqlite", Path: "a.db"}}, true},
		{"postgres without dsn", Config{JWT: JWTConfig{Secret: "k"}, Database: DatabaseConfig{Driver: "postgres"}}, false},
		{"unknown driver", Config{JWT: JWTConfig{Secret: "k"}, Database: DatabaseConfig{Driver: "mongo"}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
