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
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dev.yaml")
	body := `
server:
  addr: "127.0.0.1:9000"
  request_timeout: 0s
store:
  driver: postgres
  uri: "postgres://u@localhost/webnews?sslmode=disable"
  collection: articles
api:
  not_found: empty
  expose_errors: true
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load([]string{"--config", path})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, time.Duration(0), cfg.Server.RequestTimeout)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "articles", cfg.Store.Collection)
	assert.Equal(t, NotFoundEmpty, cfg.API.NotFound)
	assert.True(t, cfg.API.ExposeErrors)
	assert.Equal(t, "debug", cfg.Log.Level)
	// untouched keys keep their defaults
	assert.Equal(t, "webnews", cfg.Store.Database)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_EnvAndFlags(t *testing.T) {
	t.Setenv("WEBNEWS_STORE_URI", "mongodb://mongo:27017")
	t.Setenv("WEBNEWS_API_NOT_FOUND", "empty")
	t.Setenv("PORT", "8081")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "mongodb://mongo:27017", cfg.Store.URI)
	assert.Equal(t, NotFoundEmpty, cfg.API.NotFound)
	assert.Equal(t, "0.0.0.0:8081", cfg.Server.Addr)

	cfg, err = Load([]string{"--addr", ":7000"})
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:   "defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "no addr",
			mutate:  func(c *Config) { c.Server.Addr = "" },
			wantErr: ErrMissingAddr,
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Store.Driver = "redis" },
			wantErr: ErrInvalidDriver,
		},
		{
			name:    "no uri",
			mutate:  func(c *Config) { c.Store.URI = "" },
			wantErr: ErrMissingURI,
		},
		{
			name:    "mongo without database",
			mutate:  func(c *Config) { c.Store.Database = "" },
			wantErr: ErrMissingDatabase,
		},
		{
			name: "postgres without database",
			mutate: func(c *Config) {
				c.Store.Driver = DriverPostgres
				c.Store.Database = ""
			},
		},
		{
			name:    "no collection",
			mutate:  func(c *Config) { c.Store.Collection = "" },
			wantErr: ErrMissingCollection,
		},
		{
			name:    "bad not found policy",
			mutate:  func(c *Config) { c.API.NotFound = "410" },
			wantErr: ErrInvalidNotFound,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "trace" },
			wantErr: ErrInvalidLogLevel,
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Server.RequestTimeout = -time.Second },
			wantErr: ErrNegativeTimeout,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tc.wantErr)
		})
	}
}
