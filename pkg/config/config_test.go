package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "touristplaces.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
  write_timeout: 45s
data:
  path: /srv/places.csv
  page_size: 25
elasticsearch:
  addresses: ["http://localhost:9200"]
  flush_interval: 10s
auth:
  jwt_key: from-file
  token_ttl: 15m
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 45*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout, "defaults survive")
	assert.Equal(t, "/srv/places.csv", cfg.Data.Path)
	assert.Equal(t, 25, cfg.Data.PageSize)
	assert.Equal(t, 6, cfg.Data.Horizon)
	assert.True(t, cfg.Elasticsearch.Enabled())
	assert.Equal(t, "places", cfg.Elasticsearch.Index)
	assert.Equal(t, 10*time.Second, cfg.Elasticsearch.FlushInterval)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "auth:\n  jwt_key: from-file\n")
	t.Setenv("TOURIST_ADDR", ":7000")
	t.Setenv("TOURIST_JWT_KEY", "from-env")
	t.Setenv("TOURIST_ES_ADDRESSES", "http://es1:9200, http://es2:9200,")
	t.Setenv("TOURIST_PAGE_SIZE", "5")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "from-env", cfg.Auth.JWTKey)
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.Elasticsearch.Addresses)
	assert.Equal(t, 5, cfg.Data.PageSize)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
	t.Run("unknown field", func(t *testing.T) {
		_, err := Load(writeConfig(t, "auth:\n  jwt_key: k\nbogus: 1\n"))
		assert.Error(t, err)
	})
	t.Run("no jwt key", func(t *testing.T) {
		_, err := Load(writeConfig(t, "data:\n  page_size: 3\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt_key")
	})
	t.Run("bad env int", func(t *testing.T) {
		t.Setenv("TOURIST_HORIZON", "soon")
		_, err := Load(writeConfig(t, "auth:\n  jwt_key: k\n"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.Auth.JWTKey = "k"
	require.NoError(t, valid.Validate())

	tests := map[string]func(*Config){
		"empty addr":     func(c *Config) { c.Server.Addr = "" },
		"empty data":     func(c *Config) { c.Data.Path = "" },
		"zero page size": func(c *Config) { c.Data.PageSize = 0 },
		"zero horizon":   func(c *Config) { c.Data.Horizon = 0 },
		"long horizon":   func(c *Config) { c.Data.Horizon = 1000000 },
		"zero ttl":       func(c *Config) { c.Auth.TokenTTL = 0 },
		"es without index": func(c *Config) {
			c.Elasticsearch.Addresses = []string{"http://es:9200"}
			c.Elasticsearch.Index = ""
		},
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
