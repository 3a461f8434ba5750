package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"endpoint_addr_http":      "www.example:9000",
		"route_prefix":            "/api/auth",
		"store_type":              "postgres",
		"mongo_uri":               "mongodb://m",
		"mongo_database":          "blog",
		"database_dsn":            "postgres://db",
		"secret_key":              "my_secret_key",
		"token_validity_duration": "2h",
		"bcrypt_cost":             11,
		"cors_origins":            []string{"https://blog.example"},
		"rate_limit":              1.5,
		"rate_burst":              4,
		"redis_url":               "redis://r:6379",
		"sendgrid_api_key":        "SG.x",
		"mail_from":               "me@blog.example",
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, parseJson(cfg, []string{"-config", path}))

		assert.Equal(t, &Config{
			EndpointAddrHTTP:      "www.example:9000",
			RoutePrefix:           "/api/auth",
			StoreType:             "postgres",
			MongoURI:              "mongodb://m",
			MongoDatabase:         "blog",
			DatabaseDSN:           "postgres://db",
			SecretKey:             "my_secret_key",
			TokenValidityDuration: 2 * time.Hour,
			BcryptCost:            11,
			CORSOrigins:           []string{"https://blog.example"},
			RateLimit:             1.5,
			RateBurst:             4,
			RedisURL:              "redis://r:6379",
			SendGridAPIKey:        "SG.x",
			MailFrom:              "me@blog.example",
		}, cfg)
	})

	t.Run("no config flag, no changes", func(t *testing.T) {
		var cfg Config
		cfg.LoadDefaults()
		want := cfg

		require.NoError(t, parseJson(&cfg, []string{"-a", ":1"}))
		assert.Equal(t, want, cfg)
	})

	t.Run("absent fields keep current values", func(t *testing.T) {
		partial := writeTempJSON(t, "", "partial.json", map[string]any{"mongo_database": "other"})

		var cfg Config
		cfg.LoadDefaults()
		require.NoError(t, parseJson(&cfg, []string{"-c", partial}))

		assert.Equal(t, "other", cfg.MongoDatabase)
		assert.Equal(t, ":8888", cfg.EndpointAddrHTTP)
		assert.Equal(t, 24*time.Hour, cfg.TokenValidityDuration)
		assert.Equal(t, 20, cfg.RateBurst)
	})

	t.Run("missing file", func(t *testing.T) {
		err := parseJson(&Config{}, []string{"-c", filepath.Join(t.TempDir(), "nope.json")})
		assert.ErrorContains(t, err, "error reading config file")
	})

	t.Run("invalid json", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))

		err := parseJson(&Config{}, []string{"-c", bad})
		assert.ErrorContains(t, err, "error parsing config file")
	})
}
