package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *Config
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-prefix", "/auth", "-store", "postgres",
				"-m", "mongodb://m", "-n", "blog", "-d", "db", "-s", "secret", "-t", "60",
				"-bcrypt-cost", "12", "-cors", "http://a.test,http://b.test",
				"-rl", "3", "-rb", "6", "-r", "redis://r",
			},
			expected: &Config{
				EndpointAddrHTTP:      "127.0.0.1:9090",
				RoutePrefix:           "/auth",
				StoreType:             "postgres",
				MongoURI:              "mongodb://m",
				MongoDatabase:         "blog",
				DatabaseDSN:           "db",
				SecretKey:             "secret",
				TokenValidityDuration: time.Hour,
				BcryptCost:            12,
				CORSOrigins:           []string{"http://a.test", "http://b.test"},
				RateLimit:             3,
				RateBurst:             6,
				RedisURL:              "redis://r",
			},
		},
		{
			name: "unknown flags are ignored",
			args: []string{"-c", "conf.json", "-x", "1", "-a", ":1"},
			expected: &Config{
				EndpointAddrHTTP: ":1",
			},
		},
		{
			name:    "bad int",
			args:    []string{"-t", "soon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			err := parseFlags(config, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestParseFlags_UnsetKeepsCurrent(t *testing.T) {
	var c Config
	c.LoadDefaults()

	require.NoError(t, parseFlags(&c, nil))
	assert.Equal(t, 24*time.Hour, c.TokenValidityDuration)
	assert.Equal(t, []string{"http://localhost:4200"}, c.CORSOrigins)
}
