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
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{
			name:     "all flags",
			args:     []string{"-a", "http://127.0.0.1:9090", "-prefix", "/auth", "-i", "10"},
			expected: &Config{ServerAddr: "http://127.0.0.1:9090", RoutePrefix: "/auth", OnlineCheckInterval: 10 * time.Second},
		},
		{
			name:     "foreign flags ignored",
			args:     []string{"-c", "cfg.json", "-x", "-i", "1"},
			expected: &Config{ServerAddr: "http://localhost:8888", RoutePrefix: "/authentication", OnlineCheckInterval: time.Second},
		},
		{
			name:    "incorrect check interval",
			args:    []string{"-i", "abc"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.LoadDefaults()

			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
