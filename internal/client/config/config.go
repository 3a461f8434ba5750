package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the terminal client.
type Config struct {
	ServerAddr          string
	RoutePrefix         string
	OnlineCheckInterval time.Duration
}

// LoadDefaults points the client at a server on localhost.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://localhost:8888"
	c.RoutePrefix = "/authentication"
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig applies defaults, then the JSON file, then flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
