package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/meanblog/internal/flagx"
	"github.com/dmitrijs2005/meanblog/internal/timex"
)

// JsonConfig is the on-disk shape of the client config file. The interval
// may be a duration string like "3s" or integer nanoseconds.
type JsonConfig struct {
	ServerAddr          string          `json:"server_addr"`
	RoutePrefix         string          `json:"route_prefix"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	if jc.ServerAddr != "" {
		cfg.ServerAddr = jc.ServerAddr
	}
	if jc.RoutePrefix != "" {
		cfg.RoutePrefix = jc.RoutePrefix
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	return nil
}
