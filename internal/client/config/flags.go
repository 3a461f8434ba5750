package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/meanblog/internal/flagx"
)

// parseFlags overlays -a (server URL), -prefix (route prefix) and
// -i (online check interval, seconds).
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerAddr, "a", cfg.ServerAddr, "server URL")
	fs.StringVar(&cfg.RoutePrefix, "prefix", cfg.RoutePrefix, "route prefix of the authentication API")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-a", "-prefix", "-i"})); err != nil {
		return err
	}

	cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
	return nil
}
