package cli

import (
	"context"
	"fmt"
	"log"
)

func (a *App) getStatus() string {
	a.mu.RLock()
	userName, mode := a.userName, a.mode
	a.mu.RUnlock()

	s := ""
	if userName != "" {
		s = userName + " "
	}
	if mode != "" {
		s = s + string(mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root probes the server once, starts the connectivity watcher and hands
// stdin over to the REPL.
func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to meanblog CLI (type 'help' for commands)")

	a.checkOnline(ctx)
	if a.config != nil && a.config.OnlineCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
