package cli

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/meanblog/internal/client/api"
	"github.com/dmitrijs2005/meanblog/internal/client/config"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// apiClient is the part of api.HTTPClient the commands use.
type apiClient interface {
	Register(ctx context.Context, email, username, password string) (string, error)
	CheckEmail(ctx context.Context, email string) (string, error)
	CheckUsername(ctx context.Context, username string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	Profile(ctx context.Context) (*api.Profile, error)
	ChangePassword(ctx context.Context, current, next string) (string, error)
	Ping(ctx context.Context) error
	SetToken(token string)
	Token() string
}

// App is driven by the REPL goroutine and the online watcher; mode and
// userName are guarded by mu.
type App struct {
	config *config.Config
	api    apiClient
	reader *bufio.Reader
	out    io.Writer

	mu       sync.RWMutex
	userName string
	mode     Mode
}

func NewApp(c *config.Config) (*App, error) {
	client, err := api.NewHTTPClient(c.ServerAddr, c.RoutePrefix)
	if err != nil {
		return nil, err
	}

	return &App{config: c, api: client, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setUserName(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userName = name
}

// Run blocks in the REPL until the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.api.Token() != ""
}

// StartOnlineStatusWatcher pings the server every interval and flips the mode
// accordingly.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
