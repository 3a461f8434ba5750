// Package server wires the configured storage backend, services and HTTP API
// together and runs them until the process is asked to stop.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/meanblog/internal/logging"
	"github.com/dmitrijs2005/meanblog/internal/server/auth"
	"github.com/dmitrijs2005/meanblog/internal/server/config"
	"github.com/dmitrijs2005/meanblog/internal/server/httpapi"
	"github.com/dmitrijs2005/meanblog/internal/server/notify"
	"github.com/dmitrijs2005/meanblog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/meanblog/internal/server/services"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

const (
	connectTimeout = 10 * time.Second
	closeTimeout   = 5 * time.Second
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	redis       *redis.Client
	userService *services.UserService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	rm, err := repomanager.Open(ctx, repomanager.Options{
		Store:         c.StoreType,
		MongoURI:      c.MongoURI,
		MongoDatabase: c.MongoDatabase,
		DatabaseDSN:   c.DatabaseDSN,
	})
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.Init(ctx); err != nil {
		_ = rm.Close(ctx)
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app := &App{config: c, logger: logger, repomanager: rm}

	if c.RedisURL != "" {
		opt, err := redis.ParseURL(c.RedisURL)
		if err != nil {
			_ = rm.Close(ctx)
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		app.redis = redis.NewClient(opt)
		if err := app.redis.Ping(ctx).Err(); err != nil {
			logger.Warn(ctx, "redis is not reachable, rate limiting fails open", "error", err)
		}
	}

	us := services.NewUserService(
		rm,
		auth.NewTokenManager([]byte(c.SecretKey), c.TokenValidityDuration),
		auth.NewHasher(c.BcryptCost),
		notify.New(c.SendGridAPIKey, c.MailFrom),
		logger,
	)
	app.userService = us

	logger.Info(ctx, "storage ready", "store", c.StoreType)
	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) rateLimiterStore() middleware.RateLimiterStore {
	if app.config.RateLimit <= 0 {
		return nil
	}
	if app.redis != nil {
		return httpapi.NewRedisRateLimiterStore(app.redis, app.config.RateLimit, app.config.RateBurst, app.logger)
	}
	return httpapi.NewMemoryRateLimiterStore(app.config.RateLimit, app.config.RateBurst)
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(httpapi.Options{
		Address:     app.config.EndpointAddrHTTP,
		RoutePrefix: app.config.RoutePrefix,
		CORSOrigins: app.config.CORSOrigins,
		RateLimiter: app.rateLimiterStore(),
	}, app.logger, app.userService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) close() {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if err := app.repomanager.Close(ctx); err != nil {
		app.logger.Error(ctx, "error closing storage", "error", err)
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error(ctx, "error closing redis", "error", err)
		}
	}
}

// Run serves until SIGINT, SIGTERM or SIGQUIT arrives or ctx is cancelled.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
	app.close()

	app.logger.Info(context.Background(), "App stopped")
}
