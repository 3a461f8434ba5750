// Package httpapi exposes the account operations as a JSON REST API.
//
// Every response is an HTTP 200 envelope {"success": bool, "message": string}
// so the single-page client can branch on the body alone. Only the rate
// limiter, panics and unknown routes produce other status codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/meanblog/internal/logging"
	"github.com/dmitrijs2005/meanblog/internal/server/models"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 5 * time.Second

// UserService is the business logic the handlers delegate to.
type UserService interface {
	Register(ctx context.Context, email, username, password string) (*models.User, error)
	EmailAvailable(ctx context.Context, email string) (bool, error)
	UsernameAvailable(ctx context.Context, username string) (bool, error)
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	Authenticate(token string) (string, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
}

// Options configures the HTTP server.
type Options struct {
	Address     string
	RoutePrefix string
	CORSOrigins []string
	// RateLimiter guards the authentication group; nil disables limiting.
	RateLimiter middleware.RateLimiterStore
}

type HTTPServer struct {
	address string
	users   UserService
	logger  logging.Logger
	e       *echo.Echo
}

func NewHTTPServer(opts Options, l logging.Logger, us UserService) *HTTPServer {
	s := &HTTPServer{
		address: opts.Address,
		users:   us,
		logger:  l.With("module", "http_server"),
		e:       echo.New(),
	}
	s.e.HideBanner = true
	s.e.HidePort = true

	s.e.Use(middleware.Recover())
	s.e.Use(s.requestID())
	s.e.Use(s.accessLog())
	s.e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: opts.CORSOrigins,
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
	}))

	s.e.GET("/health", s.health)

	g := s.e.Group(opts.RoutePrefix)
	if opts.RateLimiter != nil {
		g.Use(rateLimit(opts.RateLimiter))
	}

	g.POST("/register", s.register)
	g.GET("/checkEmail", s.checkEmail)
	g.GET("/checkEmail/:email", s.checkEmail)
	g.GET("/checkUsername", s.checkUsername)
	g.GET("/checkUsername/:username", s.checkUsername)
	g.POST("/login", s.login)

	guarded := g.Group("", s.authGuard)
	guarded.GET("/profile", s.profile)
	guarded.PUT("/password", s.changePassword)

	return s
}

// Handler returns the root handler, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.e
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := s.e.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
