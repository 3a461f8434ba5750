package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/meanblog/internal/common"
	"github.com/dmitrijs2005/meanblog/internal/logging"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type ctxKey string

const userIDKey ctxKey = "userID"

const (
	ctxKeyUserID = "user_id"

	msgNoToken         = "No token provided"
	msgInvalidToken    = "Invalid token: "
	msgTooManyRequests = "Too many requests"
)

// requestID tags every request with an id, echoed in X-Request-ID and
// attached to the request context for logging.
func (s *HTTPServer) requestID() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, id string) {
			req := c.Request()
			c.SetRequest(req.WithContext(logging.WithRequestID(req.Context(), id)))
		},
	})
}

func (s *HTTPServer) accessLog() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURIPath: true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info(c.Request().Context(), "request",
				"method", v.Method,
				"path", v.URIPath,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	})
}

// authGuard admits requests carrying a valid token in the Authorization
// header and stores the token's user id in the echo context and in the
// request context.
func (s *HTTPServer) authGuard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := strings.TrimSpace(c.Request().Header.Get(common.AuthorizationHeaderName))
		token = strings.TrimSpace(strings.TrimPrefix(token, common.BearerPrefix))
		if token == "" {
			return fail(c, msgNoToken)
		}

		userID, err := s.users.Authenticate(token)
		if err != nil {
			s.logger.Info(c.Request().Context(), "token rejected", "error", err)
			return fail(c, msgInvalidToken+tokenErrorReason(err))
		}

		c.Set(ctxKeyUserID, userID)
		req := c.Request()
		c.SetRequest(req.WithContext(context.WithValue(req.Context(), userIDKey, userID)))
		return next(c)
	}
}

func tokenErrorReason(err error) string {
	if errors.Is(err, common.ErrTokenExpired) {
		return common.ErrTokenExpired.Error()
	}
	return strings.TrimPrefix(err.Error(), common.ErrInvalidToken.Error()+": ")
}

// UserIDFromContext returns the user id the auth guard put into ctx.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

func userIDFrom(c echo.Context) string {
	id, _ := c.Get(ctxKeyUserID).(string)
	return id
}

func rateLimit(store middleware.RateLimiterStore) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, envelope{Success: false, Message: msgInternal})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, envelope{Success: false, Message: msgTooManyRequests})
		},
	})
}
