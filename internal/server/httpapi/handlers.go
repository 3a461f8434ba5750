package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/meanblog/internal/common"
	"github.com/dmitrijs2005/meanblog/internal/server/validation"
	"github.com/labstack/echo/v4"
)

const (
	msgBadRequest        = "Invalid request body"
	msgAlreadyExists     = "Username or email already exists"
	msgRegistered        = "Account registered"
	msgNoEmail           = "Email was not provided"
	msgEmailTaken        = "Email is already taken"
	msgEmailAvailable    = "Email is available"
	msgNoUsername        = "Username was not provided"
	msgUsernameTaken     = "Username is already taken"
	msgUsernameAvailable = "Username is available"
	msgLoginNoUsername   = "No username was provided"
	msgLoginNoPassword   = "No password was provided"
	msgUsernameNotFound  = "Username not found"
	msgPasswordIncorrect = "Password is incorrect"
	msgLoginSuccess      = "Success!"
	msgUserNotFound      = "User not found"
	msgNoCurrentPassword = "You must provide your current password"
	msgNoNewPassword     = "You must provide a new password"
	msgPasswordUpdated   = "Password updated"
	msgHealthy           = "ok"
)

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *HTTPServer) health(c echo.Context) error {
	return ok(c, msgHealthy)
}

func (s *HTTPServer) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, msgBadRequest)
	}

	ctx := c.Request().Context()
	if _, err := s.users.Register(ctx, req.Email, req.Username, req.Password); err != nil {
		if fe, ok := validation.AsFieldError(err); ok {
			return fail(c, fe.Message)
		}
		if errors.Is(err, common.ErrAlreadyExists) {
			return fail(c, msgAlreadyExists)
		}
		return s.internalError(c, "register", err)
	}

	return ok(c, msgRegistered)
}

func (s *HTTPServer) checkEmail(c echo.Context) error {
	email := c.Param("email")
	if email == "" {
		return fail(c, msgNoEmail)
	}

	available, err := s.users.EmailAvailable(c.Request().Context(), email)
	switch {
	case errors.Is(err, common.ErrMissingField):
		return fail(c, msgNoEmail)
	case err != nil:
		return s.internalError(c, "check email", err)
	case !available:
		return fail(c, msgEmailTaken)
	}
	return ok(c, msgEmailAvailable)
}

func (s *HTTPServer) checkUsername(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return fail(c, msgNoUsername)
	}

	available, err := s.users.UsernameAvailable(c.Request().Context(), username)
	switch {
	case errors.Is(err, common.ErrMissingField):
		return fail(c, msgNoUsername)
	case err != nil:
		return s.internalError(c, "check username", err)
	case !available:
		return fail(c, msgUsernameTaken)
	}
	return ok(c, msgUsernameAvailable)
}

func (s *HTTPServer) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, msgBadRequest)
	}
	if strings.TrimSpace(req.Username) == "" {
		return fail(c, msgLoginNoUsername)
	}
	if req.Password == "" {
		return fail(c, msgLoginNoPassword)
	}

	token, user, err := s.users.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return fail(c, msgUsernameNotFound)
		case errors.Is(err, common.ErrInvalidCredentials):
			return fail(c, msgPasswordIncorrect)
		}
		return s.internalError(c, "login", err)
	}

	return c.JSON(http.StatusOK, loginResponse{
		envelope: envelope{Success: true, Message: msgLoginSuccess},
		Token:    token,
		User:     publicUser{Username: user.Username},
	})
}

func (s *HTTPServer) profile(c echo.Context) error {
	user, err := s.users.Profile(c.Request().Context(), userIDFrom(c))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fail(c, msgUserNotFound)
		}
		return s.internalError(c, "profile", err)
	}

	return c.JSON(http.StatusOK, profileResponse{
		Success: true,
		User:    profileUser{Username: user.Username, Email: user.Email},
	})
}

func (s *HTTPServer) changePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, msgBadRequest)
	}
	if req.CurrentPassword == "" {
		return fail(c, msgNoCurrentPassword)
	}
	if req.NewPassword == "" {
		return fail(c, msgNoNewPassword)
	}

	err := s.users.ChangePassword(c.Request().Context(), userIDFrom(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		if fe, ok := validation.AsFieldError(err); ok {
			return fail(c, fe.Message)
		}
		switch {
		case errors.Is(err, common.ErrInvalidCredentials):
			return fail(c, msgPasswordIncorrect)
		case errors.Is(err, common.ErrorNotFound):
			return fail(c, msgUserNotFound)
		}
		return s.internalError(c, "change password", err)
	}

	return ok(c, msgPasswordUpdated)
}

// internalError logs err and answers with a generic message; storage details
// never reach the client.
func (s *HTTPServer) internalError(c echo.Context, op string, err error) error {
	s.logger.Error(c.Request().Context(), "request failed", "op", op, "error", err)
	return fail(c, msgInternal)
}
