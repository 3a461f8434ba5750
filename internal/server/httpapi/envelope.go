package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const msgInternal = "Something went wrong"

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type loginResponse struct {
	envelope
	Token string     `json:"token"`
	User  publicUser `json:"user"`
}

type profileResponse struct {
	Success bool        `json:"success"`
	User    profileUser `json:"user"`
}

type publicUser struct {
	Username string `json:"username"`
}

type profileUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func ok(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Message: msg})
}

func fail(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, envelope{Success: false, Message: msg})
}
