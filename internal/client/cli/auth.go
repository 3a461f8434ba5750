package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/meanblog/internal/client/api"
	"github.com/dmitrijs2005/meanblog/internal/common"
)

var errPasswordMismatch = errors.New("passwords do not match")

// Indirections over the interactive input helpers, swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, username and a confirmed password and
// creates the account. The server's answer is printed as is.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := a.confirmedPassword("Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	msg, err := a.api.Register(ctx, email, username, string(password))
	if err != nil {
		return a.apiError(err)
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

// Login prompts for credentials. On success the token is kept by the API
// client for the guarded commands.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	name, err := a.api.Login(ctx, username, string(password))
	if err != nil {
		return a.apiError(err)
	}

	a.setUserName(name)
	a.setMode(ModeOnline)
	log.Printf("Login successful")
	return nil
}

// Logout forgets the token. Tokens are not revoked server-side.
func (a *App) Logout(context.Context) error {
	a.api.SetToken("")
	a.setUserName("")
	return nil
}

func (a *App) confirmedPassword(prompt string) ([]byte, error) {
	password, err := getPassword(a.out, prompt)
	if err != nil {
		return nil, err
	}
	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		common.WipeByteArray(password)
		return nil, err
	}
	defer common.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		common.WipeByteArray(password)
		return nil, errPasswordMismatch
	}
	return password, nil
}

// apiError updates the mode for transport failures and drops a rejected token.
func (a *App) apiError(err error) error {
	switch {
	case errors.Is(err, api.ErrUnavailable):
		a.setMode(ModeOffline)
	case errors.Is(err, api.ErrUnauthorized):
		a.api.SetToken("")
		a.setUserName("")
	}
	return err
}
