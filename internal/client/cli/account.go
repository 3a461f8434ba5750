package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/meanblog/internal/common"
)

var errNotLoggedIn = errors.New("not logged in, use 'login' first")

func (a *App) Profile(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	p, err := a.api.Profile(ctx)
	if err != nil {
		return a.apiError(err)
	}

	fmt.Fprintf(a.out, "Username: %s\nEmail:    %s\n", p.Username, p.Email)
	return nil
}

// ChangePassword asks for the current password and a confirmed new one.
func (a *App) ChangePassword(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	current, err := getPassword(a.out, "Enter current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := a.confirmedPassword("Enter new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	msg, err := a.api.ChangePassword(ctx, string(current), string(next))
	if err != nil {
		return a.apiError(err)
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

// CheckEmail reports whether email is free; it prompts when email is empty.
func (a *App) CheckEmail(ctx context.Context, email string) error {
	if email == "" {
		var err error
		if email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
			return err
		}
	}

	msg, err := a.api.CheckEmail(ctx, email)
	if err != nil {
		return a.apiError(err)
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) CheckUsername(ctx context.Context, username string) error {
	if username == "" {
		var err error
		if username, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
			return err
		}
	}

	msg, err := a.api.CheckUsername(ctx, username)
	if err != nil {
		return a.apiError(err)
	}
	fmt.Fprintln(a.out, msg)
	return nil
}
