// Package validation checks user-supplied account fields.
//
// Each field is checked for presence, then length, then format, in the order
// email, username, password. The first failure wins.
// Uniqueness is not checked here: the store enforces it.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/meanblog/internal/common"
)

const (
	FieldEmail    = "email"
	FieldUsername = "username"
	FieldPassword = "password"

	ReasonRequired = "required"
	ReasonLength   = "length"
	ReasonFormat   = "format"
)

const (
	MsgEmailRequired    = "You must provide an email"
	MsgEmailLength      = "E-mail must be at least 5 characters but no more than 30"
	MsgEmailFormat      = "Must be a valid e-mail"
	MsgUsernameRequired = "You must provide a username"
	MsgUsernameLength   = "Username must be at least 3 characters but no more than 15"
	MsgUsernameFormat   = "Username must not have any special characters"
	MsgPasswordRequired = "You must provide a password"
	MsgPasswordLength   = "Password must be at least 8 characters but no more than 35"
	MsgPasswordFormat   = "Must have at least one uppercase, lowercase, special character, and number"
)

var (
	emailRe    = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// FieldError describes the first rule a field failed.
type FieldError struct {
	Field   string
	Reason  string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Is makes every FieldError match common.ErrValidation, and missing fields
// additionally match common.ErrMissingField.
func (e *FieldError) Is(target error) bool {
	switch target {
	case common.ErrValidation:
		return true
	case common.ErrMissingField:
		return e.Reason == ReasonRequired
	}
	return false
}

// AsFieldError unwraps err into a *FieldError if it carries one.
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// Normalize lower-cases and trims an e-mail or username the way it is stored.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Registration validates a full set of account fields. Missing fields are
// reported before any length or format problem. Email and username are
// expected to be normalized already.
func Registration(email, username, password string) error {
	switch {
	case email == "":
		return &FieldError{FieldEmail, ReasonRequired, MsgEmailRequired}
	case username == "":
		return &FieldError{FieldUsername, ReasonRequired, MsgUsernameRequired}
	case password == "":
		return &FieldError{FieldPassword, ReasonRequired, MsgPasswordRequired}
	}

	if err := Email(email); err != nil {
		return err
	}
	if err := Username(username); err != nil {
		return err
	}
	return Password(password)
}

func Email(email string) error {
	switch {
	case email == "":
		return &FieldError{FieldEmail, ReasonRequired, MsgEmailRequired}
	case !lengthBetween(email, 5, 30):
		return &FieldError{FieldEmail, ReasonLength, MsgEmailLength}
	case !emailRe.MatchString(email):
		return &FieldError{FieldEmail, ReasonFormat, MsgEmailFormat}
	}
	return nil
}

func Username(username string) error {
	switch {
	case username == "":
		return &FieldError{FieldUsername, ReasonRequired, MsgUsernameRequired}
	case !lengthBetween(username, 3, 15):
		return &FieldError{FieldUsername, ReasonLength, MsgUsernameLength}
	case !usernameRe.MatchString(username):
		return &FieldError{FieldUsername, ReasonFormat, MsgUsernameFormat}
	}
	return nil
}

func Password(password string) error {
	switch {
	case password == "":
		return &FieldError{FieldPassword, ReasonRequired, MsgPasswordRequired}
	case !lengthBetween(password, 8, 35), len(password) > maxPasswordBytes:
		return &FieldError{FieldPassword, ReasonLength, MsgPasswordLength}
	case !strongPassword(password):
		return &FieldError{FieldPassword, ReasonFormat, MsgPasswordFormat}
	}
	return nil
}

// maxPasswordBytes is the most bcrypt accepts.
const maxPasswordBytes = 72

func lengthBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

// strongPassword requires a lower-case letter, an upper-case letter, a digit
// and a non-word character (anything outside [A-Za-z0-9_]).
func strongPassword(p string) bool {
	var lower, upper, digit, special bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case r != '_':
			special = true
		}
	}
	return lower && upper && digit && special
}
