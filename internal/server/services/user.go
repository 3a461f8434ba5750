// Package services contains server-side business logic. This file implements
// UserService: registration, availability checks, login with JWT issuance,
// profile lookup and password changes.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/meanblog/internal/common"
	"github.com/dmitrijs2005/meanblog/internal/logging"
	"github.com/dmitrijs2005/meanblog/internal/server/auth"
	"github.com/dmitrijs2005/meanblog/internal/server/models"
	"github.com/dmitrijs2005/meanblog/internal/server/notify"
	"github.com/dmitrijs2005/meanblog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/meanblog/internal/server/validation"
	"github.com/google/uuid"
)

const notifyTimeout = 5 * time.Second

type UserService struct {
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenManager
	hasher      *auth.Hasher
	notifier    notify.Notifier
	logger      logging.Logger
	now         func() time.Time
}

func NewUserService(m repomanager.RepositoryManager, tokens *auth.TokenManager, hasher *auth.Hasher,
	notifier notify.Notifier, logger logging.Logger) *UserService {
	return &UserService{
		repomanager: m,
		tokens:      tokens,
		hasher:      hasher,
		notifier:    notifier,
		logger:      logger.With("service", "users"),
		now:         time.Now,
	}
}

// Register validates and stores a new account. Validation failures are
// returned as *validation.FieldError; a taken email or username yields
// common.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	email = validation.Normalize(email)
	username = validation.Normalize(username)

	if err := validation.Registration(email, username, password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	now := s.now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	u, err := s.repomanager.Users().Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID, "username", u.Username)
	s.welcome(ctx, u)

	return u, nil
}

func (s *UserService) welcome(ctx context.Context, u *models.User) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if err := s.notifier.Welcome(ctx, u); err != nil {
		s.logger.Warn(ctx, "welcome notification failed", "user_id", u.ID, "error", err)
	}
}

// EmailAvailable reports whether no account uses email.
func (s *UserService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	email = validation.Normalize(email)
	if email == "" {
		return false, fmt.Errorf("%w: email", common.ErrMissingField)
	}
	return s.available(s.repomanager.Users().GetByEmail(ctx, email))
}

// UsernameAvailable reports whether no account uses username.
func (s *UserService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	username = validation.Normalize(username)
	if username == "" {
		return false, fmt.Errorf("%w: username", common.ErrMissingField)
	}
	return s.available(s.repomanager.Users().GetByUsername(ctx, username))
}

func (s *UserService) available(_ *models.User, err error) (bool, error) {
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, common.ErrorNotFound):
		return true, nil
	default:
		return false, fmt.Errorf("error looking up user: %w", err)
	}
}

// Login checks the credentials and returns a fresh token together with the
// account. An unknown username yields common.ErrorNotFound and a wrong
// password common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	username = validation.Normalize(username)
	if username == "" {
		return "", nil, fmt.Errorf("%w: username", common.ErrMissingField)
	}
	if password == "" {
		return "", nil, fmt.Errorf("%w: password", common.ErrMissingField)
	}

	user, err := s.repomanager.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorNotFound
		}
		return "", nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Info(ctx, "login rejected", "username", username)
		return "", nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("error issuing token: %w", err)
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return token, user, nil
}

// Authenticate returns the user id carried by a token issued by Login.
func (s *UserService) Authenticate(token string) (string, error) {
	return s.tokens.Verify(token)
}

// Profile returns the account with the given id.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}
	return user, nil
}

// ChangePassword replaces the password of userID after checking the current
// one. Setting a password equal to the stored one is a no-op.
func (s *UserService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(current, user.PasswordHash) {
		return common.ErrInvalidCredentials
	}

	if err := validation.Password(next); err != nil {
		return err
	}

	if s.hasher.Verify(next, user.PasswordHash) {
		return nil
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("error changing password: %w", err)
	}

	if err := s.repomanager.Users().UpdatePassword(ctx, user.ID, hash); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error changing password: %w", err)
	}

	s.logger.Info(ctx, "password changed", "user_id", user.ID)
	return nil
}
