// Package users provides persistence for user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/meanblog/internal/server/models"
)

// Repository stores user accounts. Implementations enforce uniqueness of
// Email and Username themselves and report a violation as
// common.ErrAlreadyExists; lookups of absent records return
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, hash string) error
}
