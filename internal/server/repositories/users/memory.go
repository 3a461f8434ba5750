package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/meanblog/internal/common"
	"github.com/dmitrijs2005/meanblog/internal/server/models"
)

// MemoryRepository keeps users in process memory. Writes are serialized so
// the uniqueness checks and the insert happen atomically.
type MemoryRepository struct {
	mu         sync.RWMutex
	byID       map[string]models.User
	byEmail    map[string]string
	byUsername map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:       make(map[string]models.User),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[user.ID]; ok {
		return nil, common.ErrAlreadyExists
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrAlreadyExists
	}
	if _, ok := r.byUsername[user.Username]; ok {
		return nil, common.ErrAlreadyExists
	}

	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	r.byUsername[user.Username] = user.ID

	u := *user
	return &u, nil
}

func (r *MemoryRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.lookup(ctx, r.byUsername, username)
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.lookup(ctx, r.byEmail, email)
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) lookup(ctx context.Context, index map[string]string, key string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := index[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *MemoryRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now().UTC()
	r.byID[id] = u

	return nil
}
