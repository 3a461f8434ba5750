package repomanager

import (
	"context"

	"github.com/dmitrijs2005/meanblog/internal/server/repositories/users"
)

type MemoryRepositoryManager struct {
	users *users.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{users: users.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) Users() users.Repository     { return m.users }
func (m *MemoryRepositoryManager) Init(context.Context) error  { return nil }
func (m *MemoryRepositoryManager) Close(context.Context) error { return nil }
