// Package repomanager opens the configured storage backend and vends the
// repositories bound to it.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/meanblog/internal/server/repositories/users"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type RepositoryManager interface {
	// Init prepares the backend schema: migrations for Postgres, unique
	// indexes for Mongo.
	Init(ctx context.Context) error
	Users() users.Repository
	Close(ctx context.Context) error
}

// Options selects and addresses a backend.
type Options struct {
	Store         string
	MongoURI      string
	MongoDatabase string
	DatabaseDSN   string
}

// Open connects to the backend named by opts.Store.
func Open(ctx context.Context, opts Options) (RepositoryManager, error) {
	switch opts.Store {
	case StoreMongo:
		return NewMongoRepositoryManager(ctx, opts.MongoURI, opts.MongoDatabase)
	case StorePostgres:
		return NewPostgresRepositoryManager(ctx, opts.DatabaseDSN)
	case StoreMemory:
		return NewMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown store type %q", opts.Store)
	}
}
