package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/ezBadminton/badmintondraw/core"
	"github.com/ezBadminton/badmintondraw/internal/config"
	"github.com/rs/zerolog"
)

var (
	ErrNotFound = errors.New("tournament not found")
	ErrNoID     = errors.New("tournament has no id")
	ErrInvalid  = errors.New("stored tournament is invalid")
)

// Repository saves and loads whole tournament documents by id
type Repository interface {
	Save(ctx context.Context, t *core.Tournament) error
	Load(ctx context.Context, id string) (*core.Tournament, error)
	Delete(ctx context.Context, id string) error
	// Lists the saved tournaments, most recently updated first
	List(ctx context.Context) ([]core.TournamentMetadata, error)
	Close(ctx context.Context) error
}

// Opens the repository that the configuration names
func Open(ctx context.Context, cfg config.StoreConfig, logger zerolog.Logger) (Repository, error) {
	switch cfg.Driver {
	case config.StoreMemory:
		return NewMemoryStore(), nil
	case config.StoreSQLite:
		return NewSQLiteStore(cfg.SQLitePath, logger)
	case config.StoreMongo:
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownStore, cfg.Driver)
}
