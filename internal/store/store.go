package store

import (
	"context"
	"errors"

	"gamehub/pkg/models"
)

// Collection names the import pipeline works with. Reference
// collections are lookup tables keyed by unique name; "game" is the
// content type they hang off.
const (
	CollectionDeveloper = "developer"
	CollectionPublisher = "publisher"
	CollectionCategory  = "category"
	CollectionPlatform  = "platform"
	CollectionGame      = "game"
)

var ErrUnknownCollection = errors.New("unknown collection")

// EntityStore is the persistence boundary of the import pipeline.
// Lookups return (nil, nil) when nothing matches. CreateGame writes the
// game row together with its relation records in one transaction, so a
// created game either carries all its resolved references or none.
type EntityStore interface {
	FindRefByName(ctx context.Context, collection, name string) (*models.RefEntity, error)
	CreateRef(ctx context.Context, collection, name, slug string) (*models.RefEntity, error)
	GameExists(ctx context.Context, name string) (bool, error)
	CreateGame(ctx context.Context, rec models.GameRecord) (int64, error)
}
