package populate

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"gamehub/internal/store"
	"gamehub/pkg/models"
)

// Resolver guarantees that every developer, publisher, category and
// platform a product batch references exists in the entity store before
// game import starts. It is best-effort: a failed lookup or create is
// logged and the name simply stays unresolved downstream.
type Resolver struct {
	Store store.EntityStore
	Log   *zap.Logger
}

func NewResolver(s store.EntityStore, log *zap.Logger) *Resolver {
	return &Resolver{Store: s, Log: log}
}

// RefSummary aggregates the outcome of one EnsureReferences pass.
type RefSummary struct {
	Created  int
	Existing int
	Failed   int
}

type refResult struct {
	collection string
	name       string
	created    bool
	err        error
}

// EnsureReferences deduplicates the reference names across the batch
// and ensures each exists. All ensure calls run concurrently; the
// deduplication is what makes that safe, since no two tasks ever target
// the same name within a collection.
func (r *Resolver) EnsureReferences(ctx context.Context, products []models.ScrapedProduct) RefSummary {
	sets := map[string]map[string]struct{}{
		store.CollectionDeveloper: {},
		store.CollectionPublisher: {},
		store.CollectionCategory:  {},
		store.CollectionPlatform:  {},
	}

	add := func(collection, name string) {
		if name != "" {
			sets[collection][name] = struct{}{}
		}
	}
	for _, p := range products {
		add(store.CollectionDeveloper, p.Developer)
		add(store.CollectionPublisher, p.Publisher)
		for _, g := range p.Genres {
			add(store.CollectionCategory, g)
		}
		for _, os := range p.SupportedOperatingSystems {
			add(store.CollectionPlatform, os)
		}
	}

	total := 0
	for _, set := range sets {
		total += len(set)
	}

	results := make(chan refResult, total)
	var wg sync.WaitGroup
	for collection, set := range sets {
		for name := range set {
			wg.Add(1)
			go func(collection, name string) {
				defer wg.Done()
				created, err := r.ensure(ctx, collection, name)
				results <- refResult{collection: collection, name: name, created: created, err: err}
			}(collection, name)
		}
	}
	wg.Wait()
	close(results)

	var sum RefSummary
	for res := range results {
		switch {
		case res.err != nil:
			sum.Failed++
			r.Log.Warn("reference ensure failed",
				zap.String("collection", res.collection),
				zap.String("name", res.name),
				zap.Error(res.err))
		case res.created:
			sum.Created++
		default:
			sum.Existing++
		}
	}
	return sum
}

func (r *Resolver) ensure(ctx context.Context, collection, name string) (bool, error) {
	existing, err := r.Store.FindRefByName(ctx, collection, name)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if _, err := r.Store.CreateRef(ctx, collection, name, Slugify(name)); err != nil {
		return false, err
	}
	return true, nil
}
