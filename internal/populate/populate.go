package populate

import (
	"context"
	"net/url"
	"time"

	"go.uber.org/zap"

	"gamehub/internal/events"
	"gamehub/pkg/models"
)

// RunRecorder persists the summary of one populate invocation.
// Optional; recording failures never fail the run.
type RunRecorder interface {
	Record(ctx context.Context, s Summary) error
}

// Summary is the aggregated outcome of one populate invocation.
type Summary struct {
	Sort        string    `json:"sort"`
	Page        string    `json:"page"`
	Total       int       `json:"total"`
	Quarantined int       `json:"quarantined"`
	Created     int       `json:"created"`
	Skipped     int       `json:"skipped"`
	Failed      int       `json:"failed"`
	RefsCreated int       `json:"refs_created"`
	RefsFailed  int       `json:"refs_failed"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// Service is the populate entry point: fetch one listing page, make
// sure every referenced lookup entity exists, then import the games.
// Only the listing fetch can fail the invocation; everything below it
// degrades per-item.
type Service struct {
	Listing  *ListingClient
	Resolver *Resolver
	Importer *Importer
	Runs     RunRecorder
	Events   Broadcaster
	Log      *zap.Logger
}

// MergeOptions lays caller-supplied filter parameters over the
// defaults. Unrecognized parameters pass through to the storefront
// verbatim.
func MergeOptions(query url.Values) url.Values {
	opts := url.Values{
		"sort": {"popularity"},
		"page": {"1"},
	}
	for k, vs := range query {
		opts[k] = vs
	}
	return opts
}

func (s *Service) Populate(ctx context.Context, query url.Values) (Summary, error) {
	opts := MergeOptions(query)
	sum := Summary{
		Sort:      opts.Get("sort"),
		Page:      opts.Get("page"),
		StartedAt: time.Now().UTC(),
	}

	products, err := s.Listing.FetchPage(ctx, opts)
	if err != nil {
		return sum, err
	}

	valid := s.quarantine(products)
	sum.Total = len(products)
	sum.Quarantined = len(products) - len(valid)

	s.publish(events.ImportEvent{Type: events.TypePopulateStarted, Total: len(valid)})

	if len(valid) > 0 {
		// references first: game creation embeds their ids
		refs := s.Resolver.EnsureReferences(ctx, valid)
		sum.RefsCreated = refs.Created
		sum.RefsFailed = refs.Failed

		imp := s.Importer.ImportAll(ctx, valid)
		sum.Created = imp.Created
		sum.Skipped = imp.Skipped
		sum.Failed = imp.Failed
	}

	sum.FinishedAt = time.Now().UTC()

	if s.Runs != nil {
		if err := s.Runs.Record(ctx, sum); err != nil {
			s.Log.Warn("record import run failed", zap.Error(err))
		}
	}

	s.publish(events.ImportEvent{
		Type:    events.TypePopulateFinished,
		Total:   sum.Total,
		Created: sum.Created,
		Skipped: sum.Skipped,
		Failed:  sum.Failed,
	})

	s.Log.Info("populate finished",
		zap.Int("total", sum.Total),
		zap.Int("created", sum.Created),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed),
		zap.Int("quarantined", sum.Quarantined),
		zap.Int("refs_created", sum.RefsCreated))

	return sum, nil
}

// quarantine drops products the pipeline cannot key: no title means no
// idempotence check, no slug means no detail page or game URL.
func (s *Service) quarantine(products []models.ScrapedProduct) []models.ScrapedProduct {
	valid := make([]models.ScrapedProduct, 0, len(products))
	for _, p := range products {
		if p.Title == "" || p.Slug == "" {
			s.Log.Warn("quarantined malformed product",
				zap.String("title", p.Title),
				zap.String("slug", p.Slug))
			continue
		}
		valid = append(valid, p)
	}
	return valid
}

func (s *Service) publish(ev events.ImportEvent) {
	if s.Events == nil {
		return
	}
	ev.At = time.Now().UTC()
	s.Events.BroadcastJSON(ev)
}
