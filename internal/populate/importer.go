package populate

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"gamehub/internal/assets"
	"gamehub/internal/events"
	"gamehub/internal/store"
	"gamehub/pkg/models"
)

const galleryLimit = 5

const releaseDateLayout = "2006-01-02T15:04:05.000Z"

// ImageSetter attaches a storefront image to a created game field.
type ImageSetter interface {
	SetImage(ctx context.Context, req assets.SetImageRequest) error
}

// Broadcaster publishes import progress. Optional; a nil Broadcaster
// disables events.
type Broadcaster interface {
	BroadcastJSON(v any)
}

// Importer turns scraped products into game records. Each product runs
// as its own concurrent task; a task failure never touches its
// siblings. Existing games (matched by name) are skipped, never
// updated.
type Importer struct {
	Store    store.EntityStore
	Enrich   Enricher
	Images   ImageSetter
	Events   Broadcaster
	Log      *zap.Logger
	Throttle time.Duration
}

// ImportSummary aggregates per-product outcomes of one batch.
type ImportSummary struct {
	Created int
	Skipped int
	Failed  int
}

const (
	statusCreated = "created"
	statusSkipped = "skipped"
	statusFailed  = "failed"
)

type productResult struct {
	title  string
	status string
	err    error
}

// ImportAll processes every product concurrently and aggregates the
// tagged results. The per-product throttle delays only the product's
// own task.
func (i *Importer) ImportAll(ctx context.Context, products []models.ScrapedProduct) ImportSummary {
	results := make(chan productResult, len(products))
	var wg sync.WaitGroup
	for _, p := range products {
		wg.Add(1)
		go func(p models.ScrapedProduct) {
			defer wg.Done()
			results <- i.importOne(ctx, p)
		}(p)
	}
	wg.Wait()
	close(results)

	var sum ImportSummary
	for res := range results {
		switch res.status {
		case statusCreated:
			sum.Created++
		case statusSkipped:
			sum.Skipped++
		default:
			sum.Failed++
			i.Log.Warn("product import failed",
				zap.String("title", res.title),
				zap.Error(res.err))
		}
	}
	return sum
}

func (i *Importer) importOne(ctx context.Context, p models.ScrapedProduct) productResult {
	exists, err := i.Store.GameExists(ctx, p.Title)
	if err != nil {
		return productResult{title: p.Title, status: statusFailed, err: err}
	}
	if exists {
		i.publish(events.ImportEvent{Type: events.TypeGameSkipped, Name: p.Title, Slug: p.Slug})
		return productResult{title: p.Title, status: statusSkipped}
	}

	i.Log.Info("creating game", zap.String("title", p.Title))

	rec := i.buildRecord(ctx, p)

	gameID, err := i.Store.CreateGame(ctx, rec)
	if err != nil {
		return productResult{title: p.Title, status: statusFailed, err: err}
	}

	if p.Image != "" {
		if err := i.Images.SetImage(ctx, assets.SetImageRequest{
			Image: p.Image, GameID: gameID, Slug: rec.Slug, Field: "cover",
		}); err != nil {
			i.Log.Warn("cover upload failed", zap.String("title", p.Title), zap.Error(err))
		}
	}
	for idx, img := range p.Gallery {
		if idx >= galleryLimit {
			break
		}
		if err := i.Images.SetImage(ctx, assets.SetImageRequest{
			Image: img, GameID: gameID, Slug: rec.Slug, Field: "gallery",
		}); err != nil {
			i.Log.Warn("gallery upload failed", zap.String("title", p.Title), zap.Error(err))
		}
	}

	i.publish(events.ImportEvent{Type: events.TypeGameCreated, Name: p.Title, Slug: rec.Slug})

	i.wait(ctx)

	return productResult{title: p.Title, status: statusCreated}
}

// buildRecord derives the creation payload: computed fields, resolved
// relational references, and (best-effort) enrichment from the detail
// page. Unresolvable references and failed enrichment degrade the
// record instead of failing it.
func (i *Importer) buildRecord(ctx context.Context, p models.ScrapedProduct) models.GameRecord {
	rec := models.GameRecord{
		Name:        p.Title,
		Slug:        GameSlug(p.Slug),
		Price:       i.price(p),
		ReleaseDate: i.releaseDate(p),
	}

	// categories and platforms race; each holds its own result slot
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		rec.CategoryIDs = i.lookupIDs(ctx, store.CollectionCategory, p.Genres)
	}()
	go func() {
		defer wg.Done()
		rec.PlatformIDs = i.lookupIDs(ctx, store.CollectionPlatform, p.SupportedOperatingSystems)
	}()
	wg.Wait()

	if p.Developer != "" {
		rec.DeveloperIDs = i.lookupIDs(ctx, store.CollectionDeveloper, []string{p.Developer})
	}
	if p.Publisher != "" {
		if ids := i.lookupIDs(ctx, store.CollectionPublisher, []string{p.Publisher}); len(ids) > 0 {
			rec.PublisherID = &ids[0]
		}
	}

	info, err := i.Enrich.GameInfo(ctx, p.Slug)
	if err != nil {
		i.Log.Warn("enrichment unavailable", zap.String("slug", p.Slug), zap.Error(err))
		return rec
	}
	rec.Rating = info.Rating
	rec.ShortDescription = info.ShortDescription
	rec.Description = info.Description
	return rec
}

func (i *Importer) lookupIDs(ctx context.Context, collection string, names []string) []int64 {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		e, err := i.Store.FindRefByName(ctx, collection, name)
		if err != nil {
			i.Log.Warn("reference lookup failed",
				zap.String("collection", collection),
				zap.String("name", name),
				zap.Error(err))
			continue
		}
		if e == nil {
			// resolver could not create it earlier; the game just
			// loses this reference
			continue
		}
		ids = append(ids, e.ID)
	}
	return ids
}

func (i *Importer) price(p models.ScrapedProduct) float64 {
	if p.Price.Amount == "" {
		return 0
	}
	v, err := p.Price.Amount.Float64()
	if err != nil {
		i.Log.Warn("unparseable price",
			zap.String("title", p.Title),
			zap.String("amount", p.Price.Amount.String()))
		return 0
	}
	return v
}

func (i *Importer) releaseDate(p models.ScrapedProduct) string {
	raw := p.GlobalReleaseDate.String()
	if raw == "" {
		return ""
	}
	sec, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || sec <= 0 {
		i.Log.Warn("unparseable release date",
			zap.String("title", p.Title),
			zap.String("value", raw))
		return ""
	}
	return time.Unix(sec, 0).UTC().Format(releaseDateLayout)
}

func (i *Importer) publish(ev events.ImportEvent) {
	if i.Events == nil {
		return
	}
	ev.At = time.Now().UTC()
	i.Events.BroadcastJSON(ev)
}

func (i *Importer) wait(ctx context.Context) {
	if i.Throttle <= 0 {
		return
	}
	select {
	case <-time.After(i.Throttle):
	case <-ctx.Done():
	}
}
