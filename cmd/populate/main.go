package main

import (
	"context"
	"flag"
	"net/url"
	"os"
	"time"

	"go.uber.org/zap"

	"gamehub/internal/assets"
	"gamehub/internal/populate"
	"gamehub/internal/runs"
	"gamehub/internal/store"
	"gamehub/pkg/database"
	"gamehub/pkg/logger"
	"gamehub/pkg/utils"
)

func main() {
	var (
		sort = flag.String("sort", "popularity", "listing sort order")
		page = flag.String("page", "1", "listing page")
	)
	flag.Parse()

	log := logger.MustNew(os.Getenv("GAMEHUB_LOG_MODE"))
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	// Ensure schema exists
	if err := database.Migrate(db); err != nil {
		log.Fatal("db migrate failed", zap.Error(err))
	}

	importCfg := utils.LoadImportConfig()
	entityStore := store.NewSQLStore(db)

	svc := &populate.Service{
		Listing:  populate.NewListingClient(importCfg.StorefrontBase),
		Resolver: populate.NewResolver(entityStore, log),
		Importer: &populate.Importer{
			Store:    entityStore,
			Enrich:   populate.NewDetailEnricher(importCfg.StorefrontBase),
			Images:   assets.NewClient(importCfg.UploadURL, importCfg.ImagePrefix, log),
			Log:      log,
			Throttle: importCfg.Throttle,
		},
		Runs: runs.NewRepo(db),
		Log:  log,
	}

	sum, err := svc.Populate(ctx, url.Values{"sort": {*sort}, "page": {*page}})
	if err != nil {
		log.Fatal("populate failed", zap.Error(err))
	}

	log.Info("populate run complete",
		zap.Int("total", sum.Total),
		zap.Int("created", sum.Created),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed))
}
