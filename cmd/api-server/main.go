package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gamehub/internal/assets"
	"gamehub/internal/auth"
	"gamehub/internal/catalog"
	"gamehub/internal/events"
	"gamehub/internal/populate"
	"gamehub/internal/runs"
	"gamehub/internal/store"
	"gamehub/pkg/database"
	"gamehub/pkg/logger"
	"gamehub/pkg/utils"
)

func main() {
	log := logger.MustNew(os.Getenv("GAMEHUB_LOG_MODE"))
	defer log.Sync()

	cfg := database.DefaultConfig()
	db := database.MustOpen(cfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("db migrate failed", zap.Error(err))
	}

	router := gin.Default()

	// Optional: avoid “trusted all proxies” warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	// Import-event feed first (so you notice binding errors early)
	hub := events.NewHub()
	router.GET("/ws", events.WSHandler(hub, log))
	feedSrv := events.NewServer(":7070", hub, log)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": cfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"db_error":    err.Error(),
				"tcp_clients": stats.TCPClients,
				"ws_clients":  stats.WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"db":          "ok",
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	// Uploads (the populate pipeline posts here; files are served back statically)
	uploadCfg := utils.LoadUploadConfig()
	assetRepo := assets.NewRepo(db)
	assetHandler := assets.NewHandler(assetRepo, uploadCfg.Dir, log)
	assetHandler.RegisterRoutes(router.Group("/upload"))
	router.Static("/uploads", uploadCfg.Dir)

	// Catalog (public)
	catalogRepo := catalog.NewRepo(db)
	catalogHandler := catalog.NewHandler(catalogRepo)
	gamesGroup := router.Group("/games")
	catalogHandler.RegisterRoutes(gamesGroup)

	// Populate pipeline
	importCfg := utils.LoadImportConfig()
	entityStore := store.NewSQLStore(db)
	runRepo := runs.NewRepo(db)
	svc := &populate.Service{
		Listing:  populate.NewListingClient(importCfg.StorefrontBase),
		Resolver: populate.NewResolver(entityStore, log),
		Importer: &populate.Importer{
			Store:    entityStore,
			Enrich:   populate.NewDetailEnricher(importCfg.StorefrontBase),
			Images:   assets.NewClient(importCfg.UploadURL, importCfg.ImagePrefix, log),
			Events:   hub,
			Log:      log,
			Throttle: importCfg.Throttle,
		},
		Runs:   runRepo,
		Events: hub,
		Log:    log,
	}
	populate.NewHandler(svc, log).RegisterRoutes(gamesGroup)

	// Editors
	authCfg := utils.LoadAuthConfig()
	tokenSvc := auth.TokenService{
		Secret:   []byte(authCfg.JWTSecret),
		Issuer:   authCfg.JWTIssuer,
		Duration: authCfg.JWTDuration,
	}
	authRepo := auth.NewRepo(db)
	authHandler := auth.NewHandler(authRepo, tokenSvc)
	authHandler.RegisterRoutes(router.Group("/auth"))

	// Management (editors only)
	admin := router.Group("/admin")
	admin.Use(auth.AuthMiddleware(tokenSvc))
	runs.NewHandler(runRepo).RegisterRoutes(admin)

	httpSrv := &http.Server{
		Addr:    ":8080",
		Handler: router,
	}

	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := feedSrv.Run(); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("HTTP API server listening on :8080")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	log.Info("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", zap.Error(err))
	}
	if err := feedSrv.Close(); err != nil {
		log.Error("feed shutdown error", zap.Error(err))
	}

	wg.Wait()
	log.Info("servers stopped")
}
