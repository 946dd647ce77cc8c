package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"graetzlmap/internal/config"
	"graetzlmap/internal/geoquery"
	"graetzlmap/internal/httpserver"
	categorysvc "graetzlmap/internal/service/category"
	collectionsvc "graetzlmap/internal/service/collection"
	poisvc "graetzlmap/internal/service/poi"
	tagsvc "graetzlmap/internal/service/tag"
	uploadsvc "graetzlmap/internal/service/upload"
	"graetzlmap/internal/store"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer st.Close()

	cache := geoquery.NewCache(geoquery.RepositorySource{POIs: st.POIs, Neighborhoods: st.Neighborhoods}, logger)
	if _, err := cache.Load(ctx); err != nil {
		// Not fatal: /readyz reports it and the next request retries.
		logger.Printf("initial dataset load failed: %v", err)
	}

	deps := httpserver.Deps{
		Mode:           httpserver.Mode(cfg.Mode),
		POIs:           poisvc.New(st.POIs, cache, logger),
		Categories:     categorysvc.New(st.Categories, logger),
		Tags:           tagsvc.New(st.Tags, logger),
		Collections:    collectionsvc.New(st.Collections, cache, logger),
		Cache:          cache,
		PublicDir:      cfg.PublicDir,
		UploadDir:      cfg.UploadDir,
		CMSDir:         cfg.CMSDir,
		CORSOrigins:    cfg.CORSOrigins,
		DefaultLang:    cfg.DefaultLang,
		MaxUploadBytes: cfg.MaxUploadBytes,
		ReadyChecks: []httpserver.ReadyCheck{{
			Name: "dataset",
			Check: func(ctx context.Context) error {
				_, err := cache.Load(ctx)
				return err
			},
		}},
	}
	if cfg.Mode == config.ModeServer {
		deps.Uploads = uploadsvc.New(cfg.UploadDir, cfg.MaxUploadBytes, logger)
	}
	if st.Pool != nil {
		deps.ReadyChecks = append(deps.ReadyChecks, httpserver.ReadyCheck{Name: "postgres", Check: st.Ping})
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, deps)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s mode=%s backend=%s", cfg.HTTPAddr, cfg.Mode, cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
