package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"graetzlmap/internal/bundle"
	"graetzlmap/internal/config"
	"graetzlmap/internal/store"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.FromEnv()

	var out string
	flag.StringVar(&out, "out", cfg.POIBundle, "Path of the compiled POI FeatureCollection")
	flag.Parse()

	logger := log.New(os.Stdout, "[bundle] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	// Always compile from the editable store, never from an older bundle.
	cfg.Mode = config.ModeServer

	ctx := context.Background()
	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer st.Close()

	start := time.Now()
	res, err := bundle.New(st.POIs, logger).Compile(ctx, out)
	if err != nil {
		logger.Fatalf("compile: %v", err)
	}
	logger.Printf("compiled %d pois (%d skipped) into %s in %s", res.Written, len(res.Skipped), out, time.Since(start).Truncate(time.Millisecond))
}
