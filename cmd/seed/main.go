package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"graetzlmap/internal/config"
	"graetzlmap/internal/seed"
	"graetzlmap/internal/store"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.FromEnv()
	cfg.Mode = config.ModeServer
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer st.Close()

	res, err := seed.Apply(ctx, st.Categories, st.Tags, logger)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seed applied: %d categories, %d tags added", res.Categories, res.Tags)
}
