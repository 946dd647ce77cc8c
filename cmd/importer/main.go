package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"graetzlmap/internal/config"
	"graetzlmap/internal/importer"
	"graetzlmap/internal/store"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a POI or category CSV export")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load(".env")
	cfg := config.FromEnv()
	cfg.Mode = config.ModeServer
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	ctx := context.Background()

	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, st.POIs, st.Categories, logger)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d records into the %s store in %s\n", count, cfg.StoreBackend, time.Since(start).Truncate(time.Millisecond))
}
