package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/david/rfp-finder/internal/db"
	"github.com/david/rfp-finder/internal/ingest"
	"github.com/david/rfp-finder/internal/samgov"
)

func main() {
	sourcesPath := flag.String("sources", "", "path to a sources.yaml override")
	flag.Parse()

	apiKey := os.Getenv("SAM_GOV_API_KEY")
	if apiKey == "" {
		log.Fatal("SAM_GOV_API_KEY is required for a live ingest run")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	registry, err := ingest.LoadRegistry(*sourcesPath)
	if err != nil {
		log.Fatalf("Loading source registry failed: %v", err)
	}

	ingestor := ingest.NewIngestor(samgov.NewClient(apiKey), db.NewPgStore(pool), registry)

	summary, err := ingestor.Run(ctx)
	if err != nil {
		log.Fatalf("Ingest failed: %v", err)
	}
	log.Printf("Ingest finished. Searches: %d, Fetched: %d, Upserted: %d, Failed: %d",
		summary.Searches, summary.Fetched, summary.Upserted, summary.Failed)
}
