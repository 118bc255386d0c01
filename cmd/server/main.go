package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/david/rfp-finder/internal/api"
	"github.com/david/rfp-finder/internal/db"
	"github.com/david/rfp-finder/internal/ingest"
	"github.com/david/rfp-finder/internal/samgov"
	"github.com/david/rfp-finder/internal/store"
)

func main() {
	runIngest := flag.Bool("ingest", false, "run one SAM.gov ingest pass before serving")
	sourcesPath := flag.String("sources", "", "path to a sources.yaml override")
	flag.Parse()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	ctx := context.Background()

	// With DATABASE_URL the server runs on Postgres and registers the auth
	// routes; without it everything lives in memory.
	var st store.Store = store.NewMemStore()
	var pool *pgxpool.Pool
	if os.Getenv("DATABASE_URL") != "" {
		var err error
		pool, err = db.Connect(ctx)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		if err := db.ApplyMigrations(ctx, pool); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		st = db.NewPgStore(pool)
	}

	if n, err := store.Seed(ctx, st); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	} else if n > 0 {
		log.Printf("Seeded %d demo RFPs", n)
	}

	registry, err := ingest.LoadRegistry(*sourcesPath)
	if err != nil {
		log.Fatalf("Loading source registry failed: %v", err)
	}
	client := samgov.NewClient(os.Getenv("SAM_GOV_API_KEY"))
	ingestor := ingest.NewIngestor(client, st, registry)

	if *runIngest {
		if _, err := ingestor.Run(ctx); err != nil {
			log.Printf("Initial ingest failed: %v", err)
		}
	}

	srv := api.NewServer(st, ingestor, pool)
	log.Printf("Server starting on port %s...", port)
	if err := srv.Start(port); err != nil {
		log.Fatal(err)
	}
}
