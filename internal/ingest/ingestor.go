package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/david/rfp-finder/internal/samgov"
	"github.com/david/rfp-finder/internal/store"
)

// Source is the outbound boundary to the external procurement feed.
type Source interface {
	SearchOpportunities(ctx context.Context, params samgov.SearchParams) (*samgov.SearchResponse, error)
}

// Ingestor runs the bulk fetch-convert-upsert pass. It is constructed and
// invoked explicitly by the caller; nothing here runs in a constructor or
// in the background.
type Ingestor struct {
	Source   Source
	Store    store.Store
	Registry *Registry

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewIngestor(source Source, st store.Store, reg *Registry) *Ingestor {
	return &Ingestor{Source: source, Store: st, Registry: reg, Now: time.Now}
}

// RunSummary reports what one ingest pass did.
type RunSummary struct {
	Searches  int       `json:"searches"`
	Fetched   int       `json:"fetched"`
	Upserted  int       `json:"upserted"`
	Failed    int       `json:"failed"`
	Errors    []string  `json:"errors,omitempty"`
	StartedAt time.Time `json:"started_at"`
	Duration  string    `json:"duration"`
}

// Run executes every configured search and upserts the converted records.
// Upserts are per-record: a failure on one search or record never rolls
// back earlier ones, so a partially failed run still leaves the store with
// everything that did arrive. Run returns ErrSourceUnavailable (wrapped)
// only when every search failed.
func (ing *Ingestor) Run(ctx context.Context) (*RunSummary, error) {
	now := ing.Now()
	summary := &RunSummary{StartedAt: now}

	postedFrom := now.AddDate(0, 0, -ing.Registry.Window.DaysBack)
	postedTo := now.AddDate(0, 0, ing.Registry.Window.DaysForward)
	delay := time.Duration(ing.Registry.DelayMS) * time.Millisecond

	failedSearches := 0
	for i, search := range ing.Registry.Searches {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			case <-time.After(delay):
			}
		}

		summary.Searches++
		resp, err := ing.Source.SearchOpportunities(ctx, samgov.SearchParams{
			Title:      search.Title,
			NaicsCode:  search.Naics,
			PostedFrom: postedFrom,
			PostedTo:   postedTo,
			Limit:      search.Limit,
		})
		if err != nil {
			failedSearches++
			summary.Errors = append(summary.Errors, err.Error())
			log.Printf("[Ingest] Search title=%q naics=%q failed: %v", search.Title, search.Naics, err)
			continue
		}

		summary.Fetched += len(resp.OpportunitiesData)
		for _, raw := range resp.OpportunitiesData {
			if raw.Title == "" {
				summary.Failed++
				continue
			}
			raw.Description = CleanDescription(raw.Description)
			rfp := samgov.ToRfp(raw, now)
			if _, err := ing.Store.Upsert(ctx, rfp); err != nil {
				summary.Failed++
				summary.Errors = append(summary.Errors, fmt.Sprintf("upsert %s: %v", rfp.ID, err))
				continue
			}
			summary.Upserted++
		}
	}

	summary.Duration = time.Since(now).Round(time.Millisecond).String()
	log.Printf("[Ingest] Run complete: %d searches, %d fetched, %d upserted, %d failed (%s)",
		summary.Searches, summary.Fetched, summary.Upserted, summary.Failed, summary.Duration)

	if summary.Searches > 0 && failedSearches == summary.Searches {
		return summary, fmt.Errorf("all searches failed: %w", samgov.ErrSourceUnavailable)
	}
	return summary, nil
}
