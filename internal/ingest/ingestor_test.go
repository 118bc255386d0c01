package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/david/rfp-finder/internal/samgov"
	"github.com/david/rfp-finder/internal/store"
)

type fakeSource struct {
	responses map[string]*samgov.SearchResponse
	errs      map[string]error
	calls     []samgov.SearchParams
}

func (f *fakeSource) SearchOpportunities(_ context.Context, params samgov.SearchParams) (*samgov.SearchResponse, error) {
	f.calls = append(f.calls, params)
	key := params.Title + "|" + params.NaicsCode
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	if resp, ok := f.responses[key]; ok {
		return resp, nil
	}
	return &samgov.SearchResponse{}, nil
}

func testRegistry(searches ...SearchConfig) *Registry {
	return &Registry{
		Searches: searches,
		Window:   WindowConfig{DaysBack: 30, DaysForward: 120},
		DelayMS:  0,
	}
}

func opportunity(noticeID, title string) samgov.Opportunity {
	return samgov.Opportunity{
		NoticeID:           noticeID,
		Title:              title,
		FullParentPathName: "GENERAL SERVICES ADMINISTRATION.FAS",
		NaicsCode:          "541511",
		Active:             "Yes",
		ResponseDeadLine:   "2026-10-01T17:00:00-04:00",
		Description:        "Plain description",
	}
}

func TestRunUpsertsConvertedRecords(t *testing.T) {
	src := &fakeSource{responses: map[string]*samgov.SearchResponse{
		"website|": {
			TotalRecords:      2,
			OpportunitiesData: []samgov.Opportunity{opportunity("N-1", "Drupal CMS migration"), opportunity("N-2", "Website redesign")},
		},
	}}
	st := store.NewMemStore()
	ing := NewIngestor(src, st, testRegistry(SearchConfig{Title: "website", Limit: 15}))
	ing.Now = func() time.Time { return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC) }

	summary, err := ing.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Fetched != 2 || summary.Upserted != 2 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want 2 fetched, 2 upserted", summary)
	}
	if n, _ := st.Count(context.Background()); n != 2 {
		t.Fatalf("store count = %d, want 2", n)
	}

	got, err := st.Get(context.Background(), samgov.RecordID("N-1"))
	if err != nil {
		t.Fatalf("Get converted record: %v", err)
	}
	if got.Technology != "Drupal" || !got.IsPriority {
		t.Errorf("converted record = %q/%v, want Drupal priority", got.Technology, got.IsPriority)
	}
}

func TestRunReingestIsIdempotent(t *testing.T) {
	resp := &samgov.SearchResponse{
		TotalRecords:      1,
		OpportunitiesData: []samgov.Opportunity{opportunity("N-1", "Portal maintenance")},
	}
	src := &fakeSource{responses: map[string]*samgov.SearchResponse{"website|": resp}}
	st := store.NewMemStore()
	ing := NewIngestor(src, st, testRegistry(SearchConfig{Title: "website"}))

	for i := 0; i < 2; i++ {
		if _, err := ing.Run(context.Background()); err != nil {
			t.Fatalf("Run %d: %v", i, err)
		}
	}
	if n, _ := st.Count(context.Background()); n != 1 {
		t.Fatalf("store count after reingest = %d, want 1", n)
	}
}

func TestRunIsolatesSearchFailures(t *testing.T) {
	src := &fakeSource{
		responses: map[string]*samgov.SearchResponse{
			"website|": {
				TotalRecords:      1,
				OpportunitiesData: []samgov.Opportunity{opportunity("N-9", "Website support")},
			},
		},
		errs: map[string]error{"|541511": samgov.ErrSourceUnavailable},
	}
	st := store.NewMemStore()
	ing := NewIngestor(src, st, testRegistry(
		SearchConfig{Naics: "541511"},
		SearchConfig{Title: "website"},
	))

	summary, err := ing.Run(context.Background())
	if err != nil {
		t.Fatalf("Run with one failed search should not error, got %v", err)
	}
	if summary.Upserted != 1 {
		t.Fatalf("upserted = %d, want 1", summary.Upserted)
	}
	if len(summary.Errors) != 1 {
		t.Fatalf("errors = %v, want one entry", summary.Errors)
	}
}

func TestRunAllSearchesFailed(t *testing.T) {
	src := &fakeSource{errs: map[string]error{
		"website|": samgov.ErrSourceUnavailable,
		"|541511":  samgov.ErrSourceUnavailable,
	}}
	ing := NewIngestor(src, store.NewMemStore(), testRegistry(
		SearchConfig{Title: "website"},
		SearchConfig{Naics: "541511"},
	))

	_, err := ing.Run(context.Background())
	if !errors.Is(err, samgov.ErrSourceUnavailable) {
		t.Fatalf("err = %v, want ErrSourceUnavailable", err)
	}
}

func TestRunSkipsUntitledRecords(t *testing.T) {
	src := &fakeSource{responses: map[string]*samgov.SearchResponse{
		"website|": {
			TotalRecords:      2,
			OpportunitiesData: []samgov.Opportunity{opportunity("N-1", ""), opportunity("N-2", "Valid record")},
		},
	}}
	st := store.NewMemStore()
	ing := NewIngestor(src, st, testRegistry(SearchConfig{Title: "website"}))

	summary, err := ing.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Upserted != 1 || summary.Failed != 1 {
		t.Fatalf("summary = %+v, want 1 upserted, 1 failed", summary)
	}
}

func TestRunPassesWindowToSource(t *testing.T) {
	src := &fakeSource{}
	ing := NewIngestor(src, store.NewMemStore(), testRegistry(SearchConfig{Title: "website", Limit: 7}))
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	ing.Now = func() time.Time { return now }

	if _, err := ing.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(src.calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(src.calls))
	}
	call := src.calls[0]
	if !call.PostedFrom.Equal(now.AddDate(0, 0, -30)) || !call.PostedTo.Equal(now.AddDate(0, 0, 120)) {
		t.Errorf("window = %v..%v, want now-30d..now+120d", call.PostedFrom, call.PostedTo)
	}
	if call.Limit != 7 {
		t.Errorf("limit = %d, want 7", call.Limit)
	}
}
