package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/david/rfp-finder/internal/models"
	"github.com/google/uuid"
)

func TestUpsertOverwritesByID(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	id := uuid.New()

	first := models.Rfp{
		ID:       id,
		Title:    "City Portal Rebuild",
		IsActive: true,
	}
	if _, err := s.Upsert(ctx, first); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	second := first
	second.Title = "City Portal Rebuild (Amended)"
	second.BudgetMin = models.IntPtr(50000)
	if _, err := s.Upsert(ctx, second); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != second.Title {
		t.Errorf("expected overwritten title %q, got %q", second.Title, got.Title)
	}
	if got.BudgetMin == nil || *got.BudgetMin != 50000 {
		t.Errorf("expected budget min 50000, got %v", got.BudgetMin)
	}

	count, _ := s.Count(ctx)
	if count != 1 {
		t.Errorf("expected 1 record after upsert of same ID, got %d", count)
	}
}

func TestUpsertDefaultsPostedDateAndID(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	stored, err := s.Upsert(ctx, models.Rfp{Title: "No ID yet"})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if stored.ID == uuid.Nil {
		t.Error("expected an assigned ID")
	}
	if stored.PostedDate.IsZero() {
		t.Error("expected posted date default")
	}
}

func TestGetMissingReturnsErrNotFound(t *testing.T) {
	s := NewMemStore()
	_, err := s.Get(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAllReturnsSnapshotCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	if _, err := s.Upsert(ctx, models.Rfp{Title: "Original", IsActive: true}); err != nil {
		t.Fatal(err)
	}

	snap, err := s.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	snap[0].Title = "Mutated"

	again, _ := s.All(ctx)
	if again[0].Title != "Original" {
		t.Error("mutating a snapshot must not affect the store")
	}
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	n, err := Seed(ctx, s)
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if n == 0 {
		t.Fatal("expected seed records")
	}

	n2, err := Seed(ctx, s)
	if err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	if n2 != 0 {
		t.Errorf("expected no-op reseed, got %d", n2)
	}
}

func TestSeedRfpsHaveRequiredClassifications(t *testing.T) {
	for _, rfp := range SeedRfps(time.Now()) {
		if rfp.Technology == "" {
			t.Errorf("seed %s missing technology", rfp.Title)
		}
		if rfp.OrganizationType == "" {
			t.Errorf("seed %s missing organization type", rfp.Title)
		}
		if rfp.BudgetMin != nil && rfp.BudgetMax != nil && *rfp.BudgetMin > *rfp.BudgetMax {
			t.Errorf("seed %s has inverted budget band", rfp.Title)
		}
	}
}
