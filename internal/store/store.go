package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/david/rfp-finder/internal/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned by Get when no record exists for the given ID.
var ErrNotFound = errors.New("rfp not found")

// Store holds the canonical RFP collection. Implementations must treat
// Upsert as a total overwrite keyed by ID and must hand out copies, never
// aliases into internal state.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (models.Rfp, error)
	Upsert(ctx context.Context, rfp models.Rfp) (models.Rfp, error)
	All(ctx context.Context) ([]models.Rfp, error)
	Count(ctx context.Context) (int, error)
}

// MemStore is the canonical in-memory Store. Writes happen in rare bulk
// ingest passes while reads are frequent, so a single RWMutex around the map
// is enough.
type MemStore struct {
	mu   sync.RWMutex
	rfps map[uuid.UUID]models.Rfp
}

func NewMemStore() *MemStore {
	return &MemStore{rfps: make(map[uuid.UUID]models.Rfp)}
}

func (s *MemStore) Get(_ context.Context, id uuid.UUID) (models.Rfp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rfp, ok := s.rfps[id]
	if !ok {
		return models.Rfp{}, ErrNotFound
	}
	return rfp, nil
}

// Upsert inserts or fully replaces the record with the same ID and returns
// the stored value. A zero PostedDate is defaulted to now.
func (s *MemStore) Upsert(_ context.Context, rfp models.Rfp) (models.Rfp, error) {
	if rfp.ID == uuid.Nil {
		rfp.ID = uuid.New()
	}
	if rfp.PostedDate.IsZero() {
		rfp.PostedDate = time.Now()
	}

	s.mu.Lock()
	s.rfps[rfp.ID] = rfp
	s.mu.Unlock()

	return rfp, nil
}

// All returns a snapshot of the full collection in unspecified order.
func (s *MemStore) All(_ context.Context) ([]models.Rfp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Rfp, 0, len(s.rfps))
	for _, rfp := range s.rfps {
		out = append(out, rfp)
	}
	return out, nil
}

func (s *MemStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rfps), nil
}
