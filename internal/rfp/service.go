package rfp

import (
	"context"
	"fmt"
	"time"

	"github.com/david/rfp-finder/internal/models"
	"github.com/david/rfp-finder/internal/store"
	"github.com/google/uuid"
)

// Service is the single entry point the routing layer talks to. It owns no
// state beyond the store handle; all listing calls work on fresh snapshots.
type Service struct {
	store store.Store
}

func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// ListRfps returns active records matching the spec, in canonical order.
func (s *Service) ListRfps(ctx context.Context, spec FilterSpec) ([]models.Rfp, error) {
	snapshot, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing rfps: %w", err)
	}
	return Apply(snapshot, spec, time.Now()), nil
}

// GetRfp looks up a single record by ID. Inactive records are still
// retrievable here; only listings hide them.
func (s *Service) GetRfp(ctx context.Context, id uuid.UUID) (models.Rfp, error) {
	return s.store.Get(ctx, id)
}
