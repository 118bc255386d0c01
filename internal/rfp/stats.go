package rfp

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Summary holds the live dashboard figures. All figures are computed over
// the raw store contents, active and inactive alike.
type Summary struct {
	Total         int `json:"total"`
	PriorityCount int `json:"priority_count"`
	TotalBudget   int `json:"total_budget"`
	AvgBudget     int `json:"avg_budget"`
	DeadlinesSoon int `json:"deadlines_soon"`
}

// TechnologyCounts maps each technology category to its record count across
// the whole store. The counts always sum to the store size.
func (s *Service) TechnologyCounts(ctx context.Context) (map[string]int, error) {
	snapshot, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("technology counts: %w", err)
	}

	counts := make(map[string]int, 8)
	for _, rfp := range snapshot {
		counts[rfp.Technology]++
	}
	return counts, nil
}

// LiveSummary derives the dashboard figures. An empty store yields zeros,
// never a division error. Absent budget bounds count as 0, matching the
// source's arithmetic.
func (s *Service) LiveSummary(ctx context.Context) (Summary, error) {
	snapshot, err := s.store.All(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("live summary: %w", err)
	}

	now := time.Now()
	soonCutoff := now.Add(30 * 24 * time.Hour)

	var sum Summary
	var midpointTotal float64
	for _, rfp := range snapshot {
		sum.Total++
		if rfp.IsPriority {
			sum.PriorityCount++
		}
		min, max := 0, 0
		if rfp.BudgetMin != nil {
			min = *rfp.BudgetMin
		}
		if rfp.BudgetMax != nil {
			max = *rfp.BudgetMax
		}
		sum.TotalBudget += max
		midpointTotal += float64(min+max) / 2
		if !rfp.Deadline.After(soonCutoff) {
			sum.DeadlinesSoon++
		}
	}

	if sum.Total > 0 {
		sum.AvgBudget = int(math.Round(midpointTotal / float64(sum.Total)))
	}
	return sum, nil
}
