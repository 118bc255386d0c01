package rfp

import (
	"sort"

	"github.com/david/rfp-finder/internal/models"
)

// SortMode selects a presentation-level re-sort of an already-filtered list.
type SortMode string

const (
	SortDeadline SortMode = "deadline" // canonical: priority first, soonest deadline
	SortBudget   SortMode = "budget"   // highest BudgetMax first
	SortNewest   SortMode = "newest"   // most recently posted first
)

// Rank applies the canonical two-level ordering in place: priority records
// before non-priority, then ascending deadline. The sort is stable so equal
// records keep their relative order across calls.
func Rank(rfps []models.Rfp) {
	sort.SliceStable(rfps, func(i, j int) bool {
		if rfps[i].IsPriority != rfps[j].IsPriority {
			return rfps[i].IsPriority
		}
		return rfps[i].Deadline.Before(rfps[j].Deadline)
	})
}

// Resort applies a presentation sort on top of a filtered list. SortDeadline
// (and anything unrecognized) keeps the canonical order from Rank.
func Resort(rfps []models.Rfp, mode SortMode) {
	switch mode {
	case SortBudget:
		sort.SliceStable(rfps, func(i, j int) bool {
			return budgetMaxOrZero(rfps[i]) > budgetMaxOrZero(rfps[j])
		})
	case SortNewest:
		sort.SliceStable(rfps, func(i, j int) bool {
			return rfps[i].PostedDate.After(rfps[j].PostedDate)
		})
	}
}

func budgetMaxOrZero(rfp models.Rfp) int {
	if rfp.BudgetMax == nil {
		return 0
	}
	return *rfp.BudgetMax
}
