package rfp

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/david/rfp-finder/internal/models"
)

// BudgetRange is a parsed budget constraint. High == 0 means unbounded.
type BudgetRange struct {
	Low  int
	High int
}

// FilterSpec carries the optional listing criteria. A nil/empty field means
// no constraint on that axis; filtering is conjunctive across axes.
type FilterSpec struct {
	Search             string
	Technologies       []string
	OrganizationTypes  []string
	Budget             *BudgetRange
	DeadlineWithinDays *int
}

// ParseBudgetRange parses the query-string budget forms "low-high" and
// "low+". Malformed input is rejected here so the filter core never sees an
// ill-typed spec.
func ParseBudgetRange(s string) (*BudgetRange, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "any" {
		return nil, nil
	}

	if strings.HasSuffix(s, "+") {
		low, err := strconv.Atoi(strings.TrimSuffix(s, "+"))
		if err != nil || low < 0 {
			return nil, fmt.Errorf("invalid budget range %q", s)
		}
		return &BudgetRange{Low: low}, nil
	}

	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid budget range %q", s)
	}
	low, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || low < 0 {
		return nil, fmt.Errorf("invalid budget range %q", s)
	}
	high, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || high < low {
		return nil, fmt.Errorf("invalid budget range %q", s)
	}
	return &BudgetRange{Low: low, High: high}, nil
}

// Matches reports whether a record satisfies every set criterion. The
// implicit active-only rule lives in Apply, not here, so callers can probe
// individual predicates in isolation.
func (spec FilterSpec) Matches(rfp models.Rfp, now time.Time) bool {
	if spec.Search != "" {
		needle := strings.ToLower(spec.Search)
		if !strings.Contains(strings.ToLower(rfp.Title), needle) &&
			!strings.Contains(strings.ToLower(rfp.Description), needle) &&
			!strings.Contains(strings.ToLower(rfp.Organization), needle) {
			return false
		}
	}

	if len(spec.Technologies) > 0 && !containsFold(spec.Technologies, rfp.Technology) {
		return false
	}

	if len(spec.OrganizationTypes) > 0 && !containsFold(spec.OrganizationTypes, rfp.OrganizationType) {
		return false
	}

	if spec.Budget != nil && !matchesBudget(rfp, *spec.Budget) {
		return false
	}

	if spec.DeadlineWithinDays != nil {
		cutoff := now.Add(time.Duration(*spec.DeadlineWithinDays) * 24 * time.Hour)
		if rfp.Deadline.After(cutoff) {
			return false
		}
	}

	return true
}

// matchesBudget replicates the source behavior exactly: a missing BudgetMin
// always passes, and the upper bound only applies when BudgetMax is present.
func matchesBudget(rfp models.Rfp, r BudgetRange) bool {
	if rfp.BudgetMin == nil {
		return true
	}
	if *rfp.BudgetMin < r.Low {
		return false
	}
	if r.High > 0 && rfp.BudgetMax != nil && *rfp.BudgetMax > r.High {
		return false
	}
	return true
}

// Apply filters the snapshot down to the visible, ordered result list:
// active records matching every set criterion, ranked by Rank.
func Apply(rfps []models.Rfp, spec FilterSpec, now time.Time) []models.Rfp {
	out := make([]models.Rfp, 0, len(rfps))
	for _, rfp := range rfps {
		if !rfp.IsActive {
			continue
		}
		if spec.Matches(rfp, now) {
			out = append(out, rfp)
		}
	}
	Rank(out)
	return out
}

func containsFold(haystack []string, needle string) bool {
	for _, v := range haystack {
		if strings.EqualFold(v, needle) {
			return true
		}
	}
	return false
}
