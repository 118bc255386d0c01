package rfp

import (
	"testing"
	"time"

	"github.com/david/rfp-finder/internal/models"
	"github.com/google/uuid"
)

func rfpFixture(mutate func(*models.Rfp)) models.Rfp {
	r := models.Rfp{
		ID:               uuid.New(),
		Title:            "Agency Portal Refresh",
		Organization:     "City of Somewhere",
		Description:      "General modernization work.",
		Technology:       "Web Development",
		Deadline:         time.Now().AddDate(0, 0, 30),
		PostedDate:       time.Now().AddDate(0, 0, -5),
		Location:         "Austin, Texas",
		OrganizationType: "Government",
		IsActive:         true,
	}
	if mutate != nil {
		mutate(&r)
	}
	return r
}

func TestApplyExcludesInactiveAndRanksPriorityFirst(t *testing.T) {
	now := time.Now()
	r1 := rfpFixture(func(r *models.Rfp) {
		r.Title = "R1"
		r.IsPriority = true
		r.Deadline = now.AddDate(0, 0, 10)
	})
	r2 := rfpFixture(func(r *models.Rfp) {
		r.Title = "R2"
		r.Deadline = now.AddDate(0, 0, 5)
	})
	r3 := rfpFixture(func(r *models.Rfp) {
		r.Title = "R3"
		r.IsPriority = true
		r.Deadline = now.AddDate(0, 0, 2)
		r.IsActive = false
	})

	got := Apply([]models.Rfp{r2, r3, r1}, FilterSpec{}, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 visible records, got %d", len(got))
	}
	// R3 would beat R1 on deadline but is inactive; R2's earlier deadline
	// loses to R1's priority flag.
	if got[0].Title != "R1" || got[1].Title != "R2" {
		t.Errorf("unexpected order: %s, %s", got[0].Title, got[1].Title)
	}
}

func TestApplyOrderingProperty(t *testing.T) {
	now := time.Now()
	var all []models.Rfp
	for i := 0; i < 12; i++ {
		i := i
		all = append(all, rfpFixture(func(r *models.Rfp) {
			r.IsPriority = i%3 == 0
			r.Deadline = now.AddDate(0, 0, 14-i)
		}))
	}

	got := Apply(all, FilterSpec{}, now)
	for i := 1; i < len(got); i++ {
		a, b := got[i-1], got[i]
		if !a.IsPriority && b.IsPriority {
			t.Fatalf("non-priority record at %d sorted before priority record", i-1)
		}
		if a.IsPriority == b.IsPriority && a.Deadline.After(b.Deadline) {
			t.Fatalf("deadline order violated at %d", i)
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	now := time.Now()
	var all []models.Rfp
	for i := 0; i < 8; i++ {
		i := i
		all = append(all, rfpFixture(func(r *models.Rfp) {
			r.IsPriority = i%2 == 0
			r.Deadline = now.AddDate(0, 0, i)
		}))
	}

	spec := FilterSpec{Technologies: []string{"Web Development"}}
	first := Apply(all, spec, now)
	second := Apply(all, spec, now)
	if len(first) != len(second) {
		t.Fatal("result length changed between identical calls")
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("order changed between identical calls at %d", i)
		}
	}
}

func TestSearchMatchesAnyOfTitleDescriptionOrganization(t *testing.T) {
	now := time.Now()
	byTitle := rfpFixture(func(r *models.Rfp) { r.Title = "Drupal Migration" })
	byDesc := rfpFixture(func(r *models.Rfp) { r.Description = "Includes drupal module work" })
	byOrg := rfpFixture(func(r *models.Rfp) { r.Organization = "Drupal Services LLC" })
	noMatch := rfpFixture(nil)

	got := Apply([]models.Rfp{byTitle, byDesc, byOrg, noMatch}, FilterSpec{Search: "DRUPAL"}, now)
	if len(got) != 3 {
		t.Fatalf("expected 3 search matches, got %d", len(got))
	}
}

func TestBudgetFilterAsymmetry(t *testing.T) {
	now := time.Now()
	spec := FilterSpec{Budget: &BudgetRange{Low: 100000, High: 500000}}

	noBudget := rfpFixture(nil)
	tooLow := rfpFixture(func(r *models.Rfp) { r.BudgetMin = models.IntPtr(50000) })
	inRange := rfpFixture(func(r *models.Rfp) {
		r.BudgetMin = models.IntPtr(150000)
		r.BudgetMax = models.IntPtr(400000)
	})
	noMax := rfpFixture(func(r *models.Rfp) { r.BudgetMin = models.IntPtr(150000) })
	maxTooHigh := rfpFixture(func(r *models.Rfp) {
		r.BudgetMin = models.IntPtr(150000)
		r.BudgetMax = models.IntPtr(900000)
	})

	tests := []struct {
		name string
		rfp  models.Rfp
		want bool
	}{
		{"absent budgetMin always passes", noBudget, true},
		{"budgetMin below low excluded", tooLow, false},
		{"in range passes", inRange, true},
		{"absent budgetMax passes upper half", noMax, true},
		{"budgetMax above high excluded", maxTooHigh, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := spec.Matches(tt.rfp, now); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnboundedBudgetRange(t *testing.T) {
	now := time.Now()
	spec := FilterSpec{Budget: &BudgetRange{Low: 500000}}

	big := rfpFixture(func(r *models.Rfp) {
		r.BudgetMin = models.IntPtr(600000)
		r.BudgetMax = models.IntPtr(2000000)
	})
	if !spec.Matches(big, now) {
		t.Error("unbounded high must not exclude large budgets")
	}
}

func TestDeadlineWithinDays(t *testing.T) {
	now := time.Now()

	soon := rfpFixture(func(r *models.Rfp) { r.Deadline = now.AddDate(0, 0, 5) })
	late := rfpFixture(func(r *models.Rfp) { r.Deadline = now.AddDate(0, 0, 45) })
	overdue := rfpFixture(func(r *models.Rfp) { r.Deadline = now.AddDate(0, 0, -3) })

	days := 7
	spec := FilterSpec{DeadlineWithinDays: &days}
	if !spec.Matches(soon, now) {
		t.Error("deadline inside window must pass")
	}
	if spec.Matches(late, now) {
		t.Error("deadline beyond window must be excluded")
	}
	// No lower bound: past deadlines pass the window filter.
	if !spec.Matches(overdue, now) {
		t.Error("overdue deadline must pass the window filter")
	}

	// Zero literally means deadline <= now, not "due today".
	zero := 0
	spec = FilterSpec{DeadlineWithinDays: &zero}
	if spec.Matches(soon, now) {
		t.Error("future deadline must fail a zero-day window")
	}
	if !spec.Matches(overdue, now) {
		t.Error("past deadline must pass a zero-day window")
	}
}

func TestEmptyCategorySetMeansNoFiltering(t *testing.T) {
	now := time.Now()
	r := rfpFixture(nil)

	if !(FilterSpec{Technologies: []string{}}).Matches(r, now) {
		t.Error("empty technology set must not filter")
	}
	if (FilterSpec{Technologies: []string{"Drupal"}}).Matches(r, now) {
		t.Error("non-member category must be excluded")
	}
}

func TestParseBudgetRange(t *testing.T) {
	tests := []struct {
		in      string
		want    *BudgetRange
		wantErr bool
	}{
		{"", nil, false},
		{"any", nil, false},
		{"100000-500000", &BudgetRange{Low: 100000, High: 500000}, false},
		{"500000+", &BudgetRange{Low: 500000}, false},
		{"0-50000", &BudgetRange{Low: 0, High: 50000}, false},
		{"banana", nil, true},
		{"500000-100000", nil, true},
		{"-100", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBudgetRange(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResortModes(t *testing.T) {
	now := time.Now()
	a := rfpFixture(func(r *models.Rfp) {
		r.Title = "A"
		r.BudgetMax = models.IntPtr(100)
		r.PostedDate = now.AddDate(0, 0, -1)
	})
	b := rfpFixture(func(r *models.Rfp) {
		r.Title = "B"
		r.BudgetMax = models.IntPtr(300)
		r.PostedDate = now.AddDate(0, 0, -9)
	})

	list := []models.Rfp{a, b}
	Resort(list, SortBudget)
	if list[0].Title != "B" {
		t.Error("budget sort should put the larger max first")
	}

	Resort(list, SortNewest)
	if list[0].Title != "A" {
		t.Error("newest sort should put the most recent posting first")
	}
}
