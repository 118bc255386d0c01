package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/david/rfp-finder/internal/db"
	"github.com/david/rfp-finder/internal/ingest"
	"github.com/david/rfp-finder/internal/rfp"
	"github.com/david/rfp-finder/internal/store"
)

func main() {
	search := flag.String("search", "", "keyword filter over title, description, organization")
	technologies := flag.String("technologies", "", "comma-separated technology filter")
	budgetRange := flag.String("budget", "", `budget filter, e.g. "50000-200000" or "100000+"`)
	sortMode := flag.String("sort", "", "presentation sort: deadline, budget, newest")
	flag.Parse()

	ctx := context.Background()

	// Render the demo seeds when no database is configured.
	var st store.Store
	if os.Getenv("DATABASE_URL") != "" {
		pool, err := db.Connect(ctx)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()
		st = db.NewPgStore(pool)
	} else {
		mem := store.NewMemStore()
		if _, err := store.Seed(ctx, mem); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		st = mem
	}

	spec := rfp.FilterSpec{Search: *search}
	if *technologies != "" {
		spec.Technologies = strings.Split(*technologies, ",")
	}
	budget, err := rfp.ParseBudgetRange(*budgetRange)
	if err != nil {
		log.Fatalf("Invalid budget filter: %v", err)
	}
	spec.Budget = budget

	rfps, err := rfp.NewService(st).ListRfps(ctx, spec)
	if err != nil {
		log.Fatalf("Listing failed: %v", err)
	}
	if *sortMode != "" {
		rfp.Resort(rfps, rfp.SortMode(*sortMode))
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Title", "Organization", "Technology", "Budget", "Deadline", "Priority"})

	for _, r := range rfps {
		budgetCell := "-"
		if r.BudgetMin != nil && r.BudgetMax != nil {
			budgetCell = formatRange(*r.BudgetMin, *r.BudgetMax)
		} else if r.BudgetMin != nil {
			budgetCell = formatRange(*r.BudgetMin, 0)
		}

		priority := ""
		if r.IsPriority {
			priority = "*"
		}

		t.AppendRow(table.Row{
			ingest.TruncateText(r.Title, 48),
			ingest.TruncateText(r.Organization, 32),
			r.Technology,
			budgetCell,
			r.Deadline.Format("2006-01-02"),
			priority,
		})
	}
	t.Render()
	log.Printf("%d RFPs listed", len(rfps))
}

func formatRange(low, high int) string {
	if high == 0 {
		return "$" + group(low) + "+"
	}
	return "$" + group(low) + " - $" + group(high)
}

// group inserts thousands separators.
func group(n int) string {
	raw := strconv.Itoa(n)
	var b strings.Builder
	for i, c := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}
