package db

import (
	"strings"
	"testing"
)

func TestSelectColsCoverEveryField(t *testing.T) {
	cols := strings.Split(selectCols, ",")
	if len(cols) != 16 {
		t.Fatalf("selectCols has %d columns, want 16", len(cols))
	}
	for _, col := range cols {
		if strings.TrimSpace(col) == "" {
			t.Fatalf("empty column in selectCols: %q", selectCols)
		}
	}
}

func TestNullIfEmpty(t *testing.T) {
	if nullIfEmpty("") != nil {
		t.Fatal("empty string must map to NULL")
	}
	got := nullIfEmpty("x@y.gov")
	if got == nil || *got != "x@y.gov" {
		t.Fatalf("non-empty string mangled: %v", got)
	}
}
