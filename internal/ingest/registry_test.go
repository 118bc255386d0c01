package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEmbeddedDefaults(t *testing.T) {
	reg, err := LoadRegistry("")
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.Searches) == 0 {
		t.Fatalf("no searches in embedded registry")
	}
	if reg.Window.DaysBack != 30 || reg.Window.DaysForward != 120 {
		t.Errorf("window = %+v, want 30 back / 120 forward", reg.Window)
	}
	if reg.DelayMS != 1200 {
		t.Errorf("delay = %d, want 1200", reg.DelayMS)
	}
}

func TestLoadRegistryOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	yaml := "searches:\n  - title: drupal migration\nwindow:\n  days_back: 7\n  days_forward: 14\ndelay_ms: 100\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.Searches) != 1 || reg.Searches[0].Title != "drupal migration" {
		t.Errorf("searches = %+v", reg.Searches)
	}
	if reg.Window.DaysBack != 7 || reg.Window.DaysForward != 14 {
		t.Errorf("window = %+v", reg.Window)
	}
	if reg.DelayMS != 100 {
		t.Errorf("delay = %d, want 100", reg.DelayMS)
	}
}

func TestLoadRegistryMissingOverridePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected error for missing override file %s", path)
	}
}
