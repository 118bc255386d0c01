package ingest

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed config/sources.yaml
var sourcesYAML embed.FS

// Registry holds the ingest search plan: which SAM.gov searches to run and
// over which posted-date window.
type Registry struct {
	Searches []SearchConfig `yaml:"searches"`
	Window   WindowConfig   `yaml:"window"`
	DelayMS  int            `yaml:"delay_ms,omitempty"` // pause between searches, default 1200
}

// SearchConfig defines one SAM.gov search. Either a title keyword or a
// NAICS code, optionally both.
type SearchConfig struct {
	Title string `yaml:"title,omitempty"`
	Naics string `yaml:"naics,omitempty"`
	Limit int    `yaml:"limit,omitempty"` // default 50
}

// WindowConfig selects the posted-date window relative to the run time.
type WindowConfig struct {
	DaysBack    int `yaml:"days_back"`
	DaysForward int `yaml:"days_forward"`
}

// LoadRegistry reads the embedded sources.yaml, or the given filesystem path
// when one is set. An unreadable override path is an error, not a silent
// fallback to the defaults. Environment variables inside the YAML
// (e.g. ${SAM_GOV_API_KEY}) are expanded before parsing.
func LoadRegistry(path string) (*Registry, error) {
	var data []byte
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading sources file %s: %w", path, err)
		}
		data = fileData
	} else {
		embedded, err := sourcesYAML.ReadFile("config/sources.yaml")
		if err != nil {
			return nil, err
		}
		data = embedded
	}

	expanded := os.ExpandEnv(string(data))

	var reg Registry
	if err := yaml.Unmarshal([]byte(expanded), &reg); err != nil {
		return nil, err
	}

	if reg.DelayMS == 0 {
		reg.DelayMS = 1200
	}
	if reg.Window.DaysBack == 0 {
		reg.Window.DaysBack = 30
	}
	if reg.Window.DaysForward == 0 {
		reg.Window.DaysForward = 120
	}

	return &reg, nil
}
