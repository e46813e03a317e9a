package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines a selection test scenario. Scenarios fetch a
// provision from fixture responses, apply a series of selections, and
// compare the rendered passage against a golden file.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Path is the citation path of the provision to fetch.
	Path string `yaml:"path"`

	// Date is the version date to fetch. Empty means the latest version.
	Date string `yaml:"date,omitempty"`

	// Select holds the initial selection in split-marker form
	// ("prefix|exact|suffix"). Empty means the whole provision.
	Select []string `yaml:"select,omitempty"`

	// Add holds selections applied afterward with SelectMore, so the
	// scenario can grow a selection across several phrases.
	Add []string `yaml:"add,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// are rejected so typos in scenario files fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if scenario.Name == "" {
		return nil, fmt.Errorf("scenario %s: missing name", path)
	}
	if scenario.Path == "" {
		return nil, fmt.Errorf("scenario %s: missing path", path)
	}
	return &scenario, nil
}

// LoadScenarios reads every *.yaml scenario in dir, sorted by filename.
func LoadScenarios(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	scenarios := make([]*Scenario, 0, len(matches))
	for _, match := range matches {
		scenario, err := LoadScenario(match)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios, nil
}
