package seeds

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seeds.yaml
var defaultYAML []byte

// Tables holds the seed and fallback lookups keyed by month name ("March").
// A Tables value is never mutated after it is built; accessors return copies.
type Tables struct {
	events   map[string][]string
	monthly  map[string][]string
	fallback map[string][]string
	generic  []string
}

type document struct {
	Events   map[string][]string `yaml:"events"`
	Monthly  map[string][]string `yaml:"monthly"`
	Fallback map[string][]string `yaml:"fallback"`
	Generic  []string            `yaml:"generic"`
}

var defaults = mustParse(defaultYAML)

// Default returns the tables embedded in the binary.
func Default() Tables {
	return defaults
}

// Load returns the embedded tables, or the ones in path when it is set.
func Load(path string) (Tables, error) {
	if path == "" {
		return defaults, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("seeds: read %s: %w", path, err)
	}
	return Parse(b)
}

// Parse builds tables from a YAML document.
func Parse(b []byte) (Tables, error) {
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return Tables{}, fmt.Errorf("seeds: parse: %w", err)
	}
	if len(doc.Generic) == 0 {
		return Tables{}, errors.New("seeds: generic fallback list must not be empty")
	}
	for month, list := range doc.Fallback {
		if len(list) == 0 {
			return Tables{}, fmt.Errorf("seeds: fallback list for %s is empty", month)
		}
	}
	return Tables{
		events:   clean(doc.Events),
		monthly:  clean(doc.Monthly),
		fallback: clean(doc.Fallback),
		generic:  append([]string(nil), doc.Generic...),
	}, nil
}

func mustParse(b []byte) Tables {
	t, err := Parse(b)
	if err != nil {
		panic(err)
	}
	return t
}

// clean drops empty lists so "absent" and "empty" mean the same thing.
func clean(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for k, v := range in {
		if len(v) == 0 {
			continue
		}
		out[k] = append([]string(nil), v...)
	}
	return out
}

// EventSeeds returns the event-specific seeds for month, or nil.
func (t Tables) EventSeeds(month string) []string {
	return copyOf(t.events[month])
}

// MonthlySeeds returns the seasonal seeds for month, or nil.
func (t Tables) MonthlySeeds(month string) []string {
	return copyOf(t.monthly[month])
}

// Fallback returns the fallback keywords for month, or the generic list when
// the month is unmapped.
func (t Tables) Fallback(month string) []string {
	if list, ok := t.fallback[month]; ok {
		return copyOf(list)
	}
	return copyOf(t.generic)
}

// Generic returns the list used for months without fallback keywords.
func (t Tables) Generic() []string {
	return copyOf(t.generic)
}

func copyOf(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return append([]string(nil), s...)
}
