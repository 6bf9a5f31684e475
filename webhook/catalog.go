package webhook

import (
	_ "embed"
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// CatalogEntry maps a Troquecommerce event type code to its label
type CatalogEntry struct {
	Code  string `yaml:"code"`
	Label string `yaml:"label"`
}

type catalogFile struct {
	Events []CatalogEntry `yaml:"events"`
}

/* The catalog is compiled into the binary and parsed once
 * A broken catalog.yaml is a build defect, so it panics at init instead of returning errors
 */
var catalog = mustParseCatalog(catalogYAML)

func mustParseCatalog(data []byte) map[string]string {
	entries, err := parseCatalog(data)
	if err != nil {
		panic(fmt.Sprintf("webhook: invalid embedded catalog: %v", err))
	}
	labels := make(map[string]string, len(entries))
	for _, e := range entries {
		labels[e.Code] = e.Label
	}
	return labels
}

func parseCatalog(data []byte) ([]CatalogEntry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}
	seen := make(map[string]bool, len(file.Events))
	for _, e := range file.Events {
		if e.Code == "" {
			return nil, fmt.Errorf("event code cannot be empty")
		}
		if e.Label == "" {
			return nil, fmt.Errorf("label cannot be empty for event %s", e.Code)
		}
		if seen[e.Code] {
			return nil, fmt.Errorf("duplicate event code %s", e.Code)
		}
		seen[e.Code] = true
	}
	return file.Events, nil
}

// LabelFor returns the human readable label of an event code.
// Unknown codes get a synthesized "Evento <code>" label.
func LabelFor(code string) string {
	if label, ok := catalog[code]; ok {
		return label
	}
	return "Evento " + code
}

// Known reports whether code is part of the catalog
func Known(code string) bool {
	_, ok := catalog[code]
	return ok
}

// Catalog returns every entry ordered by numeric code
func Catalog() []CatalogEntry {
	entries := make([]CatalogEntry, 0, len(catalog))
	for code, label := range catalog {
		entries = append(entries, CatalogEntry{Code: code, Label: label})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, errA := strconv.Atoi(entries[i].Code)
		b, errB := strconv.Atoi(entries[j].Code)
		if errA != nil || errB != nil {
			return entries[i].Code < entries[j].Code
		}
		return a < b
	})
	return entries
}
