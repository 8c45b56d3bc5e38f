// Package catalog holds the static species reference data and the
// label-to-record lookup used to enrich classifier output.
package catalog

import (
	"fmt"
	"sort"

	"github.com/fishfinder/fishfinder-go/internal/errors"
)

// ErrUnknownSpecies is returned by Lookup when the label has no catalog entry.
var ErrUnknownSpecies = errors.NewStd("unknown species label")

// Regulations describes the fishing regulations for a species.
type Regulations struct {
	MinSizeCM   *int   // legal minimum size in cm, nil means no legal minimum
	Protected   bool   // true if the species is protected
	SeasonalBan bool   // true if fishing is banned during the breeding season
	Notes       string // free text regulation notes (Hebrew)
}

// Species is one catalog entry. Every field is populated for every entry.
type Species struct {
	Name             string // localized display name (Hebrew)
	NativeStatus     string // native / lessepsian / invasive classification (Hebrew)
	PopulationStatus string // population status classification (Hebrew)
	AvgSizeCM        int    // average adult size in cm
	Regulations      Regulations
	Description      string // free text description (Hebrew)
}

// Catalog is the immutable label-to-species mapping. The sorted label slice
// defines the classifier's output index space: index i of the model output
// corresponds to Labels()[i]. Built once at process start, never mutated.
type Catalog struct {
	species map[string]Species
	labels  []string
}

// New builds the catalog from the embedded species data.
func New() *Catalog {
	labels := make([]string, 0, len(speciesData))
	for label := range speciesData {
		labels = append(labels, label)
	}
	// Plain byte-order sort. The training pipeline enumerated the labels with
	// the same ordering, so this must stay locale independent.
	sort.Strings(labels)

	return &Catalog{
		species: speciesData,
		labels:  labels,
	}
}

// Lookup returns the species record for a classifier label.
func (c *Catalog) Lookup(label string) (Species, error) {
	s, ok := c.species[label]
	if !ok {
		return Species{}, fmt.Errorf("%w: %q", ErrUnknownSpecies, label)
	}
	return s, nil
}

// Labels returns the lexicographically sorted label list. Callers must not
// mutate the returned slice.
func (c *Catalog) Labels() []string {
	return c.labels
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.species)
}
