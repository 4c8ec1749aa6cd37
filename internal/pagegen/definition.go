package pagegen

import (
	"context"
	"fmt"
	"slices"

	"github.com/newthinker/metricboard/internal/core"
	"github.com/newthinker/metricboard/internal/storage/blob"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Page sections, rendered in the order a definition lists them.
const (
	SectionKeyMetrics   = "key_metrics"
	SectionTimeSeries   = "time_series"
	SectionDimensional  = "dimensional"
	SectionDistribution = "distribution"
	SectionRawData      = "raw_data"
)

// AllSections is used when a definition lists none.
var AllSections = []string{
	SectionKeyMetrics,
	SectionTimeSeries,
	SectionDimensional,
	SectionDistribution,
	SectionRawData,
}

// DefaultHistogramBins applies when a definition leaves histogram_bins unset.
const DefaultHistogramBins = 30

// Definition is the view configuration stored in a generated page file.
type Definition struct {
	Category      string   `yaml:"category" json:"category"`
	Title         string   `yaml:"title" json:"title"`
	Icon          string   `yaml:"icon" json:"icon"`
	Sections      []string `yaml:"sections" json:"sections"`
	HistogramBins int      `yaml:"histogram_bins" json:"histogram_bins"`
}

// ParseDefinition decodes a page file. Missing fields fall back to the page
// name and package defaults.
func ParseDefinition(data []byte, page Page) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, core.WrapError(core.ErrTemplateFailed, err)
	}

	if def.Category == "" {
		def.Category = page.Category
	}
	if def.Title == "" {
		def.Title = def.Category + " Analysis Dashboard"
	}
	if def.Icon == "" {
		def.Icon = page.Icon
	}
	if len(def.Sections) == 0 {
		def.Sections = slices.Clone(AllSections)
	}
	if def.HistogramBins <= 0 {
		def.HistogramBins = DefaultHistogramBins
	}
	return &def, nil
}

// DisplayTitle title-cases the configured title, e.g. "marketing Analysis
// Dashboard" becomes "Marketing Analysis Dashboard".
func (d *Definition) DisplayTitle() string {
	return cases.Title(language.English, cases.NoLower).String(d.Title)
}

// Has reports whether the definition includes section.
func (d *Definition) Has(section string) bool {
	return slices.Contains(d.Sections, section)
}

// Load reads and parses the page with the given id.
func (g *Generator) Load(ctx context.Context, id string) (*Definition, error) {
	key, err := g.key(id)
	if err != nil {
		return nil, err
	}

	data, err := g.store.Read(ctx, key)
	if err != nil {
		if blob.IsNotFound(err) {
			return nil, core.WrapError(core.ErrPageNotFound, err)
		}
		return nil, fmt.Errorf("reading page %s: %w", id, err)
	}
	return ParseDefinition(data, ParsePage(key))
}
