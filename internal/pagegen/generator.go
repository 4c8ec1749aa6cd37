// Package pagegen writes analysis page definitions for a category by
// substituting the category name into a template stored alongside the pages.
//
// Page numbering is derived from the number of files already present in the
// output directory. Nothing serializes concurrent generations, so two callers
// racing on the same directory may end up with the same numeric prefix.
package pagegen

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/newthinker/metricboard/internal/storage/blob"
)

// Defaults for Config fields left empty.
const (
	DefaultTemplatePath = "templates/analysis_template.yaml"
	DefaultOutputDir    = "pages/generated"
	DefaultIcon         = "📊"
	DefaultPlaceholder  = "{{category}}"

	// Suffix ends every generated file name.
	Suffix = "_analysis.yaml"
)

// DefaultTemplate is written to the template path the first time a page is
// generated and no template exists yet.
const DefaultTemplate = `# Analysis page definition rendered by the metricboard dashboard.
category: "{{category}}"
title: "{{category}} Analysis Dashboard"
icon: "📊"

# Sections render top to bottom in the order listed.
sections:
  - key_metrics
  - time_series
  - dimensional
  - distribution
  - raw_data

histogram_bins: 30
`

// Config locates the template and the generated pages inside the store.
type Config struct {
	TemplatePath string
	OutputDir    string
	Icon         string
	Placeholder  string
}

func (c Config) withDefaults() Config {
	if c.TemplatePath == "" {
		c.TemplatePath = DefaultTemplatePath
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.Icon == "" {
		c.Icon = DefaultIcon
	}
	if c.Placeholder == "" {
		c.Placeholder = DefaultPlaceholder
	}
	c.OutputDir = path.Clean(c.OutputDir)
	return c
}

// Generator produces and manages generated pages.
type Generator struct {
	store blob.Store
	cfg   Config
}

// New creates a generator over store.
func New(store blob.Store, cfg Config) *Generator {
	return &Generator{store: store, cfg: cfg.withDefaults()}
}

// Config returns the effective configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate writes a new page for category and returns its key in the store.
// Storage errors are returned to the caller wrapped, never retried.
func (g *Generator) Generate(ctx context.Context, category string) (string, error) {
	if _, err := g.EnsureTemplate(ctx); err != nil {
		return "", err
	}

	out, err := g.NextPath(ctx, category)
	if err != nil {
		return "", err
	}

	tmpl, err := g.store.Read(ctx, g.cfg.TemplatePath)
	if err != nil {
		return "", fmt.Errorf("reading template: %w", err)
	}

	content := strings.ReplaceAll(string(tmpl), g.cfg.Placeholder, category)
	if err := g.store.Write(ctx, out, []byte(content)); err != nil {
		return "", fmt.Errorf("writing page %s: %w", out, err)
	}

	return out, nil
}

// EnsureTemplate writes DefaultTemplate when no template exists. It reports
// whether a template was created.
func (g *Generator) EnsureTemplate(ctx context.Context) (bool, error) {
	exists, err := g.store.Exists(ctx, g.cfg.TemplatePath)
	if err != nil {
		return false, fmt.Errorf("checking template: %w", err)
	}
	if exists {
		return false, nil
	}

	if err := g.store.Write(ctx, g.cfg.TemplatePath, []byte(DefaultTemplate)); err != nil {
		return false, fmt.Errorf("writing default template: %w", err)
	}
	return true, nil
}

// NextPath returns the key the next page for category would be written to.
func (g *Generator) NextPath(ctx context.Context, category string) (string, error) {
	keys, err := g.store.List(ctx, g.cfg.OutputDir)
	if err != nil {
		return "", fmt.Errorf("listing %s: %w", g.cfg.OutputDir, err)
	}
	return path.Join(g.cfg.OutputDir, FileName(countEntries(g.cfg.OutputDir, keys)+1, g.cfg.Icon, category)), nil
}

// countEntries counts the names directly inside dir. A nested directory
// counts once however many files it holds.
func countEntries(dir string, keys []string) int {
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		name, _, ok := child(dir, key)
		if ok {
			seen[name] = struct{}{}
		}
	}
	return len(seen)
}

// child splits key into the first path element below dir. nested reports
// whether key lives further down than that element.
func child(dir, key string) (name string, nested, ok bool) {
	rest, found := key, true
	if dir != "." {
		rest, found = strings.CutPrefix(key, dir+"/")
	}
	if !found || rest == "" {
		return "", false, false
	}
	name, _, nested = strings.Cut(rest, "/")
	return name, nested, true
}

// FileName builds a page file name such as "1_📊_sales_analysis.yaml".
func FileName(index int, icon, category string) string {
	return fmt.Sprintf("%d_%s_%s%s", index, icon, category, Suffix)
}
