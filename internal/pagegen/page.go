package pagegen

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/newthinker/metricboard/internal/core"
	"github.com/newthinker/metricboard/internal/storage/blob"
)

// UnknownCategory is reported for files that do not follow the page naming
// pattern.
const UnknownCategory = "Unknown"

// Page describes a generated page file.
type Page struct {
	ID       string `json:"id"`
	File     string `json:"file"`
	Key      string `json:"key"`
	Index    int    `json:"index"`
	Icon     string `json:"icon"`
	Category string `json:"category"`
}

// ParsePage derives page metadata from a store key.
func ParsePage(key string) Page {
	file := path.Base(key)
	id := strings.TrimSuffix(file, path.Ext(file))
	p := Page{ID: id, File: file, Key: key, Category: UnknownCategory}

	prefix, rest, ok := strings.Cut(id, "_")
	if !ok {
		return p
	}
	index, err := strconv.Atoi(prefix)
	if err != nil {
		return p
	}
	icon, rest, ok := strings.Cut(rest, "_")
	if !ok {
		return p
	}
	category, ok := strings.CutSuffix(rest, strings.TrimSuffix(Suffix, path.Ext(Suffix)))
	if !ok || category == "" {
		return p
	}

	p.Index = index
	p.Icon = icon
	p.Category = category
	return p
}

// List returns the generated pages ordered by index, then id.
func (g *Generator) List(ctx context.Context) ([]Page, error) {
	keys, err := g.store.List(ctx, g.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", g.cfg.OutputDir, err)
	}

	ext := path.Ext(Suffix)
	pages := make([]Page, 0, len(keys))
	for _, key := range keys {
		if _, nested, ok := child(g.cfg.OutputDir, key); !ok || nested || path.Ext(key) != ext {
			continue
		}
		pages = append(pages, ParsePage(key))
	}

	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].Index != pages[j].Index {
			return pages[i].Index < pages[j].Index
		}
		return pages[i].ID < pages[j].ID
	})
	return pages, nil
}

// Get returns the page with the given id.
func (g *Generator) Get(ctx context.Context, id string) (Page, error) {
	key, err := g.key(id)
	if err != nil {
		return Page{}, err
	}
	exists, err := g.store.Exists(ctx, key)
	if err != nil {
		return Page{}, fmt.Errorf("checking page %s: %w", id, err)
	}
	if !exists {
		return Page{}, core.WrapError(core.ErrPageNotFound, fmt.Errorf("no page %q", id))
	}
	return ParsePage(key), nil
}

// Delete removes the page with the given id.
func (g *Generator) Delete(ctx context.Context, id string) error {
	key, err := g.key(id)
	if err != nil {
		return err
	}
	if err := g.store.Delete(ctx, key); err != nil {
		if blob.IsNotFound(err) {
			return core.WrapError(core.ErrPageNotFound, err)
		}
		return fmt.Errorf("deleting page %s: %w", id, err)
	}
	return nil
}

// key maps a page id onto its store key, refusing anything that could
// escape the output directory.
func (g *Generator) key(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", core.WrapError(core.ErrInvalidPageID, fmt.Errorf("%q", id))
	}
	return path.Join(g.cfg.OutputDir, id+path.Ext(Suffix)), nil
}
