// Package app wires the catalog, page generator, sessions and metrics into
// the operations the web server and CLI share.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/newthinker/metricboard/internal/catalog"
	"github.com/newthinker/metricboard/internal/config"
	"github.com/newthinker/metricboard/internal/core"
	"github.com/newthinker/metricboard/internal/dataset"
	"github.com/newthinker/metricboard/internal/metrics"
	"github.com/newthinker/metricboard/internal/pagegen"
	"github.com/newthinker/metricboard/internal/report"
	"github.com/newthinker/metricboard/internal/session"
	"github.com/newthinker/metricboard/internal/storage/blob"
	"go.uber.org/zap"
)

// App is the main application orchestrator
type App struct {
	cfg      *config.Config
	logger   *zap.Logger
	catalog  *catalog.Catalog
	pages    *pagegen.Generator
	sessions *session.Store
	metrics  *metrics.Registry
}

// View is a generated page together with its parsed definition.
type View struct {
	Page       pagegen.Page
	Definition *pagegen.Definition
}

// OpenStore builds the blob store selected by cfg.
func OpenStore(cfg config.StorageConfig) (blob.Store, error) {
	switch cfg.Type {
	case "", "localfs":
		return blob.NewLocalFS(cfg.Path)
	case "s3":
		return blob.NewS3(blob.S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
	default:
		return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("unknown storage type %q", cfg.Type))
	}
}

// New creates a new App instance
func New(cfg *config.Config, store blob.Store, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.Defaults()
	}

	pages := pagegen.New(store, pagegen.Config{
		TemplatePath: cfg.Pages.TemplatePath,
		OutputDir:    cfg.Pages.OutputDir,
		Icon:         cfg.Pages.Icon,
		Placeholder:  cfg.Pages.Placeholder,
	})

	return &App{
		cfg:      cfg,
		logger:   logger,
		catalog:  catalog.New(),
		pages:    pages,
		sessions: session.NewStore(cfg.Session.MaxSessions, cfg.Session.TTL),
		metrics:  metrics.NewRegistry(),
	}
}

// Config returns the configuration the app was built with.
func (a *App) Config() *config.Config { return a.cfg }

// Logger returns the app logger.
func (a *App) Logger() *zap.Logger { return a.logger }

// Sessions returns the session store.
func (a *App) Sessions() *session.Store { return a.sessions }

// Metrics returns the metrics registry.
func (a *App) Metrics() *metrics.Registry { return a.metrics }

// Categories lists catalog categories in display order.
func (a *App) Categories() []string {
	return a.catalog.Categories()
}

// CategoryInfo returns the fields of a catalog category.
func (a *App) CategoryInfo(name string) (catalog.Info, error) {
	if !a.catalog.Has(name) {
		return catalog.Info{}, core.WrapError(core.ErrCategoryNotFound, fmt.Errorf("%q", name))
	}
	return a.catalog.Info(name), nil
}

// Generate writes a new analysis page for a catalog category. Categories
// outside the catalog are refused here; the generator itself accepts any
// string.
func (a *App) Generate(ctx context.Context, category string) (pagegen.Page, error) {
	if !a.catalog.Has(category) {
		err := core.WrapError(core.ErrCategoryNotFound, fmt.Errorf("%q", category))
		a.metrics.RecordGenerate(category, err)
		return pagegen.Page{}, err
	}

	key, err := a.pages.Generate(ctx, category)
	a.metrics.RecordGenerate(category, err)
	if err != nil {
		err = storageError(err)
		a.logger.Error("page generation failed",
			zap.String("category", category),
			zap.Error(err),
		)
		return pagegen.Page{}, err
	}

	page := pagegen.ParsePage(key)
	a.logger.Info("page generated",
		zap.String("category", category),
		zap.String("file", page.File),
	)
	a.refreshPageGauge(ctx)
	return page, nil
}

// ListPages returns the generated pages.
func (a *App) ListPages(ctx context.Context) ([]pagegen.Page, error) {
	pages, err := a.pages.List(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	a.metrics.SetGeneratedPages(len(pages))
	return pages, nil
}

// DeletePage removes a generated page.
func (a *App) DeletePage(ctx context.Context, id string) error {
	err := a.pages.Delete(ctx, id)
	a.metrics.RecordDelete(err)
	if err != nil {
		err = storageError(err)
		a.logger.Warn("page deletion failed", zap.String("page", id), zap.Error(err))
		return err
	}

	a.logger.Info("page deleted", zap.String("page", id))
	a.refreshPageGauge(ctx)
	return nil
}

// LoadPage returns a generated page and its definition.
func (a *App) LoadPage(ctx context.Context, id string) (View, error) {
	page, err := a.pages.Get(ctx, id)
	if err != nil {
		return View{}, storageError(err)
	}
	def, err := a.pages.Load(ctx, id)
	if err != nil {
		return View{}, storageError(err)
	}
	return View{Page: page, Definition: def}, nil
}

// Dataset returns the synthetic data for category. Unknown categories get
// the overview dataset.
func (a *App) Dataset(category string) *dataset.Dataset {
	return dataset.Load(category)
}

// WriteReport exports page id as Markdown.
func (a *App) WriteReport(ctx context.Context, w io.Writer, id string) error {
	view, err := a.LoadPage(ctx, id)
	if err != nil {
		return err
	}

	ds := dataset.Load(view.Definition.Category)
	return report.WriteMarkdown(w, report.Input{
		Page:       view.Page,
		Definition: view.Definition,
		Info:       a.catalog.Info(view.Definition.Category),
		Summary:    dataset.Summarize(ds),
		Rows:       ds.Len(),
	})
}

// storageError tags store failures that carry no code with STORAGE_FAILED.
// The cause stays reachable through errors.Is.
func storageError(err error) error {
	var coded *core.Error
	if errors.As(err, &coded) {
		return err
	}
	return core.WrapError(core.ErrStorageFailed, err)
}

func (a *App) refreshPageGauge(ctx context.Context) {
	if _, err := a.ListPages(ctx); err != nil {
		a.logger.Debug("counting pages", zap.Error(err))
	}
}

// GetStats returns application statistics
func (a *App) GetStats(ctx context.Context) map[string]any {
	pages, _ := a.pages.List(ctx)
	return map[string]any{
		"categories": len(a.catalog.Categories()),
		"pages":      len(pages),
		"sessions":   a.sessions.Len(),
	}
}
