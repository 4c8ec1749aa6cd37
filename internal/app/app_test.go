package app

import (
	"bytes"
	"context"
	"io/fs"
	"testing"

	"github.com/newthinker/metricboard/internal/config"
	"github.com/newthinker/metricboard/internal/core"
	"github.com/newthinker/metricboard/internal/storage/blob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	store, err := blob.NewLocalFS(t.TempDir())
	require.NoError(t, err)
	return New(config.Defaults(), store, zap.NewNop())
}

func TestNew(t *testing.T) {
	a := newTestApp(t)

	assert.NotNil(t, a.Sessions())
	assert.NotNil(t, a.Metrics())
	assert.Equal(t, []string{"sales", "marketing", "customer"}, a.Categories())
}

func TestNew_NilConfigAndLogger(t *testing.T) {
	store, err := blob.NewLocalFS(t.TempDir())
	require.NoError(t, err)

	a := New(nil, store, nil)
	assert.NotNil(t, a.Logger())
	assert.Equal(t, config.Defaults().Pages, a.Config().Pages)
}

func TestOpenStore(t *testing.T) {
	store, err := OpenStore(config.StorageConfig{Type: "localfs", Path: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &blob.LocalFS{}, store)

	store, err = OpenStore(config.StorageConfig{Type: "s3", S3: config.S3Config{Bucket: "pages", Region: "us-east-1"}})
	require.NoError(t, err)
	assert.IsType(t, &blob.S3Storage{}, store)

	_, err = OpenStore(config.StorageConfig{Type: "s3"})
	assert.ErrorIs(t, err, core.ErrConfigMissing)

	_, err = OpenStore(config.StorageConfig{Type: "ftp"})
	assert.ErrorIs(t, err, core.ErrConfigInvalid)
}

func TestCategoryInfo(t *testing.T) {
	a := newTestApp(t)

	info, err := a.CategoryInfo("sales")
	require.NoError(t, err)
	assert.Equal(t, []string{"revenue", "units_sold", "average_order_value"}, info.Metrics)

	_, err = a.CategoryInfo("finance")
	assert.ErrorIs(t, err, core.ErrCategoryNotFound)
}

func TestGenerate(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	page, err := a.Generate(ctx, "marketing")
	require.NoError(t, err)
	assert.Equal(t, "1_📊_marketing_analysis.yaml", page.File)
	assert.Equal(t, "marketing", page.Category)

	pages, err := a.ListPages(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, page.ID, pages[0].ID)

}

func TestGenerate_RejectsUnknownCategory(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	_, err := a.Generate(ctx, "finance")
	assert.ErrorIs(t, err, core.ErrCategoryNotFound)

	pages, err := a.ListPages(ctx)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestDeletePage(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	page, err := a.Generate(ctx, "sales")
	require.NoError(t, err)

	require.NoError(t, a.DeletePage(ctx, page.ID))
	assert.ErrorIs(t, a.DeletePage(ctx, page.ID), core.ErrPageNotFound)
	assert.ErrorIs(t, a.DeletePage(ctx, "../secrets"), core.ErrInvalidPageID)
}

type deniedStore struct {
	blob.Store
}

func (deniedStore) Write(context.Context, string, []byte) error { return fs.ErrPermission }

func (deniedStore) Delete(context.Context, string) error { return fs.ErrPermission }

func TestStorageFailuresAreCoded(t *testing.T) {
	local, err := blob.NewLocalFS(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	healthy := New(config.Defaults(), local, zap.NewNop())
	existing, err := healthy.Generate(ctx, "sales")
	require.NoError(t, err)

	a := New(config.Defaults(), deniedStore{Store: local}, zap.NewNop())

	_, err = a.Generate(ctx, "marketing")
	assert.ErrorIs(t, err, core.ErrStorageFailed)
	assert.ErrorIs(t, err, fs.ErrPermission)

	err = a.DeletePage(ctx, existing.ID)
	assert.ErrorIs(t, err, core.ErrStorageFailed)
	assert.ErrorIs(t, err, fs.ErrPermission)

	// Coded errors keep their own code.
	err = healthy.DeletePage(ctx, "9_📊_gone_analysis")
	assert.ErrorIs(t, err, core.ErrPageNotFound)
	assert.NotErrorIs(t, err, core.ErrStorageFailed)
}

func TestLoadPage(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	page, err := a.Generate(ctx, "marketing")
	require.NoError(t, err)

	view, err := a.LoadPage(ctx, page.ID)
	require.NoError(t, err)
	assert.Equal(t, page, view.Page)
	assert.Equal(t, "Marketing Analysis Dashboard", view.Definition.DisplayTitle())

	_, err = a.LoadPage(ctx, "9_📊_missing_analysis")
	assert.ErrorIs(t, err, core.ErrPageNotFound)
}

func TestWriteReport(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	page, err := a.Generate(ctx, "customer")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, a.WriteReport(ctx, &buf, page.ID))
	assert.Contains(t, buf.String(), "Customer Analysis Dashboard")
	assert.Contains(t, buf.String(), "Avg Lifetime Value")
}

func TestDataset(t *testing.T) {
	a := newTestApp(t)

	assert.Equal(t, 365, a.Dataset("sales").Len())
	assert.Equal(t, []string{"sales", "visitors", "conversion_rate"}, a.Dataset("").MetricNames())
}

func TestGetStats(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	_, err := a.Generate(ctx, "sales")
	require.NoError(t, err)
	a.Sessions().Create()

	stats := a.GetStats(ctx)
	assert.Equal(t, 3, stats["categories"])
	assert.Equal(t, 1, stats["pages"])
	assert.Equal(t, 1, stats["sessions"])
}
