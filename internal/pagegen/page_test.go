package pagegen

import (
	"context"
	"testing"

	"github.com/newthinker/metricboard/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		key      string
		id       string
		index    int
		icon     string
		category string
	}{
		{"pages/generated/1_📊_marketing_analysis.yaml", "1_📊_marketing_analysis", 1, "📊", "marketing"},
		{"pages/generated/12_📊_new_customers_analysis.yaml", "12_📊_new_customers_analysis", 12, "📊", "new_customers"},
		{"pages/generated/notes.yaml", "notes", 0, "", UnknownCategory},
		{"pages/generated/x_📊_sales_analysis.yaml", "x_📊_sales_analysis", 0, "", UnknownCategory},
		{"pages/generated/4_📊_sales.yaml", "4_📊_sales", 0, "", UnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			p := ParsePage(tt.key)
			assert.Equal(t, tt.id, p.ID)
			assert.Equal(t, tt.key, p.Key)
			assert.Equal(t, tt.index, p.Index)
			assert.Equal(t, tt.icon, p.Icon)
			assert.Equal(t, tt.category, p.Category)
		})
	}
}

func TestList_OrderedByIndex(t *testing.T) {
	g, _ := newTestGenerator(t)
	ctx := context.Background()

	for _, c := range []string{"sales", "marketing", "customer", "sales", "sales", "sales", "sales", "sales", "sales", "sales"} {
		_, err := g.Generate(ctx, c)
		require.NoError(t, err)
	}

	pages, err := g.List(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 10)
	for i, p := range pages {
		assert.Equal(t, i+1, p.Index)
	}
	assert.Equal(t, "marketing", pages[1].Category)
}

func TestList_Empty(t *testing.T) {
	g, _ := newTestGenerator(t)

	pages, err := g.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestDelete_RemovesFromListing(t *testing.T) {
	g, _ := newTestGenerator(t)
	ctx := context.Background()

	_, err := g.Generate(ctx, "sales")
	require.NoError(t, err)
	_, err = g.Generate(ctx, "customer")
	require.NoError(t, err)

	require.NoError(t, g.Delete(ctx, "1_📊_sales_analysis"))

	pages, err := g.List(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "2_📊_customer_analysis", pages[0].ID)
}

func TestDelete_Missing(t *testing.T) {
	g, _ := newTestGenerator(t)

	err := g.Delete(context.Background(), "9_📊_sales_analysis")
	assert.ErrorIs(t, err, core.ErrPageNotFound)
}

func TestDelete_RejectsTraversal(t *testing.T) {
	g, _ := newTestGenerator(t)

	for _, id := range []string{"", ".", "..", "../templates/analysis_template", `a\b`} {
		err := g.Delete(context.Background(), id)
		assert.ErrorIs(t, err, core.ErrInvalidPageID, id)
	}
}

func TestGet(t *testing.T) {
	g, _ := newTestGenerator(t)
	ctx := context.Background()

	_, err := g.Generate(ctx, "customer")
	require.NoError(t, err)

	p, err := g.Get(ctx, "1_📊_customer_analysis")
	require.NoError(t, err)
	assert.Equal(t, "customer", p.Category)

	_, err = g.Get(ctx, "2_📊_customer_analysis")
	assert.ErrorIs(t, err, core.ErrPageNotFound)
}
