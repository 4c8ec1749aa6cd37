package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kpiNames(kpis []KPI) []string {
	names := make([]string, len(kpis))
	for i, k := range kpis {
		names[i] = k.Name
	}
	return names
}

func TestSummarize_Names(t *testing.T) {
	tests := map[string][]string{
		"sales":     {"total_revenue", "total_units", "avg_order_value"},
		"marketing": {"total_clicks", "total_impressions", "avg_conversion"},
		"customer":  {"avg_lifetime_value", "avg_churn_rate", "avg_satisfaction"},
		"":          {"total_sales", "avg_daily_visitors", "avg_conversion_rate"},
	}

	for category, want := range tests {
		t.Run(category, func(t *testing.T) {
			assert.Equal(t, want, kpiNames(Summarize(Load(category))))
		})
	}
}

func TestSummarize_Values(t *testing.T) {
	ds := Load("sales")
	kpis := Summarize(ds)
	require.Len(t, kpis, 3)

	revenue, _ := ds.Metric("revenue")
	aov, _ := ds.Metric("average_order_value")
	assert.InDelta(t, Sum(revenue.Values), kpis[0].Value, 1e-9)
	assert.InDelta(t, Mean(aov.Values), kpis[2].Value, 1e-9)
}

func TestSummarize_SkipsMissingColumns(t *testing.T) {
	ds := &Dataset{
		Category: "sales",
		Metrics:  []Series{{Name: "revenue", Values: []float64{1, 2, 3}}},
	}
	kpis := Summarize(ds)
	require.Len(t, kpis, 1)
	assert.Equal(t, KPI{Name: "total_revenue", Value: 6}, kpis[0])
}
