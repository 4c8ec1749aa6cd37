package dataset

import (
	"math/rand/v2"
	"time"

	"github.com/newthinker/metricboard/internal/catalog"
)

// Seed keeps every generated dataset reproducible across requests.
const Seed = 42

var (
	startDate = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	endDate   = time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)
)

type distribution int

const (
	normal distribution = iota
	uniform
)

type metricSpec struct {
	name string
	dist distribution
	a, b float64 // mean/stddev for normal, low/high for uniform
}

type dimensionSpec struct {
	name    string
	choices []string
}

type spec struct {
	metrics    []metricSpec
	dimensions []dimensionSpec
}

var specs = map[string]spec{
	catalog.Sales: {
		metrics: []metricSpec{
			{"revenue", normal, 1000, 150},
			{"units_sold", normal, 100, 15},
			{"average_order_value", normal, 50, 5},
		},
		dimensions: []dimensionSpec{
			{"product_category", []string{"Electronics", "Clothing", "Food"}},
			{"region", []string{"North", "South", "East", "West"}},
			{"channel", []string{"Online", "Store", "Partner"}},
		},
	},
	catalog.Marketing: {
		metrics: []metricSpec{
			{"clicks", normal, 5000, 500},
			{"impressions", normal, 50000, 5000},
			{"conversion_rate", uniform, 0.01, 0.05},
		},
		dimensions: []dimensionSpec{
			{"campaign", []string{"Summer", "Holiday", "Flash"}},
			{"platform", []string{"Facebook", "Google", "Email"}},
			{"audience", []string{"Young", "Adult", "Senior"}},
		},
	},
	catalog.Customer: {
		metrics: []metricSpec{
			{"lifetime_value", normal, 500, 100},
			{"churn_rate", uniform, 0.05, 0.15},
			{"satisfaction_score", normal, 4.2, 0.3},
		},
		dimensions: []dimensionSpec{
			{"segment", []string{"Premium", "Standard", "Basic"}},
			{"location", []string{"Urban", "Suburban", "Rural"}},
			{"age_group", []string{"18-25", "26-35", "36-50", "50+"}},
		},
	},
}

// overview is used for any name outside the catalog, including "".
var overview = spec{
	metrics: []metricSpec{
		{"sales", normal, 100, 15},
		{"visitors", normal, 500, 50},
		{"conversion_rate", uniform, 0.1, 0.3},
	},
}

// Load generates the dataset for category. Unknown categories, and the empty
// string, produce the overview dataset of sales, visitors and conversion rate.
func Load(category string) *Dataset {
	sp, ok := specs[category]
	if !ok {
		sp = overview
	}

	rng := rand.New(rand.NewPCG(Seed, Seed))
	dates := dailyRange(startDate, endDate)
	n := len(dates)

	ds := &Dataset{
		Category:   category,
		Dates:      dates,
		Metrics:    make([]Series, 0, len(sp.metrics)),
		Dimensions: make([]Labels, 0, len(sp.dimensions)),
	}

	for _, m := range sp.metrics {
		values := make([]float64, n)
		for i := range values {
			switch m.dist {
			case uniform:
				values[i] = m.a + rng.Float64()*(m.b-m.a)
			default:
				values[i] = m.a + rng.NormFloat64()*m.b
			}
		}
		ds.Metrics = append(ds.Metrics, Series{Name: m.name, Values: values})
	}

	for _, d := range sp.dimensions {
		values := make([]string, n)
		for i := range values {
			values[i] = d.choices[rng.IntN(len(d.choices))]
		}
		ds.Dimensions = append(ds.Dimensions, Labels{Name: d.name, Values: values})
	}

	return ds
}

func dailyRange(from, to time.Time) []time.Time {
	var dates []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
