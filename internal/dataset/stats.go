package dataset

import (
	"math"
	"sort"
)

// Sum adds up values.
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}

// Group is the mean of a metric for one dimension label.
type Group struct {
	Label string  `json:"label"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// GroupMean averages metric per distinct dimension label, sorted by label.
func (d *Dataset) GroupMean(metric, dimension string) ([]Group, bool) {
	m, ok := d.Metric(metric)
	if !ok {
		return nil, false
	}
	dim, ok := d.Dimension(dimension)
	if !ok {
		return nil, false
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i, label := range dim.Values {
		sums[label] += m.Values[i]
		counts[label]++
	}

	groups := make([]Group, 0, len(sums))
	for label, sum := range sums {
		groups = append(groups, Group{
			Label: label,
			Mean:  sum / float64(counts[label]),
			Count: counts[label],
		})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Label < groups[j].Label })
	return groups, true
}

// Bin is one histogram bucket covering [Low, High); the last bin also
// includes its upper edge.
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Histogram splits values into bins equal-width buckets between their
// minimum and maximum.
func Histogram(values []float64, bins int) []Bin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}

	lo, hi := Range(values)
	if lo == hi {
		return []Bin{{Low: lo, High: hi, Count: len(values)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i] = Bin{Low: lo + float64(i)*width, High: lo + float64(i+1)*width}
	}
	out[bins-1].High = hi

	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

// LinearFit returns the ordinary least squares line y = slope*x + intercept.
// ok is false when x has no variance or the slices differ in length.
func LinearFit(x, y []float64) (slope, intercept float64, ok bool) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, 0, false
	}

	mx, my := Mean(x), Mean(y)
	var sxy, sxx float64
	for i := range x {
		dx := x[i] - mx
		sxy += dx * (y[i] - my)
		sxx += dx * dx
	}
	if sxx == 0 {
		return 0, 0, false
	}

	slope = sxy / sxx
	return slope, my - slope*mx, true
}

// Range returns the minimum and maximum of values.
func Range(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
