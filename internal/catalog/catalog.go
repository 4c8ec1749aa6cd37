// Package catalog holds the fixed set of data categories the dashboard knows
// about, each with its ordered metric and dimension fields.
package catalog

// Built-in category names.
const (
	Sales     = "sales"
	Marketing = "marketing"
	Customer  = "customer"
)

// Info lists the fields available for a category.
type Info struct {
	Metrics    []string `json:"metrics"`
	Dimensions []string `json:"dimensions"`
}

// Empty reports whether the info carries no fields at all.
func (i Info) Empty() bool {
	return len(i.Metrics) == 0 && len(i.Dimensions) == 0
}

type entry struct {
	name string
	info Info
}

// Catalog is an immutable, ordered lookup table of categories.
type Catalog struct {
	entries []entry
	index   map[string]int
}

// New builds the built-in catalog.
func New() *Catalog {
	return build([]entry{
		{Sales, Info{
			Metrics:    []string{"revenue", "units_sold", "average_order_value"},
			Dimensions: []string{"product_category", "region", "channel"},
		}},
		{Marketing, Info{
			Metrics:    []string{"clicks", "impressions", "conversion_rate"},
			Dimensions: []string{"campaign", "platform", "audience"},
		}},
		{Customer, Info{
			Metrics:    []string{"lifetime_value", "churn_rate", "satisfaction_score"},
			Dimensions: []string{"segment", "location", "age_group"},
		}},
	})
}

func build(entries []entry) *Catalog {
	c := &Catalog{
		entries: entries,
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		c.index[e.name] = i
	}
	return c
}

// Categories returns the category names in catalog order.
func (c *Catalog) Categories() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.name
	}
	return names
}

// Info returns the fields for name. Unknown names yield an empty Info.
func (c *Catalog) Info(name string) Info {
	i, ok := c.index[name]
	if !ok {
		return Info{}
	}
	info := c.entries[i].info
	return Info{
		Metrics:    append([]string(nil), info.Metrics...),
		Dimensions: append([]string(nil), info.Dimensions...),
	}
}

// Has reports whether name is a known category.
func (c *Catalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}
