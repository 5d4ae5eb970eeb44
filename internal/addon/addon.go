// Package addon holds the priced extras a customer can attach to an order:
// page highlighting, bookmarks and gift packing. Prices come from a config
// file (local or S3) with compiled-in defaults as the last resort.
package addon

import (
	"book-bazaar/internal/model"
)

// Addon is a single orderable extra.
type Addon struct {
	Key   string  `json:"key"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Catalog is the immutable set of available add-ons, keyed by their
// selection key. It is built once at startup and read concurrently after.
type Catalog struct {
	addons map[string]Addon
	order  []string
}

// NewCatalog builds a catalog from a list of add-ons, preserving order.
// Later entries with the same key override earlier ones.
func NewCatalog(addons []Addon) *Catalog {
	c := &Catalog{addons: make(map[string]Addon, len(addons))}
	for _, a := range addons {
		if _, exists := c.addons[a.Key]; !exists {
			c.order = append(c.order, a.Key)
		}
		c.addons[a.Key] = a
	}
	return c
}

// Default returns the compiled-in add-on catalog.
func Default() *Catalog {
	return NewCatalog([]Addon{
		{Key: "highlighter", Name: "Page Highlighting", Price: 15},
		{Key: "bookmark", Name: "Premium Bookmark", Price: 10},
		{Key: "packing", Name: "Gift Packing", Price: 20},
	})
}

// Get returns the add-on for a key.
func (c *Catalog) Get(key string) (Addon, bool) {
	a, ok := c.addons[key]
	return a, ok
}

// All returns the add-ons in their declared order.
func (c *Catalog) All() []Addon {
	out := make([]Addon, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.addons[key])
	}
	return out
}

// Total sums the prices of the selected add-ons. Unknown keys and
// false selections contribute nothing.
func (c *Catalog) Total(sel model.AddonSelection) float64 {
	var total float64
	for key, on := range sel {
		if !on {
			continue
		}
		if a, ok := c.addons[key]; ok {
			total += a.Price
		}
	}
	return total
}

// Normalize drops unknown keys and false entries from a selection.
func (c *Catalog) Normalize(sel model.AddonSelection) model.AddonSelection {
	out := model.AddonSelection{}
	for key, on := range sel {
		if !on {
			continue
		}
		if _, ok := c.addons[key]; ok {
			out[key] = true
		}
	}
	return out
}
