// Package catalog holds the immutable product fact table and the query
// engine that listing pages run against. The catalog is provisioned once at
// startup; nothing in this package mutates a Product after construction.
package catalog

import "time"

// Catalog indexes an immutable product list for lookup and querying.
type Catalog struct {
	products []Product
	byID     map[string]int
	bySlug   map[string]int
}

// New builds a catalog over the supplied products. Later duplicates of an ID
// or slug are ignored; first occurrence wins.
func New(products []Product) *Catalog {
	c := &Catalog{
		products: products,
		byID:     make(map[string]int, len(products)),
		bySlug:   make(map[string]int, len(products)),
	}
	for i, p := range products {
		if _, ok := c.byID[p.ID]; !ok {
			c.byID[p.ID] = i
		}
		if _, ok := c.bySlug[p.Slug]; !ok {
			c.bySlug[p.Slug] = i
		}
	}
	return c
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

// All returns a copy of the full product list in catalog order.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// ByID resolves a product by identifier; absent ids are not an error.
func (c *Catalog) ByID(id string) (Product, bool) {
	if i, ok := c.byID[id]; ok {
		return c.products[i], true
	}
	return Product{}, false
}

// BySlug resolves a product by its URL slug; absent slugs are not an error.
func (c *Catalog) BySlug(slug string) (Product, bool) {
	if i, ok := c.bySlug[slug]; ok {
		return c.products[i], true
	}
	return Product{}, false
}

// ByCategory returns every product in the category, preserving catalog order.
// An unknown category yields an empty, displayable result.
func (c *Catalog) ByCategory(category string) []Product {
	var out []Product
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct category slugs in first-seen order.
func (c *Catalog) Categories() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range c.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

const merchandisingCap = 8

// Featured returns up to eight bestseller/premium products for the home page.
func (c *Catalog) Featured() []Product {
	var out []Product
	for _, p := range c.products {
		if p.HasTag(TagBestseller) || p.HasTag(TagPremium) {
			out = append(out, p)
			if len(out) == merchandisingCap {
				break
			}
		}
	}
	return out
}

// NewArrivals returns up to eight products tagged new-arrival or created
// after the cutoff, in catalog order.
func (c *Catalog) NewArrivals(cutoff time.Time) []Product {
	var out []Product
	for _, p := range c.products {
		if p.HasTag(TagNewArrival) || p.CreatedAt.After(cutoff) {
			out = append(out, p)
			if len(out) == merchandisingCap {
				break
			}
		}
	}
	return out
}

// OnSale returns every product carrying a real markdown.
func (c *Catalog) OnSale() []Product {
	var out []Product
	for _, p := range c.products {
		if p.OnSale() {
			out = append(out, p)
		}
	}
	return out
}
