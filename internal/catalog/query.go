package catalog

import (
	"sort"

	pkgerrors "github.com/noormodest/storefront-backend/pkg/errors"
)

// SortKey selects the comparator applied after filtering.
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortNewest    SortKey = "newest"
	SortRating    SortKey = "rating"
)

// ParseSortKey validates a user-supplied sort value; empty means featured.
func ParseSortKey(value string) (SortKey, error) {
	switch SortKey(value) {
	case "":
		return SortFeatured, nil
	case SortFeatured, SortPriceLow, SortPriceHigh, SortNewest, SortRating:
		return SortKey(value), nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown sort key").
		WithDetails(map[string]any{"sort": value})
}

// FilterCriteria narrows a product set. Nil price bounds and empty sets mean
// no constraint on that dimension; dimensions combine with AND, values within
// a dimension with OR.
type FilterCriteria struct {
	PriceMinPaise *int64
	PriceMaxPaise *int64
	Sizes         []string
	Colors        []string
	Fabrics       []string
}

func (f FilterCriteria) matches(p Product) bool {
	price := p.EffectivePricePaise()
	if f.PriceMinPaise != nil && price < *f.PriceMinPaise {
		return false
	}
	if f.PriceMaxPaise != nil && price > *f.PriceMaxPaise {
		return false
	}
	if len(f.Sizes) > 0 && !anyOverlap(p.Sizes, f.Sizes) {
		return false
	}
	if len(f.Colors) > 0 && !anyColorOverlap(p.Colors, f.Colors) {
		return false
	}
	if len(f.Fabrics) > 0 && !contains(f.Fabrics, p.Fabric) {
		return false
	}
	return true
}

// Query filters and sorts the supplied scope without mutating it. The scope
// is whatever slice the caller is listing: a category, a collection, or the
// whole catalog. Featured sort preserves the scope's order.
func Query(scope []Product, criteria FilterCriteria, key SortKey) []Product {
	out := make([]Product, 0, len(scope))
	for _, p := range scope {
		if criteria.matches(p) {
			out = append(out, p)
		}
	}

	switch key {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EffectivePricePaise() < out[j].EffectivePricePaise()
		})
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EffectivePricePaise() > out[j].EffectivePricePaise()
		})
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	}

	return out
}

// Facets are the filter options offered for a scoped (pre-filter) product
// set. They are recomputed when the scope changes, not when filters change,
// so option lists never shrink while the shopper is filtering.
type Facets struct {
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors"`
	Fabrics       []string `json:"fabrics"`
	PriceMinPaise int64    `json:"price_min_paise"`
	PriceMaxPaise int64    `json:"price_max_paise"`
}

// ComputeFacets derives the distinct sizes, color names, and fabrics present
// in the scope, sorted for stable output, plus the effective price bounds.
func ComputeFacets(scope []Product) Facets {
	sizes := map[string]struct{}{}
	colors := map[string]struct{}{}
	fabrics := map[string]struct{}{}

	var facets Facets
	for i, p := range scope {
		for _, s := range p.Sizes {
			sizes[s] = struct{}{}
		}
		for _, c := range p.Colors {
			colors[c.Name] = struct{}{}
		}
		if p.Fabric != "" {
			fabrics[p.Fabric] = struct{}{}
		}

		price := p.EffectivePricePaise()
		if i == 0 || price < facets.PriceMinPaise {
			facets.PriceMinPaise = price
		}
		if price > facets.PriceMaxPaise {
			facets.PriceMaxPaise = price
		}
	}

	facets.Sizes = sortedKeys(sizes)
	facets.Colors = sortedKeys(colors)
	facets.Fabrics = sortedKeys(fabrics)
	return facets
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func contains(haystack []string, needle string) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

func anyOverlap(declared, wanted []string) bool {
	for _, d := range declared {
		if contains(wanted, d) {
			return true
		}
	}
	return false
}

func anyColorOverlap(declared []ColorOption, wanted []string) bool {
	for _, d := range declared {
		if contains(wanted, d.Name) {
			return true
		}
	}
	return false
}
