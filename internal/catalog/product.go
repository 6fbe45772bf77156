package catalog

import (
	"time"

	"github.com/noormodest/storefront-backend/pkg/money"
)

// Well-known tags used by the merchandising subsets.
const (
	TagBestseller = "bestseller"
	TagPremium    = "premium"
	TagNewArrival = "new-arrival"
	TagSale       = "sale"
)

// ColorOption is a shopper-facing color choice on a product.
type ColorOption struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Product is an immutable catalog record. Prices are paise-denominated;
// SalePricePaise, when set, is strictly below PricePaise.
type Product struct {
	ID                string        `json:"id"`
	SKU               string        `json:"sku"`
	Name              string        `json:"name"`
	Slug              string        `json:"slug"`
	Category          string        `json:"category"`
	Subcategory       string        `json:"subcategory"`
	Collection        string        `json:"collection,omitempty"`
	Brand             string        `json:"brand"`
	PricePaise        int64         `json:"price_paise"`
	SalePricePaise    *int64        `json:"sale_price_paise,omitempty"`
	Currency          string        `json:"currency"`
	Images            []string      `json:"images"`
	Thumbnail         string        `json:"thumbnail"`
	Colors            []ColorOption `json:"colors"`
	Sizes             []string      `json:"sizes"`
	Fabric            string        `json:"fabric"`
	FabricDetails     string        `json:"fabric_details"`
	Description       string        `json:"description"`
	Occasion          []string      `json:"occasion"`
	Style             string        `json:"style"`
	InStock           bool          `json:"in_stock"`
	StockQuantity     int           `json:"stock_quantity"`
	LowStockThreshold int           `json:"low_stock_threshold"`
	Rating            float64       `json:"rating"`
	ReviewCount       int           `json:"review_count"`
	Tags              []string      `json:"tags"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// EffectivePricePaise returns the sale price when present, else the base price.
func (p Product) EffectivePricePaise() int64 {
	if p.SalePricePaise != nil && *p.SalePricePaise > 0 {
		return *p.SalePricePaise
	}
	return p.PricePaise
}

// OnSale reports whether the product carries an actual markdown.
func (p Product) OnSale() bool {
	return p.SalePricePaise != nil && *p.SalePricePaise > 0 && *p.SalePricePaise < p.PricePaise
}

// DiscountPercent returns the rounded markdown percentage, 0 when not on sale.
func (p Product) DiscountPercent() int {
	if !p.OnSale() {
		return 0
	}
	return money.DiscountPercent(p.PricePaise, *p.SalePricePaise)
}

// LowStock reports whether remaining stock dipped to the alert threshold.
func (p Product) LowStock() bool {
	return p.InStock && p.StockQuantity > 0 && p.StockQuantity <= p.LowStockThreshold
}

// HasTag reports whether the product carries the given tag.
func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ColorByName resolves a declared color option by its display name.
func (p Product) ColorByName(name string) (ColorOption, bool) {
	for _, c := range p.Colors {
		if c.Name == name {
			return c, true
		}
	}
	return ColorOption{}, false
}
