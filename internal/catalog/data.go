package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

const brandName = "Noor Modest Wear"

var palette = []ColorOption{
	{Name: "Black", Hex: "#000000"},
	{Name: "Navy Blue", Hex: "#1E3A5F"},
	{Name: "Emerald", Hex: "#047857"},
	{Name: "Burgundy", Hex: "#7F1D1D"},
	{Name: "Grey", Hex: "#6B7280"},
	{Name: "Beige", Hex: "#D4B59E"},
}

var fabrics = []string{"Nida", "Georgette", "Chiffon", "Jersey", "Cotton"}

var categories = []string{"abayas", "burkhas", "hijabs", "maxi-dresses"}

// Default provisions the full static catalog: a curated seed set plus a
// deterministic generated tail, mirroring the brand's merchandised data.
func Default() *Catalog {
	return New(append(seedProducts(), generatedProducts()...))
}

func seedProducts() []Product {
	return []Product{
		{
			ID:                "abaya-001",
			SKU:               "NMW-AB-FO-001",
			Name:              "Elegant Front Open Abaya with Embroidery",
			Slug:              slug.Make("Elegant Front Open Abaya with Embroidery"),
			Category:          "abayas",
			Subcategory:       "front-open",
			Collection:        "designer",
			Brand:             brandName,
			PricePaise:        249900,
			Currency:          "INR",
			Images:            productImages("abayas", 1, 3),
			Thumbnail:         productImage("abayas", 1),
			Colors:            []ColorOption{palette[0], palette[1], palette[3]},
			Sizes:             []string{"S", "M", "L", "XL", "XXL"},
			Fabric:            "Premium Nida",
			FabricDetails:     "100% Polyester, Breathable, Opaque, Wrinkle-resistant",
			Description:       "Front-open abaya with intricate embroidery on the front panel and sleeves, suited to special occasions and daily wear alike.",
			Occasion:          []string{"daily-wear", "formal", "office"},
			Style:             "embroidered",
			InStock:           true,
			StockQuantity:     45,
			LowStockThreshold: 10,
			Rating:            4.7,
			ReviewCount:       128,
			Tags:              []string{TagBestseller, TagPremium},
			CreatedAt:         time.Date(2025, 10, 1, 10, 0, 0, 0, time.UTC),
			UpdatedAt:         time.Date(2025, 11, 15, 14, 30, 0, 0, time.UTC),
		},
		{
			ID:                "abaya-002",
			SKU:               "NMW-AB-FO-002",
			Name:              "Classic Black Front Open Abaya",
			Slug:              slug.Make("Classic Black Front Open Abaya"),
			Category:          "abayas",
			Subcategory:       "front-open",
			Collection:        "everyday",
			Brand:             brandName,
			PricePaise:        179900,
			SalePricePaise:    paise(149900),
			Currency:          "INR",
			Images:            productImages("abayas", 4, 2),
			Thumbnail:         productImage("abayas", 4),
			Colors:            []ColorOption{palette[0]},
			Sizes:             []string{"S", "M", "L", "XL"},
			Fabric:            "Nida",
			FabricDetails:     "Soft, comfortable Nida fabric with excellent drape",
			Description:       "Timeless classic black abaya for everyday wear. Simple, elegant, and effortlessly modest.",
			Occasion:          []string{"daily-wear", "casual"},
			Style:             "plain",
			InStock:           true,
			StockQuantity:     120,
			LowStockThreshold: 15,
			Rating:            4.6,
			ReviewCount:       256,
			Tags:              []string{TagBestseller, TagNewArrival},
			CreatedAt:         time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC),
			UpdatedAt:         time.Date(2025, 11, 18, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:                "abaya-003",
			SKU:               "NMW-AB-UM-001",
			Name:              "Flared Umbrella Abaya with Lace Detail",
			Slug:              slug.Make("Flared Umbrella Abaya with Lace Detail"),
			Category:          "abayas",
			Subcategory:       "umbrella",
			Collection:        "designer",
			Brand:             brandName,
			PricePaise:        289900,
			SalePricePaise:    paise(249900),
			Currency:          "INR",
			Images:            productImages("abayas", 6, 2),
			Thumbnail:         productImage("abayas", 6),
			Colors:            []ColorOption{palette[0], palette[2]},
			Sizes:             []string{"S", "M", "L", "XL"},
			Fabric:            "Georgette",
			FabricDetails:     "Flowing georgette with a soft lace trim",
			Description:       "Flared umbrella-cut abaya with delicate lace detailing along the hem and cuffs.",
			Occasion:          []string{"formal", "party"},
			Style:             "lace",
			InStock:           true,
			StockQuantity:     30,
			LowStockThreshold: 8,
			Rating:            4.8,
			ReviewCount:       94,
			Tags:              []string{TagPremium},
			CreatedAt:         time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC),
			UpdatedAt:         time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:                "burkha-001",
			SKU:               "NMW-BK-TR-001",
			Name:              "Traditional Two Piece Burkha",
			Slug:              slug.Make("Traditional Two Piece Burkha"),
			Category:          "burkhas",
			Subcategory:       "two-piece",
			Collection:        "everyday",
			Brand:             brandName,
			PricePaise:        159900,
			Currency:          "INR",
			Images:            productImages("burkhas", 1, 2),
			Thumbnail:         productImage("burkhas", 1),
			Colors:            []ColorOption{palette[0], palette[4]},
			Sizes:             []string{"M", "L", "XL", "XXL"},
			Fabric:            "Nida",
			FabricDetails:     "Lightweight Nida with full coverage",
			Description:       "Traditional two-piece burkha offering complete coverage in a breathable fabric.",
			Occasion:          []string{"daily-wear"},
			Style:             "plain",
			InStock:           true,
			StockQuantity:     60,
			LowStockThreshold: 10,
			Rating:            4.5,
			ReviewCount:       71,
			Tags:              []string{TagBestseller},
			CreatedAt:         time.Date(2025, 9, 15, 10, 0, 0, 0, time.UTC),
			UpdatedAt:         time.Date(2025, 11, 5, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:                "hijab-001",
			SKU:               "NMW-HJ-IN-001",
			Name:              "Instant Jersey Hijab",
			Slug:              slug.Make("Instant Jersey Hijab"),
			Category:          "hijabs",
			Subcategory:       "instant",
			Collection:        "everyday",
			Brand:             brandName,
			PricePaise:        59900,
			SalePricePaise:    paise(49900),
			Currency:          "INR",
			Images:            productImages("hijabs", 1, 2),
			Thumbnail:         productImage("hijabs", 1),
			Colors:            []ColorOption{palette[0], palette[1], palette[5]},
			Sizes:             []string{"One Size"},
			Fabric:            "Premium Jersey",
			FabricDetails:     "Stretchable jersey fabric for a perfect fit",
			Description:       "Ready-to-wear instant hijab in soft jersey. No pins needed, full coverage.",
			Occasion:          []string{"daily-wear", "casual", "sports"},
			Style:             "instant",
			InStock:           true,
			StockQuantity:     180,
			LowStockThreshold: 25,
			Rating:            4.7,
			ReviewCount:       203,
			Tags:              []string{TagNewArrival},
			CreatedAt:         time.Date(2025, 10, 20, 10, 0, 0, 0, time.UTC),
			UpdatedAt:         time.Date(2025, 11, 14, 14, 0, 0, 0, time.UTC),
		},
		{
			ID:                "dress-001",
			SKU:               "NMW-DR-MX-001",
			Name:              "Elegant Modest Maxi Dress",
			Slug:              slug.Make("Elegant Modest Maxi Dress"),
			Category:          "maxi-dresses",
			Subcategory:       "casual",
			Brand:             brandName,
			PricePaise:        219900,
			SalePricePaise:    paise(189900),
			Currency:          "INR",
			Images:            productImages("maxi-dresses", 1, 2),
			Thumbnail:         productImage("maxi-dresses", 1),
			Colors:            []ColorOption{palette[2], palette[3], palette[1]},
			Sizes:             []string{"S", "M", "L", "XL"},
			Fabric:            "Cotton Blend",
			FabricDetails:     "70% Cotton, 30% Polyester for comfort and durability",
			Description:       "Flowing maxi dress with a modest silhouette for casual outings and semi-formal occasions.",
			Occasion:          []string{"casual", "daily-wear", "semi-formal"},
			Style:             "plain",
			InStock:           true,
			StockQuantity:     55,
			LowStockThreshold: 12,
			Rating:            4.6,
			ReviewCount:       87,
			Tags:              []string{"comfortable", "versatile"},
			CreatedAt:         time.Date(2025, 10, 5, 10, 0, 0, 0, time.UTC),
			UpdatedAt:         time.Date(2025, 11, 11, 13, 0, 0, 0, time.UTC),
		},
	}
}

// generatedProducts fills the catalog out to storefront scale. Everything is
// derived from the index so the catalog is identical across runs.
func generatedProducts() []Product {
	out := make([]Product, 0, 95)
	for i := 0; i < 95; i++ {
		category := categories[i%len(categories)]
		singular := singularize(category)
		onSale := i%3 == 0
		price := int64(100000 + (i*37871)%300000)
		var salePrice *int64
		if onSale {
			salePrice = paise(price * 85 / 100)
		}

		name := fmt.Sprintf("%s Style %d", titleCase(singular), i+1)
		subcategory := "standard"
		if category == "abayas" {
			subcategory = []string{"front-open", "umbrella", "butterfly"}[i%3]
		}

		tags := []string{}
		if onSale {
			tags = append(tags, TagSale)
		} else if i%5 == 0 {
			tags = append(tags, TagNewArrival)
		}

		inStock := i%15 != 0
		stock := 0
		if inStock {
			stock = 20 + (i*13)%100
		}

		out = append(out, Product{
			ID:                fmt.Sprintf("%s-%03d", category, i+10),
			SKU:               fmt.Sprintf("NMW-%s-%03d", strings.ToUpper(category[:2]), i+10),
			Name:              name,
			Slug:              slug.Make(name),
			Category:          category,
			Subcategory:       subcategory,
			Brand:             brandName,
			PricePaise:        price,
			SalePricePaise:    salePrice,
			Currency:          "INR",
			Images:            productImages(category, i+10, 2),
			Thumbnail:         productImage(category, i+10),
			Colors:            palette[:3+(i%3)],
			Sizes:             []string{"S", "M", "L", "XL"},
			Fabric:            fabrics[i%len(fabrics)],
			FabricDetails:     "High-quality fabric with excellent drape and comfort",
			Description:       fmt.Sprintf("Beautiful %s for a range of occasions, made with premium materials.", singular),
			Occasion:          []string{[]string{"daily-wear", "formal", "casual"}[i%3]},
			Style:             []string{"plain", "embroidered", "printed"}[i%3],
			InStock:           inStock,
			StockQuantity:     stock,
			LowStockThreshold: 10,
			Rating:            4.0 + float64(i%10)/10,
			ReviewCount:       (i * 29) % 300,
			Tags:              tags,
			CreatedAt:         time.Date(2025, time.Month(9+(i%3)), 1+(i%28), 10, 0, 0, 0, time.UTC),
			UpdatedAt:         time.Date(2025, 11, 1+(i%19), 10, 0, 0, 0, time.UTC),
		})
	}
	return out
}

var categorySeeds = map[string]int{
	"abayas":       100,
	"burkhas":      200,
	"hijabs":       300,
	"maxi-dresses": 400,
}

func productImage(category string, variant int) string {
	seed := categorySeeds[category] + variant
	return fmt.Sprintf("https://picsum.photos/seed/fashion-%s-%d/800/1000", category, seed)
}

func productImages(category string, first, count int) []string {
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, productImage(category, first+i))
	}
	return out
}

// singularize maps a category slug to its singular form for display copy.
// "maxi-dresses" does not singularize by trimming a bare "s".
func singularize(category string) string {
	if category == "maxi-dresses" {
		return "maxi-dress"
	}
	return strings.TrimSuffix(category, "s")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func paise(v int64) *int64 {
	return &v
}
