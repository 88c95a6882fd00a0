package catalog

import (
	"sort"

	"github.com/Skotchmaster/storefront/internal/models"
)

// mappedCategories substitutes display names for the raw catalog slugs.
// Doubles as the fallback list when the categories endpoint is down.
var mappedCategories = map[string]string{
	"smartphones":      "Electronics",
	"laptops":          "Electronics",
	"jewelery":         "Jewellery",
	"mens-shirts":      "Clothing",
	"mens-shoes":       "Clothing",
	"mens-watches":     "Clothing",
	"tops":             "Clothing",
	"womens-dresses":   "Clothing",
	"womens-shoes":     "Clothing",
	"womens-watches":   "Clothing",
	"womens-bags":      "Clothing",
	"womens-jewellery": "Jewellery",
	"skincare":         "Beauty",
	"fragrances":       "Beauty",
	"groceries":        "Groceries",
	"furniture":        "Furniture",
}

func displayName(slug string) string {
	if name, ok := mappedCategories[slug]; ok {
		return name
	}
	return slug
}

func fallbackCategories() []models.Category {
	out := make([]models.Category, 0, len(mappedCategories))
	for slug, name := range mappedCategories {
		out = append(out, models.Category{Slug: slug, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}
