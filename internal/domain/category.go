package domain

import "fmt"

// Category is the closed set of accessory categories the catalog knows about.
type Category string

const (
	CategoryCover    Category = "cover"
	CategorySkin     Category = "skin"
	CategoryCharger  Category = "charger"
	CategoryEarphone Category = "earphone"
	CategoryCable    Category = "cable"
	CategoryHolder   Category = "holder"
	CategoryOther    Category = "other"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryCover,
		CategorySkin,
		CategoryCharger,
		CategoryEarphone,
		CategoryCable,
		CategoryHolder,
		CategoryOther,
	}
}

// ParseCategory accepts a filter value from a query string. The empty string
// means "all categories" and maps to the zero value.
func ParseCategory(s string) (Category, error) {
	if s == "" {
		return "", nil
	}
	for _, c := range Categories() {
		if s == string(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Label returns the storefront display name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryCover:
		return "Phone Covers"
	case CategorySkin:
		return "Phone Skins"
	case CategoryCharger:
		return "Chargers"
	case CategoryEarphone:
		return "Earphones"
	case CategoryCable:
		return "Cables"
	case CategoryHolder:
		return "Holders"
	default:
		return "Other"
	}
}

// Badge returns the CSS badge classes the storefront uses for the category.
// Unknown values fall back to the "other" badge so a new backend category
// never breaks rendering.
func (c Category) Badge() string {
	switch c {
	case CategoryCover:
		return "bg-blue-500/20 text-blue-400 border-blue-500/30"
	case CategorySkin:
		return "bg-purple-500/20 text-purple-400 border-purple-500/30"
	case CategoryCharger:
		return "bg-green-500/20 text-green-400 border-green-500/30"
	case CategoryEarphone:
		return "bg-yellow-500/20 text-yellow-400 border-yellow-500/30"
	case CategoryCable:
		return "bg-pink-500/20 text-pink-400 border-pink-500/30"
	case CategoryHolder:
		return "bg-indigo-500/20 text-indigo-400 border-indigo-500/30"
	default:
		return "bg-gray-500/20 text-gray-400 border-gray-500/30"
	}
}
