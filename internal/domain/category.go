package domain

import (
	"fmt"
	"sort"
	"strings"
)

type Category string

const (
	CategoryKits        Category = "kits"
	CategoryInstruments Category = "instruments"
	CategoryVirtuoso    Category = "virtuoso"
	CategoryKitSamples  Category = "kit_samples"
	CategoryUnassigned  Category = "unassigned"
)

// plannerCategories maps planner codes to their category. Codes come
// from the planning system: 3001/3801 BVI kits, 5001 Malosa kits,
// 3802-3805 instrument lines, 3806 Virtuoso.
var plannerCategories = map[string]Category{
	"3001":        CategoryKits,
	"3801":        CategoryKits,
	"5001":        CategoryKits,
	"3802":        CategoryInstruments,
	"3803":        CategoryInstruments,
	"3804":        CategoryInstruments,
	"3805":        CategoryInstruments,
	"3806":        CategoryVirtuoso,
	"KIT SAMPLES": CategoryKitSamples,
}

// CategoryForPlanner resolves a planner code to its category.
// Unknown codes map to CategoryUnassigned rather than failing, so
// odd planner data degrades to a reportable bucket.
func CategoryForPlanner(code string) Category {
	if c, ok := plannerCategories[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return c
	}
	return CategoryUnassigned
}

// AllCategories returns the selectable categories in display order.
func AllCategories() []Category {
	return []Category{CategoryKits, CategoryInstruments, CategoryVirtuoso, CategoryKitSamples}
}

// ParseCategory converts a user-supplied tag into a Category.
func ParseCategory(tag string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")
	switch Category(normalized) {
	case CategoryKits, CategoryInstruments, CategoryVirtuoso, CategoryKitSamples:
		return Category(normalized), nil
	}
	return "", fmt.Errorf("unknown category %q (valid: %s)", tag, strings.Join(categoryNames(), ", "))
}

// ParseCategories converts a list of tags, rejecting unknown tags and
// collapsing duplicates. The result is sorted for determinism.
func ParseCategories(tags []string) ([]Category, error) {
	seen := make(map[Category]bool, len(tags))
	var out []Category
	for _, tag := range tags {
		c, err := ParseCategory(tag)
		if err != nil {
			return nil, err
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (c Category) String() string { return string(c) }

// Display returns the human-readable category name.
func (c Category) Display() string {
	switch c {
	case CategoryKits:
		return "Kits"
	case CategoryInstruments:
		return "Instruments"
	case CategoryVirtuoso:
		return "Virtuoso"
	case CategoryKitSamples:
		return "Kit Samples"
	default:
		return "Unassigned"
	}
}

func categoryNames() []string {
	all := AllCategories()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = string(c)
	}
	return names
}

// FilterOrders returns the orders whose category is in the selected
// set. A nil selection means no filtering; an empty non-nil selection
// matches nothing. Partitioning never alters the orders themselves.
func FilterOrders(orders []*Order, selected []Category) []*Order {
	if selected == nil {
		return orders
	}
	want := make(map[Category]bool, len(selected))
	for _, c := range selected {
		want[c] = true
	}
	out := make([]*Order, 0, len(orders))
	for _, o := range orders {
		if want[o.Category] {
			out = append(out, o)
		}
	}
	return out
}
