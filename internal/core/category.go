package core

import (
	"sort"
	"strings"
)

// CategoryOrder is the presentation order of known categories. Anything else sorts
// after these, alphabetically.
var CategoryOrder = []string{
	"🧊 Vodka",
	"🥥 Ron",
	"🥃 Whisky / Bourbon",
	"🍸 Ginebra",
	"🌵 Tequila",
	"🔥 Mezcal",
	"🍯 Licores y Aperitivos",
	"🍷 Vermut",
	"🥂 Vinos y espumosos",
	"🥤Refrescos y agua",
	"🍻 Cerveza",
}

// Uncategorized replaces an empty category.
const Uncategorized = "Uncategorized"

// AuxiliaryCategory tags side-channel tallies appended to snapshots.
const AuxiliaryCategory = "[📦] Embalajes"

// CategoryOf returns the grouping key for a raw category.
func CategoryOf(raw string) string {
	if c := strings.TrimSpace(raw); c != "" {
		return c
	}
	return Uncategorized
}

func categoryRank(c string) int {
	for i, known := range CategoryOrder {
		if known == c {
			return i
		}
	}
	return len(CategoryOrder)
}

// CategoryLess orders two categories: known ones by CategoryOrder, then the rest by name.
func CategoryLess(a, b string) bool {
	ra, rb := categoryRank(a), categoryRank(b)
	if ra != rb {
		return ra < rb
	}
	if ra < len(CategoryOrder) {
		return false
	}
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

func sortByCategory[T any](s []T, category, name func(T) string) {
	sort.SliceStable(s, func(i, j int) bool {
		ci, cj := CategoryOf(category(s[i])), CategoryOf(category(s[j]))
		if ci != cj {
			return CategoryLess(ci, cj)
		}
		return strings.ToLower(name(s[i])) < strings.ToLower(name(s[j]))
	})
}

// SortRecordItems sorts record lines by category, then by name ignoring case.
func SortRecordItems(items []RecordItem) {
	sortByCategory(items,
		func(r RecordItem) string { return r.Category },
		func(r RecordItem) string { return r.Name })
}

// SortInventoryItems sorts live items the same way as record lines.
func SortInventoryItems(items []InventoryItem) {
	sortByCategory(items,
		func(i InventoryItem) string { return i.Category },
		func(i InventoryItem) string { return i.Name })
}

// CategoryGroup is a run of record lines sharing a category.
type CategoryGroup struct {
	Category string       `json:"category"`
	Items    []RecordItem `json:"items"`
}

// GroupByCategory sorts a copy of items and splits it into category groups.
func GroupByCategory(items []RecordItem) []CategoryGroup {
	sorted := append([]RecordItem(nil), items...)
	SortRecordItems(sorted)

	var groups []CategoryGroup
	for _, it := range sorted {
		c := CategoryOf(it.Category)
		if n := len(groups); n == 0 || groups[n-1].Category != c {
			groups = append(groups, CategoryGroup{Category: c})
		}
		groups[len(groups)-1].Items = append(groups[len(groups)-1].Items, it)
	}
	return groups
}
