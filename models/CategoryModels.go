package models

import "fmt"

// CatalogCategory identifies one of the six settings catalogs. The set is
// closed: category keys never come from user input unchecked, every key maps
// explicitly to its table.
type CatalogCategory string

const (
	CategorySectors      CatalogCategory = "sectors"
	CategoryServices     CatalogCategory = "services"
	CategoryTowers       CatalogCategory = "towers"
	CategoryResponsibles CatalogCategory = "responsibles"
	CategoryMaterials    CatalogCategory = "materials"
	CategorySituations   CatalogCategory = "situations"
)

// AllCategories lists every catalog category in a stable order.
var AllCategories = []CatalogCategory{
	CategorySectors,
	CategoryServices,
	CategoryTowers,
	CategoryResponsibles,
	CategoryMaterials,
	CategorySituations,
}

var categoryTables = map[CatalogCategory]string{
	CategorySectors:      "sectors",
	CategoryServices:     "services",
	CategoryTowers:       "towers",
	CategoryResponsibles: "responsibles",
	CategoryMaterials:    "materials",
	CategorySituations:   "situations",
}

var categoryPrefixes = map[CatalogCategory]string{
	CategorySectors:      "sec",
	CategoryServices:     "srv",
	CategoryTowers:       "twr",
	CategoryResponsibles: "rsp",
	CategoryMaterials:    "mat",
	CategorySituations:   "sit",
}

// Table returns the remote table backing the category.
func (c CatalogCategory) Table() string {
	return categoryTables[c]
}

// IDPrefix returns the id prefix used for rows created in this category.
func (c CatalogCategory) IDPrefix() string {
	return categoryPrefixes[c]
}

// ParseCatalogCategory validates a category key coming from a route param.
func ParseCatalogCategory(s string) (CatalogCategory, error) {
	c := CatalogCategory(s)
	if _, ok := categoryTables[c]; !ok {
		return "", fmt.Errorf("unknown settings category: %q", s)
	}
	return c, nil
}
