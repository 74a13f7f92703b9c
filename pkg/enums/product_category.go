package enums

import "fmt"

// ProductCategory maps to the product_category enum in Postgres.
type ProductCategory string

const (
	ProductCategoryPistols     ProductCategory = "pistols"
	ProductCategoryRevolvers   ProductCategory = "revolvers"
	ProductCategoryRifles      ProductCategory = "rifles"
	ProductCategoryShotguns    ProductCategory = "shotguns"
	ProductCategoryRepeaters   ProductCategory = "repeaters"
	ProductCategoryConsumables ProductCategory = "consumables"
	ProductCategorySpecials    ProductCategory = "specials"
)

var validProductCategories = []ProductCategory{
	ProductCategoryPistols,
	ProductCategoryRevolvers,
	ProductCategoryRifles,
	ProductCategoryShotguns,
	ProductCategoryRepeaters,
	ProductCategoryConsumables,
	ProductCategorySpecials,
}

// IsValid reports whether the value matches the canonical category enum.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
