package enums

import "fmt"

// ProductCategory groups catalog entries into the site's top-level families.
type ProductCategory string

const (
	ProductCategoryHVAC               ProductCategory = "hvac"
	ProductCategoryIndustrialIoT      ProductCategory = "industrial-iot"
	ProductCategoryBuildingAutomation ProductCategory = "building-automation"
	ProductCategoryAccessories        ProductCategory = "accessories"
)

var validProductCategories = []ProductCategory{
	ProductCategoryHVAC,
	ProductCategoryIndustrialIoT,
	ProductCategoryBuildingAutomation,
	ProductCategoryAccessories,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
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
