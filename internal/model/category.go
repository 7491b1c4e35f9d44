// Package model defines the core domain models used throughout the application.
package model

import "strings"

// TaxCategory is one of the fixed Schedule C deduction categories a record
// can be classified into. The display name doubles as the wire value in rule
// files and exports.
type TaxCategory string

// Schedule C tax deduction categories.
const (
	CategoryAdvertising       TaxCategory = "Advertising"
	CategoryCarTruck          TaxCategory = "Car and Truck Expenses"
	CategoryCommissions       TaxCategory = "Commissions and Fees"
	CategoryContractLabor     TaxCategory = "Contract Labor"
	CategoryDepletion         TaxCategory = "Depletion"
	CategoryDepreciation      TaxCategory = "Depreciation"
	CategoryInsurance         TaxCategory = "Insurance (other than health)"
	CategoryInterest          TaxCategory = "Interest"
	CategoryLegalProfessional TaxCategory = "Legal and Professional Services"
	CategoryOfficeExpense     TaxCategory = "Office Expense"
	CategoryPensionProfit     TaxCategory = "Pension and Profit-Sharing Plans"
	CategoryRentVehicles      TaxCategory = "Rent/Lease (Vehicles/Equipment)"
	CategoryRentProperty      TaxCategory = "Rent/Lease (Other Business Property)"
	CategoryRepairs           TaxCategory = "Repairs and Maintenance"
	CategorySupplies          TaxCategory = "Supplies"
	CategoryTaxesLicenses     TaxCategory = "Taxes and Licenses"
	CategoryTravel            TaxCategory = "Travel"
	CategoryMeals             TaxCategory = "Deductible Meals"
	CategoryUtilities         TaxCategory = "Utilities"
	CategoryWages             TaxCategory = "Wages"
	CategoryOther             TaxCategory = "Other Expenses"
	CategoryUncategorized     TaxCategory = "Uncategorized"
)

// AllCategories returns every valid tax category in display order.
func AllCategories() []TaxCategory {
	return []TaxCategory{
		CategoryAdvertising,
		CategoryCarTruck,
		CategoryCommissions,
		CategoryContractLabor,
		CategoryDepletion,
		CategoryDepreciation,
		CategoryInsurance,
		CategoryInterest,
		CategoryLegalProfessional,
		CategoryOfficeExpense,
		CategoryPensionProfit,
		CategoryRentVehicles,
		CategoryRentProperty,
		CategoryRepairs,
		CategorySupplies,
		CategoryTaxesLicenses,
		CategoryTravel,
		CategoryMeals,
		CategoryUtilities,
		CategoryWages,
		CategoryOther,
		CategoryUncategorized,
	}
}

// ParseCategory resolves a string to a TaxCategory, matching the display name
// case-insensitively. Unknown or empty input resolves to CategoryUncategorized
// with ok=false so callers can distinguish a genuine match.
func ParseCategory(s string) (TaxCategory, bool) {
	needle := strings.TrimSpace(s)
	for _, cat := range AllCategories() {
		if strings.EqualFold(string(cat), needle) {
			return cat, true
		}
	}
	return CategoryUncategorized, false
}

// IsValid reports whether c is one of the fixed categories.
func (c TaxCategory) IsValid() bool {
	_, ok := ParseCategory(string(c))
	return ok
}
