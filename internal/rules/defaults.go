package rules

import "github.com/hollis/taxease/internal/model"

// DefaultRules returns the built-in vendor rule set used when no persisted
// rules exist yet.
func DefaultRules() []model.VendorRule {
	return []model.VendorRule{
		{ID: "def-1", VendorNamePattern: "Bunnings", TaxCategory: model.CategoryRepairs},
		{ID: "def-2", VendorNamePattern: "Officeworks", TaxCategory: model.CategoryOfficeExpense},
		{ID: "def-3", VendorNamePattern: "Uber", TaxCategory: model.CategoryTravel},
		{ID: "def-4", VendorNamePattern: "Chevron", TaxCategory: model.CategoryCarTruck},
		{ID: "def-5", VendorNamePattern: "Shell", TaxCategory: model.CategoryCarTruck},
		{ID: "def-6", VendorNamePattern: "Caltex", TaxCategory: model.CategoryCarTruck},
		{ID: "def-7", VendorNamePattern: "Woolworths", TaxCategory: model.CategorySupplies},
		{ID: "def-8", VendorNamePattern: "Coles", TaxCategory: model.CategorySupplies},
		{ID: "def-9", VendorNamePattern: "Adobe", TaxCategory: model.CategoryOfficeExpense},
		{ID: "def-10", VendorNamePattern: "Zoom", TaxCategory: model.CategoryOfficeExpense},
		{ID: "def-11", VendorNamePattern: "Telstra", TaxCategory: model.CategoryUtilities},
		{ID: "def-12", VendorNamePattern: "Optus", TaxCategory: model.CategoryUtilities},
		{ID: "def-13", VendorNamePattern: "Amazon", TaxCategory: model.CategorySupplies},
		{ID: "def-14", VendorNamePattern: "Apple", TaxCategory: model.CategoryOfficeExpense},
		{ID: "def-15", VendorNamePattern: "Google", TaxCategory: model.CategoryAdvertising},
		{ID: "def-16", VendorNamePattern: "Facebook", TaxCategory: model.CategoryAdvertising},
		{ID: "def-17", VendorNamePattern: "LinkedIn", TaxCategory: model.CategoryAdvertising},
		{ID: "def-18", VendorNamePattern: "Xero", TaxCategory: model.CategoryLegalProfessional},
		{ID: "def-19", VendorNamePattern: "Quickbooks", TaxCategory: model.CategoryLegalProfessional},
		{ID: "def-20", VendorNamePattern: "Upwork", TaxCategory: model.CategoryContractLabor},
	}
}
