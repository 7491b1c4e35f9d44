// Package rules implements vendor-pattern categorization rules: matching,
// retroactive re-application, and the persisted rule store.
package rules

import (
	"strings"

	"github.com/hollis/taxease/internal/model"
)

// Match evaluates a vendor name against an ordered rule set. A rule matches
// when its pattern is a case-insensitive substring of the vendor name; the
// first matching rule in set order wins. An empty vendor name never matches.
func Match(vendorName string, rules []model.VendorRule) (model.TaxCategory, bool) {
	if vendorName == "" {
		return "", false
	}

	name := strings.ToLower(vendorName)
	for _, rule := range rules {
		if rule.VendorNamePattern == "" {
			continue
		}
		if strings.Contains(name, strings.ToLower(rule.VendorNamePattern)) {
			return rule.TaxCategory, true
		}
	}

	return "", false
}

// RecordUpdater is the slice of the record store the retroactive pass needs.
type RecordUpdater interface {
	All() []model.InvoiceRecord
	UpdateCategory(id string, category model.TaxCategory)
}

// Apply re-evaluates every record with a non-empty vendor name against the
// rule set and overwrites its category with the match. Records with no match
// keep their current category. The pass is a pure projection of the rule set
// over the records: applying it twice yields the same result as once.
func Apply(store RecordUpdater, rules []model.VendorRule) int {
	updated := 0
	for _, rec := range store.All() {
		if rec.VendorName == "" {
			continue
		}
		category, ok := Match(rec.VendorName, rules)
		if !ok || category == rec.TaxCategory {
			continue
		}
		store.UpdateCategory(rec.ID, category)
		updated++
	}
	return updated
}
