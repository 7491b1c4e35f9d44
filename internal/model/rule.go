package model

// VendorRule maps a vendor-name substring pattern to a tax category.
// A matching rule overrides whatever category the classification
// collaborator assigned.
type VendorRule struct {
	ID                string      `json:"id"`
	VendorNamePattern string      `json:"vendorNamePattern"`
	TaxCategory       TaxCategory `json:"taxCategory"`
}

// ProcessingStats are aggregate counters derived from the record store.
// They are recomputed on every read and never cached.
type ProcessingStats struct {
	TotalFiles int     `json:"totalFiles"`
	Processed  int     `json:"processed"`
	Successful int     `json:"successful"`
	Failed     int     `json:"failed"`
	TotalValue float64 `json:"totalValue"`
}
