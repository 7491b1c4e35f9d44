package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hollis/taxease/internal/common"
	"github.com/hollis/taxease/internal/model"
)

// ParseExtraction parses the model's JSON response into an Extraction,
// normalizing dates and filling the defaults the rest of the pipeline
// relies on. A response marked isInvoice=false is a classification failure,
// not a vacuous success.
func ParseExtraction(text string) (*model.Extraction, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	// Some responses wrap the object in prose; slice out the JSON part.
	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}
	endIdx := strings.LastIndex(text, "}")
	if endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("invalid JSON object in response")
	}
	text = text[startIdx : endIdx+1]

	var extraction model.Extraction
	if err := json.Unmarshal([]byte(text), &extraction); err != nil {
		return nil, fmt.Errorf("unmarshaling extraction: %w", err)
	}

	if !extraction.IsInvoice {
		return nil, common.ErrNotAnInvoice
	}

	extraction.VendorName = strings.TrimSpace(extraction.VendorName)
	if extraction.VendorName == "" {
		extraction.VendorName = "Unknown Vendor"
	}

	extraction.InvoiceDate = normalizeDate(extraction.InvoiceDate)

	if extraction.TotalAmount < 0 {
		extraction.TotalAmount = 0
	}

	if extraction.Currency == "" {
		extraction.Currency = "USD"
	}

	extraction.Description = strings.TrimSpace(extraction.Description)
	if extraction.Description == "" {
		extraction.Description = "No description"
	}

	switch {
	case extraction.ConfidenceScore < 0:
		extraction.ConfidenceScore = 0
	case extraction.ConfidenceScore > 100:
		extraction.ConfidenceScore = 100
	}

	return &extraction, nil
}

// normalizeDate coerces a date string to YYYY-MM-DD, trying a few common
// formats before falling back to today.
func normalizeDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Now().Format("2006-01-02")
	}

	if d, err := time.Parse("2006-01-02", date); err == nil {
		return d.Format("2006-01-02")
	}

	formats := []string{
		"2006/01/02",
		"01/02/2006",
		"02-01-2006",
	}
	for _, format := range formats {
		if d, err := time.Parse(format, date); err == nil {
			return d.Format("2006-01-02")
		}
	}

	return time.Now().Format("2006-01-02")
}
