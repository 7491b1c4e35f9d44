package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollis/taxease/internal/common"
)

func TestParseExtraction(t *testing.T) {
	valid := `{
		"isInvoice": true,
		"vendorName": "Shell Service Station",
		"invoiceDate": "2024-03-15",
		"totalAmount": 54.20,
		"currency": "AUD",
		"description": "Fuel",
		"taxCategory": "Car and Truck Expenses",
		"confidenceScore": 92
	}`

	t.Run("plain JSON object", func(t *testing.T) {
		extraction, err := ParseExtraction(valid)
		require.NoError(t, err)
		assert.Equal(t, "Shell Service Station", extraction.VendorName)
		assert.Equal(t, "2024-03-15", extraction.InvoiceDate)
		assert.Equal(t, 54.20, extraction.TotalAmount)
		assert.Equal(t, "AUD", extraction.Currency)
		assert.Equal(t, "Car and Truck Expenses", extraction.TaxCategory)
		assert.Equal(t, float64(92), extraction.ConfidenceScore)
	})

	t.Run("markdown fenced JSON", func(t *testing.T) {
		extraction, err := ParseExtraction("```json\n" + valid + "\n```")
		require.NoError(t, err)
		assert.Equal(t, "Shell Service Station", extraction.VendorName)
	})

	t.Run("JSON wrapped in prose", func(t *testing.T) {
		extraction, err := ParseExtraction("Here is the extraction:\n" + valid + "\nLet me know if you need more.")
		require.NoError(t, err)
		assert.Equal(t, "Shell Service Station", extraction.VendorName)
	})

	t.Run("not an invoice", func(t *testing.T) {
		_, err := ParseExtraction(`{"isInvoice": false}`)
		assert.ErrorIs(t, err, common.ErrNotAnInvoice)
	})

	t.Run("no JSON object", func(t *testing.T) {
		_, err := ParseExtraction("sorry, I cannot read this image")
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := ParseExtraction(`{"isInvoice": true, "vendorName": }`)
		assert.Error(t, err)
	})
}

func TestParseExtractionDefaults(t *testing.T) {
	extraction, err := ParseExtraction(`{"isInvoice": true, "totalAmount": -5}`)
	require.NoError(t, err)

	assert.Equal(t, "Unknown Vendor", extraction.VendorName)
	assert.Equal(t, time.Now().Format("2006-01-02"), extraction.InvoiceDate)
	assert.Zero(t, extraction.TotalAmount, "negative amounts are clamped")
	assert.Equal(t, "USD", extraction.Currency)
	assert.Equal(t, "No description", extraction.Description)
	assert.Zero(t, extraction.ConfidenceScore)
}

func TestParseExtractionClampsConfidence(t *testing.T) {
	extraction, err := ParseExtraction(`{"isInvoice": true, "confidenceScore": 250}`)
	require.NoError(t, err)
	assert.Equal(t, float64(100), extraction.ConfidenceScore)

	extraction, err = ParseExtraction(`{"isInvoice": true, "confidenceScore": -3}`)
	require.NoError(t, err)
	assert.Zero(t, extraction.ConfidenceScore)
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "2024-03-15", want: "2024-03-15"},
		{in: "2024/03/15", want: "2024-03-15"},
		{in: "03/15/2024", want: "2024-03-15"},
		{in: "15-03-2024", want: "2024-03-15"},
		{in: "  2024-03-15  ", want: "2024-03-15"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeDate(tt.in))
		})
	}

	today := time.Now().Format("2006-01-02")
	assert.Equal(t, today, normalizeDate(""))
	assert.Equal(t, today, normalizeDate("sometime last week"))
}
