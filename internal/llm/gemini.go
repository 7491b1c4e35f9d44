// Package llm implements the classification collaborator using Google
// Gemini: one receipt image or PDF in, one structured extraction out.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/hollis/taxease/internal/model"
)

const defaultModel = "gemini-2.5-flash"

// Gemini classifies receipt documents via the Gemini API.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a Gemini classifier. modelName defaults to a flash
// model suitable for document extraction.
func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = defaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	m := client.GenerativeModel(modelName)
	m.SetTemperature(0.1)
	m.ResponseMIMEType = "application/json"
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction())},
	}

	return &Gemini{
		client: client,
		model:  m,
	}, nil
}

// Classify sends the document to Gemini and parses the structured response.
// It fails when the document is not a recognizable invoice or receipt.
func (g *Gemini) Classify(ctx context.Context, file model.File) (*model.Extraction, error) {
	contentType := file.ContentType
	if contentType == "" {
		contentType = "image/png"
	}

	parts := []genai.Part{
		genai.Blob{MIMEType: contentType, Data: file.Data},
		genai.Text("Extract data from this invoice."),
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	extraction, err := ParseExtraction(responseText.String())
	if err != nil {
		return nil, err
	}

	return extraction, nil
}

// Close closes the underlying Gemini client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

func systemInstruction() string {
	categories := model.AllCategories()
	names := make([]string, len(categories))
	for i, cat := range categories {
		names[i] = string(cat)
	}

	return fmt.Sprintf(`You are an expert tax accountant assistant. Your job is to analyze images of invoices or receipts and extract structured data for tax return preparation (specifically Schedule C categories).

Output must be strictly JSON with these fields: vendorName, invoiceDate, totalAmount, currency, description, taxCategory, confidenceScore, isInvoice.

For each invoice, extract:
1. Vendor Name
2. Invoice Date (YYYY-MM-DD format). If not found, use today's date.
3. Total Amount (number only).
4. Currency (e.g., USD, EUR).
5. Brief Description (summary of items purchased).
6. Tax Category: Select exactly ONE from the provided list that best matches the expense nature.
7. Confidence Score (0-100) based on legibility and classification certainty.
8. isInvoice: true only if the document looks like an invoice or receipt.

The allowed Tax Categories are:
%s`, strings.Join(names, ", "))
}
