package engine

import (
	"context"
	"strings"
	"sync"

	"github.com/hollis/taxease/internal/model"
)

// MockClassifier is a test implementation of the Classifier interface.
// It returns deterministic extractions keyed by filename and records every
// call for verification.
type MockClassifier struct {
	results    map[string]model.Extraction
	errors     map[string]error
	OnClassify func(file model.File)
	calls      []string
	mu         sync.Mutex
}

// NewMockClassifier creates an empty mock classifier.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{
		results: make(map[string]model.Extraction),
		errors:  make(map[string]error),
	}
}

// StubResult sets the extraction returned for a filename.
func (m *MockClassifier) StubResult(filename string, extraction model.Extraction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[filename] = extraction
}

// StubError makes classification of a filename fail with err.
func (m *MockClassifier) StubError(filename string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[filename] = err
}

// Classify returns the stubbed result for the file, or a generic extraction
// derived from the filename when nothing was stubbed.
func (m *MockClassifier) Classify(_ context.Context, file model.File) (*model.Extraction, error) {
	if m.OnClassify != nil {
		m.OnClassify(file)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, file.Name)

	if err, ok := m.errors[file.Name]; ok {
		return nil, err
	}
	if extraction, ok := m.results[file.Name]; ok {
		return &extraction, nil
	}

	vendor := strings.TrimSuffix(file.Name, ".png")
	vendor = strings.TrimSuffix(vendor, ".pdf")
	return &model.Extraction{
		VendorName:      vendor,
		InvoiceDate:     "2024-01-15",
		TotalAmount:     10,
		Currency:        "USD",
		Description:     "stubbed receipt",
		TaxCategory:     string(model.CategoryOther),
		ConfidenceScore: 90,
		IsInvoice:       true,
	}, nil
}

// Calls returns the filenames classified so far, in call order.
func (m *MockClassifier) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]string, len(m.calls))
	copy(calls, m.calls)
	return calls
}
