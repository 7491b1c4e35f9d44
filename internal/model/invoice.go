package model

// RecordStatus tracks an invoice record through the ingestion pipeline.
type RecordStatus string

// Record status constants. Transitions are monotonic:
// pending -> processing -> completed|error. Completed and error are terminal.
const (
	StatusPending    RecordStatus = "pending"
	StatusProcessing RecordStatus = "processing"
	StatusCompleted  RecordStatus = "completed"
	StatusError      RecordStatus = "error"
)

// IsTerminal reports whether the status permits no further transitions.
func (s RecordStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusError
}

// rank orders statuses along the pipeline chain for monotonicity checks.
func (s RecordStatus) rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusProcessing:
		return 1
	case StatusCompleted, StatusError:
		return 2
	}
	return -1
}

// CanTransitionTo reports whether moving from s to next respects the
// pipeline's one-way status chain.
func (s RecordStatus) CanTransitionTo(next RecordStatus) bool {
	if s == next {
		return true
	}
	if s.IsTerminal() {
		return false
	}
	return next.rank() > s.rank()
}

// InvoiceRecord is one ingested receipt file and its extracted data.
// ID and Filename are assigned at ingestion and never change; the remaining
// fields are placeholders until classification succeeds.
type InvoiceRecord struct {
	ID              string       `json:"id"`
	Filename        string       `json:"filename"`
	VendorName      string       `json:"vendorName"`
	InvoiceDate     string       `json:"invoiceDate"`
	TotalAmount     float64      `json:"totalAmount"`
	Currency        string       `json:"currency"`
	Description     string       `json:"description"`
	TaxCategory     TaxCategory  `json:"taxCategory"`
	ConfidenceScore float64      `json:"confidenceScore"`
	Status          RecordStatus `json:"status"`
	ErrorMessage    string       `json:"errorMessage,omitempty"`
}

// NewInvoiceRecord creates the placeholder record appended to the record
// store the moment a receipt file is accepted into a batch.
func NewInvoiceRecord(id, filename string) InvoiceRecord {
	return InvoiceRecord{
		ID:          id,
		Filename:    filename,
		TaxCategory: CategoryUncategorized,
		Status:      StatusPending,
	}
}

// File is one member of an uploaded batch: raw bytes plus the name and
// declared media type the batch partitioner and classifier work from.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Extraction holds the structured fields returned by the classification
// collaborator for a single receipt.
type Extraction struct {
	VendorName      string  `json:"vendorName"`
	InvoiceDate     string  `json:"invoiceDate"`
	TotalAmount     float64 `json:"totalAmount"`
	Currency        string  `json:"currency"`
	Description     string  `json:"description"`
	TaxCategory     string  `json:"taxCategory"`
	ConfidenceScore float64 `json:"confidenceScore"`
	IsInvoice       bool    `json:"isInvoice"`
}
