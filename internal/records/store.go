// Package records holds the ordered collection of invoice records produced
// by the ingestion pipeline and read by the display layer.
package records

import (
	"fmt"
	"sync"

	"github.com/hollis/taxease/internal/common"
	"github.com/hollis/taxease/internal/model"
)

// Patch describes a partial update to an invoice record. Nil fields are left
// untouched. ID and Filename are immutable and cannot appear in a patch.
type Patch struct {
	VendorName      *string
	InvoiceDate     *string
	TotalAmount     *float64
	Currency        *string
	Description     *string
	TaxCategory     *model.TaxCategory
	ConfidenceScore *float64
	Status          *model.RecordStatus
	ErrorMessage    *string
}

// Store is the ordered, in-memory collection of invoice records. Records are
// appended in batch order and never removed; every mutation is a discrete
// atomic commit so readers always observe a consistent snapshot.
type Store struct {
	index   map[string]int
	records []model.InvoiceRecord
	mu      sync.RWMutex
}

// NewStore creates an empty record store.
func NewStore() *Store {
	return &Store{
		index: make(map[string]int),
	}
}

// Append adds records to the end of the store, preserving argument order.
func (s *Store) Append(recs ...model.InvoiceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range recs {
		s.index[rec.ID] = len(s.records)
		s.records = append(s.records, rec)
	}
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(id string) (model.InvoiceRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return model.InvoiceRecord{}, false
	}
	return s.records[i], true
}

// All returns a copy of every record in store order.
func (s *Store) All() []model.InvoiceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.InvoiceRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// UpdateByID merges the patch into the record with the given id. Status
// changes must follow the pipeline's one-way chain; a patch that would move
// a record backwards or out of a terminal state is rejected.
func (s *Store) UpdateByID(id string, patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("record %q: %w", id, common.ErrNotFound)
	}

	rec := &s.records[i]

	if patch.Status != nil && !rec.Status.CanTransitionTo(*patch.Status) {
		return fmt.Errorf("record %q: %s -> %s: %w", id, rec.Status, *patch.Status, common.ErrInvalidTransition)
	}

	if patch.VendorName != nil {
		rec.VendorName = *patch.VendorName
	}
	if patch.InvoiceDate != nil {
		rec.InvoiceDate = *patch.InvoiceDate
	}
	if patch.TotalAmount != nil {
		rec.TotalAmount = *patch.TotalAmount
	}
	if patch.Currency != nil {
		rec.Currency = *patch.Currency
	}
	if patch.Description != nil {
		rec.Description = *patch.Description
	}
	if patch.TaxCategory != nil {
		rec.TaxCategory = *patch.TaxCategory
	}
	if patch.ConfidenceScore != nil {
		rec.ConfidenceScore = *patch.ConfidenceScore
	}
	if patch.Status != nil {
		rec.Status = *patch.Status
	}
	if patch.ErrorMessage != nil {
		rec.ErrorMessage = *patch.ErrorMessage
	}

	return nil
}

// UpdateCategory sets the tax category of a single record. It is the hook
// the rule engine uses for retroactive re-application; it never touches
// status or any other field.
func (s *Store) UpdateCategory(id string, category model.TaxCategory) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[id]; ok {
		s.records[i].TaxCategory = category
	}
}

// BulkUpdateCategory sets the tax category on every record whose id appears
// in ids. Unknown ids are ignored.
func (s *Store) BulkUpdateCategory(ids []string, category model.TaxCategory) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if i, ok := s.index[id]; ok {
			s.records[i].TaxCategory = category
		}
	}
}
