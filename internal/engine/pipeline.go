// Package engine implements the batch ingestion pipeline that drives
// receipt files through classification with strict sequencing.
package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/hollis/taxease/internal/model"
	"github.com/hollis/taxease/internal/records"
	"github.com/hollis/taxease/internal/rules"
)

// RuleFileError records a rule-definition file that could not be parsed.
// One corrupt rule file never aborts the rest of its batch.
type RuleFileError struct {
	Err      error
	Filename string
}

// BatchReport summarizes the rule-import half of a submitted batch.
type BatchReport struct {
	RuleFailures []RuleFileError
	RulesAdded   int
	Receipts     int
}

// Pipeline sequences a batch of receipt files through classification. It is
// the single writer of record status and result fields: records are
// processed one at a time, in creation order, and a failure on one record
// never stops the queue.
type Pipeline struct {
	records      *records.Store
	rules        *rules.Store
	classifier   Classifier
	onTransition func(model.InvoiceRecord)
	queue        []queuedReceipt
	mu           sync.Mutex
	cond         *sync.Cond
	processing   bool
}

type queuedReceipt struct {
	recordID string
	file     model.File
}

// New creates a pipeline over the given stores and classification
// collaborator.
func New(recordStore *records.Store, ruleStore *rules.Store, classifier Classifier) *Pipeline {
	p := &Pipeline{
		records:    recordStore,
		rules:      ruleStore,
		classifier: classifier,
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// OnTransition registers a callback invoked after every record status
// commit. Used by the CLI for progress feedback.
func (p *Pipeline) OnTransition(fn func(model.InvoiceRecord)) {
	p.onTransition = fn
}

// IsProcessing reports whether the sequential loop is currently draining
// the queue.
func (p *Pipeline) IsProcessing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.processing
}

// Wait blocks until the queue has been fully drained.
func (p *Pipeline) Wait() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.processing {
		p.cond.Wait()
	}
}

// ProcessBatch accepts a mixed file batch. Rule files are imported first and
// committed as one rule-set update, so rules arriving with a batch apply to
// that batch's own receipts. Receipt files then get placeholder records, all
// appended before the first classification call starts. If no loop is
// running the caller's goroutine drains the queue to completion; if one is
// already running the new receipts are appended to its queue and this call
// returns immediately after enqueueing.
func (p *Pipeline) ProcessBatch(ctx context.Context, files []model.File) (BatchReport, error) {
	batch := Partition(files)

	report := p.importRuleFiles(ctx, batch.RuleFiles)
	report.Receipts = len(batch.Receipts)

	if len(batch.Receipts) == 0 {
		return report, nil
	}

	queued := make([]queuedReceipt, 0, len(batch.Receipts))
	recs := make([]model.InvoiceRecord, 0, len(batch.Receipts))
	for _, f := range batch.Receipts {
		rec := model.NewInvoiceRecord(uuid.NewString(), f.Name)
		recs = append(recs, rec)
		queued = append(queued, queuedReceipt{recordID: rec.ID, file: f})
	}
	p.records.Append(recs...)

	p.mu.Lock()
	p.queue = append(p.queue, queued...)
	if p.processing {
		// An active loop will pick these up; never run two loops.
		p.mu.Unlock()
		slog.Info("Appended receipts to in-flight queue", "count", len(queued))
		return report, nil
	}
	p.processing = true
	p.mu.Unlock()

	slog.Info("Starting batch processing", "receipts", len(queued))
	p.drain(ctx)

	return report, nil
}

// importRuleFiles parses every rule file in the batch, accumulating entries
// across files into one pending set, then commits them with a single import.
// A file that fails to parse is reported and skipped; the others still
// import.
func (p *Pipeline) importRuleFiles(ctx context.Context, files []model.File) BatchReport {
	var report BatchReport

	var pending []model.VendorRule
	for _, f := range files {
		entries, err := rules.ParseRuleFile(f.Data)
		if err != nil {
			slog.Warn("Skipping malformed rule file", "file", f.Name, "error", err)
			report.RuleFailures = append(report.RuleFailures, RuleFileError{
				Filename: f.Name,
				Err:      err,
			})
			continue
		}
		pending = append(pending, entries...)
	}

	if len(pending) == 0 {
		return report
	}

	added, err := p.rules.ImportRules(ctx, pending)
	if err != nil {
		slog.Error("Failed to import rules from batch", "error", err)
		report.RuleFailures = append(report.RuleFailures, RuleFileError{
			Filename: "(batch)",
			Err:      err,
		})
		return report
	}

	report.RulesAdded = added
	return report
}

// drain processes queued receipts strictly one at a time until the queue is
// empty, including receipts appended by batches submitted mid-flight.
func (p *Pipeline) drain(ctx context.Context) {
	for {
		p.mu.Lock()
		if len(p.queue) == 0 {
			p.processing = false
			p.cond.Broadcast()
			p.mu.Unlock()
			slog.Info("Batch processing complete")
			return
		}
		next := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		p.processReceipt(ctx, next)
	}
}

// processReceipt drives one record through its state machine. The
// classification call is the only suspension point; its failure is recorded
// on the single record and the loop moves on.
func (p *Pipeline) processReceipt(ctx context.Context, q queuedReceipt) {
	p.commit(q.recordID, records.Patch{Status: statusPtr(model.StatusProcessing)})

	extraction, err := p.classifier.Classify(ctx, q.file)
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = "Failed to analyze"
		}
		slog.Warn("Classification failed",
			"file", q.file.Name,
			"error", err)
		p.commit(q.recordID, records.Patch{
			Status:       statusPtr(model.StatusError),
			ErrorMessage: &msg,
		})
		return
	}

	category := p.effectiveCategory(extraction)

	p.commit(q.recordID, records.Patch{
		VendorName:      &extraction.VendorName,
		InvoiceDate:     &extraction.InvoiceDate,
		TotalAmount:     &extraction.TotalAmount,
		Currency:        &extraction.Currency,
		Description:     &extraction.Description,
		TaxCategory:     &category,
		ConfidenceScore: &extraction.ConfidenceScore,
		Status:          statusPtr(model.StatusCompleted),
	})

	slog.Debug("Classified receipt",
		"file", q.file.Name,
		"vendor", extraction.VendorName,
		"category", category)
}

// effectiveCategory resolves the category to commit: a vendor rule match
// against the current committed rule set overrides the collaborator's
// category; otherwise the collaborator's value stands, defaulting to
// Uncategorized.
func (p *Pipeline) effectiveCategory(extraction *model.Extraction) model.TaxCategory {
	if category, ok := rules.Match(extraction.VendorName, p.rules.Snapshot()); ok {
		return category
	}
	category, _ := model.ParseCategory(extraction.TaxCategory)
	return category
}

func (p *Pipeline) commit(recordID string, patch records.Patch) {
	if err := p.records.UpdateByID(recordID, patch); err != nil {
		slog.Error("Failed to update record", "record_id", recordID, "error", err)
		return
	}
	if p.onTransition != nil {
		if rec, ok := p.records.Get(recordID); ok {
			p.onTransition(rec)
		}
	}
}

func statusPtr(s model.RecordStatus) *model.RecordStatus {
	return &s
}
