// Package export serializes the final in-memory records into the tax
// summary workbook.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hollis/taxease/internal/common"
	"github.com/hollis/taxease/internal/model"
)

const (
	summarySheet = "Tax Summary"
	detailSheet  = "Itemized Invoices"
)

// WriteWorkbook writes the export artifact: one sheet aggregating the total
// deductible amount per category and one sheet itemizing every completed
// record. Only completed records are exported; a batch with none is
// rejected up front.
func WriteWorkbook(recs []model.InvoiceRecord, path string) error {
	var completed []model.InvoiceRecord
	for _, rec := range recs {
		if rec.Status == model.StatusCompleted {
			completed = append(completed, rec)
		}
	}
	if len(completed) == 0 {
		return common.NewUserError("no valid data to export", common.ErrNothingToExport)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := writeSummarySheet(f, completed); err != nil {
		return err
	}
	if err := writeDetailSheet(f, completed); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}

func writeSummarySheet(f *excelize.File, completed []model.InvoiceRecord) error {
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	totals := make(map[model.TaxCategory]float64)
	for _, rec := range completed {
		totals[rec.TaxCategory] += rec.TotalAmount
	}

	header := []any{"Tax Deduction Category", "Total Deductible Amount"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}

	// Emit categories in their fixed display order for a stable artifact.
	row := 2
	for _, category := range model.AllCategories() {
		total, ok := totals[category]
		if !ok {
			continue
		}
		cells := []any{string(category), total}
		cell := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(summarySheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
		row++
	}

	return nil
}

func writeDetailSheet(f *excelize.File, completed []model.InvoiceRecord) error {
	if _, err := f.NewSheet(detailSheet); err != nil {
		return fmt.Errorf("failed to create detail sheet: %w", err)
	}

	header := []any{"Date", "Vendor", "Description", "Tax Category", "Amount", "Currency", "Confidence", "File Name"}
	if err := f.SetSheetRow(detailSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write detail header: %w", err)
	}

	for i, rec := range completed {
		cells := []any{
			rec.InvoiceDate,
			rec.VendorName,
			rec.Description,
			string(rec.TaxCategory),
			rec.TotalAmount,
			rec.Currency,
			fmt.Sprintf("%.0f%%", rec.ConfidenceScore),
			rec.Filename,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(detailSheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write detail row: %w", err)
		}
	}

	return nil
}
