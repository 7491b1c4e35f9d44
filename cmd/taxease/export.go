package main

import (
	"log/slog"

	"github.com/hollis/taxease/internal/export"
	"github.com/hollis/taxease/internal/records"
)

func exportWorkbook(recordStore *records.Store, path string) error {
	if err := export.WriteWorkbook(recordStore.All(), path); err != nil {
		return err
	}

	slog.Info("Wrote summary workbook", "path", path)
	return nil
}
