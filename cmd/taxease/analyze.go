package main

import (
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hollis/taxease/internal/config"
	"github.com/hollis/taxease/internal/engine"
	"github.com/hollis/taxease/internal/llm"
	"github.com/hollis/taxease/internal/model"
	"github.com/hollis/taxease/internal/records"
	"github.com/hollis/taxease/internal/rules"
	"github.com/hollis/taxease/internal/storage"
)

func analyzeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "analyze <file>...",
		Short: "Classify a batch of receipt files",
		Long: `Analyze a batch of receipt images/PDFs and JSON rule files. Rule files
are imported first, so rules arriving with a batch apply to that batch's
own receipts. Receipts are classified strictly one at a time.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			files, err := readBatch(args)
			if err != nil {
				return err
			}

			dbPath, err := databasePath()
			if err != nil {
				return err
			}
			store, err := storage.NewSQLiteStorage(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			recordStore := records.NewStore()
			ruleStore, err := rules.NewStore(ctx, store, recordStore)
			if err != nil {
				return fmt.Errorf("failed to load rules: %w", err)
			}

			classifier, err := llm.NewGemini(ctx, viper.GetString("gemini.api_key"), viper.GetString("gemini.model"))
			if err != nil {
				return fmt.Errorf("failed to create classifier: %w", err)
			}
			defer func() { _ = classifier.Close() }()

			pipeline := engine.New(recordStore, ruleStore, classifier)

			bar := newProgressBar(len(engine.Partition(files).Receipts))
			pipeline.OnTransition(func(rec model.InvoiceRecord) {
				if rec.Status.IsTerminal() {
					_ = bar.Add(1)
				}
			})

			report, err := pipeline.ProcessBatch(ctx, files)
			if err != nil {
				return fmt.Errorf("batch processing failed: %w", err)
			}
			pipeline.Wait()
			_ = bar.Finish()
			fmt.Println()

			for _, failure := range report.RuleFailures {
				slog.Warn("Rule file not imported", "file", failure.Filename, "error", failure.Err)
			}
			if len(files) > report.Receipts && report.RulesAdded == 0 && len(report.RuleFailures) == 0 {
				slog.Info("No new rules in batch")
			} else if report.RulesAdded > 0 {
				slog.Info("Rules imported from batch", "added", report.RulesAdded)
			}

			printResults(recordStore)

			if output != "" {
				if err := exportWorkbook(recordStore, config.ExpandPath(output)); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write an XLSX summary workbook to this path")
	cmd.Flags().String("api-key", "", "Gemini API key")
	cmd.Flags().String("model", "", "Gemini model name")
	_ = viper.BindPFlag("gemini.api_key", cmd.Flags().Lookup("api-key"))
	_ = viper.BindPFlag("gemini.model", cmd.Flags().Lookup("model"))

	return cmd
}

// readBatch loads the named files from disk, preserving argument order.
func readBatch(paths []string) ([]model.File, error) {
	files := make([]model.File, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path) // #nosec G304 -- user-supplied batch paths
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		files = append(files, model.File{
			Name:        filepath.Base(path),
			ContentType: mime.TypeByExtension(filepath.Ext(path)),
			Data:        data,
		})
	}
	return files, nil
}

func newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Classifying receipts..."),
	)
}

func printResults(recordStore *records.Store) {
	stats := recordStore.Stats()

	for _, rec := range recordStore.All() {
		if rec.Status == model.StatusError {
			slog.Warn("Receipt failed", "file", rec.Filename, "error", rec.ErrorMessage)
		}
	}

	slog.Info("Analysis complete",
		"total_files", stats.TotalFiles,
		"processed", stats.Processed,
		"successful", stats.Successful,
		"failed", stats.Failed,
		"total_value", fmt.Sprintf("%.2f", stats.TotalValue))
}
