package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hollis/taxease/internal/config"
	"github.com/hollis/taxease/internal/model"
	"github.com/hollis/taxease/internal/records"
	"github.com/hollis/taxease/internal/rules"
	"github.com/hollis/taxease/internal/storage"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage vendor categorization rules",
		Long:  `View, add, delete, import, and export vendor-pattern rules that override AI-assigned categories.`,
	}

	cmd.AddCommand(rulesListCmd())
	cmd.AddCommand(rulesAddCmd())
	cmd.AddCommand(rulesDeleteCmd())
	cmd.AddCommand(rulesImportCmd())
	cmd.AddCommand(rulesExportCmd())

	return cmd
}

// openRuleStore opens the persisted rule store. Rule management commands run
// outside a batch, so the retroactive pass applies over an empty record set.
func openRuleStore(ctx context.Context) (*rules.Store, *storage.SQLiteStorage, error) {
	dbPath, err := databasePath()
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	ruleStore, err := rules.NewStore(ctx, store, records.NewStore())
	if err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to load rules: %w", err)
	}

	return ruleStore, store, nil
}

func rulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all vendor rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ruleStore, store, err := openRuleStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ruleSet := ruleStore.Snapshot()
			if len(ruleSet) == 0 {
				fmt.Println("No rules defined yet. Use 'taxease rules add' to create one.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "ID\tPattern\tCategory\n")
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 8),
				strings.Repeat("-", 20),
				strings.Repeat("-", 30))
			for _, rule := range ruleSet {
				fmt.Fprintf(w, "%s\t%s\t%s\n", rule.ID, rule.VendorNamePattern, rule.TaxCategory)
			}

			return nil
		},
	}
}

func rulesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <pattern> <category>",
		Short: "Add a vendor rule",
		Long:  `Add a rule mapping a vendor-name substring (case-insensitive) to a tax category.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, ok := model.ParseCategory(args[1])
			if !ok {
				return fmt.Errorf("unknown category %q; valid categories: %s", args[1], categoryNames())
			}

			ruleStore, store, err := openRuleStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rule, err := ruleStore.AddRule(cmd.Context(), args[0], category)
			if err != nil {
				return err
			}

			fmt.Printf("Added rule %s: %q -> %s\n", rule.ID, rule.VendorNamePattern, rule.TaxCategory)
			return nil
		},
	}
}

func rulesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a vendor rule",
		Long:  `Delete a rule by id. Categories the rule already assigned are kept; deletion only affects future classifications.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ruleStore, store, err := openRuleStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := ruleStore.DeleteRule(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Printf("Deleted rule %s\n", args[0])
			return nil
		},
	}
}

func rulesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>...",
		Short: "Import rules from JSON files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ruleStore, store, err := openRuleStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			// Accumulate entries across files so one import commits them all;
			// a malformed file is reported and skipped, not fatal.
			var pending []model.VendorRule
			for _, path := range args {
				data, readErr := os.ReadFile(path) // #nosec G304 -- user-supplied rule file
				if readErr != nil {
					fmt.Fprintf(os.Stderr, "skipping %s: %v\n", path, readErr)
					continue
				}
				entries, parseErr := rules.ParseRuleFile(data)
				if parseErr != nil {
					fmt.Fprintf(os.Stderr, "skipping %s: %v\n", path, parseErr)
					continue
				}
				pending = append(pending, entries...)
			}

			added, err := ruleStore.ImportRules(cmd.Context(), pending)
			if err != nil {
				return err
			}

			if added == 0 {
				fmt.Println("No new rules imported.")
			} else {
				fmt.Printf("Imported %d rules (%d total).\n", added, ruleStore.Len())
			}
			return nil
		},
	}
}

func rulesExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export rules as importable JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ruleStore, store, err := openRuleStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			data, err := ruleStore.ExportJSON()
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Println(string(data))
				return nil
			}
			output = config.ExpandPath(output)
			if err := os.WriteFile(output, data, 0600); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Printf("Exported %d rules to %s\n", ruleStore.Len(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func categoryNames() string {
	categories := model.AllCategories()
	names := make([]string, len(categories))
	for i, cat := range categories {
		names[i] = string(cat)
	}
	return strings.Join(names, ", ")
}
