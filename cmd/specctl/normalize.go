package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"erpBack/internal/repositories"
	"erpBack/internal/services"
)

var dryRun bool

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Rewrite stored item specifications into flat JSON objects",
	Long: `Normalize scans every inventory item and rewrites specifications that are
not a flat JSON object of strings, such as the legacy features payload,
into the normalized form. Each change is logged.`,
	Args: cobra.NoArgs,
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "log the changes without writing them")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, _ []string) error {
	e, err := connect(cmd.Context())
	if err != nil {
		return err
	}
	defer e.db.Close()

	store := repositories.NewInventoryItemRepository(e.db, e.dialect)
	report, err := services.NormalizeSpecifications(cmd.Context(), store, dryRun, e.logger)
	if err != nil {
		return err
	}

	verb := "rewrote"
	if dryRun {
		verb = "would rewrite"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "scanned %d items, %s %d\n", report.Scanned, verb, report.Rewritten)
	return nil
}
