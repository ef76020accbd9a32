package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"erpBack/internal/catalog"
	"erpBack/internal/logging"
	"erpBack/internal/repositories"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Print the category schemas items are reconciled against",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	e, err := connect(cmd.Context())
	if err != nil {
		return err
	}
	defer e.db.Close()

	registry := catalog.NewRegistry(
		repositories.NewCategoryRepository(e.db, e.dialect),
		logging.Printf{Logger: e.logger},
	)
	if err := registry.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	categories := registry.List()
	if len(categories) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No categories found")
		return nil
	}
	for _, c := range categories {
		attrs := "(no attributes)"
		if len(c.Attributes) > 0 {
			attrs = strings.Join(c.Attributes, ", ")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", c.ID, c.Name, attrs)
	}
	return nil
}
