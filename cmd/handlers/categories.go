package handlers

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mfdl/internal/catalog"
	"mfdl/internal/config"
)

// NewCategoriesCmd creates the categories command
func NewCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List category facets with article counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			store, err := loadStore(cfg)
			if err != nil {
				return err
			}
			return writeCategories(cmd.OutOrStdout(), catalog.FacetCounts(store.All()))
		},
	}
}

func writeCategories(out io.Writer, facets []catalog.Facet) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Category\tArticles\tColor\n")
	for _, f := range facets {
		fmt.Fprintf(w, "%s\t%d\t%s\n", f.Name, f.Count, f.Color)
	}
	return w.Flush()
}
