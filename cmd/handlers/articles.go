package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mfdl/internal/catalog"
	"mfdl/internal/config"
)

// NewArticlesCmd creates the articles command for listing the catalog
func NewArticlesCmd() *cobra.Command {
	var (
		query    string
		category string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:     "articles",
		Aliases: []string{"ls"},
		Short:   "List articles with the blog's search and category filter",
		Long: `List the articles of the catalog, filtered exactly like the blog page.

The query matches title, excerpt or category, ignoring case. The category must match
a category name exactly; "All" (the default) matches every article.

Examples:
  # Every article
  mfdl articles

  # Articles mentioning "okr" in the OKRs category
  mfdl articles --query okr --category OKRs

  # Machine-readable output
  mfdl articles -q design --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			store, err := loadStore(cfg)
			if err != nil {
				return err
			}
			state := catalog.DefaultState().WithQuery(query)
			if category != "" {
				state = state.WithCategory(category)
			}
			return writeArticles(cmd.OutOrStdout(), state, state.Apply(store), asJSON)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search text matched against title, excerpt or category")
	cmd.Flags().StringVarP(&category, "category", "c", catalog.AllCategories, "Category to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

type articlesOutput struct {
	Query    string            `json:"query"`
	Category string            `json:"category"`
	Articles []catalog.Article `json:"articles"`
	Matched  int               `json:"matched"`
	Total    int               `json:"total"`
	Summary  string            `json:"summary"`
}

func writeArticles(out io.Writer, state catalog.State, result catalog.Result, asJSON bool) error {
	if asJSON {
		articles := result.Articles
		if articles == nil {
			articles = []catalog.Article{}
		}
		data, err := json.MarshalIndent(articlesOutput{
			Query:    state.Query,
			Category: state.Category,
			Articles: articles,
			Matched:  result.Matched,
			Total:    result.Total,
			Summary:  result.Summary(),
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal articles: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	if result.Empty() {
		fmt.Fprintln(out, "Nessun articolo trovato.")
		fmt.Fprintln(out, result.Summary())
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tCategory\tTitle\tDate\tReading\n")
	for _, a := range result.Articles {
		title := a.Title
		if a.Featured {
			title = "★ " + title
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", a.ID, a.Category, title, a.Date, a.ReadingTime)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s\n", result.Summary())
	return nil
}
