package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"mfdl/internal/config"
	"mfdl/internal/tui"
)

// NewTUICmd creates the tui command
func NewTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the article catalog in the terminal",
		Long: `Launch an interactive terminal browser for the blog catalog.

Keys:
  /            search title, excerpt or category
  tab          next category
  shift+tab    previous category
  r            show every article again
  j/k          move
  q            quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			store, err := loadStore(cfg)
			if err != nil {
				return err
			}
			return tui.Run(store)
		},
	}
}
