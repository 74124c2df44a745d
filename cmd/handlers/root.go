/*
Copyright © 2025 Your Name

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mfdl/internal/catalog"
	"mfdl/internal/config"
	"mfdl/internal/logger"
	"mfdl/internal/server"
)

var cfgFile string

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mfdl",
		Short: "Personal site and blog catalog for Mattia",
		Long: `mfdl serves Mattia's personal site: the blog with search and category
filters, article pages, the chat assistant and the "Ask me anything" inbox.

The same article catalog can be browsed from the terminal.

Examples:
  # Start the web server
  mfdl serve

  # List articles matching a search inside a category
  mfdl articles --query okr --category OKRs

  # Browse the catalog interactively
  mfdl tui`,
		Version:       server.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Initialize configuration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mfdl.yaml)")

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewArticlesCmd())
	rootCmd.AddCommand(NewCategoriesCmd())
	rootCmd.AddCommand(NewTUICmd())
	rootCmd.AddCommand(NewChatCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger.InitWithOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})

	if cfg.App.ConfigFile != "" {
		logger.Debug("Using config file", "path", cfg.App.ConfigFile)
	}
}

// loadStore opens the configured article catalog
func loadStore(cfg *config.Config) (*catalog.Store, error) {
	store, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if cfg.Catalog.Path != "" {
		logger.Info("Loaded catalog", "path", cfg.Catalog.Path, "articles", store.Len())
	}
	return store, nil
}
