package handlers

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"mfdl/internal/server"
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mfdl %s (%s)\n", server.Version, runtime.Version())
		},
	}
}
