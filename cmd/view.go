package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view FILE [FILE...]",
		Short: "View saved audit reports",
		Long: `Load one or more report files written by 'audit --save' and display
them merged into a single table.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.View(context.Background(), parsePaths(args))
		},
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
