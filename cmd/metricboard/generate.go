package main

import (
	"context"
	"fmt"

	"github.com/newthinker/metricboard/internal/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var generateCmd = &cobra.Command{
	Use:   "generate <category>",
	Short: "Generate an analysis page for a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app.App, log *zap.Logger) error {
		page, err := a.Generate(ctx, args[0])
		if err != nil {
			return fmt.Errorf("generating page: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Analysis page generated successfully! Navigate to %s in the sidebar.\n", page.File)
		return nil
	})
}
