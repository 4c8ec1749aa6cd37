package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/newthinker/metricboard/internal/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List catalog categories with their metrics and dimensions",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app.App, log *zap.Logger) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tMETRICS\tDIMENSIONS\t")
		fmt.Fprintln(w, "--------\t-------\t----------\t")
		for _, name := range a.Categories() {
			info, err := a.CategoryInfo(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t\n", name,
				strings.Join(info.Metrics, ", "), strings.Join(info.Dimensions, ", "))
		}
		return w.Flush()
	})
}
