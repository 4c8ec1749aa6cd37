package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/newthinker/metricboard/internal/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Manage generated analysis pages",
}

var pagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated pages",
	Args:  cobra.NoArgs,
	RunE:  runPagesList,
}

var pagesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a generated page",
	Args:  cobra.ExactArgs(1),
	RunE:  runPagesDelete,
}

var pagesExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a generated page as a Markdown report",
	Args:  cobra.ExactArgs(1),
	RunE:  runPagesExport,
}

var exportOutput string

func init() {
	rootCmd.AddCommand(pagesCmd)
	pagesCmd.AddCommand(pagesListCmd)
	pagesCmd.AddCommand(pagesDeleteCmd)
	pagesCmd.AddCommand(pagesExportCmd)

	pagesExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write the report to a file instead of stdout")
}

func runPagesList(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app.App, log *zap.Logger) error {
		pages, err := a.ListPages(ctx)
		if err != nil {
			return fmt.Errorf("listing pages: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(pages) == 0 {
			fmt.Fprintln(out, "No analysis pages generated yet.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCATEGORY\tFILE\t")
		fmt.Fprintln(w, "--\t--------\t----\t")
		for _, p := range pages {
			fmt.Fprintf(w, "%s\t%s\t%s\t\n", p.ID, p.Category, p.File)
		}
		return w.Flush()
	})
}

func runPagesDelete(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app.App, log *zap.Logger) error {
		if err := a.DeletePage(ctx, args[0]); err != nil {
			return fmt.Errorf("deleting page: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	})
}

func runPagesExport(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app.App, log *zap.Logger) error {
		var out io.Writer = cmd.OutOrStdout()
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("creating %s: %w", exportOutput, err)
			}
			defer f.Close()
			out = f
		}

		if err := a.WriteReport(ctx, out, args[0]); err != nil {
			return fmt.Errorf("exporting page: %w", err)
		}
		if exportOutput != "" {
			log.Info("report written", zap.String("page", args[0]), zap.String("path", exportOutput))
		}
		return nil
	})
}
