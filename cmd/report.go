package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"libris/internal/report"
)

var reportPlain bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a catalog summary",
	Long: `Report prints record totals, a per-author breakdown and the full
listing, rendered for the terminal. Use --plain for raw markdown suitable
for piping into a file.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportPlain, "plain", false, "print raw markdown without terminal styling")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	_, svc, err := openStore()
	if err != nil {
		return err
	}

	markdown := report.Build(svc.List(cmd.Context()))
	if reportPlain {
		fmt.Fprint(cmd.OutOrStdout(), markdown)
		return nil
	}

	rendered, err := report.Render(markdown)
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}
