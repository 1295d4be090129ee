package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search records by title",
	Long:  `Search performs a case-insensitive substring match against record titles.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	_, svc, err := openStore()
	if err != nil {
		return err
	}

	matches := svc.Search(cmd.Context(), args[0])
	if len(matches) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No records match %q.\n", args[0])
		return nil
	}

	for _, r := range matches {
		fmt.Fprintln(cmd.OutOrStdout(), r)
	}
	return nil
}
