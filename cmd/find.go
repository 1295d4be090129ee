package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <identifier>",
	Short: "Look up a record by identifier",
	Args:  cobra.ExactArgs(1),
	RunE:  runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	_, svc, err := openStore()
	if err != nil {
		return err
	}

	record, ok := svc.Find(cmd.Context(), args[0])
	if !ok {
		// Absence is an answer, not a failure.
		fmt.Fprintf(cmd.OutOrStdout(), "No record with identifier %s.\n", args[0])
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), record)
	return nil
}
