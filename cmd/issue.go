package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var issueCmd = &cobra.Command{
	Use:   "issue <identifier>",
	Short: "Mark a record as issued",
	Args:  cobra.ExactArgs(1),
	RunE:  runIssue,
}

func init() {
	rootCmd.AddCommand(issueCmd)
}

func runIssue(cmd *cobra.Command, args []string) error {
	_, svc, err := openStore()
	if err != nil {
		return err
	}

	if err := svc.IssueRecord(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Issued %s\n", args[0])
	return nil
}
