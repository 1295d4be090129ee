package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var returnCmd = &cobra.Command{
	Use:   "return <identifier>",
	Short: "Mark an issued record as returned",
	Args:  cobra.ExactArgs(1),
	RunE:  runReturn,
}

func init() {
	rootCmd.AddCommand(returnCmd)
}

func runReturn(cmd *cobra.Command, args []string) error {
	_, svc, err := openStore()
	if err != nil {
		return err
	}

	if err := svc.ReturnRecord(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Returned %s\n", args[0])
	return nil
}
