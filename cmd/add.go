package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <title> <author> <identifier>",
	Short: "Add a record to the catalog",
	Args:  cobra.ExactArgs(3),
	RunE:  runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	_, svc, err := openStore()
	if err != nil {
		return err
	}

	record, err := svc.AddRecord(cmd.Context(), args[0], args[1], args[2])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", record)
	return nil
}
