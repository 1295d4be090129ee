package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every record in the catalog",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	_, svc, err := openStore()
	if err != nil {
		return err
	}

	records := svc.List(cmd.Context())
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Catalog is empty.")
		return nil
	}

	for _, r := range records {
		fmt.Fprintln(cmd.OutOrStdout(), r)
	}
	return nil
}
