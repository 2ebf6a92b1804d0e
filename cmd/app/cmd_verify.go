package main

import (
	"fmt"

	"SwingBasket/internal/repository"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <basket.xlsx>",
	Short: "Check a basket file against the brokerage column layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := repository.ValidateFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: OK, %d orders\n", args[0], rows)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
