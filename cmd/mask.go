package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/match-test/internal/masking"
)

var maskCmd = &cobra.Command{
	Use:   "mask <field> <value>",
	Short: "Mask a value using the rule for its field label",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), masking.Value(args[1], args[0]))
		return err
	},
}

func init() {
	rootCmd.AddCommand(maskCmd)
}
