package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/match-test/internal/attribute"
	"github.com/sells-group/match-test/internal/catalog"
	"github.com/sells-group/match-test/internal/model"
)

var attributesCmd = &cobra.Command{
	Use:   "attributes",
	Short: "List catalog attributes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		category, _ := cmd.Flags().GetString("category")
		query, _ := cmd.Flags().GetString("query")

		cat, err := catalog.Load()
		if err != nil {
			return err
		}
		formatAttributes(cmd.OutOrStdout(), attribute.Filter(cat.Attributes, category, query))
		return nil
	},
}

func formatAttributes(w io.Writer, attrs []model.Attribute) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tTYPE")
	for _, a := range attrs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Category, a.Type)
	}
	tw.Flush() //nolint:errcheck
	fmt.Fprintf(w, "\n%d attributes\n", len(attrs))
}

func init() {
	attributesCmd.Flags().String("category", attribute.AllCategories, "category filter")
	attributesCmd.Flags().String("query", "", "case-insensitive search over name and category")
	rootCmd.AddCommand(attributesCmd)
}
