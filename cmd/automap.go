package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/match-test/internal/catalog"
	"github.com/sells-group/match-test/internal/fieldmap"
	"github.com/sells-group/match-test/internal/model"
)

var automapCmd = &cobra.Command{
	Use:   "automap",
	Short: "Auto-match file columns to a match type template",
	RunE: func(cmd *cobra.Command, _ []string) error {
		matchType, _ := cmd.Flags().GetString("match-type")
		columns, _ := cmd.Flags().GetStringSlice("columns")
		fileName, _ := cmd.Flags().GetString("file")

		cat, err := catalog.Load()
		if err != nil {
			return err
		}
		if len(columns) == 0 {
			if fileName == "" {
				return eris.New("automap: --columns or --file is required")
			}
			columns = cat.ColumnsFor(fileName)
		}

		mt, err := fieldmap.ParseMatchType(matchType)
		if err != nil {
			return err
		}
		sess := fieldmap.NewSession(cat)
		sess.SetColumns(columns)
		mappings, err := sess.SelectMatchType(mt)
		if err != nil {
			return err
		}

		formatMappings(cmd.OutOrStdout(), mappings)
		return nil
	},
}

func formatMappings(w io.Writer, mappings []model.FieldMapping) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tREQUIRED\tCOLUMN")
	for _, m := range mappings {
		req := ""
		if m.Required {
			req = "*"
		}
		col := "-"
		if m.MappedColumn != nil {
			col = *m.MappedColumn
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Field, req, col)
	}
	tw.Flush() //nolint:errcheck

	if missing := fieldmap.MissingRequired(mappings); len(missing) > 0 {
		fmt.Fprintf(w, "\nNot ready: required fields unmapped: %v\n", missing)
		return
	}
	fmt.Fprintln(w, "\nReady to process.")
}

func init() {
	automapCmd.Flags().String("match-type", "pii", "match type: pii, digital or transaction")
	automapCmd.Flags().StringSlice("columns", nil, "file column names")
	automapCmd.Flags().String("file", "", "file name used to look up columns when --columns is not set")
	rootCmd.AddCommand(automapCmd)
}
