package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/match-test/internal/catalog"
	"github.com/sells-group/match-test/internal/jobs"
	"github.com/sells-group/match-test/internal/model"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List match jobs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		search, _ := cmd.Flags().GetString("search")
		types, _ := cmd.Flags().GetStringSlice("type")

		filter := jobs.Filter{Search: search}
		for _, raw := range types {
			t, ok := model.ParseJobMatchType(raw)
			if !ok {
				return eris.Errorf("jobs: unknown match type %q", raw)
			}
			filter.AddMatchType(t)
		}

		cat, err := catalog.Load()
		if err != nil {
			return err
		}
		st, err := openStore(ctx, cat)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		svc := jobs.NewService(st, cat.KPIs, cat.Connections, jobs.Options{
			FetchTimeout: cfg.Jobs.FetchTimeout(),
		})
		list, err := svc.Fetch(ctx)
		if err != nil {
			return eris.Wrap(err, "jobs list")
		}

		list = filter.Apply(list)
		if len(list) == 0 {
			fmt.Fprintln(os.Stderr, "No jobs found.")
			return nil
		}
		formatJobsList(cmd.OutOrStdout(), list)
		return nil
	},
}

func formatJobsList(w io.Writer, list []model.Job) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFILE\tTYPE\tPROCESSED\tMATCH RATE\tSTATUS\tEXPORTED")
	for _, j := range list {
		exported := "no"
		if j.Exported {
			exported = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			j.ID, j.FileName, j.MatchType, j.ProcessedDate, j.MatchRate, j.Status, exported)
	}
	tw.Flush() //nolint:errcheck
}

func init() {
	jobsCmd.Flags().String("search", "", "filter by file name, processed date or match type")
	jobsCmd.Flags().StringSlice("type", nil, "filter by match type (PII, Digital, Transaction)")
	rootCmd.AddCommand(jobsCmd)
}
