package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the latest classification for every observed country",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initScrapeEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		latest, err := env.Store.Latest(ctx)
		if err != nil {
			return err
		}
		if len(latest) == 0 {
			fmt.Println("no observations yet; run `advisory-cli scrape` first")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "COUNTRY\tENTRY\tTEST\tQUARANTINE\tOBSERVED")
		for _, obs := range latest {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				obs.CountryName,
				obs.Entry,
				obs.Test,
				obs.Quarantine,
				obs.ObservedAt.Format("2006-01-02 15:04"),
			)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
