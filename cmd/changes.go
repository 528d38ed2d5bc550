package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	changesCountry string
	changesLimit   int
)

var changesCmd = &cobra.Command{
	Use:   "changes",
	Short: "Show recent observation history for a country",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if changesCountry == "" {
			return eris.New("--country is required")
		}

		env, err := initScrapeEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		recent, err := env.Store.Recent(ctx, changesCountry, changesLimit)
		if err != nil {
			return err
		}
		if len(recent) == 0 {
			fmt.Printf("no history for %s\n", changesCountry)
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "OBSERVED\tENTRY\tTEST\tQUARANTINE")
		for _, obs := range recent {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				obs.ObservedAt.Format("2006-01-02 15:04"),
				obs.Entry,
				obs.Test,
				obs.Quarantine,
			)
		}
		return w.Flush()
	},
}

func init() {
	changesCmd.Flags().StringVarP(&changesCountry, "country", "c", "", "country name to show history for")
	changesCmd.Flags().IntVar(&changesLimit, "limit", 10, "maximum rows to show")
	rootCmd.AddCommand(changesCmd)
}
