package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent runs stored in PostgreSQL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.Recent(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs stored yet.")
			return nil
		}

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Run", "When", "City", "Budget", "Source", "Retained", "Market Avg", "Best Value"})
		for _, r := range runs {
			avg := "N/A"
			if r.MarketAverage != nil {
				avg = fmt.Sprintf("%.2f", *r.MarketAverage)
			}
			t.AppendRow(table.Row{
				r.ID,
				r.CreatedAt.Local().Format("2006-01-02 15:04"),
				r.City,
				fmt.Sprintf("%.2f %s", r.Budget, r.Currency),
				r.Source,
				r.Retained,
				avg,
				r.BestValue,
			})
		}
		t.Render()
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
