package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bma-d/tasktabs/internal/tabs"
)

var listCmd = &cobra.Command{
	Use:   "list [tab]",
	Short: "Print report counts, or one report, without the dashboard",
	Long: `Fetch every report once and print each tab with its row count.

With a tab name, print that tab's report text instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	var only *tabs.Tab
	if len(args) == 1 {
		tab, err := tabs.Parse(args[0])
		if err != nil {
			return err
		}
		only = &tab
	}

	store := newStore(settings)
	if err := store.RefreshAll(cmd.Context(), newFetcherFn(settings)); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if only != nil {
		_, err := fmt.Fprintln(out, store.Get(*only).Text)
		return err
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, tab := range tabs.All() {
		fmt.Fprintf(w, "%s\t%d\n", tab.Title(), store.RowCount(tab))
	}
	return w.Flush()
}
