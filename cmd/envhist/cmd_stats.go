package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"envhist/internal/display"
	"envhist/internal/envstore"
	"envhist/internal/format"
)

var statsFlags struct {
	recent int
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Counts by platform and status, plus recently used environments",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsFlags.recent, "recent", 0, "How many recently used records to show (default from config)")
}

func runStats(cmd *cobra.Command, _ []string) error {
	st := openStore()
	records, err := st.Load()
	if err != nil {
		return err
	}
	recentN := statsFlags.recent
	if recentN <= 0 {
		recentN = cfg.RecentN
	}
	sum := envstore.Aggregate(records, recentN)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d environment(s) recorded\n\n", sum.Total)

	platforms := format.NewTable(format.ASCII)
	platforms.Header("Platform", "Count")
	for _, g := range sum.ByPlatform {
		platforms.Row(display.Platform(g.Name), g.Count)
	}
	platforms.Footer("TOTAL", sum.Total)
	platforms.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	fmt.Fprintln(out, platforms.String())

	statuses := format.NewTable(format.ASCII)
	statuses.Header("Status", "Count")
	for _, g := range sum.ByStatus {
		statuses.Row(display.TestStatus(g.Name), g.Count)
	}
	statuses.Footer("TOTAL", sum.Total)
	statuses.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	fmt.Fprintln(out, statuses.String())

	if len(sum.Recent) > 0 {
		now := time.Now().UTC()
		recent := format.NewTable(format.ASCII)
		recent.Header("Cluster", "Platform", "Status", "Last Used")
		for _, r := range sum.Recent {
			recent.Row(r.ClusterName, display.Platform(r.Platform),
				display.TestStatus(string(r.TestStatus)), format.FmtAge(r.LastUsedAt, now))
		}
		fmt.Fprintln(out, recent.String())
	}
	return nil
}
