package main

import (
	"github.com/spf13/cobra"

	"envhist/internal/envstore"
	"envhist/internal/format"
)

var listFlags struct {
	sortBy   string
	status   string
	platform string
	output   string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded environments",
	RunE:  runList,
}

func init() {
	f := listCmd.Flags()
	f.StringVar(&listFlags.sortBy, "sort-by", "", "Sort key: last_used|created|name|status|platform")
	f.StringVar(&listFlags.status, "status", "", "Only records with this test status")
	f.StringVar(&listFlags.platform, "platform", "", "Only records on this platform")
	f.StringVarP(&listFlags.output, "output", "o", "", "Output format: table|markdown|csv")
}

func runList(cmd *cobra.Command, _ []string) error {
	st := openStore()
	records, err := st.Load()
	if err != nil {
		return err
	}
	if listFlags.status != "" {
		records = envstore.FilterByStatus(records, listFlags.status)
	}
	if listFlags.platform != "" {
		records = envstore.FilterByPlatform(records, listFlags.platform)
	}

	sortBy := listFlags.sortBy
	if sortBy == "" {
		sortBy = cfg.DefaultSort
	}
	key, err := envstore.ParseSortKey(sortBy)
	if err != nil {
		return err
	}
	envstore.SortRecords(records, key)

	mode, err := format.ParseMode(listFlags.output)
	if err != nil {
		return err
	}
	renderRecords(cmd.OutOrStdout(), records, mode)
	return nil
}
