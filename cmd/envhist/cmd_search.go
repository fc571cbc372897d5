package main

import (
	"github.com/spf13/cobra"

	"envhist/internal/envstore"
	"envhist/internal/format"
)

var searchFlags struct {
	output string
}

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Find environments by substring match",
	Long: "Search matches term case-insensitively against cluster name,\n" +
		"platform, notes, Jira ticket and Polarion plan. An empty term\n" +
		"matches every record.",
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchFlags.output, "output", "o", "", "Output format: table|markdown|csv")
}

func runSearch(cmd *cobra.Command, args []string) error {
	st := openStore()
	records, err := st.Load()
	if err != nil {
		return err
	}
	matches := envstore.Search(records, args[0])
	envstore.SortRecords(matches, envstore.SortLastUsed)

	mode, err := format.ParseMode(searchFlags.output)
	if err != nil {
		return err
	}
	renderRecords(cmd.OutOrStdout(), matches, mode)
	return nil
}
