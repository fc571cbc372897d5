package main

import (
	"github.com/spf13/cobra"

	"envhist/internal/envstore"
	"envhist/internal/selector"
)

var selectFlags struct {
	sortBy    string
	showCreds bool
}

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Browse environments interactively",
	Long: "Select renders a numbered listing and loops: pick an entry to view\n" +
		"it, then update its status/notes, print its login command, or delete\n" +
		"it. Quit with q or end of input; nothing is written until an action\n" +
		"is confirmed.",
	RunE: runSelect,
}

func init() {
	f := selectCmd.Flags()
	f.StringVar(&selectFlags.sortBy, "sort-by", "", "Sort key: last_used|created|name|status|platform")
	f.BoolVar(&selectFlags.showCreds, "show-credentials", false, "Show plaintext passwords in record detail")
}

func runSelect(cmd *cobra.Command, _ []string) error {
	sortBy := selectFlags.sortBy
	if sortBy == "" {
		sortBy = cfg.DefaultSort
	}
	key, err := envstore.ParseSortKey(sortBy)
	if err != nil {
		return err
	}

	opts := []selector.Option{selector.WithSortKey(key)}
	if selectFlags.showCreds {
		opts = append(opts, selector.WithCredentials())
	}
	sel := selector.New(
		openStore(),
		selector.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
		cmd.OutOrStdout(),
		opts...,
	)
	return sel.Run()
}
