package main

import (
	"github.com/spf13/cobra"

	"envhist/internal/selector"
)

var showFlags struct {
	showCreds bool
}

var showCmd = &cobra.Command{
	Use:   "show <id|cluster>",
	Short: "Show one environment in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showFlags.showCreds, "show-credentials", false, "Show the plaintext password")
}

func runShow(cmd *cobra.Command, args []string) error {
	rec, err := resolveRecord(openStore(), args[0])
	if err != nil {
		return err
	}
	selector.WriteDetail(cmd.OutOrStdout(), rec, showFlags.showCreds)
	return nil
}
