package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var connectCmd = &cobra.Command{
	Use:   "connect <id|cluster>",
	Short: "Print the login command for an environment",
	Long: "Connect prints the oc login invocation for the stored credentials\n" +
		"and marks the record as used. The command is never executed; pipe it\n" +
		"to a shell or copy it.",
	Args: cobra.ExactArgs(1),
	RunE: runConnect,
}

func runConnect(cmd *cobra.Command, args []string) error {
	st := openStore()
	rec, err := resolveRecord(st, args[0])
	if err != nil {
		return err
	}
	touched, err := st.Touch(rec.ID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), touched.LoginCommand())
	return nil
}
