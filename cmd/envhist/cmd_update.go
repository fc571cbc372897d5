package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"envhist/internal/envstore"
)

var updateFlags struct {
	status string
	notes  string
}

var updateCmd = &cobra.Command{
	Use:   "update <id|cluster>",
	Short: "Update an environment's test status or notes",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

func init() {
	f := updateCmd.Flags()
	f.StringVar(&updateFlags.status, "status", "", "New test status: pass|fail|blocked|in_progress|unknown")
	f.StringVar(&updateFlags.notes, "notes", "", "New notes (replaces the old value)")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	if updateFlags.status == "" && !cmd.Flags().Changed("notes") {
		return errors.New("nothing to update: pass --status and/or --notes")
	}

	var patch envstore.Patch
	if updateFlags.status != "" {
		st, err := envstore.ParseStatus(updateFlags.status)
		if err != nil {
			return err
		}
		patch.TestStatus = &st
	}
	if cmd.Flags().Changed("notes") {
		patch.Notes = &updateFlags.notes
	}

	st := openStore()
	rec, err := resolveRecord(st, args[0])
	if err != nil {
		return err
	}
	updated, err := st.Update(rec.ID, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "updated %s: status=%s\n", updated.ClusterName, updated.TestStatus)
	return nil
}
