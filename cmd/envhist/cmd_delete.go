package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteFlags struct {
	yes bool
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id|cluster>",
	Short: "Delete an environment record",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteFlags.yes, "yes", false, "Confirm the deletion")
}

func runDelete(cmd *cobra.Command, args []string) error {
	st := openStore()
	rec, err := resolveRecord(st, args[0])
	if err != nil {
		return err
	}
	if !deleteFlags.yes {
		return fmt.Errorf("refusing to delete %s without --yes", rec.ClusterName)
	}
	if err := st.Delete(rec.ID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s (%s)\n", rec.ClusterName, shortID(rec.ID))
	return nil
}
