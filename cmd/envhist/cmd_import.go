package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"envhist/internal/envstore"
	"envhist/internal/notify"
)

// importParallelism bounds concurrent file parsing for --from-dir.
const importParallelism = 4

var importFlags struct {
	file    string
	row     string
	fromDir string

	cluster  string
	platform string
	apiURL   string
	username string
	password string
	status   string
	notes    string
	jira     string
	polarion string
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Record a new environment from notification text, a sheet row, or flags",
	Long: "Import extracts fields from a pasted notification file (--file),\n" +
		"a spreadsheet row (--row), or a directory of saved notifications\n" +
		"(--from-dir). Field flags override anything parsed. Records missing\n" +
		"a required field are rejected with the field named.",
	RunE: runImport,
}

func init() {
	f := importCmd.Flags()
	f.StringVar(&importFlags.file, "file", "", "Notification text file to parse")
	f.StringVar(&importFlags.row, "row", "", "Spreadsheet row (tab- or comma-separated)")
	f.StringVar(&importFlags.fromDir, "from-dir", "", "Directory of .txt notifications to bulk-import")

	f.StringVar(&importFlags.cluster, "cluster", "", "Cluster name")
	f.StringVar(&importFlags.platform, "platform", "", "Platform (e.g. \"IBM Power\", \"AWS-ARM\")")
	f.StringVar(&importFlags.apiURL, "api-url", "", "Cluster API URL")
	f.StringVar(&importFlags.username, "username", "", "Login user")
	f.StringVar(&importFlags.password, "password", "", "Login password")
	f.StringVar(&importFlags.status, "status", "", "Initial test status (default unknown)")
	f.StringVar(&importFlags.notes, "notes", "", "Free-text notes")
	f.StringVar(&importFlags.jira, "jira", "", "Jira ticket")
	f.StringVar(&importFlags.polarion, "polarion", "", "Polarion plan")
}

// flagPartial collects the explicit field flags; they win over parsed values.
func flagPartial() notify.Partial {
	return notify.Partial{
		ClusterName:  importFlags.cluster,
		Platform:     importFlags.platform,
		APIURL:       importFlags.apiURL,
		Username:     importFlags.username,
		Password:     importFlags.password,
		TestStatus:   importFlags.status,
		Notes:        importFlags.notes,
		JiraTicket:   importFlags.jira,
		PolarionPlan: importFlags.polarion,
	}
}

func runImport(cmd *cobra.Command, _ []string) error {
	st := openStore()
	if importFlags.fromDir != "" {
		return importDir(cmd, st)
	}

	var parsed notify.Partial
	if importFlags.file != "" {
		data, err := os.ReadFile(importFlags.file)
		if err != nil {
			return fmt.Errorf("read notification: %w", err)
		}
		parsed = notify.ParseNotification(string(data))
	}
	if importFlags.row != "" {
		parsed = parsed.Merge(notify.ParseSheetRow(importFlags.row))
	}
	merged := flagPartial().Merge(parsed)

	rec, err := st.Add(merged.Record())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "recorded %s (%s)\n", rec.ClusterName, shortID(rec.ID))
	return nil
}

// importDir parses every .txt file in the directory concurrently, then adds
// the complete ones sequentially (the store file is single-writer).
func importDir(cmd *cobra.Command, st *envstore.Store) error {
	entries, err := os.ReadDir(importFlags.fromDir)
	if err != nil {
		return fmt.Errorf("read notification dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".txt" {
			files = append(files, filepath.Join(importFlags.fromDir, e.Name()))
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no .txt notifications in %s", importFlags.fromDir)
	}

	partials := make([]notify.Partial, len(files))
	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(importParallelism)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read notification: %w", err)
			}
			partials[i] = notify.ParseNotification(string(data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	added, skipped := 0, 0
	for i, p := range partials {
		p = flagPartial().Merge(p)
		if missing := p.Missing(); len(missing) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "skip %s: missing %s\n", files[i], strings.Join(missing, ", "))
			skipped++
			continue
		}
		rec, err := st.Add(p.Record())
		if err != nil {
			return fmt.Errorf("import %s: %w", files[i], err)
		}
		fmt.Fprintf(out, "recorded %s (%s)\n", rec.ClusterName, shortID(rec.ID))
		added++
	}
	fmt.Fprintf(out, "imported %d environment(s), skipped %d\n", added, skipped)
	return nil
}
