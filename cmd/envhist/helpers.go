package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"envhist/internal/display"
	"envhist/internal/envstore"
	"envhist/internal/format"
)

// openStore opens the record store at the resolved path. Precedence:
// --store flag, then $ENVHIST_STORE, then the config file, then the
// built-in default.
func openStore() *envstore.Store {
	var opts []envstore.Option
	if cfg.UniqueClusterNames {
		opts = append(opts, envstore.WithUniqueClusterNames())
	}
	return envstore.Open(resolveStorePath(), opts...)
}

func resolveStorePath() string {
	if rootFlags.store != "" {
		return rootFlags.store
	}
	if env := os.Getenv("ENVHIST_STORE"); env != "" {
		return env
	}
	if cfg.StorePath != "" {
		return cfg.StorePath
	}
	return envstore.DefaultPath()
}

// resolveRecord finds one record by full id, unique id prefix, or unique
// cluster name, so commands accept the short forms people actually type.
func resolveRecord(st *envstore.Store, key string) (*envstore.Record, error) {
	rec, err := st.Get(key)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, envstore.ErrNotFound) {
		return nil, err
	}
	records, err := st.Load()
	if err != nil {
		return nil, err
	}
	var hits []*envstore.Record
	for _, r := range records {
		if strings.HasPrefix(r.ID, key) || strings.EqualFold(r.ClusterName, key) {
			hits = append(hits, r)
		}
	}
	switch len(hits) {
	case 1:
		return hits[0], nil
	case 0:
		return nil, fmt.Errorf("%w: %s", envstore.ErrNotFound, key)
	default:
		return nil, fmt.Errorf("%q matches %d records; use the full id", key, len(hits))
	}
}

// shortID trims a uuid to the prefix shown in tables. resolveRecord
// accepts it back.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// renderRecords writes the standard listing table for list and search.
func renderRecords(w io.Writer, records []*envstore.Record, mode format.Mode) {
	if len(records) == 0 && mode == format.ASCII {
		fmt.Fprintln(w, "no environments recorded")
		return
	}
	now := time.Now().UTC()
	tb := format.NewTable(mode)
	tb.Header("ID", "Cluster", "Platform", "Status", "Jira", "Notes", "Last Used", "Age")
	for _, r := range records {
		tb.Row(
			shortID(r.ID),
			r.ClusterName,
			display.Platform(r.Platform),
			display.TestStatus(string(r.TestStatus)),
			r.JiraTicket,
			format.Truncate(r.Notes, 30),
			format.FmtTime(r.LastUsedAt),
			format.FmtAge(r.LastUsedAt, now),
		)
	}
	tb.Columns(format.ColumnConfig{Number: 2, MaxWidth: 40})
	fmt.Fprintln(w, tb.String())
}
