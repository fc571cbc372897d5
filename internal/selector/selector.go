// Package selector implements the interactive browse/act loop over the
// record store as an explicit state machine:
//
//	Listing -> Selected -> {Updating, Connecting, Deleting} -> Listing
//
// Quit is reachable from Listing only; end-of-input anywhere aborts the
// session cleanly. Input is read through the Prompter interface so the
// machine is testable with scripted input.
package selector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"envhist/internal/display"
	"envhist/internal/envstore"
	"envhist/internal/format"
	"envhist/internal/logging"
)

// State is one node of the selector state machine.
type State int

const (
	StateListing State = iota
	StateSelected
	StateUpdating
	StateConnecting
	StateDeleting
	StateQuit
)

// Prompter reads one line of user input. Implementations print the label,
// block for input, and return the trimmed line. io.EOF means input is
// exhausted; the selector treats it as a clean abort.
type Prompter interface {
	Prompt(label string) (string, error)
}

// ReaderPrompter is the terminal-backed Prompter: label to w, line from r.
type ReaderPrompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewPrompter wraps r/w into a ReaderPrompter. For the real terminal, pass
// os.Stdin and os.Stdout; tests pass a strings.Reader of scripted lines.
func NewPrompter(r io.Reader, w io.Writer) *ReaderPrompter {
	return &ReaderPrompter{r: bufio.NewReader(r), w: w}
}

// Prompt implements Prompter.
func (p *ReaderPrompter) Prompt(label string) (string, error) {
	fmt.Fprintf(p.w, "%s ", label)
	line, err := p.r.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil {
		// A final line without a trailing newline still counts as input.
		if line != "" && errors.Is(err, io.EOF) {
			return line, nil
		}
		return "", err
	}
	return line, nil
}

// Selector drives one interactive session over the store.
type Selector struct {
	store     *envstore.Store
	in        Prompter
	out       io.Writer
	log       *slog.Logger
	showCreds bool

	state   State
	view    []*envstore.Record // the rendered, filtered, sorted listing
	current *envstore.Record   // set while in Selected and its substates
	term    string             // active search filter, "" = all
	sortKey envstore.SortKey
}

// Option configures a Selector.
type Option func(*Selector)

// WithCredentials shows plaintext passwords in record detail instead of a
// mask.
func WithCredentials() Option {
	return func(s *Selector) { s.showCreds = true }
}

// WithSortKey sets the listing order (default most recently used first).
func WithSortKey(key envstore.SortKey) Option {
	return func(s *Selector) { s.sortKey = key }
}

// New builds a Selector over the given store reading input from in and
// writing everything user-visible to out.
func New(store *envstore.Store, in Prompter, out io.Writer, opts ...Option) *Selector {
	s := &Selector{
		store:   store,
		in:      in,
		out:     out,
		log:     logging.New("selector"),
		sortKey: envstore.SortLastUsed,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the state machine until Quit or end of input. Store I/O
// failures are fatal and returned; everything else is reported to out and
// the machine stays in (or returns to) a safe state.
func (s *Selector) Run() error {
	if err := s.reload(); err != nil {
		return err
	}
	s.log.Debug("session start", "records", len(s.view), "store", s.store.Path())
	s.state = StateListing
	for s.state != StateQuit {
		var err error
		switch s.state {
		case StateListing:
			err = s.stepListing()
		case StateSelected:
			err = s.stepSelected()
		case StateUpdating:
			err = s.stepUpdating()
		case StateConnecting:
			err = s.stepConnecting()
		case StateDeleting:
			err = s.stepDeleting()
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// reload re-reads the store and rebuilds the filtered, sorted view.
func (s *Selector) reload() error {
	records, err := s.store.Load()
	if err != nil {
		return err
	}
	view := envstore.Search(records, s.term)
	envstore.SortRecords(view, s.sortKey)
	s.view = view
	return nil
}

func (s *Selector) stepListing() error {
	s.renderListing()
	input, err := s.in.Prompt("[number] select, /term filter, all, q quit >")
	if err != nil {
		return err
	}
	switch {
	case input == "q" || input == "quit":
		s.state = StateQuit
	case input == "all":
		s.term = ""
		return s.reload()
	case strings.HasPrefix(input, "/"):
		s.term = strings.TrimPrefix(input, "/")
		return s.reload()
	default:
		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(s.view) {
			fmt.Fprintf(s.out, "no such entry %q (pick 1-%d)\n", input, len(s.view))
			return nil
		}
		s.current = s.view[n-1]
		s.state = StateSelected
	}
	return nil
}

func (s *Selector) stepSelected() error {
	s.renderDetail(s.current)
	input, err := s.in.Prompt("[u]pdate, [c]onnect, [d]elete, [b]ack >")
	if err != nil {
		return err
	}
	switch strings.ToLower(input) {
	case "u", "update":
		s.state = StateUpdating
	case "c", "connect":
		s.state = StateConnecting
	case "d", "delete":
		s.state = StateDeleting
	case "b", "back", "":
		s.current = nil
		s.state = StateListing
	default:
		fmt.Fprintf(s.out, "unknown action %q\n", input)
	}
	return nil
}

func (s *Selector) stepUpdating() error {
	statusIn, err := s.in.Prompt(fmt.Sprintf("new status [%s] (empty keeps) >", s.current.TestStatus))
	if err != nil {
		return err
	}
	var patch envstore.Patch
	if statusIn != "" {
		st, perr := envstore.ParseStatus(statusIn)
		if perr != nil {
			// Recoverable: report and stay in Updating for another try.
			fmt.Fprintln(s.out, perr)
			return nil
		}
		patch.TestStatus = &st
	}

	notesIn, err := s.in.Prompt("new notes (empty keeps) >")
	if err != nil {
		return err
	}
	if notesIn != "" {
		patch.Notes = &notesIn
	}

	if patch.TestStatus == nil && patch.Notes == nil {
		fmt.Fprintln(s.out, "nothing to update")
		s.state = StateListing
		return nil
	}

	confirm, err := s.in.Prompt("apply? [y/N] >")
	if err != nil {
		return err
	}
	if !isYes(confirm) {
		fmt.Fprintln(s.out, "update cancelled")
		s.state = StateListing
		return nil
	}

	// Update on purpose does not touch last_used_at; only Connecting does.
	if _, err := s.store.Update(s.current.ID, patch); err != nil {
		if errors.Is(err, envstore.ErrNotFound) {
			fmt.Fprintln(s.out, err)
			s.state = StateListing
			return s.reload()
		}
		return err
	}
	fmt.Fprintf(s.out, "updated %s\n", s.current.ClusterName)
	s.state = StateListing
	return s.reload()
}

func (s *Selector) stepConnecting() error {
	rec, err := s.store.Touch(s.current.ID)
	if err != nil {
		if errors.Is(err, envstore.ErrNotFound) {
			fmt.Fprintln(s.out, err)
			s.state = StateListing
			return s.reload()
		}
		return err
	}
	// Print only; executing the login is the operator's shell's job.
	fmt.Fprintln(s.out, rec.LoginCommand())
	s.state = StateListing
	return s.reload()
}

func (s *Selector) stepDeleting() error {
	confirm, err := s.in.Prompt(fmt.Sprintf("delete %s? [y/N] >", s.current.ClusterName))
	if err != nil {
		return err
	}
	if !isYes(confirm) {
		fmt.Fprintln(s.out, "delete cancelled")
		s.state = StateListing
		return nil
	}
	if err := s.store.Delete(s.current.ID); err != nil {
		if errors.Is(err, envstore.ErrNotFound) {
			fmt.Fprintln(s.out, err)
			s.state = StateListing
			return s.reload()
		}
		return err
	}
	fmt.Fprintf(s.out, "deleted %s\n", s.current.ClusterName)
	s.current = nil
	s.state = StateListing
	return s.reload()
}

func isYes(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	return v == "y" || v == "yes"
}

func (s *Selector) renderListing() {
	if s.term != "" {
		fmt.Fprintf(s.out, "filter: %q (%d match)\n", s.term, len(s.view))
	}
	if len(s.view) == 0 {
		fmt.Fprintln(s.out, "no environments recorded")
		return
	}
	tb := format.NewTable(format.ASCII)
	tb.Header("#", "Cluster", "Platform", "Status", "Last Used")
	for i, r := range s.view {
		tb.Row(i+1,
			r.ClusterName,
			display.Platform(r.Platform),
			display.StatusMark(string(r.TestStatus))+" "+display.TestStatus(string(r.TestStatus)),
			format.FmtTime(r.LastUsedAt),
		)
	}
	tb.Columns(format.ColumnConfig{Number: 1, Align: format.AlignRight})
	fmt.Fprintln(s.out, tb.String())
}

func (s *Selector) renderDetail(r *envstore.Record) {
	WriteDetail(s.out, r, s.showCreds)
}

// WriteDetail renders the full record view. Shared by the Selected state
// and the scripted show command.
func WriteDetail(w io.Writer, r *envstore.Record, showCreds bool) {
	password := display.MaskPassword(r.Password)
	if showCreds {
		password = r.Password
	}
	fmt.Fprintf(w, "Cluster:   %s\n", r.ClusterName)
	fmt.Fprintf(w, "Platform:  %s\n", display.Platform(r.Platform))
	fmt.Fprintf(w, "API URL:   %s\n", r.APIURL)
	fmt.Fprintf(w, "User:      %s\n", r.Username)
	fmt.Fprintf(w, "Password:  %s\n", password)
	fmt.Fprintf(w, "Status:    %s\n", display.TestStatus(string(r.TestStatus)))
	if r.Notes != "" {
		fmt.Fprintf(w, "Notes:     %s\n", r.Notes)
	}
	if r.JiraTicket != "" {
		fmt.Fprintf(w, "Jira:      %s\n", r.JiraTicket)
	}
	if r.PolarionPlan != "" {
		fmt.Fprintf(w, "Polarion:  %s\n", r.PolarionPlan)
	}
	fmt.Fprintf(w, "Created:   %s\n", format.FmtTime(r.CreatedAt))
	fmt.Fprintf(w, "Last used: %s\n", format.FmtTime(r.LastUsedAt))
	fmt.Fprintf(w, "ID:        %s\n", r.ID)
}
