// Package envstore implements the environment record store: a flat record
// model for QA test clusters, whole-file JSON persistence with atomic
// rewrites, and the query and aggregation helpers the CLI is built on.
package envstore

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status is the test outcome recorded against an environment.
type Status string

const (
	StatusPass       Status = "pass"
	StatusFail       Status = "fail"
	StatusBlocked    Status = "blocked"
	StatusInProgress Status = "in_progress"
	StatusUnknown    Status = "unknown"
)

// Statuses lists the recognized status values in display order.
var Statuses = []Status{StatusPass, StatusFail, StatusBlocked, StatusInProgress, StatusUnknown}

var knownStatuses = map[Status]bool{
	StatusPass:       true,
	StatusFail:       true,
	StatusBlocked:    true,
	StatusInProgress: true,
	StatusUnknown:    true,
}

// ParseStatus validates user-supplied status input. Input is trimmed and
// lowercased; anything outside the recognized set is a ValidationError.
func ParseStatus(s string) (Status, error) {
	v := Status(strings.ToLower(strings.TrimSpace(s)))
	if !knownStatuses[v] {
		return "", &ValidationError{Field: "test_status", Reason: fmt.Sprintf("%q is not one of pass|fail|blocked|in_progress|unknown", s)}
	}
	return v, nil
}

// CoerceStatus maps any unrecognized value to StatusUnknown. Used at load
// time so that a store written by another tool version stays readable; the
// coercion is deterministic across repeated loads.
func CoerceStatus(s string) Status {
	v := Status(strings.ToLower(strings.TrimSpace(s)))
	if knownStatuses[v] {
		return v
	}
	return StatusUnknown
}

// Record is one test environment instance. Credentials are stored in
// plaintext in the backing file; masking is a display concern only.
type Record struct {
	ID           string    `json:"id"`
	ClusterName  string    `json:"cluster_name"`
	Platform     string    `json:"platform"`
	APIURL       string    `json:"api_url"`
	Username     string    `json:"username"`
	Password     string    `json:"password"`
	TestStatus   Status    `json:"test_status"`
	Notes        string    `json:"notes,omitempty"`
	JiraTicket   string    `json:"jira_ticket,omitempty"`
	PolarionPlan string    `json:"polarion_plan,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LastUsedAt   time.Time `json:"last_used_at"`

	// extra holds fields this version of the tool does not know about.
	// They are carried through load/save untouched so that a newer tool's
	// store file survives a round trip through an older one.
	extra map[string]json.RawMessage
}

// recordAlias strips Record's methods to avoid marshal recursion.
type recordAlias Record

// recordKnownKeys are the JSON keys owned by this version of the schema.
var recordKnownKeys = map[string]bool{
	"id":            true,
	"cluster_name":  true,
	"platform":      true,
	"api_url":       true,
	"username":      true,
	"password":      true,
	"test_status":   true,
	"notes":         true,
	"jira_ticket":   true,
	"polarion_plan": true,
	"created_at":    true,
	"last_used_at":  true,
}

// UnmarshalJSON decodes the known fields and stashes everything else in extra.
func (r *Record) UnmarshalJSON(data []byte) error {
	var a recordAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k := range raw {
		if recordKnownKeys[k] {
			delete(raw, k)
		}
	}
	*r = Record(a)
	if len(raw) > 0 {
		r.extra = raw
	}
	r.TestStatus = CoerceStatus(string(r.TestStatus))
	return nil
}

// MarshalJSON emits the known fields plus any preserved unknown fields.
// Known fields always win on key collision.
func (r Record) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(recordAlias(r))
	if err != nil {
		return nil, err
	}
	if len(r.extra) == 0 {
		return base, nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(base, &m); err != nil {
		return nil, err
	}
	for k, v := range r.extra {
		if _, ok := m[k]; !ok {
			m[k] = v
		}
	}
	return json.Marshal(m)
}

// Clone returns a deep copy; the store hands out clones so callers cannot
// mutate persisted state behind its back.
func (r *Record) Clone() *Record {
	cp := *r
	if r.extra != nil {
		cp.extra = make(map[string]json.RawMessage, len(r.extra))
		for k, v := range r.extra {
			cp.extra[k] = v
		}
	}
	return &cp
}

// LoginCommand returns the oc login invocation for reconnecting to the
// environment. Every argument is shell-quoted; the command is printed,
// never executed.
func (r *Record) LoginCommand() string {
	return fmt.Sprintf("oc login %s -u %s -p %s",
		shellQuote(r.APIURL), shellQuote(r.Username), shellQuote(r.Password))
}

// shellSafe are the characters that need no quoting in a POSIX shell word.
const shellSafe = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789@%+=:,./-_"

// shellQuote single-quotes s for POSIX shells. Values made entirely of safe
// characters pass through bare so the printed command stays readable.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.Trim(s, shellSafe) == "" {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
