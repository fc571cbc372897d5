// Package display provides human-readable names for machine codes.
//
// Rule: code is for machines, words are for humans.
// Use these functions in CLI output and logs; keep raw codes for JSON
// fields, map keys, and equality comparisons.
package display

import "strings"

// --- Test statuses ---

var statusNames = map[string]string{
	"pass":        "Pass",
	"fail":        "Fail",
	"blocked":     "Blocked",
	"in_progress": "In Progress",
	"unknown":     "Unknown",
}

// TestStatus returns the human-readable name for a status code.
// Unknown codes are returned as-is.
func TestStatus(code string) string {
	if name, ok := statusNames[code]; ok {
		return name
	}
	return code
}

var statusMarks = map[string]string{
	"pass":        "✓",
	"fail":        "✗",
	"blocked":     "⊘",
	"in_progress": "…",
	"unknown":     "?",
}

// StatusMark returns a single-character marker for a status code, for
// compact table columns. Unknown codes get "?".
func StatusMark(code string) string {
	if m, ok := statusMarks[code]; ok {
		return m
	}
	return "?"
}

// --- Platforms ---

// platformAliases maps architecture shorthands QA notifications use to the
// platform names the team reports on. Free-text platforms pass through.
var platformAliases = map[string]string{
	"ppc64le": "IBM Power",
	"power":   "IBM Power",
	"s390x":   "IBM Z",
	"arm64":   "AWS-ARM",
	"aarch64": "AWS-ARM",
	"aws-arm": "AWS-ARM",
	"amd64":   "AWS x86",
	"x86_64":  "AWS x86",
	"aws-x86": "AWS x86",
}

// Platform normalizes a platform/architecture value to its reporting name.
// Values without an alias are returned as-is.
func Platform(value string) string {
	if name, ok := platformAliases[strings.ToLower(strings.TrimSpace(value))]; ok {
		return name
	}
	return value
}

// MaskPassword replaces a credential with a fixed-width mask for table and
// detail output. Empty input stays empty so missing data stays visible.
func MaskPassword(pw string) string {
	if pw == "" {
		return ""
	}
	return "********"
}
