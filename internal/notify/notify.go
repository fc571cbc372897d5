// Package notify is the parser boundary between freeform QA notification
// text (Slack/email paste, spreadsheet row) and the record store. Parsing
// is pure: it extracts what it can into a Partial and names what it could
// not. The store's validation stays the single source of truth for
// required fields.
package notify

import (
	"encoding/csv"
	"strings"

	"envhist/internal/envstore"
)

// Partial is a partially extracted environment record. Empty string means
// "not extracted".
type Partial struct {
	ClusterName  string
	Platform     string
	APIURL       string
	Username     string
	Password     string
	TestStatus   string
	Notes        string
	JiraTicket   string
	PolarionPlan string
}

// requiredFields mirrors the store's create-time validation, in the order
// errors should be reported.
var requiredFields = []struct {
	name  string
	value func(*Partial) string
}{
	{"cluster_name", func(p *Partial) string { return p.ClusterName }},
	{"api_url", func(p *Partial) string { return p.APIURL }},
	{"username", func(p *Partial) string { return p.Username }},
	{"password", func(p *Partial) string { return p.Password }},
}

// Missing returns the names of required fields this Partial does not carry.
func (p Partial) Missing() []string {
	var out []string
	for _, f := range requiredFields {
		if strings.TrimSpace(f.value(&p)) == "" {
			out = append(out, f.name)
		}
	}
	return out
}

// Merge fills this Partial's gaps from other. Values already present win.
func (p Partial) Merge(other Partial) Partial {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&p.ClusterName, other.ClusterName)
	fill(&p.Platform, other.Platform)
	fill(&p.APIURL, other.APIURL)
	fill(&p.Username, other.Username)
	fill(&p.Password, other.Password)
	fill(&p.TestStatus, other.TestStatus)
	fill(&p.Notes, other.Notes)
	fill(&p.JiraTicket, other.JiraTicket)
	fill(&p.PolarionPlan, other.PolarionPlan)
	return p
}

// Record converts the Partial to a store record. Validation is the store's
// job; this is a plain field mapping.
func (p Partial) Record() *envstore.Record {
	return &envstore.Record{
		ClusterName:  strings.TrimSpace(p.ClusterName),
		Platform:     strings.TrimSpace(p.Platform),
		APIURL:       strings.TrimSpace(p.APIURL),
		Username:     strings.TrimSpace(p.Username),
		Password:     strings.TrimSpace(p.Password),
		TestStatus:   envstore.Status(strings.TrimSpace(p.TestStatus)),
		Notes:        strings.TrimSpace(p.Notes),
		JiraTicket:   strings.TrimSpace(p.JiraTicket),
		PolarionPlan: strings.TrimSpace(p.PolarionPlan),
	}
}

// fieldSynonyms maps the "Key:" labels QA notifications actually use to
// Partial fields. Keys are compared lowercased with surrounding space and
// a trailing colon already stripped.
var fieldSynonyms = map[string]func(*Partial, string){
	"cluster":            func(p *Partial, v string) { p.ClusterName = v },
	"cluster name":       func(p *Partial, v string) { p.ClusterName = v },
	"clustername":        func(p *Partial, v string) { p.ClusterName = v },
	"api":                func(p *Partial, v string) { p.APIURL = v },
	"api url":            func(p *Partial, v string) { p.APIURL = v },
	"api_url":            func(p *Partial, v string) { p.APIURL = v },
	"server":             func(p *Partial, v string) { p.APIURL = v },
	"user":               func(p *Partial, v string) { p.Username = v },
	"username":           func(p *Partial, v string) { p.Username = v },
	"login":              func(p *Partial, v string) { p.Username = v },
	"password":           func(p *Partial, v string) { p.Password = v },
	"kubeadmin password": func(p *Partial, v string) { p.Password = v },
	"platform":           func(p *Partial, v string) { p.Platform = v },
	"arch":               func(p *Partial, v string) { p.Platform = v },
	"architecture":       func(p *Partial, v string) { p.Platform = v },
	"status":             func(p *Partial, v string) { p.TestStatus = v },
	"result":             func(p *Partial, v string) { p.TestStatus = v },
	"jira":               func(p *Partial, v string) { p.JiraTicket = v },
	"jira ticket":        func(p *Partial, v string) { p.JiraTicket = v },
	"issue":              func(p *Partial, v string) { p.JiraTicket = v },
	"polarion":           func(p *Partial, v string) { p.PolarionPlan = v },
	"polarion plan":      func(p *Partial, v string) { p.PolarionPlan = v },
	"test plan":          func(p *Partial, v string) { p.PolarionPlan = v },
	"notes":              func(p *Partial, v string) { p.Notes = v },
	"note":               func(p *Partial, v string) { p.Notes = v },
	"comment":            func(p *Partial, v string) { p.Notes = v },
}

// ParseNotification extracts fields from freeform "Key: value" notification
// text. Lines without a recognized key are ignored, except that a bare
// https://api.* token fills api_url when no labelled one was seen. First
// occurrence of a field wins.
func ParseNotification(text string) Partial {
	var p Partial
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if ok {
			k := strings.ToLower(strings.TrimSpace(key))
			v := strings.TrimSpace(value)
			if set, known := fieldSynonyms[k]; known && v != "" {
				var probe Partial
				set(&probe, v)
				p = p.Merge(probe)
				continue
			}
		}
		if p.APIURL == "" {
			if url := findAPIURL(line); url != "" {
				p.APIURL = url
			}
		}
	}
	return p
}

// findAPIURL returns the first token in line that looks like an OpenShift
// API endpoint.
func findAPIURL(line string) string {
	for _, tok := range strings.Fields(line) {
		if strings.HasPrefix(tok, "https://api.") {
			return strings.TrimRight(tok, ".,;")
		}
	}
	return ""
}

// sheetColumns is the spreadsheet column order the team exports.
var sheetColumns = []func(*Partial, string){
	func(p *Partial, v string) { p.ClusterName = v },
	func(p *Partial, v string) { p.Platform = v },
	func(p *Partial, v string) { p.APIURL = v },
	func(p *Partial, v string) { p.Username = v },
	func(p *Partial, v string) { p.Password = v },
	func(p *Partial, v string) { p.JiraTicket = v },
	func(p *Partial, v string) { p.PolarionPlan = v },
	func(p *Partial, v string) { p.Notes = v },
}

// ParseSheetRow extracts fields from one spreadsheet row. Tab-separated
// rows (a direct paste from the sheet) are split on tabs; otherwise the
// row is parsed as a CSV line. Blank cells leave the field unset; extra
// cells are ignored.
func ParseSheetRow(row string) Partial {
	var cells []string
	if strings.Contains(row, "\t") {
		cells = strings.Split(row, "\t")
	} else {
		r := csv.NewReader(strings.NewReader(row))
		rec, err := r.Read()
		if err != nil {
			return Partial{}
		}
		cells = rec
	}

	var p Partial
	for i, cell := range cells {
		if i >= len(sheetColumns) {
			break
		}
		if v := strings.TrimSpace(cell); v != "" {
			sheetColumns[i](&p, v)
		}
	}
	return p
}
