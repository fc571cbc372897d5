package envstore

import (
	"fmt"
	"sort"
	"strings"
)

// SortKey selects the ordering for record listings.
type SortKey string

const (
	SortLastUsed SortKey = "last_used" // most recent first (default)
	SortCreated  SortKey = "created"   // newest first
	SortName     SortKey = "name"      // cluster name ascending
	SortStatus   SortKey = "status"    // status ascending, then most recent
	SortPlatform SortKey = "platform"  // platform ascending, then most recent
)

// ParseSortKey validates a user-supplied sort key.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortLastUsed, SortCreated, SortName, SortStatus, SortPlatform:
		return k, nil
	case "":
		return SortLastUsed, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (want last_used|created|name|status|platform)", s)
	}
}

// SortRecords orders records in place by the given key. The sort is stable,
// so equal keys keep their insertion order.
func SortRecords(records []*Record, key SortKey) {
	less := func(a, b *Record) bool { return a.LastUsedAt.After(b.LastUsedAt) }
	switch key {
	case SortCreated:
		less = func(a, b *Record) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortName:
		less = func(a, b *Record) bool {
			return strings.ToLower(a.ClusterName) < strings.ToLower(b.ClusterName)
		}
	case SortStatus:
		less = func(a, b *Record) bool {
			if a.TestStatus != b.TestStatus {
				return a.TestStatus < b.TestStatus
			}
			return a.LastUsedAt.After(b.LastUsedAt)
		}
	case SortPlatform:
		less = func(a, b *Record) bool {
			pa, pb := strings.ToLower(a.Platform), strings.ToLower(b.Platform)
			if pa != pb {
				return pa < pb
			}
			return a.LastUsedAt.After(b.LastUsedAt)
		}
	}
	sort.SliceStable(records, func(i, j int) bool { return less(records[i], records[j]) })
}

// FilterByStatus returns the records whose test_status matches exactly,
// case-insensitive.
func FilterByStatus(records []*Record, status string) []*Record {
	var out []*Record
	for _, r := range records {
		if strings.EqualFold(string(r.TestStatus), strings.TrimSpace(status)) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByPlatform returns the records whose platform matches exactly,
// case-insensitive.
func FilterByPlatform(records []*Record, platform string) []*Record {
	var out []*Record
	for _, r := range records {
		if strings.EqualFold(r.Platform, strings.TrimSpace(platform)) {
			out = append(out, r)
		}
	}
	return out
}

// Search returns the records where term is a case-insensitive substring of
// cluster_name, platform, notes, jira_ticket or polarion_plan. An empty
// term matches everything; result order follows the input order.
func Search(records []*Record, term string) []*Record {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return append([]*Record(nil), records...)
	}
	var out []*Record
	for _, r := range records {
		if r.matches(needle) {
			out = append(out, r)
		}
	}
	return out
}

func (r *Record) matches(needle string) bool {
	for _, field := range []string{r.ClusterName, r.Platform, r.Notes, r.JiraTicket, r.PolarionPlan} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
