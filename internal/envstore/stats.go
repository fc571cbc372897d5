package envstore

import "sort"

// DefaultRecentN is how many most-recently-used records Aggregate reports
// when the caller does not choose.
const DefaultRecentN = 5

// GroupCount is one aggregation bucket.
type GroupCount struct {
	Name  string
	Count int
}

// Summary is the result of aggregating a record set.
type Summary struct {
	Total      int
	ByPlatform []GroupCount
	ByStatus   []GroupCount
	Recent     []*Record
}

// Aggregate counts records by platform and by status and picks the recentN
// most-recently-used records. Groups are sorted by count descending; ties
// keep the order of first appearance in the input, which keeps repeated
// runs over the same file stable. Only values that appear in at least one
// record produce a group.
func Aggregate(records []*Record, recentN int) *Summary {
	if recentN <= 0 {
		recentN = DefaultRecentN
	}
	sum := &Summary{
		Total:      len(records),
		ByPlatform: countBy(records, func(r *Record) string { return r.Platform }),
		ByStatus:   countBy(records, func(r *Record) string { return string(r.TestStatus) }),
	}

	recent := append([]*Record(nil), records...)
	SortRecords(recent, SortLastUsed)
	if len(recent) > recentN {
		recent = recent[:recentN]
	}
	sum.Recent = recent
	return sum
}

func countBy(records []*Record, key func(*Record) string) []GroupCount {
	index := make(map[string]int)
	var groups []GroupCount
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, GroupCount{Name: k})
		}
		groups[i].Count++
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })
	return groups
}
