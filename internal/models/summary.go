package models

import "sort"

// Summary aggregates the analyses of one run, grouped by device category.
type Summary struct {
	ByCategory map[string][]*Analysis
}

// NewSummary builds a Summary from a flat list of analyses, grouping on
// the Category field.
func NewSummary(analyses []*Analysis) *Summary {
	s := &Summary{ByCategory: make(map[string][]*Analysis)}
	for _, a := range analyses {
		s.ByCategory[a.Category] = append(s.ByCategory[a.Category], a)
	}
	return s
}

// Categories returns the category names in sorted order.
func (s *Summary) Categories() []string {
	names := make([]string, 0, len(s.ByCategory))
	for name := range s.ByCategory {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every analysis across categories, ordered by category then
// filename.
func (s *Summary) All() []*Analysis {
	var all []*Analysis
	for _, name := range s.Categories() {
		group := append([]*Analysis(nil), s.ByCategory[name]...)
		sort.Slice(group, func(i, j int) bool { return group[i].Filename < group[j].Filename })
		all = append(all, group...)
	}
	return all
}

// TotalFiles returns the number of analyzed files.
func (s *Summary) TotalFiles() int {
	n := 0
	for _, group := range s.ByCategory {
		n += len(group)
	}
	return n
}

// Counts returns run-wide issue totals: files with timestamps, files with
// missing pings, files with abnormal intervals, total missing pings and
// total abnormal intervals.
func (s *Summary) Counts() (withTimestamps, withMissing, withAbnormal, totalMissing, totalAbnormal int) {
	for _, group := range s.ByCategory {
		for _, a := range group {
			if a.HasTimestamps {
				withTimestamps++
			}
			if len(a.MissingSeq) > 0 {
				withMissing++
				totalMissing += len(a.MissingSeq)
			}
			if len(a.AbnormalIntervals) > 0 {
				withAbnormal++
				totalAbnormal += len(a.AbnormalIntervals)
			}
		}
	}
	return
}

// CategoryAvgLatency returns the mean of the per-file average latencies in
// one category.
func (s *Summary) CategoryAvgLatency(category string) float64 {
	group := s.ByCategory[category]
	if len(group) == 0 {
		return 0
	}
	var sum float64
	for _, a := range group {
		sum += a.Latency.Avg
	}
	return sum / float64(len(group))
}
