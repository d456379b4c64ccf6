// Package entity defines the domain models for the tags feature.
package entity

// TagCount is the number of entries carrying one tag label.
type TagCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// TagSummary is a user's tag frequency table.
// Tags is ordered by count descending, then name ascending.
type TagSummary struct {
	Tags   []string         `json:"tags"`
	Counts map[string]int64 `json:"counts"`
}

// NewTagSummary builds a summary from counts already in display order.
func NewTagSummary(counts []TagCount) TagSummary {
	s := TagSummary{
		Tags:   make([]string, 0, len(counts)),
		Counts: make(map[string]int64, len(counts)),
	}
	for _, c := range counts {
		s.Tags = append(s.Tags, c.Name)
		s.Counts[c.Name] = c.Count
	}
	return s
}
