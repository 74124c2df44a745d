package catalog

import "fmt"

// Result is the projected view of one filter evaluation.
type Result struct {
	Articles []Article `json:"articles"`
	Matched  int       `json:"matched"`
	Total    int       `json:"total"`
}

// Project filters articles and pairs the matches with the (matched, total) count.
func Project(query, category string, articles []Article) Result {
	matched := Filter(query, category, articles)
	return Result{
		Articles: matched,
		Matched:  len(matched),
		Total:    len(articles),
	}
}

// Empty reports whether nothing matched. Callers show the empty state with a
// reset action instead of an empty grid.
func (r Result) Empty() bool {
	return r.Matched == 0
}

// All reports whether the filter let every article through.
func (r Result) All() bool {
	return r.Matched == r.Total
}

// Summary is the count line shown above the grid.
func (r Result) Summary() string {
	if r.All() {
		return fmt.Sprintf("%d articoli totali", r.Total)
	}
	return fmt.Sprintf("%d di %d articoli", r.Matched, r.Total)
}
