package catalog

// allColor is the chip accent used for the "All" facet.
const allColor = "#2D2D2D"

// Facet is one selectable category chip.
type Facet struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// Categories returns "All" followed by the distinct categories of articles
// in order of first appearance.
func Categories(articles []Article) []string {
	out := []string{AllCategories}
	seen := make(map[string]bool)
	for _, a := range articles {
		if seen[a.Category] {
			continue
		}
		seen[a.Category] = true
		out = append(out, a.Category)
	}
	return out
}

// FacetCounts returns the same facets as Categories, each with the number of
// articles it holds and the accent color of its first article.
func FacetCounts(articles []Article) []Facet {
	names := Categories(articles)
	facets := make([]Facet, len(names))
	index := make(map[string]int, len(names))

	facets[0] = Facet{Name: AllCategories, Count: len(articles), Color: allColor}
	for i, name := range names[1:] {
		facets[i+1] = Facet{Name: name}
		index[name] = i + 1
	}

	for _, a := range articles {
		f := &facets[index[a.Category]]
		if f.Count == 0 {
			f.Color = a.Color
		}
		f.Count++
	}
	return facets
}
