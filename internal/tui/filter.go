package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"mfdl/internal/catalog"
)

// categoryBar renders the category chips with their counts.
type categoryBar struct {
	facets []catalog.Facet
}

func newCategoryBar(store *catalog.Store) categoryBar {
	return categoryBar{facets: catalog.FacetCounts(store.All())}
}

// next returns the category after current, wrapping around. An unknown
// current category moves to the first chip.
func (b categoryBar) next(current string, step int) string {
	if len(b.facets) == 0 {
		return catalog.AllCategories
	}
	idx := -1
	for i, f := range b.facets {
		if f.Name == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return b.facets[0].Name
	}
	n := len(b.facets)
	return b.facets[((idx+step)%n+n)%n].Name
}

func (b categoryBar) render(active string, width int) string {
	sep := tabSeparatorStyle.Render(" · ")

	var row string
	for i, f := range b.facets {
		label := fmt.Sprintf("%s %d", f.Name, f.Count)
		part := tabInactiveStyle.Render(label)
		if f.Name == active {
			part = tabActiveStyle(f.Color).Render(label)
		}

		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		// Stop before overflowing the terminal
		if width > 0 && lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}
	return row
}
