// Package catalog holds the blog's article records and the search/category
// filter used by the blog listing.
//
// Everything here is a pure function of an immutable Store: the listing
// state is a (query, category) pair and every result is recomputed from
// scratch on each change.
package catalog

import "errors"

// AllCategories is the synthetic facet value that matches every article.
const AllCategories = "All"

var (
	// ErrNotFound is returned when no article has the requested id.
	ErrNotFound = errors.New("article not found")

	// ErrInvalidArticle is returned when a loaded record is missing a required field.
	ErrInvalidArticle = errors.New("invalid article")

	// ErrDuplicateID is returned when two loaded records share an id.
	ErrDuplicateID = errors.New("duplicate article id")
)

// Article is a single blog post as shown on the listing page.
// ReadingTime and Date are display strings and are never parsed.
type Article struct {
	ID          int    `json:"id" yaml:"id"`
	Category    string `json:"category" yaml:"category"`
	Title       string `json:"title" yaml:"title"`
	Excerpt     string `json:"excerpt" yaml:"excerpt"`
	ReadingTime string `json:"reading_time" yaml:"reading_time"`
	Date        string `json:"date" yaml:"date"`
	Color       string `json:"color" yaml:"color"`
	Featured    bool   `json:"featured,omitempty" yaml:"featured,omitempty"`
	// Body is optional markdown shown on the detail page. It is not searched.
	Body string `json:"body,omitempty" yaml:"body,omitempty"`
}
