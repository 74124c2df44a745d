package catalog

// State is the listing's only mutable input: the search box and the
// selected category chip. Transitions return a new State.
type State struct {
	Query    string `json:"query"`
	Category string `json:"category"`
}

// DefaultState is the unfiltered listing.
func DefaultState() State {
	return State{Query: "", Category: AllCategories}
}

// WithQuery returns s with the search text replaced.
func (s State) WithQuery(query string) State {
	s.Query = query
	return s
}

// WithCategory returns s with the selected category replaced.
func (s State) WithCategory(category string) State {
	s.Category = category
	return s
}

// Reset returns the default state.
func (s State) Reset() State {
	return DefaultState()
}

// IsDefault reports whether no filter is applied.
func (s State) IsDefault() bool {
	return s == DefaultState()
}

// Apply evaluates the state against the store.
func (s State) Apply(store *Store) Result {
	return Project(s.Query, s.Category, store.articles)
}
