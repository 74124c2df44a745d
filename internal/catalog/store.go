package catalog

import "fmt"

// Store is the fixed, ordered article collection. It is built once and
// never mutated; every accessor hands out copies.
type Store struct {
	articles []Article
	byID     map[int]int
}

// NewStore copies articles into a new store. Callers are expected to have
// run Validate already; on duplicate ids the first occurrence wins lookups.
func NewStore(articles []Article) *Store {
	s := &Store{
		articles: make([]Article, len(articles)),
		byID:     make(map[int]int, len(articles)),
	}
	copy(s.articles, articles)
	for i, a := range s.articles {
		if _, ok := s.byID[a.ID]; !ok {
			s.byID[a.ID] = i
		}
	}
	return s
}

// DefaultStore returns a store over the built-in articles.
func DefaultStore() *Store {
	return NewStore(DefaultArticles())
}

// All returns every article in store order.
func (s *Store) All() []Article {
	out := make([]Article, len(s.articles))
	copy(out, s.articles)
	return out
}

// Len returns the number of articles.
func (s *Store) Len() int {
	return len(s.articles)
}

// Get returns the article with the given id.
func (s *Store) Get(id int) (Article, error) {
	i, ok := s.byID[id]
	if !ok {
		return Article{}, fmt.Errorf("article %d: %w", id, ErrNotFound)
	}
	return s.articles[i], nil
}

// Featured returns the first article marked as featured.
func (s *Store) Featured() (Article, bool) {
	for _, a := range s.articles {
		if a.Featured {
			return a, true
		}
	}
	return Article{}, false
}

// Latest returns up to n non-featured articles in store order.
func (s *Store) Latest(n int) []Article {
	var out []Article
	for _, a := range s.articles {
		if len(out) >= n {
			break
		}
		if a.Featured {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Categories returns the facet list for the whole store.
func (s *Store) Categories() []string {
	return Categories(s.articles)
}

// Related returns up to n other articles, same category first and then
// the rest, each group in store order. Unknown ids are an error even when
// n is not positive.
func (s *Store) Related(id, n int) ([]Article, error) {
	self, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, nil
	}

	out := make([]Article, 0, n)
	for _, sameCategory := range []bool{true, false} {
		for _, a := range s.articles {
			if len(out) >= n {
				return out, nil
			}
			if a.ID == self.ID || (a.Category == self.Category) != sameCategory {
				continue
			}
			out = append(out, a)
		}
	}
	return out, nil
}
