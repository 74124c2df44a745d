package catalog

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

var testCategories = []string{"Product", "Strategy", "OKRs", "Design", "design", "Ops"}

func genArticles() *rapid.Generator[[]Article] {
	return rapid.Custom(func(t *rapid.T) []Article {
		n := rapid.IntRange(0, 15).Draw(t, "n")
		articles := make([]Article, n)
		for i := range articles {
			articles[i] = Article{
				ID:       i + 1,
				Category: rapid.SampledFrom(testCategories).Draw(t, "category"),
				Title:    rapid.StringMatching(`[a-zA-Z ]{1,12}`).Draw(t, "title"),
				Excerpt:  rapid.StringMatching(`[a-zA-Z ]{1,20}`).Draw(t, "excerpt"),
			}
		}
		return articles
	})
}

func genQuery() *rapid.Generator[string] {
	return rapid.StringMatching(`[a-zA-Z ]{0,3}`)
}

func genCategory() *rapid.Generator[string] {
	return rapid.SampledFrom(append([]string{AllCategories, "Unknown"}, testCategories...))
}

func TestProperty_FacetCompleteness(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		articles := genArticles().Draw(t, "articles")
		facets := Categories(articles)

		if facets[0] != AllCategories {
			t.Fatalf("first facet is %q, want All", facets[0])
		}

		distinct := make(map[string]bool)
		for _, a := range articles {
			distinct[a.Category] = true
		}
		if len(facets) != 1+len(distinct) {
			t.Fatalf("got %d facets for %d distinct categories", len(facets), len(distinct))
		}

		seen := make(map[string]bool)
		for _, f := range facets[1:] {
			if seen[f] {
				t.Fatalf("facet %q listed twice", f)
			}
			if !distinct[f] {
				t.Fatalf("facet %q not present in store", f)
			}
			seen[f] = true
		}
	})
}

func TestProperty_FilterIsOrderedSubsetWithAndSemantics(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		articles := genArticles().Draw(t, "articles")
		q := genQuery().Draw(t, "query")
		c := genCategory().Draw(t, "category")

		got := Filter(q, c, articles)

		// Walk both sequences: every output record appears in the input,
		// in the same relative order, exactly when both criteria hold.
		j := 0
		for _, a := range articles {
			included := j < len(got) && got[j].ID == a.ID
			want := MatchesText(q, a) && MatchesCategory(c, a)
			if included != want {
				t.Fatalf("article %d included=%t, want %t (q=%q c=%q)", a.ID, included, want, q, c)
			}
			if included {
				j++
			}
		}
		if j != len(got) {
			t.Fatalf("%d records in output were not matched to the input in order", len(got)-j)
		}
	})
}

func TestProperty_IdentityFilter(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		articles := genArticles().Draw(t, "articles")
		if diff := cmp.Diff(articles, Filter("", AllCategories, articles)); diff != "" {
			t.Fatalf("identity filter changed records:\n%s", diff)
		}
	})
}

func TestProperty_CaseInsensitiveText(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		articles := genArticles().Draw(t, "articles")
		q := genQuery().Draw(t, "query")
		c := genCategory().Draw(t, "category")

		base := ids(Filter(q, c, articles))
		if diff := cmp.Diff(base, ids(Filter(strings.ToUpper(q), c, articles))); diff != "" {
			t.Fatalf("upper-case query changed result:\n%s", diff)
		}
		if diff := cmp.Diff(base, ids(Filter(strings.ToLower(q), c, articles))); diff != "" {
			t.Fatalf("lower-case query changed result:\n%s", diff)
		}
	})
}

func TestProperty_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		articles := genArticles().Draw(t, "articles")
		q := genQuery().Draw(t, "query")
		c := genCategory().Draw(t, "category")

		first := Project(q, c, articles)
		second := Project(q, c, articles)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("repeated projection differs:\n%s", diff)
		}
		if first.Total != len(articles) || first.Matched != len(first.Articles) {
			t.Fatalf("bad counts: matched=%d total=%d len=%d", first.Matched, first.Total, len(first.Articles))
		}
	})
}
