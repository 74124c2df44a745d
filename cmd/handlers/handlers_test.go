package handlers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mfdl/internal/catalog"
)

func TestWriteArticles_Table(t *testing.T) {
	store := catalog.DefaultStore()
	state := catalog.DefaultState().WithCategory("OKRs")

	var out bytes.Buffer
	require.NoError(t, writeArticles(&out, state, state.Apply(store), false))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "ID"), "header first, got %q", lines[0])
	assert.Contains(t, out.String(), "OKRs")
	assert.NotContains(t, out.String(), "Leadership")
	assert.Equal(t, state.Apply(store).Summary(), lines[len(lines)-1])
}

func TestWriteArticles_Empty(t *testing.T) {
	state := catalog.DefaultState().WithQuery("zzz-nessun-match")

	var out bytes.Buffer
	require.NoError(t, writeArticles(&out, state, state.Apply(catalog.DefaultStore()), false))

	assert.Contains(t, out.String(), "Nessun articolo trovato.")
	assert.Contains(t, out.String(), "0 di 12 articoli")
}

func TestWriteArticles_JSON(t *testing.T) {
	state := catalog.DefaultState().WithQuery("zzz")

	var out bytes.Buffer
	require.NoError(t, writeArticles(&out, state, state.Apply(catalog.DefaultStore()), true))

	var got articlesOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "zzz", got.Query)
	assert.Equal(t, catalog.AllCategories, got.Category)
	assert.NotNil(t, got.Articles, "empty result should encode as []")
	assert.Equal(t, 0, got.Matched)
	assert.Equal(t, 12, got.Total)
	assert.Contains(t, out.String(), `"articles": []`)
}

func TestWriteCategories(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeCategories(&out, catalog.FacetCounts(catalog.DefaultStore().All())))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Greater(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(lines[1], catalog.AllCategories))
	assert.Contains(t, lines[1], "12")
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"serve", "articles", "categories", "tui", "chat", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	articles, _, err := root.Find([]string{"articles"})
	require.NoError(t, err)
	for _, flag := range []string{"query", "category", "json"} {
		assert.NotNil(t, articles.Flags().Lookup(flag), flag)
	}
	assert.Equal(t, catalog.AllCategories, articles.Flags().Lookup("category").DefValue)
	assert.Contains(t, articles.Flags().Lookup("query").Usage, "title, excerpt or category")
	assert.Contains(t, articles.Long, "title, excerpt or category")
}

func TestArticlesQueryMatchesCategory(t *testing.T) {
	// Queries also match the category name
	state := catalog.DefaultState().WithQuery("leadership")

	var out bytes.Buffer
	require.NoError(t, writeArticles(&out, state, state.Apply(catalog.DefaultStore()), false))
	assert.Contains(t, out.String(), "Il PM non è il capo")
}
