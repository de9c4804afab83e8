package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCaseInsensitive(t *testing.T) {
	q, _ := testQueries()
	ctx := context.Background()

	upper, err := q.Search(ctx, "REACT")
	require.NoError(t, err)
	lower, err := q.Search(ctx, "react")
	require.NoError(t, err)

	assert.Equal(t, upper, lower)
	require.Len(t, upper.Services, 1)
	assert.Equal(t, "software-development", upper.Services[0].Slug)
	require.Len(t, upper.BlogPosts, 1)
	assert.Equal(t, "march-notes", upper.BlogPosts[0].Slug)
}

func TestSearchSpansCollections(t *testing.T) {
	q, _ := testQueries()

	results, err := q.Search(context.Background(), "retail")
	require.NoError(t, err)
	assert.Len(t, results.CaseStudies, 2)
	assert.Empty(t, results.Services)
	assert.Equal(t, 2, results.Total())
}

func TestSearchEmptyQueryMatchesEverything(t *testing.T) {
	q, _ := testQueries()

	results, err := q.Search(context.Background(), "")
	require.NoError(t, err)
	store := testStore()
	assert.Len(t, results.Services, len(store.Services))
	assert.Len(t, results.CaseStudies, len(store.CaseStudies))
	assert.Len(t, results.BlogPosts, len(store.BlogPosts))
}

func TestSearchNoMatches(t *testing.T) {
	q, _ := testQueries()

	results, err := q.Search(context.Background(), "zzzzzz-no-such-term")
	require.NoError(t, err)
	assert.Equal(t, 0, results.Total())
}

func TestSearchPreservesCollectionOrder(t *testing.T) {
	q, _ := testQueries()

	results, err := q.Search(context.Background(), "notes")
	require.NoError(t, err)
	require.Len(t, results.BlogPosts, 3)
	assert.Equal(t, "january-notes", results.BlogPosts[0].Slug)
	assert.Equal(t, "march-notes", results.BlogPosts[1].Slug)
	assert.Equal(t, "february-notes", results.BlogPosts[2].Slug)
}

func TestSearchCancelledContext(t *testing.T) {
	q, _ := testQueries()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := q.Search(ctx, "go")
	assert.ErrorIs(t, err, context.Canceled)
}
