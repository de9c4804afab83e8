package query

import (
	"context"
	"sync"

	"github.com/novaforge/sitekit/internal/content"
)

// SearchResults bundles the per-collection matches for one query. There is
// no ranking and no deduplication: a record either matches or it doesn't,
// and each list keeps its collection order.
type SearchResults struct {
	Services    []content.Service   `json:"services"`
	CaseStudies []content.CaseStudy `json:"caseStudies"`
	BlogPosts   []content.BlogPost  `json:"blogPosts"`
}

// Total returns the number of matched records across all collections.
func (r SearchResults) Total() int {
	return len(r.Services) + len(r.CaseStudies) + len(r.BlogPosts)
}

// Search filters services, case studies, and blog posts by a free-text
// query, case-insensitively. The three collections are scanned
// concurrently over one snapshot and joined before returning; if the
// context expires mid-scan the whole search fails rather than returning a
// partial bundle. An empty query matches every record.
func (q *Queries) Search(ctx context.Context, query string) (*SearchResults, error) {
	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	store := q.snap.Current()

	var results SearchResults
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		for _, s := range store.Services {
			if foldContains(s.Title, query) ||
				foldContains(s.Description, query) ||
				anyFoldContains(s.Technologies, query) {
				results.Services = append(results.Services, s)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for _, cs := range store.CaseStudies {
			if foldContains(cs.Title, query) ||
				foldContains(cs.Summary, query) ||
				foldContains(cs.Industry, query) {
				results.CaseStudies = append(results.CaseStudies, cs)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for _, p := range store.BlogPosts {
			if foldContains(p.Title, query) ||
				foldContains(p.Excerpt, query) ||
				anyFoldContains(p.Tags, query) {
				results.BlogPosts = append(results.BlogPosts, p)
			}
		}
	}()

	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &results, nil
}
