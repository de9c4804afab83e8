package query

import (
	"context"
	"sort"

	"github.com/novaforge/sitekit/internal/content"
)

// BlogPosts returns every post sorted by publish date descending. The sort
// is recomputed on each call against the current snapshot and is stable:
// posts sharing a date keep their collection order.
func (q *Queries) BlogPosts(ctx context.Context) ([]content.BlogPost, error) {
	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	posts := copySlice(q.snap.Current().BlogPosts)
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt > posts[j].PublishedAt
	})
	return posts, nil
}

// BlogPostBySlug returns the post with the given slug, or nil.
func (q *Queries) BlogPostBySlug(ctx context.Context, slug string) (*content.BlogPost, error) {
	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	for _, p := range q.snap.Current().BlogPosts {
		if p.Slug == slug {
			out := p
			return &out, nil
		}
	}
	return nil, nil
}

// BlogPostsByCategory returns posts in the given category,
// case-insensitively, in publish-date order.
func (q *Queries) BlogPostsByCategory(ctx context.Context, category string) ([]content.BlogPost, error) {
	posts, err := q.BlogPosts(ctx)
	if err != nil {
		return nil, err
	}
	var out []content.BlogPost
	for _, p := range posts {
		if foldEqual(p.Category, category) {
			out = append(out, p)
		}
	}
	return out, nil
}

// BlogPostsByTag returns posts carrying the given tag, case-insensitively,
// in publish-date order.
func (q *Queries) BlogPostsByTag(ctx context.Context, tag string) ([]content.BlogPost, error) {
	posts, err := q.BlogPosts(ctx)
	if err != nil {
		return nil, err
	}
	var out []content.BlogPost
	for _, p := range posts {
		if anyFoldEqual(p.Tags, tag) {
			out = append(out, p)
		}
	}
	return out, nil
}

// FeaturedBlogPosts returns the posts flagged featured, in publish-date
// order, with no limit.
func (q *Queries) FeaturedBlogPosts(ctx context.Context) ([]content.BlogPost, error) {
	posts, err := q.BlogPosts(ctx)
	if err != nil {
		return nil, err
	}
	var out []content.BlogPost
	for _, p := range posts {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out, nil
}
