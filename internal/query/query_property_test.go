//go:build property

package query

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/novaforge/sitekit/internal/content"
)

func genDate() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(2018, 2025),
		gen.IntRange(1, 12),
		gen.IntRange(1, 28),
	).Map(func(vs []interface{}) string {
		return fmt.Sprintf("%04d-%02d-%02d", vs[0].(int), vs[1].(int), vs[2].(int))
	})
}

func genBlogPosts() gopter.Gen {
	return gen.SliceOf(genDate()).Map(func(dates []string) []content.BlogPost {
		posts := make([]content.BlogPost, len(dates))
		for i, d := range dates {
			posts[i] = content.BlogPost{
				ID:          fmt.Sprintf("%d", i+1),
				Slug:        fmt.Sprintf("post-%d", i+1),
				PublishedAt: d,
			}
		}
		return posts
	})
}

func genTestimonials() gopter.Gen {
	return gen.SliceOf(gopter.CombineGens(genDate(), gen.IntRange(1, 5))).
		Map(func(pairs [][]interface{}) []content.Testimonial {
			ts := make([]content.Testimonial, len(pairs))
			for i, p := range pairs {
				ts[i] = content.Testimonial{
					ID:     fmt.Sprintf("%d", i+1),
					Date:   p[0].(string),
					Rating: p[1].(int),
				}
			}
			return ts
		})
}

func TestBlogPostOrderingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("posts come back newest first", prop.ForAll(
		func(posts []content.BlogPost) bool {
			q := New(content.NewSnapshot(&content.Store{BlogPosts: posts}), 0)
			got, err := q.BlogPosts(context.Background())
			if err != nil || len(got) != len(posts) {
				return false
			}
			return sort.SliceIsSorted(got, func(i, j int) bool {
				return got[i].PublishedAt > got[j].PublishedAt
			})
		},
		genBlogPosts(),
	))

	properties.Property("sorting never loses or invents posts", prop.ForAll(
		func(posts []content.BlogPost) bool {
			q := New(content.NewSnapshot(&content.Store{BlogPosts: posts}), 0)
			got, err := q.BlogPosts(context.Background())
			if err != nil {
				return false
			}
			seen := make(map[string]bool, len(got))
			for _, p := range got {
				seen[p.ID] = true
			}
			for _, p := range posts {
				if !seen[p.ID] {
					return false
				}
			}
			return len(got) == len(posts)
		},
		genBlogPosts(),
	))

	properties.TestingRun(t)
}

func TestFeaturedTestimonialProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("featured are five-star and capped", prop.ForAll(
		func(ts []content.Testimonial, limit int) bool {
			q := New(content.NewSnapshot(&content.Store{Testimonials: ts}), 0)
			got, err := q.FeaturedTestimonials(context.Background(), limit)
			if err != nil {
				return false
			}
			allowed := limit
			if allowed <= 0 {
				allowed = DefaultFeaturedTestimonials
			}
			if len(got) > allowed {
				return false
			}
			for _, tm := range got {
				if tm.Rating != 5 {
					return false
				}
			}
			return true
		},
		genTestimonials(),
		gen.IntRange(-2, 10),
	))

	properties.TestingRun(t)
}

func TestSearchProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("query casing never changes the result", prop.ForAll(
		func(term string) bool {
			q, _ := testQueries()
			lower, err1 := q.Search(context.Background(), strings.ToLower(term))
			upper, err2 := q.Search(context.Background(), strings.ToUpper(term))
			if err1 != nil || err2 != nil {
				return false
			}
			return lower.Total() == upper.Total()
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
