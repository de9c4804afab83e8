package query

import (
	"context"
	"sort"

	"github.com/novaforge/sitekit/internal/content"
)

// DefaultFeaturedTestimonials is the result cap applied when the caller
// does not supply one.
const DefaultFeaturedTestimonials = 3

// Testimonials returns every testimonial sorted by date descending,
// recomputed per call, stable on ties.
func (q *Queries) Testimonials(ctx context.Context) ([]content.Testimonial, error) {
	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	ts := copySlice(q.snap.Current().Testimonials)
	sort.SliceStable(ts, func(i, j int) bool {
		return ts[i].Date > ts[j].Date
	})
	return ts, nil
}

// TestimonialsByService returns testimonials for the given service tag,
// case-insensitively, in date order.
func (q *Queries) TestimonialsByService(ctx context.Context, service string) ([]content.Testimonial, error) {
	ts, err := q.Testimonials(ctx)
	if err != nil {
		return nil, err
	}
	var out []content.Testimonial
	for _, t := range ts {
		if foldEqual(t.Service, service) {
			out = append(out, t)
		}
	}
	return out, nil
}

// FeaturedTestimonials returns testimonials rated exactly 5, in date
// order, truncated to limit. A non-positive limit applies the default.
// A 4.9-star review is a good review, not a featured one.
func (q *Queries) FeaturedTestimonials(ctx context.Context, limit int) ([]content.Testimonial, error) {
	if limit <= 0 {
		limit = DefaultFeaturedTestimonials
	}
	ts, err := q.Testimonials(ctx)
	if err != nil {
		return nil, err
	}
	var out []content.Testimonial
	for _, t := range ts {
		if t.Rating == 5 {
			out = append(out, t)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}
