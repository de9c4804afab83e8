// Package query answers read-only questions about the content store. Every
// accessor is total: a missing slug or unknown category yields a nil
// record or empty slice, never an error. The only error an accessor can
// return is the caller's context expiring during the configured artificial
// latency, which emulates a remote content API in front of local data.
package query

import (
	"context"
	"time"

	"github.com/novaforge/sitekit/internal/content"
)

// Provider hands out the content store snapshot an accessor should read.
// Each accessor reads exactly one snapshot per call.
type Provider interface {
	Current() *content.Store
}

// Queries is the read-side client over the content store.
type Queries struct {
	snap    Provider
	latency time.Duration
}

// New creates a Queries over the given provider. latency is the artificial
// delay applied before each accessor returns; zero disables it.
func New(snap Provider, latency time.Duration) *Queries {
	return &Queries{snap: snap, latency: latency}
}

// wait applies the artificial latency, honoring cancellation.
func (q *Queries) wait(ctx context.Context) error {
	if q.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(q.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Services returns every service in collection order.
func (q *Queries) Services(ctx context.Context) ([]content.Service, error) {
	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	return copySlice(q.snap.Current().Services), nil
}

// ServiceBySlug returns the service with the given slug, or nil. The match
// is byte-exact: slugs are canonical keys, not search terms.
func (q *Queries) ServiceBySlug(ctx context.Context, slug string) (*content.Service, error) {
	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	for _, s := range q.snap.Current().Services {
		if s.Slug == slug {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

// ServiceByID returns the service with the given internal id, or nil.
func (q *Queries) ServiceByID(ctx context.Context, id string) (*content.Service, error) {
	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	for _, s := range q.snap.Current().Services {
		if s.ID == id {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

// CaseStudies returns every case study in collection order.
func (q *Queries) CaseStudies(ctx context.Context) ([]content.CaseStudy, error) {
	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	return copySlice(q.snap.Current().CaseStudies), nil
}

// CaseStudyBySlug returns the case study with the given slug, or nil.
func (q *Queries) CaseStudyBySlug(ctx context.Context, slug string) (*content.CaseStudy, error) {
	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	for _, cs := range q.snap.Current().CaseStudies {
		if cs.Slug == slug {
			out := cs
			return &out, nil
		}
	}
	return nil, nil
}

// CaseStudiesByService returns case studies whose service tag matches,
// case-insensitively, preserving collection order. A dangling tag simply
// matches nothing.
func (q *Queries) CaseStudiesByService(ctx context.Context, service string) ([]content.CaseStudy, error) {
	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	var out []content.CaseStudy
	for _, cs := range q.snap.Current().CaseStudies {
		if foldEqual(cs.Service, service) {
			out = append(out, cs)
		}
	}
	return out, nil
}

// CaseStudiesByIndustry returns case studies in the given industry,
// case-insensitively, preserving collection order.
func (q *Queries) CaseStudiesByIndustry(ctx context.Context, industry string) ([]content.CaseStudy, error) {
	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	var out []content.CaseStudy
	for _, cs := range q.snap.Current().CaseStudies {
		if foldEqual(cs.Industry, industry) {
			out = append(out, cs)
		}
	}
	return out, nil
}

// TeamMembers returns the team roster in collection order.
func (q *Queries) TeamMembers(ctx context.Context) ([]content.TeamMember, error) {
	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	return copySlice(q.snap.Current().Team), nil
}

// TeamMemberByID returns the team member with the given id, or nil.
func (q *Queries) TeamMemberByID(ctx context.Context, id string) (*content.TeamMember, error) {
	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	for _, m := range q.snap.Current().Team {
		if m.ID == id {
			out := m
			return &out, nil
		}
	}
	return nil, nil
}

func copySlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
