package query

import (
	"context"

	"github.com/novaforge/sitekit/internal/content"
)

// Statistics merges the company's pre-formatted display numbers with two
// live counts. The display values stay opaque strings ("350+", "98%"); the
// only arithmetic here is the two collection lengths, which always reflect
// the current snapshot.
type Statistics struct {
	ProjectsCompleted string `json:"projectsCompleted"`
	HappyClients      string `json:"happyClients"`
	YearsExperience   string `json:"yearsExperience"`
	Satisfaction      string `json:"satisfaction"`
	SuccessRate       string `json:"successRate"`
	TeamSize          string `json:"teamSize"`
	AverageRating     string `json:"averageRating"`
	CaseStudiesCount  int    `json:"caseStudiesCount"`
	TestimonialsCount int    `json:"testimonialsCount"`
}

// Statistics returns the merged display statistics.
func (q *Queries) Statistics(ctx context.Context) (*Statistics, error) {
	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	store := q.snap.Current()
	cs := store.Company.Stats
	return &Statistics{
		ProjectsCompleted: cs.ProjectsCompleted,
		HappyClients:      cs.HappyClients,
		YearsExperience:   cs.YearsExperience,
		Satisfaction:      cs.Satisfaction,
		SuccessRate:       cs.SuccessRate,
		TeamSize:          cs.TeamSize,
		AverageRating:     cs.AverageRating,
		CaseStudiesCount:  len(store.CaseStudies),
		TestimonialsCount: len(store.Testimonials),
	}, nil
}

// Company returns the full company profile.
func (q *Queries) Company(ctx context.Context) (*content.Company, error) {
	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	c := q.snap.Current().Company
	return &c, nil
}

// The remaining accessors project single fields out of the company
// profile for pages that only need one section.

func (q *Queries) Mission(ctx context.Context) (*content.Mission, error) {
	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	m := q.snap.Current().Company.Mission
	return &m, nil
}

func (q *Queries) Vision(ctx context.Context) (*content.Vision, error) {
	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	v := q.snap.Current().Company.Vision
	return &v, nil
}

func (q *Queries) Values(ctx context.Context) ([]content.Value, error) {
	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	return copySlice(q.snap.Current().Company.Values), nil
}

func (q *Queries) ProcessSteps(ctx context.Context) ([]content.ProcessStep, error) {
	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	return copySlice(q.snap.Current().Company.Process), nil
}

func (q *Queries) Features(ctx context.Context) ([]string, error) {
	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	return copySlice(q.snap.Current().Company.Features), nil
}
