package content

import (
	"fmt"
)

// Store is one immutable snapshot of every collection. A Store is built by
// a Source, validated once, and never mutated; callers share it by
// read-only reference.
type Store struct {
	Services     []Service
	CaseStudies  []CaseStudy
	BlogPosts    []BlogPost
	Testimonials []Testimonial
	Team         []TeamMember
	Company      Company
}

// Source produces a fully-populated Store. Implementations read embedded
// fixtures, a content directory, or a seed database.
type Source interface {
	Load() (*Store, error)
}

// Collection names as they appear on disk and in the seed database.
const (
	CollectionServices     = "services"
	CollectionCaseStudies  = "case_studies"
	CollectionBlogPosts    = "blog_posts"
	CollectionTestimonials = "testimonials"
	CollectionTeam         = "team"
	CollectionCompany      = "company"
)

// Collections lists the record collections in load order. Company is the
// singleton profile and is handled separately.
var Collections = []string{
	CollectionServices,
	CollectionCaseStudies,
	CollectionBlogPosts,
	CollectionTestimonials,
	CollectionTeam,
}

// Validate checks load-time integrity. Duplicate slugs or ids within a
// collection are rejected: slugs are lookup keys, and serving whichever
// record happens to come first would hide a data bug. Dangling
// CaseStudy.Service references are allowed; they just never cross-link.
func (s *Store) Validate() error {
	if err := uniqueKeys(CollectionServices, len(s.Services), func(i int) (string, string) {
		return s.Services[i].ID, s.Services[i].Slug
	}); err != nil {
		return err
	}
	if err := uniqueKeys(CollectionCaseStudies, len(s.CaseStudies), func(i int) (string, string) {
		return s.CaseStudies[i].ID, s.CaseStudies[i].Slug
	}); err != nil {
		return err
	}
	if err := uniqueKeys(CollectionBlogPosts, len(s.BlogPosts), func(i int) (string, string) {
		return s.BlogPosts[i].ID, s.BlogPosts[i].Slug
	}); err != nil {
		return err
	}
	if err := uniqueKeys(CollectionTestimonials, len(s.Testimonials), func(i int) (string, string) {
		return s.Testimonials[i].ID, ""
	}); err != nil {
		return err
	}
	if err := uniqueKeys(CollectionTeam, len(s.Team), func(i int) (string, string) {
		return s.Team[i].ID, ""
	}); err != nil {
		return err
	}
	for _, t := range s.Testimonials {
		if t.Rating < 1 || t.Rating > 5 {
			return fmt.Errorf("testimonial %q: rating %d out of range 1-5", t.ID, t.Rating)
		}
	}
	if s.Company.Name == "" {
		return fmt.Errorf("company profile missing name")
	}
	return nil
}

func uniqueKeys(collection string, n int, keys func(i int) (id, slug string)) error {
	ids := make(map[string]struct{}, n)
	slugs := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id, slug := keys(i)
		if id == "" {
			return fmt.Errorf("%s[%d]: missing id", collection, i)
		}
		if _, dup := ids[id]; dup {
			return fmt.Errorf("%s: duplicate id %q", collection, id)
		}
		ids[id] = struct{}{}
		if slug == "" {
			continue
		}
		if _, dup := slugs[slug]; dup {
			return fmt.Errorf("%s: duplicate slug %q", collection, slug)
		}
		slugs[slug] = struct{}{}
	}
	return nil
}
