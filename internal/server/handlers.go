package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/novaforge/sitekit/internal/content"
	"github.com/novaforge/sitekit/internal/version"
)

// writeJSON sends v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError sends a JSON error body. The message is user-facing; upstream
// detail stays in the logs.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// emptySlice keeps "no matches" rendering as [] instead of null.
func emptySlice[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

// handleHealth returns the server health status for health checks.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	store := s.snapshot.Current()
	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   version.GetShortVersion(),
		"checks": map[string]interface{}{
			"server": map[string]interface{}{"status": "healthy", "message": "HTTP server operational"},
			"content": map[string]interface{}{
				"status":       "healthy",
				"services":     len(store.Services),
				"case_studies": len(store.CaseStudies),
				"blog_posts":   len(store.BlogPosts),
				"testimonials": len(store.Testimonials),
				"team":         len(store.Team),
			},
		},
	}
	writeJSON(w, http.StatusOK, health)
}

func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	services, err := s.queries.Services(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Request cancelled")
		return
	}
	writeJSON(w, http.StatusOK, emptySlice(services))
}

func (s *Server) handleService(w http.ResponseWriter, r *http.Request) {
	service, err := s.queries.ServiceBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Request cancelled")
		return
	}
	if service == nil {
		writeError(w, http.StatusNotFound, "Service not found")
		return
	}
	writeJSON(w, http.StatusOK, service)
}

func (s *Server) handleCaseStudies(w http.ResponseWriter, r *http.Request) {
	var (
		studies []content.CaseStudy
		err     error
	)
	switch {
	case r.URL.Query().Get("service") != "":
		studies, err = s.queries.CaseStudiesByService(r.Context(), r.URL.Query().Get("service"))
	case r.URL.Query().Get("industry") != "":
		studies, err = s.queries.CaseStudiesByIndustry(r.Context(), r.URL.Query().Get("industry"))
	default:
		studies, err = s.queries.CaseStudies(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Request cancelled")
		return
	}
	writeJSON(w, http.StatusOK, emptySlice(studies))
}

func (s *Server) handleCaseStudy(w http.ResponseWriter, r *http.Request) {
	study, err := s.queries.CaseStudyBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Request cancelled")
		return
	}
	if study == nil {
		writeError(w, http.StatusNotFound, "Case study not found")
		return
	}
	writeJSON(w, http.StatusOK, study)
}

func (s *Server) handleBlogPosts(w http.ResponseWriter, r *http.Request) {
	var (
		posts []content.BlogPost
		err   error
	)
	switch {
	case r.URL.Query().Get("featured") == "true":
		posts, err = s.queries.FeaturedBlogPosts(r.Context())
	case r.URL.Query().Get("category") != "":
		posts, err = s.queries.BlogPostsByCategory(r.Context(), r.URL.Query().Get("category"))
	case r.URL.Query().Get("tag") != "":
		posts, err = s.queries.BlogPostsByTag(r.Context(), r.URL.Query().Get("tag"))
	default:
		posts, err = s.queries.BlogPosts(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Request cancelled")
		return
	}
	writeJSON(w, http.StatusOK, emptySlice(posts))
}

func (s *Server) handleBlogPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.queries.BlogPostBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Request cancelled")
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, "Blog post not found")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleTestimonials(w http.ResponseWriter, r *http.Request) {
	var (
		testimonials []content.Testimonial
		err          error
	)
	switch {
	case r.URL.Query().Get("featured") == "true":
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		testimonials, err = s.queries.FeaturedTestimonials(r.Context(), limit)
	case r.URL.Query().Get("service") != "":
		testimonials, err = s.queries.TestimonialsByService(r.Context(), r.URL.Query().Get("service"))
	default:
		testimonials, err = s.queries.Testimonials(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Request cancelled")
		return
	}
	writeJSON(w, http.StatusOK, emptySlice(testimonials))
}

func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	team, err := s.queries.TeamMembers(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Request cancelled")
		return
	}
	writeJSON(w, http.StatusOK, emptySlice(team))
}

func (s *Server) handleTeamMember(w http.ResponseWriter, r *http.Request) {
	member, err := s.queries.TeamMemberByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Request cancelled")
		return
	}
	if member == nil {
		writeError(w, http.StatusNotFound, "Team member not found")
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (s *Server) handleCompany(w http.ResponseWriter, r *http.Request) {
	company, err := s.queries.Company(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Request cancelled")
		return
	}
	writeJSON(w, http.StatusOK, company)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.queries.Statistics(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Request cancelled")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	results, err := s.queries.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Request cancelled")
		return
	}
	results.Services = emptySlice(results.Services)
	results.CaseStudies = emptySlice(results.CaseStudies)
	results.BlogPosts = emptySlice(results.BlogPosts)
	writeJSON(w, http.StatusOK, results)
}
