package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novaforge/sitekit/internal/content"
	"github.com/novaforge/sitekit/internal/query"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, &fakeVerifier{}, &fakeMailer{configured: true})

	rec := doRequest(s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var health map[string]interface{}
	decodeBody(t, rec, &health)
	assert.Equal(t, "healthy", health["status"])
	assert.Contains(t, health, "checks")
}

func TestServiceEndpoints(t *testing.T) {
	s := newTestServer(t, &fakeVerifier{}, &fakeMailer{configured: true})

	t.Run("list", func(t *testing.T) {
		rec := doRequest(s, http.MethodGet, "/api/services", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var services []content.Service
		decodeBody(t, rec, &services)
		assert.NotEmpty(t, services)
	})

	t.Run("by slug", func(t *testing.T) {
		rec := doRequest(s, http.MethodGet, "/api/services/software-development", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var svc content.Service
		decodeBody(t, rec, &svc)
		assert.Equal(t, "software-development", svc.Slug)
	})

	t.Run("unknown slug is 404", func(t *testing.T) {
		rec := doRequest(s, http.MethodGet, "/api/services/nonexistent", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Service not found")
	})
}

func TestBlogEndpoints(t *testing.T) {
	s := newTestServer(t, &fakeVerifier{}, &fakeMailer{configured: true})

	t.Run("list is newest first", func(t *testing.T) {
		rec := doRequest(s, http.MethodGet, "/api/blog", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var posts []content.BlogPost
		decodeBody(t, rec, &posts)
		require.NotEmpty(t, posts)
		for i := 1; i < len(posts); i++ {
			assert.GreaterOrEqual(t, posts[i-1].PublishedAt, posts[i].PublishedAt)
		}
	})

	t.Run("featured filter", func(t *testing.T) {
		rec := doRequest(s, http.MethodGet, "/api/blog?featured=true", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var posts []content.BlogPost
		decodeBody(t, rec, &posts)
		for _, p := range posts {
			assert.True(t, p.Featured)
		}
	})

	t.Run("unknown category is an empty array", func(t *testing.T) {
		rec := doRequest(s, http.MethodGet, "/api/blog?category=nonexistent", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestTestimonialEndpoints(t *testing.T) {
	s := newTestServer(t, &fakeVerifier{}, &fakeMailer{configured: true})

	t.Run("featured respects limit", func(t *testing.T) {
		rec := doRequest(s, http.MethodGet, "/api/testimonials?featured=true&limit=2", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var ts []content.Testimonial
		decodeBody(t, rec, &ts)
		assert.LessOrEqual(t, len(ts), 2)
		for _, tm := range ts {
			assert.Equal(t, 5, tm.Rating)
		}
	})

	t.Run("featured default limit", func(t *testing.T) {
		rec := doRequest(s, http.MethodGet, "/api/testimonials?featured=true", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var ts []content.Testimonial
		decodeBody(t, rec, &ts)
		assert.LessOrEqual(t, len(ts), query.DefaultFeaturedTestimonials)
	})
}

func TestSearchEndpoint(t *testing.T) {
	s := newTestServer(t, &fakeVerifier{}, &fakeMailer{configured: true})

	t.Run("casing does not change results", func(t *testing.T) {
		upper := doRequest(s, http.MethodGet, "/api/search?q=REACT", "")
		lower := doRequest(s, http.MethodGet, "/api/search?q=react", "")
		require.Equal(t, http.StatusOK, upper.Code)
		require.Equal(t, http.StatusOK, lower.Code)
		assert.JSONEq(t, lower.Body.String(), upper.Body.String())
	})

	t.Run("no matches renders empty arrays", func(t *testing.T) {
		rec := doRequest(s, http.MethodGet, "/api/search?q=zzzz-no-such-term", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var results query.SearchResults
		decodeBody(t, rec, &results)
		assert.NotNil(t, results.Services)
		assert.Equal(t, 0, results.Total())
		assert.Contains(t, rec.Body.String(), `"services":[]`)
	})
}

func TestStatsEndpoint(t *testing.T) {
	s := newTestServer(t, &fakeVerifier{}, &fakeMailer{configured: true})
	store := s.snapshot.Current()

	rec := doRequest(s, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats query.Statistics
	decodeBody(t, rec, &stats)
	assert.Equal(t, len(store.CaseStudies), stats.CaseStudiesCount)
	assert.Equal(t, len(store.Testimonials), stats.TestimonialsCount)
	assert.Equal(t, store.Company.Stats.ProjectsCompleted, stats.ProjectsCompleted)
}

func TestCompanyAndTeamEndpoints(t *testing.T) {
	s := newTestServer(t, &fakeVerifier{}, &fakeMailer{configured: true})

	rec := doRequest(s, http.MethodGet, "/api/company", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var company content.Company
	decodeBody(t, rec, &company)
	assert.Equal(t, "Novaforge", company.Name)

	rec = doRequest(s, http.MethodGet, "/api/team", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var team []content.TeamMember
	decodeBody(t, rec, &team)
	require.NotEmpty(t, team)

	rec = doRequest(s, http.MethodGet, "/api/team/"+team[0].ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/team/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, &fakeVerifier{}, &fakeMailer{configured: true})

	// Prime the request counter with one API call first.
	doRequest(s, http.MethodGet, "/api/services", "")

	rec := doRequest(s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sitekit_content_records")
	assert.Contains(t, rec.Body.String(), "sitekit_http_requests_total")
}

func TestCORSHeaders(t *testing.T) {
	s := newTestServer(t, &fakeVerifier{}, &fakeMailer{configured: true})

	t.Run("allowed origin is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/services", nil)
		req.Header.Set("Origin", "https://novaforge.dev")
		rec := httptest.NewRecorder()
		s.addMiddleware(s.routes()).ServeHTTP(rec, req)

		assert.Equal(t, "https://novaforge.dev", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("development falls back to wildcard", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/services", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()
		s.addMiddleware(s.routes()).ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("production denies unknown origins", func(t *testing.T) {
		s.config.Server.Environment = "production"
		defer func() { s.config.Server.Environment = "development" }()

		req := httptest.NewRequest(http.MethodGet, "/api/services", nil)
		req.Header.Set("Origin", "http://evil.example.com")
		rec := httptest.NewRecorder()
		s.addMiddleware(s.routes()).ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/send-email", nil)
		req.Header.Set("Origin", "https://novaforge.dev")
		rec := httptest.NewRecorder()
		s.addMiddleware(s.routes()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	})
}
