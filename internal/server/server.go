// Package server exposes the marketing site's content API, the contact
// endpoints, and the dev-mode reload channel over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"golang.org/x/time/rate"

	"github.com/novaforge/sitekit/internal/captcha"
	"github.com/novaforge/sitekit/internal/config"
	"github.com/novaforge/sitekit/internal/content"
	"github.com/novaforge/sitekit/internal/logging"
	"github.com/novaforge/sitekit/internal/mailer"
	"github.com/novaforge/sitekit/internal/query"
	"github.com/novaforge/sitekit/internal/watcher"
)

// Contact endpoints trigger paid third-party calls, so they get a tight
// per-IP budget. The read API is unlimited; it serves static content.
const (
	contactRateLimit = rate.Limit(0.2) // one submission per 5s sustained
	contactRateBurst = 3
)

// Client represents one connected WebSocket client on the reload channel.
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	server *Server
}

// Server serves the content API with an optional live-reload channel.
type Server struct {
	config   *config.Config
	logger   logging.Logger
	snapshot *content.Snapshot
	queries  *query.Queries
	captcha  captcha.Verifier
	mailer   mailer.Mailer
	watcher  *watcher.ContentWatcher
	metrics  *serverMetrics
	limiter  *ipLimiter

	httpServer  *http.Server
	serverMutex sync.RWMutex

	clients      map[*websocket.Conn]*Client
	clientsMutex sync.RWMutex
	broadcast    chan []byte
	register     chan *Client
	unregister   chan *websocket.Conn

	shutdownOnce sync.Once
}

// New builds a server from configuration: it loads the content store from
// the configured source, wires the query layer, and prepares the external
// collaborators. A content load failure is fatal here, before the server
// ever binds a port.
func New(cfg *config.Config, logger logging.Logger) (*Server, error) {
	source, err := contentSource(cfg)
	if err != nil {
		return nil, err
	}

	store, err := source.Load()
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}

	snapshot := content.NewSnapshot(store)
	metrics := newServerMetrics()
	metrics.observeStore(store)

	s := &Server{
		config:     cfg,
		logger:     logger.WithComponent("server"),
		snapshot:   snapshot,
		queries:    query.New(snapshot, cfg.Query.Latency),
		captcha:    captcha.NewClient(cfg.Captcha.VerifyURL, cfg.Captcha.Secret),
		mailer:     mailer.NewClient(cfg.Mail.APIURL, cfg.Mail.APIKey),
		metrics:    metrics,
		limiter:    newIPLimiter(contactRateLimit, contactRateBurst),
		clients:    make(map[*websocket.Conn]*Client),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *websocket.Conn),
	}

	if cfg.Content.Watch {
		dirSource, ok := source.(*content.DirSource)
		if !ok {
			return nil, fmt.Errorf("content watch requires the dir source")
		}
		w, err := watcher.New(dirSource, snapshot, 300*time.Millisecond, logger)
		if err != nil {
			return nil, fmt.Errorf("creating content watcher: %w", err)
		}
		w.AddHandler(func(store *content.Store) {
			metrics.observeStore(store)
			s.broadcastReload()
		})
		s.watcher = w
	}

	return s, nil
}

func contentSource(cfg *config.Config) (content.Source, error) {
	switch cfg.Content.Source {
	case config.SourceEmbedded:
		return content.NewEmbeddedSource(), nil
	case config.SourceDir:
		return content.NewDirSource(cfg.Content.Dir), nil
	case config.SourceSQLite:
		return content.NewSQLiteSource(cfg.Content.Database), nil
	default:
		return nil, fmt.Errorf("unknown content source %q", cfg.Content.Source)
	}
}

// Queries exposes the query layer, mainly for the content CLI commands.
func (s *Server) Queries() *query.Queries {
	return s.queries
}

// Start runs the server until it fails or is shut down.
func (s *Server) Start(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.Start(ctx)
	}

	go s.runHub(ctx)

	handler := s.addMiddleware(s.routes())

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.serverMutex.Lock()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	server := s.httpServer
	s.serverMutex.Unlock()

	s.logger.Info(ctx, "server listening",
		"addr", addr,
		"content_source", s.config.Content.Source,
		"environment", s.config.Server.Environment,
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// routes builds the route table.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.Handle("GET /metrics", s.metrics.handler())

	mux.HandleFunc("GET /api/services", s.handleServices)
	mux.HandleFunc("GET /api/services/{slug}", s.handleService)
	mux.HandleFunc("GET /api/case-studies", s.handleCaseStudies)
	mux.HandleFunc("GET /api/case-studies/{slug}", s.handleCaseStudy)
	mux.HandleFunc("GET /api/blog", s.handleBlogPosts)
	mux.HandleFunc("GET /api/blog/{slug}", s.handleBlogPost)
	mux.HandleFunc("GET /api/testimonials", s.handleTestimonials)
	mux.HandleFunc("GET /api/team", s.handleTeam)
	mux.HandleFunc("GET /api/team/{id}", s.handleTeamMember)
	mux.HandleFunc("GET /api/company", s.handleCompany)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /api/search", s.handleSearch)

	contactLimit := rateLimitMiddleware(s.limiter)
	mux.Handle("POST /api/send-email", contactLimit(http.HandlerFunc(s.handleSendEmail)))
	mux.Handle("POST /api/send-project-details", contactLimit(http.HandlerFunc(s.handleSendProjectDetails)))

	return mux
}

// addMiddleware wraps the mux with the shared middleware chain and CORS.
func (s *Server) addMiddleware(handler http.Handler) http.Handler {
	wrapped := s.metrics.middleware(handler)
	wrapped = loggingMiddleware(s.logger)(wrapped)
	wrapped = requestIDMiddleware(wrapped)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if s.isAllowedOrigin(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else if s.config.Server.Environment == "development" {
			// Only allow wildcard in development
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		// Production default: no CORS header (blocks cross-origin requests)

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		wrapped.ServeHTTP(w, r)
	})
}

// isAllowedOrigin checks if the origin is in the allowed origins list
func (s *Server) isAllowedOrigin(origin string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range s.config.Server.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// Shutdown gracefully shuts down the server and cleans up resources.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.logger.Info(ctx, "shutting down server")

		if s.watcher != nil {
			if err := s.watcher.Stop(); err != nil {
				s.logger.Warn(ctx, err, "stopping content watcher")
			}
		}

		s.clientsMutex.Lock()
		for conn, client := range s.clients {
			close(client.send)
			conn.Close(websocket.StatusNormalClosure, "")
		}
		s.clients = make(map[*websocket.Conn]*Client)
		s.clientsMutex.Unlock()

		s.serverMutex.RLock()
		server := s.httpServer
		s.serverMutex.RUnlock()

		if server != nil {
			shutdownErr = server.Shutdown(ctx)
		}
	})

	return shutdownErr
}
