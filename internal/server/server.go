// Package server serves the portfolio page, its HTMX fragments and a small
// JSON API with gin.
package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gede-cahya/portfolio/internal/feed"
	"github.com/gede-cahya/portfolio/internal/site"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Server wires page content and the repository feed into HTTP handlers.
type Server struct {
	profile *site.Profile
	lister  feed.Lister
	opts    feed.Options
	logger  *slog.Logger
	salt    string
	now     func() time.Time
}

// Option customizes a Server.
type Option func(*Server)

// WithClock overrides the time source used for the footer year and health checks.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithSalt fixes the salt used to hash visitor IPs. A random salt is generated otherwise.
func WithSalt(salt string) Option {
	return func(s *Server) { s.salt = salt }
}

// New creates a Server. Every portfolio request activates a fresh feed backed by lister.
func New(profile *site.Profile, lister feed.Lister, opts feed.Options, logger *slog.Logger, options ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		profile: profile,
		lister:  lister,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
	for _, o := range options {
		o(s)
	}
	if s.salt == "" {
		s.salt = generateSalt()
	}
	return s
}

// Router builds the gin engine with all routes and middleware.
func (s *Server) Router() (*gin.Engine, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"markdown": site.RenderMarkdown,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(
		recoveryMiddleware(s.logger),
		requestIDMiddleware(),
		loggingMiddleware(s.logger),
		visitorTrackingMiddleware(s.logger, s.salt),
	)

	r.StaticFS("/static", http.FS(static))

	s.registerRoutes(r)
	return r, nil
}

func (s *Server) registerRoutes(r *gin.Engine) {
	// Pages
	r.GET("/", s.home)
	r.GET("/privacy", s.privacy)
	r.GET("/terms", s.terms)

	// HTMX fragments
	r.GET("/portfolio", s.portfolio)
	r.POST("/contact", s.contact)

	// JSON
	r.GET("/api/projects", s.apiProjects)
	r.GET("/healthz", s.health)

	r.NoRoute(s.notFound)
}

// activate runs one feed activation bound to the request. If the visitor
// leaves before GitHub answers, the canceled context discards the result.
func (s *Server) activate(c *gin.Context) feed.Snapshot {
	return feed.New(s.lister, s.opts, s.logger).Load(c.Request.Context())
}
