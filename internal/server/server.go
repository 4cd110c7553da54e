// Package server serves the portfolio site, the chat API and the admin
// dashboard over gin.
package server

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/chat"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/session"
	"github.com/Zachkp/portfolio/internal/storage"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Analytics is the subset of the sqlite store the server writes to.
type Analytics interface {
	RecordVisit(ctx context.Context, v storage.Visit) error
	RecordRuleHit(ctx context.Context, rule string, at time.Time) error
	Stats(ctx context.Context, now time.Time) (*storage.Stats, error)
	PurgeVisitorsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Deps are the collaborators a Server needs. Analytics and Relay may be nil.
type Deps struct {
	Config    *config.Config
	Responder *chat.Responder
	Sessions  *session.Store
	Analytics Analytics
	Relay     contact.Relay
	Pacing    chat.Pacing
}

// Server owns the gin engine and its background state.
type Server struct {
	cfg       *config.Config
	engine    *gin.Engine
	responder *chat.Responder
	sessions  *session.Store
	analytics Analytics
	relay     contact.Relay
	pacing    chat.Pacing
	limiter   *ipLimiter

	adminToken  string
	hashingSalt string
	now         func() time.Time
	async       bool
}

// New builds the engine and registers every route.
func New(d Deps) (*Server, error) {
	if d.Config == nil || d.Responder == nil || d.Sessions == nil {
		return nil, fmt.Errorf("server: config, responder and sessions are required")
	}

	token, err := randomHex(32)
	if err != nil {
		return nil, fmt.Errorf("generating admin token: %w", err)
	}
	salt, err := randomHex(32)
	if err != nil {
		return nil, fmt.Errorf("generating hashing salt: %w", err)
	}

	s := &Server{
		cfg:         d.Config,
		responder:   d.Responder,
		sessions:    d.Sessions,
		analytics:   d.Analytics,
		relay:       d.Relay,
		pacing:      d.Pacing,
		limiter:     newIPLimiter(d.Config.RateLimit.PerMinute, d.Config.RateLimit.Burst),
		adminToken:  token,
		hashingSalt: salt,
		now:         time.Now,
		async:       true,
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	if d.Config.Server.Mode != "" {
		gin.SetMode(d.Config.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), s.visitorTracking())
	r.SetHTMLTemplate(tmpl)

	if d.Config.Server.ImagesDir != "" {
		r.Static("/images", d.Config.Server.ImagesDir)
	}
	if d.Config.Server.StaticDir != "" {
		r.Static("/static", d.Config.Server.StaticDir)
	}

	s.engine = r
	s.registerPages()
	s.registerChat()
	if s.adminEnabled() {
		s.registerAdmin()
		logger.Info().Msg("admin access available at /admin/login")
	}
	return s, nil
}

// Handler returns the http.Handler to serve.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// RunMaintenance prunes idle rate-limit buckets and purges visitor rows older
// than the configured retention, every interval, until ctx is cancelled.
func (s *Server) RunMaintenance(ctx context.Context, interval time.Duration) {
	s.purgeExpiredVisitors(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.limiter != nil {
				s.limiter.prune()
			}
			s.purgeExpiredVisitors(ctx)
		}
	}
}

func (s *Server) purgeExpiredVisitors(ctx context.Context) (int64, error) {
	days := s.cfg.Storage.VisitorRetentionDays
	if s.analytics == nil || days <= 0 {
		return 0, nil
	}
	n, err := s.analytics.PurgeVisitorsBefore(ctx, s.now().AddDate(0, 0, -days))
	if err != nil {
		logger.Error().Err(err).Msg("purging old visitor data")
		return 0, err
	}
	if n > 0 {
		logger.Info().Int64("removed", n).Int("retention_days", days).Msg("old visitor data purged")
	}
	return n, nil
}

// background runs fn off the request path, or inline when async is off.
func (s *Server) background(fn func()) {
	if s.async {
		go fn()
		return
	}
	fn()
}

// hashIP returns a salted, truncated digest so raw addresses are never stored.
func (s *Server) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.hashingSalt))
	return hex.EncodeToString(sum[:])[:16]
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

var templateFuncs = template.FuncMap{
	"lower": strings.ToLower,
	"join":  strings.Join,
	"date": func(t time.Time) string {
		return t.Local().Format("Jan 2, 2006 15:04")
	},
}
