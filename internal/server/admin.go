package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/logger"
)

const adminCookieName = "admin_token"

func (s *Server) adminEnabled() bool {
	return s.cfg.Admin.Password != ""
}

// adminAuth redirects to the login page unless the request carries the
// process's admin token.
func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookieName)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) registerAdmin() {
	r := s.engine

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{})
	})
	r.POST("/admin/login", s.limiter.middleware(), s.handleAdminLogin)
	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookieName, "", -1, "/admin", "", false, true)
		logger.Info().Str("client", s.hashIP(c.ClientIP())).Msg("admin logout")
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuth())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.stats(c)
		if err != nil {
			logger.Error().Err(err).Msg("loading admin stats")
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats":         stats,
			"retentionDays": s.cfg.Storage.VisitorRetentionDays,
			"liveSessions":  s.sessions.Len(),
		})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.stats(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.stats(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		logger.Info().Str("client", s.hashIP(c.ClientIP())).Msg("admin stats exported")
		c.JSON(http.StatusOK, stats)
	})

	admin.POST("/privacy/purge", func(c *gin.Context) {
		removed, err := s.purgeExpiredVisitors(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "removed": removed})
	})
}

func (s *Server) handleAdminLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Admin.Password)) == 1
	if !userOK || !passOK {
		logger.Warn().Str("client", s.hashIP(c.ClientIP())).Msg("failed admin login attempt")
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"error": "Invalid credentials",
		})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(adminCookieName, s.adminToken, 3600*24, "/admin", "", gin.Mode() == gin.ReleaseMode, true)
	logger.Info().Str("client", s.hashIP(c.ClientIP())).Msg("admin login successful")
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// stats returns dashboard figures, or empty ones when analytics is off.
func (s *Server) stats(c *gin.Context) (any, error) {
	if s.analytics == nil {
		return gin.H{"analytics": "disabled"}, nil
	}
	return s.analytics.Stats(c.Request.Context(), s.now())
}
