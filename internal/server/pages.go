package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/logger"
)

func (s *Server) registerPages() {
	r := s.engine

	r.GET("/", s.handleIndex)
	r.GET("/work-content", s.handleWork)
	r.GET("/education-content", s.handleEducation)
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{"title": "Contact Me"})
	})
	r.POST("/contact", s.limiter.middleware(), s.handleContact)

	r.GET("/api/profile", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.responder.Profile())
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func (s *Server) handleIndex(c *gin.Context) {
	p := s.responder.Profile()
	c.HTML(http.StatusOK, "index.html", gin.H{
		"profile":     p,
		"skillGroups": p.Skills.Groups(),
		"greeting":    renderReply(s.responder.Respond("hello").Text),
	})
}

func (s *Server) handleWork(c *gin.Context) {
	c.HTML(http.StatusOK, "work-content.html", gin.H{
		"experience": s.responder.Profile().Experience,
	})
}

func (s *Server) handleEducation(c *gin.Context) {
	p := s.responder.Profile()
	c.HTML(http.StatusOK, "education-content.html", gin.H{
		"education":    p.Education,
		"certificates": p.Certificates,
	})
}

func (s *Server) handleContact(c *gin.Context) {
	if s.relay == nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "The contact form is currently unavailable. Please reach out by email instead.",
		})
		return
	}

	msg := contact.Message{
		Name:  c.PostForm("fullName"),
		Email: c.PostForm("email"),
		Body:  c.PostForm("message"),
	}
	err := s.relay.Send(c.Request.Context(), msg)
	switch {
	case err == nil:
		c.HTML(http.StatusOK, "contact-success.html", gin.H{
			"success": "Thank you for your message! I'll get back to you soon.",
		})
	case errors.Is(err, contact.ErrInvalidMessage):
		c.HTML(http.StatusUnprocessableEntity, "contact-error.html", gin.H{
			"error": "Please fill in your name, a valid email address and a message.",
		})
	default:
		if errors.Is(err, contact.ErrNotConfigured) {
			logger.Warn().Msg("contact form used but SMTP is not configured")
		} else {
			logger.Error().Err(err).Msg("sending contact email")
		}
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
	}
}
