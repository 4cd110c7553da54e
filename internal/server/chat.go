package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/chat"
	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/session"
)

const (
	maxChatBodySize   = 64 << 10
	sessionCookieName = "chat_session"
)

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	chat.Result
	SessionID string `json:"session_id"`
	DelayMS   int64  `json:"delay_ms"`
}

type historyResponse struct {
	SessionID string      `json:"session_id"`
	Turns     []chat.Turn `json:"turns"`
}

func (s *Server) registerChat() {
	limit := s.limiter.middleware()
	s.engine.POST("/api/chat", limit, s.handleChatAPI)
	s.engine.GET("/api/chat/history", s.handleChatHistory)
	s.engine.POST("/chat", limit, s.handleChatFragment)
}

func (s *Server) handleChatAPI(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxChatBodySize)

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, res := s.exchange(req.SessionID, req.Message)
	c.JSON(http.StatusOK, chatResponse{
		Result:    res,
		SessionID: id,
		DelayMS:   s.pacing.Delay(res.Text).Milliseconds(),
	})
}

func (s *Server) handleChatHistory(c *gin.Context) {
	id := c.Query("session_id")
	turns, err := s.sessions.History(id)
	if errors.Is(err, session.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	if turns == nil {
		turns = []chat.Turn{}
	}
	c.JSON(http.StatusOK, historyResponse{SessionID: id, Turns: turns})
}

// handleChatFragment serves the HTMX widget on the index page. The session
// id travels in a cookie.
func (s *Server) handleChatFragment(c *gin.Context) {
	message := c.PostForm("message")
	cookie, _ := c.Cookie(sessionCookieName)

	id, res := s.exchange(cookie, message)
	if id != cookie {
		maxAge := int(s.cfg.Chat.SessionTTL().Seconds())
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookieName, id, maxAge, "/", "", false, true)
	}

	c.HTML(http.StatusOK, "chat-bubble.html", gin.H{
		"question": message,
		"reply":    renderReply(res.Text),
		"rule":     string(res.Rule),
		"delayMS":  s.pacing.Delay(res.Text).Milliseconds(),
	})
}

// exchange runs one turn in the session named by id, starting a new session
// when id is empty or unknown. It returns the session id actually used.
func (s *Server) exchange(id, message string) (string, chat.Result) {
	id = s.sessions.Ensure(id)
	res, err := s.sessions.Exchange(id, message, s.responder.Reply)
	if errors.Is(err, session.ErrNotFound) {
		// Expired between Ensure and Exchange.
		id = s.sessions.Create()
		res, _ = s.sessions.Exchange(id, message, s.responder.Reply)
	}
	s.recordRuleHit(res.Rule)
	return id, res
}

func (s *Server) recordRuleHit(rule chat.RuleID) {
	if s.analytics == nil || rule == "" {
		return
	}
	at := s.now()
	s.background(func() {
		if err := s.analytics.RecordRuleHit(context.Background(), string(rule), at); err != nil {
			logger.Error().Err(err).Str("rule", string(rule)).Msg("recording rule hit")
		}
	})
}
