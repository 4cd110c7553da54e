// Package session keeps per-visitor chat histories in memory. Nothing here
// outlives the process.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/chat"
	"github.com/Zachkp/portfolio/internal/logger"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

type entry struct {
	conv     chat.Conversation
	lastSeen time.Time
}

// Store maps session ids to conversations. It is safe for concurrent use.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*entry
	ttl         time.Duration
	maxSessions int
	now         func() time.Time
}

// NewStore returns a store that forgets sessions idle for longer than ttl.
// maxSessions caps the number of live sessions; zero means no cap.
func NewStore(ttl time.Duration, maxSessions int) *Store {
	return &Store{
		sessions:    make(map[string]*entry),
		ttl:         ttl,
		maxSessions: maxSessions,
		now:         time.Now,
	}
}

// Create starts an empty session and returns its id.
func (s *Store) Create() string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.evictOldestLocked()
	}
	s.sessions[id] = &entry{lastSeen: s.now()}
	return id
}

// Ensure returns id if it names a live session, or a fresh session id.
func (s *Store) Ensure(id string) string {
	if id != "" {
		s.mu.Lock()
		e, ok := s.sessions[id]
		if ok && !s.expiredLocked(e) {
			s.mu.Unlock()
			return id
		}
		s.mu.Unlock()
	}
	return s.Create()
}

// Exchange appends a user message, computes the reply with respond over the
// full history, appends the reply, and returns it. respond runs under the
// session lock so turns of one session never interleave.
func (s *Store) Exchange(id, message string, respond func([]chat.Turn) chat.Result) (chat.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok || s.expiredLocked(e) {
		return chat.Result{}, ErrNotFound
	}
	e.conv.Append(chat.RoleUser, message)
	res := respond(e.conv.Turns())
	e.conv.Append(chat.RoleAssistant, res.Text)
	e.lastSeen = s.now()
	return res, nil
}

// History returns a copy of the session's turns.
func (s *Store) History(id string) ([]chat.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok || s.expiredLocked(e) {
		return nil, ErrNotFound
	}
	return e.conv.Turns(), nil
}

// Len returns the number of sessions held, including expired ones not yet swept.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.sessions {
		if s.expiredLocked(e) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.Debug().Int("removed", n).Msg("expired chat sessions swept")
			}
		}
	}
}

func (s *Store) expiredLocked(e *entry) bool {
	return s.ttl > 0 && s.now().Sub(e.lastSeen) > s.ttl
}

func (s *Store) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, e := range s.sessions {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
	}
}
