package storage

import (
	"context"
	"fmt"
	"time"
)

// Visit is one tracked page view. The client IP is only ever stored hashed.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// RuleHit counts how often a chat rule answered.
type RuleHit struct {
	Rule    string    `json:"rule"`
	Hits    int64     `json:"hits"`
	LastHit time.Time `json:"last_hit"`
}

// Stats summarizes site traffic and chat topics for the admin dashboard.
type Stats struct {
	TotalVisitors    int64     `json:"total_visitors"`
	UniqueVisitors   int64     `json:"unique_visitors"`
	VisitorsToday    int64     `json:"visitors_today"`
	VisitorsThisWeek int64     `json:"visitors_this_week"`
	TotalChats       int64     `json:"total_chats"`
	RuleHits         []RuleHit `json:"rule_hits"`
	RecentVisitors   []Visit   `json:"recent_visitors"`
}

const recentVisitorLimit = 50

// RecordVisit stores a page view.
func (s *Store) RecordVisit(ctx context.Context, v Visit) error {
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, visited_at)
		VALUES (?, ?, ?, ?)`,
		v.HashedIP, v.UserAgent, v.Path, formatTime(v.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("recording visit: %w", err)
	}
	return nil
}

// RecordRuleHit increments the counter for rule.
func (s *Store) RecordRuleHit(ctx context.Context, rule string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rule_hits (rule, hits, last_hit) VALUES (?, 1, ?)
		ON CONFLICT(rule) DO UPDATE SET hits = hits + 1, last_hit = excluded.last_hit`,
		rule, formatTime(at),
	)
	if err != nil {
		return fmt.Errorf("recording rule hit: %w", err)
	}
	return nil
}

// RuleHits returns all counters, most frequent first.
func (s *Store) RuleHits(ctx context.Context) ([]RuleHit, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT rule, hits, last_hit FROM rule_hits ORDER BY hits DESC, rule ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying rule hits: %w", err)
	}
	defer rows.Close()

	var hits []RuleHit
	for rows.Next() {
		var h RuleHit
		var last string
		if err := rows.Scan(&h.Rule, &h.Hits, &last); err != nil {
			return nil, fmt.Errorf("scanning rule hit: %w", err)
		}
		h.LastHit = parseTime(last)
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// RecentVisitors returns up to limit visits, newest first.
func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, user_agent, path, visited_at
		FROM visitors
		ORDER BY visited_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying visitors: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		var ts string
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("scanning visitor: %w", err)
		}
		v.Timestamp = parseTime(ts)
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// Stats computes dashboard figures relative to now.
func (s *Store) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	stats := &Stats{}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM visitors").Scan(&stats.TotalVisitors); err != nil {
		return nil, fmt.Errorf("counting visitors: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT hashed_ip) FROM visitors").Scan(&stats.UniqueVisitors); err != nil {
		return nil, fmt.Errorf("counting unique visitors: %w", err)
	}

	now = now.UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM visitors WHERE visited_at >= ?", formatTime(startOfDay),
	).Scan(&stats.VisitorsToday); err != nil {
		return nil, fmt.Errorf("counting today's visitors: %w", err)
	}
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM visitors WHERE visited_at >= ?", formatTime(now.AddDate(0, 0, -7)),
	).Scan(&stats.VisitorsThisWeek); err != nil {
		return nil, fmt.Errorf("counting this week's visitors: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(hits), 0) FROM rule_hits").Scan(&stats.TotalChats); err != nil {
		return nil, fmt.Errorf("summing rule hits: %w", err)
	}

	var err error
	if stats.RuleHits, err = s.RuleHits(ctx); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = s.RecentVisitors(ctx, recentVisitorLimit); err != nil {
		return nil, err
	}
	return stats, nil
}

// PurgeVisitorsBefore deletes visits older than cutoff and returns how many
// were removed.
func (s *Store) PurgeVisitorsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM visitors WHERE visited_at < ?", formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("purging visitors: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
