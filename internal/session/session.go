// Package session defines tracked work sessions and the controller that ties
// their persisted lifecycle to the stopwatch.
package session

import (
	"context"
	"errors"
	"time"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrAlreadyFinalized = errors.New("session has already been finalized")
)

// Session is one persisted start-to-stop tracking interval.
type Session struct {
	// EndTime is nil until the session is finalized
	EndTime *time.Time `json:"end_time"`
	// EarningsINR is nil until the session is finalized
	EarningsINR   *float64  `json:"earnings_inr"`
	StartTime     time.Time `json:"start_time"`
	ID            string    `json:"id"`
	OwnerID       string    `json:"user_id"`
	HourlyRateUSD float64   `json:"hourly_rate"`
}

// InProgress reports whether the session has not been finalized.
func (s *Session) InProgress() bool {
	return s.EndTime == nil
}

// Duration returns the wall-clock length of a finalized session. Open
// sessions have no duration.
func (s *Session) Duration() time.Duration {
	if s.EndTime == nil {
		return 0
	}

	return s.EndTime.Sub(s.StartTime)
}

// Earnings returns the recorded earnings, or zero if none were recorded.
func (s *Session) Earnings() float64 {
	if s.EarningsINR == nil {
		return 0
	}

	return *s.EarningsINR
}

// Store persists sessions.
//
//go:generate mockgen -source=session.go -destination=mock_store_test.go -package=session
type Store interface {
	// CreateSession records a new open session and returns it with its
	// assigned ID
	CreateSession(
		ctx context.Context,
		startTime time.Time,
		hourlyRateUSD float64,
		ownerID string,
	) (*Session, error)
	// FinalizeSession sets the end time and earnings of an open session
	FinalizeSession(
		ctx context.Context,
		id string,
		endTime time.Time,
		earningsINR float64,
	) error
	// ListSessions returns the owner's sessions, most recently started first
	ListSessions(ctx context.Context, ownerID string) ([]Session, error)
}
