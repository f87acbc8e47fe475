package history

import (
	"time"

	"github.com/srworkflow/workflow/internal/session"
	"github.com/srworkflow/workflow/internal/timeutil"
)

// Criteria restricts which sessions are shown. Every field is optional and
// all supplied fields must match.
type Criteria struct {
	// DateFrom and DateTo are inclusive calendar-day bounds on the start time
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`
	// MinEarnings and MaxEarnings are inclusive bounds on the recorded
	// earnings. Sessions without earnings count as zero.
	MinEarnings *float64 `json:"min_earnings,omitempty"`
	MaxEarnings *float64 `json:"max_earnings,omitempty"`
}

// IsZero reports whether no criteria are set.
func (c *Criteria) IsZero() bool {
	return c.DateFrom == nil && c.DateTo == nil &&
		c.MinEarnings == nil && c.MaxEarnings == nil
}

// Clear removes all criteria.
func (c *Criteria) Clear() {
	*c = Criteria{}
}

// Match reports whether sess satisfies every criterion.
func (c *Criteria) Match(sess *session.Session, loc *time.Location) bool {
	loc = location(loc)
	start := sess.StartTime.In(loc)

	if c.DateFrom != nil &&
		start.Before(timeutil.RoundToStart(c.DateFrom.In(loc))) {
		return false
	}

	if c.DateTo != nil &&
		start.After(timeutil.RoundToEnd(c.DateTo.In(loc))) {
		return false
	}

	earned := sess.Earnings()

	if c.MinEarnings != nil && earned < *c.MinEarnings {
		return false
	}

	if c.MaxEarnings != nil && earned > *c.MaxEarnings {
		return false
	}

	return true
}

// Filter returns the sessions that satisfy criteria, preserving order.
func Filter(
	sessions []session.Session,
	criteria Criteria,
	loc *time.Location,
) []session.Session {
	if criteria.IsZero() {
		return sessions
	}

	out := make([]session.Session, 0, len(sessions))

	for i := range sessions {
		if criteria.Match(&sessions[i], loc) {
			out = append(out, sessions[i])
		}
	}

	return out
}
