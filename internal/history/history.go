// Package history groups tracked sessions by calendar day and filters them
// for display
package history

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/srworkflow/workflow/internal/session"
	"github.com/srworkflow/workflow/internal/timeutil"
)

var (
	errMissingStart   = errors.New("session has no start time")
	errEndBeforeStart = errors.New("session ends before it starts")
)

// Order is the direction in which day groups are listed.
type Order int

const (
	Descending Order = iota
	Ascending
)

// Toggle returns the opposite order.
func (o Order) Toggle() Order {
	if o == Ascending {
		return Descending
	}

	return Ascending
}

func (o Order) String() string {
	if o == Ascending {
		return "asc"
	}

	return "desc"
}

// ParseOrder converts "asc" or "desc" into an Order. Anything else yields
// Descending.
func ParseOrder(s string) Order {
	if strings.EqualFold(strings.TrimSpace(s), "asc") {
		return Ascending
	}

	return Descending
}

// DayGroup holds the sessions that started on one calendar day.
type DayGroup struct {
	Date             time.Time         `json:"date"`
	Key              string            `json:"key"`
	Sessions         []session.Session `json:"sessions"`
	TotalDuration    time.Duration     `json:"-"`
	TotalEarningsINR float64           `json:"total_earnings_inr"`
}

// TotalDurationMs returns the summed duration in milliseconds.
func (g *DayGroup) TotalDurationMs() int64 {
	return g.TotalDuration.Milliseconds()
}

// MarshalJSON adds the summed duration in milliseconds.
func (g DayGroup) MarshalJSON() ([]byte, error) {
	type group DayGroup

	return json.Marshal(struct {
		group
		TotalDurationMs int64 `json:"total_duration_ms"`
	}{
		group:           group(g),
		TotalDurationMs: g.TotalDurationMs(),
	})
}

// InvalidEntry is a session left out of grouping because its timestamps
// cannot be placed on a day.
type InvalidEntry struct {
	Err     error
	Session session.Session
}

func (e InvalidEntry) Error() string {
	return e.Session.ID + ": " + e.Err.Error()
}

func (e InvalidEntry) Unwrap() error {
	return e.Err
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}

	return loc
}

func check(sess *session.Session) error {
	if sess.StartTime.IsZero() {
		return errMissingStart
	}

	if sess.EndTime != nil && sess.EndTime.Before(sess.StartTime) {
		return errEndBeforeStart
	}

	return nil
}

// Valid splits sessions into those that can be placed on a day and the
// malformed rest, keeping the input order of both.
func Valid(sessions []session.Session) ([]session.Session, []InvalidEntry) {
	var (
		valid   = make([]session.Session, 0, len(sessions))
		invalid []InvalidEntry
	)

	for i := range sessions {
		if err := check(&sessions[i]); err != nil {
			invalid = append(invalid, InvalidEntry{Session: sessions[i], Err: err})
			continue
		}

		valid = append(valid, sessions[i])
	}

	return valid, invalid
}

// GroupByDay groups sessions by the day their start time falls on in loc.
// Groups appear in order of first appearance and keep the input order of
// their sessions. Open sessions count as zero duration and sessions without
// earnings count as zero earnings.
func GroupByDay(
	sessions []session.Session,
	loc *time.Location,
) ([]DayGroup, []InvalidEntry) {
	var (
		groups  []DayGroup
		invalid []InvalidEntry
	)

	loc = location(loc)
	index := make(map[string]int)

	for i := range sessions {
		sess := sessions[i]

		if err := check(&sess); err != nil {
			invalid = append(invalid, InvalidEntry{Session: sess, Err: err})
			continue
		}

		key := timeutil.DayKey(sess.StartTime, loc)

		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos

			groups = append(groups, DayGroup{
				Key:  key,
				Date: timeutil.RoundToStart(sess.StartTime.In(loc)),
			})
		}

		g := &groups[pos]
		g.Sessions = append(g.Sessions, sess)
		g.TotalDuration += sess.Duration()
		g.TotalEarningsINR += sess.Earnings()
	}

	return groups, invalid
}

// SortDays orders groups by day key. The input slice is sorted in place and
// returned.
func SortDays(groups []DayGroup, order Order) []DayGroup {
	slices.SortStableFunc(groups, func(a, b DayGroup) int {
		if order == Ascending {
			return strings.Compare(a.Key, b.Key)
		}

		return strings.Compare(b.Key, a.Key)
	})

	return groups
}

// Aggregate filters sessions, groups the survivors by day and sorts the
// groups.
func Aggregate(
	sessions []session.Session,
	criteria Criteria,
	order Order,
	loc *time.Location,
) ([]DayGroup, []InvalidEntry) {
	groups, invalid := GroupByDay(Filter(sessions, criteria, loc), loc)

	return SortDays(groups, order), invalid
}
