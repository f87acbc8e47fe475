package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/srworkflow/workflow/internal/session"
	"github.com/srworkflow/workflow/internal/timeutil"
)

// View is the bucket size of an analytics chart.
type View int

const (
	Day View = iota
	Week
	Month
)

func (v View) String() string {
	switch v {
	case Week:
		return "week"
	case Month:
		return "month"
	default:
		return "day"
	}
}

// ParseView converts "day", "week" or "month" into a View.
func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "day":
		return Day, nil
	case "week":
		return Week, nil
	case "month":
		return Month, nil
	default:
		return Day, fmt.Errorf("unknown chart view %q: use day, week or month", s)
	}
}

// Bucket is one bar of an analytics chart.
type Bucket struct {
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Hours    float64 `json:"hours"`
	Earnings float64 `json:"earnings"`
}

// Chart totals hours and earnings for sessions that started within
// [from, to]. Every day in the range gets a bucket, even without sessions.
// Week and Month views merge the daily buckets, with weeks starting on
// Sunday.
func Chart(
	sessions []session.Session,
	from, to time.Time,
	view View,
	loc *time.Location,
) []Bucket {
	loc = location(loc)
	from, to = from.In(loc), to.In(loc)

	if to.Before(from) {
		return nil
	}

	var days []Bucket

	index := make(map[string]int)

	for d := timeutil.RoundToStart(from); !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(timeutil.DayKeyLayout)
		index[key] = len(days)

		days = append(days, Bucket{
			Key:   key,
			Label: d.Format("Jan 02"),
		})
	}

	for i := range sessions {
		sess := &sessions[i]

		if sess.StartTime.IsZero() ||
			sess.StartTime.Before(from) || sess.StartTime.After(to) {
			continue
		}

		pos, ok := index[timeutil.DayKey(sess.StartTime, loc)]
		if !ok {
			continue
		}

		days[pos].Hours += sess.Duration().Hours()
		days[pos].Earnings += sess.Earnings()
	}

	if view == Day {
		return days
	}

	return merge(days, view, loc)
}

func merge(days []Bucket, view View, loc *time.Location) []Bucket {
	var out []Bucket

	for _, day := range days {
		d, err := time.ParseInLocation(timeutil.DayKeyLayout, day.Key, loc)
		if err != nil {
			continue
		}

		var key, label string

		switch view {
		case Week:
			start := timeutil.StartOfWeek(d)
			end := start.AddDate(0, 0, 6)
			key = start.Format(timeutil.DayKeyLayout)
			label = start.Format("Jan 02") + "-" + end.Format("Jan 02")
		default:
			key = d.Format("2006-01")
			label = d.Format("Jan 2006")
		}

		if n := len(out); n > 0 && out[n-1].Key == key {
			out[n-1].Hours += day.Hours
			out[n-1].Earnings += day.Earnings

			continue
		}

		out = append(out, Bucket{
			Key:      key,
			Label:    label,
			Hours:    day.Hours,
			Earnings: day.Earnings,
		})
	}

	return out
}
