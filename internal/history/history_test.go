package history

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/srworkflow/workflow/internal/session"
)

func at(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02T15:04", s, time.UTC)
	if err != nil {
		panic(err)
	}

	return t
}

func finished(id, start string, minutes int, earned float64) session.Session {
	st := at(start)
	end := st.Add(time.Duration(minutes) * time.Minute)

	return session.Session{
		ID:            id,
		StartTime:     st,
		EndTime:       &end,
		HourlyRateUSD: 10,
		EarningsINR:   &earned,
	}
}

func keys(groups []DayGroup) []string {
	out := make([]string, 0, len(groups))
	for i := range groups {
		out = append(out, groups[i].Key)
	}

	return out
}

func ids(sessions []session.Session) []string {
	out := make([]string, 0, len(sessions))
	for i := range sessions {
		out = append(out, sessions[i].ID)
	}

	return out
}

func TestGroupByDay(t *testing.T) {
	open := session.Session{ID: "d", StartTime: at("2024-01-01T23:00")}

	sessions := []session.Session{
		finished("a", "2024-01-01T10:00", 30, 425),
		finished("b", "2024-01-01T22:00", 60, 850),
		finished("c", "2024-01-02T01:00", 15, 10),
		open,
	}

	groups, invalid := GroupByDay(sessions, time.UTC)

	if len(invalid) != 0 {
		t.Fatalf("Expected no invalid entries, but got: %v", invalid)
	}

	if diff := cmp.Diff([]string{"2024-01-01", "2024-01-02"}, keys(groups)); diff != "" {
		t.Fatalf("day keys mismatch (-want +got):\n%s", diff)
	}

	first := groups[0]

	if diff := cmp.Diff([]string{"a", "b", "d"}, ids(first.Sessions)); diff != "" {
		t.Errorf("session order mismatch (-want +got):\n%s", diff)
	}

	if first.TotalDuration != 90*time.Minute {
		t.Errorf("Expected: %v, but got: %v", 90*time.Minute, first.TotalDuration)
	}

	if first.TotalDurationMs() != 5_400_000 {
		t.Errorf("Expected: %d, but got: %d", 5_400_000, first.TotalDurationMs())
	}

	if first.TotalEarningsINR != 1275 {
		t.Errorf("Expected: %v, but got: %v", 1275.0, first.TotalEarningsINR)
	}

	if len(groups[1].Sessions) != 1 {
		t.Errorf("Expected one session on 2024-01-02, but got: %d", len(groups[1].Sessions))
	}
}

func TestGroupByDayUsesLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)

	sessions := []session.Session{
		finished("a", "2024-01-01T20:00", 10, 1),
		finished("b", "2024-01-01T10:00", 10, 1),
	}

	groups, _ := GroupByDay(sessions, ist)

	if diff := cmp.Diff([]string{"2024-01-02", "2024-01-01"}, keys(groups)); diff != "" {
		t.Errorf("day keys mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupByDayExcludesMalformed(t *testing.T) {
	bad := finished("bad", "2024-01-01T10:00", 10, 5)
	before := bad.StartTime.Add(-time.Hour)
	bad.EndTime = &before

	sessions := []session.Session{
		{ID: "zero"},
		bad,
		finished("ok", "2024-01-01T11:00", 10, 5),
	}

	groups, invalid := GroupByDay(sessions, time.UTC)

	if len(groups) != 1 || len(groups[0].Sessions) != 1 {
		t.Fatalf("Expected one group with one session, but got: %+v", groups)
	}

	if len(invalid) != 2 {
		t.Fatalf("Expected 2 invalid entries, but got: %d", len(invalid))
	}

	if !errors.Is(invalid[0], errMissingStart) {
		t.Errorf("Expected errMissingStart, but got: %v", invalid[0].Err)
	}

	if !errors.Is(invalid[1], errEndBeforeStart) {
		t.Errorf("Expected errEndBeforeStart, but got: %v", invalid[1].Err)
	}
}

func TestValid(t *testing.T) {
	ok := finished("ok", "2024-01-01T11:00", 10, 5)

	valid, invalid := Valid([]session.Session{{ID: "zero"}, ok})

	if diff := cmp.Diff([]session.Session{ok}, valid); diff != "" {
		t.Errorf("valid mismatch (-want +got):\n%s", diff)
	}

	if len(invalid) != 1 || invalid[0].Session.ID != "zero" {
		t.Fatalf("Expected the zero entry to be invalid, but got: %+v", invalid)
	}

	if !errors.Is(invalid[0], errMissingStart) {
		t.Errorf("Expected: %v, but got: %v", errMissingStart, invalid[0].Err)
	}
}

func TestDayGroupJSON(t *testing.T) {
	groups, _ := GroupByDay([]session.Session{
		finished("a", "2024-01-01T10:00", 90, 5),
	}, time.UTC)

	b, err := json.Marshal(groups[0])
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}

	if got["total_duration_ms"] != float64(90*60*1000) {
		t.Errorf("Expected: %v, but got: %v", 90*60*1000, got["total_duration_ms"])
	}

	if got["key"] != "2024-01-01" {
		t.Errorf("Expected: 2024-01-01, but got: %v", got["key"])
	}
}

func TestSortDays(t *testing.T) {
	sessions := []session.Session{
		finished("a", "2024-01-02T10:00", 1, 1),
		finished("b", "2023-12-31T10:00", 1, 1),
		finished("c", "2024-01-10T10:00", 1, 1),
	}

	cases := []struct {
		order Order
		want  []string
	}{
		{Descending, []string{"2024-01-10", "2024-01-02", "2023-12-31"}},
		{Ascending, []string{"2023-12-31", "2024-01-02", "2024-01-10"}},
		{Ascending.Toggle(), []string{"2024-01-10", "2024-01-02", "2023-12-31"}},
	}

	for _, tc := range cases {
		groups, _ := GroupByDay(sessions, time.UTC)

		got := keys(SortDays(groups, tc.order))
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("order %s mismatch (-want +got):\n%s", tc.order, diff)
		}
	}

	var zero Order
	if zero != Descending {
		t.Errorf("Expected zero Order to be Descending")
	}
}

func TestFilter(t *testing.T) {
	sessions := []session.Session{
		finished("ten", "2024-01-01T10:00", 1, 10),
		finished("fifty", "2024-01-02T10:00", 1, 50),
		finished("ninety", "2024-01-03T10:00", 1, 90),
		{ID: "open", StartTime: at("2024-01-03T12:00")},
	}

	ptr := func(f float64) *float64 { return &f }
	day := func(s string) *time.Time {
		d := at(s + "T00:00")
		return &d
	}

	cases := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{
			name: "no criteria",
			want: []string{"ten", "fifty", "ninety", "open"},
		},
		{
			name:     "earnings range",
			criteria: Criteria{MinEarnings: ptr(20), MaxEarnings: ptr(80)},
			want:     []string{"fifty"},
		},
		{
			name:     "inclusive earnings bounds",
			criteria: Criteria{MinEarnings: ptr(10), MaxEarnings: ptr(50)},
			want:     []string{"ten", "fifty"},
		},
		{
			name:     "absent earnings count as zero",
			criteria: Criteria{MaxEarnings: ptr(0)},
			want:     []string{"open"},
		},
		{
			name:     "inclusive day range",
			criteria: Criteria{DateFrom: day("2024-01-02"), DateTo: day("2024-01-03")},
			want:     []string{"fifty", "ninety", "open"},
		},
		{
			name: "date and earnings",
			criteria: Criteria{
				DateFrom:    day("2024-01-02"),
				MinEarnings: ptr(60),
			},
			want: []string{"ninety"},
		},
	}

	for _, tc := range cases {
		got := ids(Filter(sessions, tc.criteria, time.UTC))
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%s: mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestCriteriaClear(t *testing.T) {
	floor := 5.0
	c := Criteria{MinEarnings: &floor}

	if c.IsZero() {
		t.Fatal("Expected criteria to be set")
	}

	c.Clear()

	if !c.IsZero() {
		t.Errorf("Expected criteria to be cleared, but got: %+v", c)
	}
}

func TestAggregate(t *testing.T) {
	sessions := []session.Session{
		finished("a", "2024-01-01T10:00", 30, 10),
		finished("b", "2024-01-02T10:00", 30, 50),
		finished("c", "2024-01-02T12:00", 30, 60),
	}

	floor := 20.0

	groups, _ := Aggregate(sessions, Criteria{MinEarnings: &floor}, Ascending, time.UTC)

	if diff := cmp.Diff([]string{"2024-01-02"}, keys(groups)); diff != "" {
		t.Fatalf("day keys mismatch (-want +got):\n%s", diff)
	}

	if groups[0].TotalEarningsINR != 110 {
		t.Errorf("Expected: %v, but got: %v", 110.0, groups[0].TotalEarningsINR)
	}
}

func TestChart(t *testing.T) {
	sessions := []session.Session{
		finished("a", "2024-01-06T10:00", 90, 100),
		finished("b", "2024-01-07T10:00", 30, 50),
		finished("c", "2024-01-07T12:00", 60, 25),
		finished("late", "2024-02-01T10:00", 60, 1000),
	}

	from := at("2024-01-05T00:00")
	to := at("2024-01-08T23:59")

	cases := []struct {
		view View
		want []Bucket
	}{
		{
			view: Day,
			want: []Bucket{
				{Key: "2024-01-05", Label: "Jan 05"},
				{Key: "2024-01-06", Label: "Jan 06", Hours: 1.5, Earnings: 100},
				{Key: "2024-01-07", Label: "Jan 07", Hours: 1.5, Earnings: 75},
				{Key: "2024-01-08", Label: "Jan 08"},
			},
		},
		{
			view: Week,
			want: []Bucket{
				{Key: "2023-12-31", Label: "Dec 31-Jan 06", Hours: 1.5, Earnings: 100},
				{Key: "2024-01-07", Label: "Jan 07-Jan 13", Hours: 1.5, Earnings: 75},
			},
		},
		{
			view: Month,
			want: []Bucket{
				{Key: "2024-01", Label: "Jan 2024", Hours: 3, Earnings: 175},
			},
		},
	}

	for _, tc := range cases {
		got := Chart(sessions, from, to, tc.view, time.UTC)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%s view mismatch (-want +got):\n%s", tc.view, diff)
		}
	}
}

func TestParseView(t *testing.T) {
	for input, want := range map[string]View{"": Day, "Week": Week, "month": Month} {
		got, err := ParseView(input)
		if err != nil || got != want {
			t.Errorf("ParseView(%q): expected %v, but got: %v (%v)", input, want, got, err)
		}
	}

	if _, err := ParseView("year"); err == nil {
		t.Error("Expected an error for an unknown view")
	}
}
