package session

import (
	"testing"
	"time"
)

func TestSessionDerivedValues(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	open := Session{StartTime: start, HourlyRateUSD: 10}

	if !open.InProgress() {
		t.Error("Expected session without end time to be in progress")
	}

	if open.Duration() != 0 || open.Earnings() != 0 {
		t.Errorf(
			"Expected open session to have zero duration and earnings, got: %v, %v",
			open.Duration(),
			open.Earnings(),
		)
	}

	end := start.Add(90 * time.Minute)
	amount := 1275.0

	done := Session{StartTime: start, EndTime: &end, EarningsINR: &amount}

	if done.InProgress() {
		t.Error("Expected finalized session not to be in progress")
	}

	if done.Duration() != 90*time.Minute {
		t.Errorf("Expected: 90m, but got: %v", done.Duration())
	}

	if done.Earnings() != amount {
		t.Errorf("Expected: %v, but got: %v", amount, done.Earnings())
	}
}
