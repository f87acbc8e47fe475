package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srworkflow/workflow/internal/history"
	"github.com/srworkflow/workflow/internal/identity"
	"github.com/srworkflow/workflow/internal/session"
	"github.com/srworkflow/workflow/internal/timer"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	return c.now
}

func TestTrackingEndToEnd(t *testing.T) {
	ctx := context.Background()

	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			db := openTestDB(t, driver)

			clock := &stepClock{
				now: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
			}

			owner := identity.NewContext()
			owner.SignIn(identity.User{ID: "u1", Email: "me@example.com"})

			var finalized []session.Session

			ctrl := session.NewController(
				db,
				timer.New(timer.WithClock(clock)),
				owner,
				session.WithClock(clock),
				session.WithFinalizeHook(func(_ context.Context, s session.Session) {
					finalized = append(finalized, s)
				}),
			)

			require.NoError(t, ctrl.OnStart(ctx, 10))

			clock.now = clock.now.Add(1800 * time.Second)

			summary, err := ctrl.OnStop(ctx)
			require.NoError(t, err)
			assert.InDelta(t, 425.0, summary.EarningsINR, 1e-9)

			_, open := ctrl.Active()
			assert.False(t, open)
			assert.Equal(t, timer.Idle, ctrl.State().Status)

			sessions := ctrl.Sessions()
			require.Len(t, sessions, 1)
			require.Len(t, finalized, 1)

			sess := sessions[0]
			assert.Equal(t, summary.ID, sess.ID)
			assert.Equal(t, "u1", sess.OwnerID)
			assert.Equal(t, 1800*time.Second, sess.Duration())
			assert.InDelta(t, 425.0, sess.Earnings(), 1e-9)

			groups, invalid := history.Aggregate(
				sessions,
				history.Criteria{},
				history.Descending,
				time.UTC,
			)
			assert.Empty(t, invalid)
			require.Len(t, groups, 1)
			assert.Equal(t, "2024-03-10", groups[0].Key)
			assert.InDelta(t, 425.0, groups[0].TotalEarningsINR, 1e-9)
		})
	}
}
