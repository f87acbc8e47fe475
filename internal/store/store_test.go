package store

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/srworkflow/workflow/internal/identity"
	"github.com/srworkflow/workflow/internal/session"
)

var drivers = []string{DriverBolt, DriverSQLite}

func openTestDB(t *testing.T, driver string) DB {
	t.Helper()

	db, err := Open(driver, filepath.Join(t.TempDir(), "workflow.db"), nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			db := openTestDB(t, driver)

			first, err := db.CreateSession(ctx, base, 10, "u1")
			require.NoError(t, err)
			assert.NotEmpty(t, first.ID)
			assert.True(t, first.InProgress())

			second, err := db.CreateSession(ctx, base.Add(2*time.Hour), 12, "u1")
			require.NoError(t, err)

			_, err = db.CreateSession(ctx, base.Add(time.Hour), 20, "u2")
			require.NoError(t, err)

			end := base.Add(30 * time.Minute)
			require.NoError(t, db.FinalizeSession(ctx, first.ID, end, 425))

			err = db.FinalizeSession(ctx, first.ID, end, 425)
			assert.ErrorIs(t, err, session.ErrAlreadyFinalized)

			err = db.FinalizeSession(ctx, "missing", end, 1)
			assert.ErrorIs(t, err, session.ErrSessionNotFound)

			list, err := db.ListSessions(ctx, "u1")
			require.NoError(t, err)
			require.Len(t, list, 2)

			assert.Equal(t, second.ID, list[0].ID)
			assert.True(t, list[0].InProgress())
			assert.Nil(t, list[0].EarningsINR)

			assert.Equal(t, first.ID, list[1].ID)
			assert.True(t, list[1].StartTime.Equal(base))
			require.NotNil(t, list[1].EndTime)
			assert.True(t, list[1].EndTime.Equal(end))
			assert.InDelta(t, 425.0, list[1].Earnings(), 1e-9)
			assert.InDelta(t, 10.0, list[1].HourlyRateUSD, 1e-9)

			none, err := db.ListSessions(ctx, "nobody")
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

func TestAccounts(t *testing.T) {
	ctx := context.Background()

	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			db := openTestDB(t, driver)

			created, err := db.CreateAccount(ctx, identity.Account{
				User:         identity.User{Email: "me@example.com"},
				PasswordHash: []byte("hash"),
				CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			})
			require.NoError(t, err)
			assert.NotEmpty(t, created.ID)

			_, err = db.CreateAccount(ctx, identity.Account{
				User:         identity.User{Email: "me@example.com"},
				PasswordHash: []byte("other"),
			})
			assert.ErrorIs(t, err, identity.ErrUserExists)

			got, err := db.AccountByEmail(ctx, "me@example.com")
			require.NoError(t, err)
			assert.Equal(t, created.ID, got.ID)
			assert.Equal(t, []byte("hash"), got.PasswordHash)

			_, err = db.AccountByEmail(ctx, "nobody@example.com")
			assert.ErrorIs(t, err, identity.ErrUserNotFound)

			u, err := db.SignedIn(ctx)
			require.NoError(t, err)
			assert.Nil(t, u)

			require.NoError(t, db.SaveSignedIn(ctx, &created.User))

			u, err = db.SignedIn(ctx)
			require.NoError(t, err)
			assert.Equal(t, &created.User, u)

			require.NoError(t, db.SaveSignedIn(ctx, nil))

			u, err = db.SignedIn(ctx)
			require.NoError(t, err)
			assert.Nil(t, u)
		})
	}
}

func TestListSkipsUnreadableRows(t *testing.T) {
	ctx := context.Background()

	c, err := NewClient(
		filepath.Join(t.TempDir(), "workflow.db"),
		slog.New(slog.DiscardHandler),
	)
	require.NoError(t, err)

	defer c.Close()

	_, err = c.CreateSession(ctx, time.Now(), 5, "u1")
	require.NoError(t, err)

	err = c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Put([]byte("broken"), []byte("{"))
	})
	require.NoError(t, err)

	list, err := c.ListSessions(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestOpenLockedDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workflow.db")

	db, err := Open(DriverBolt, path, nil)
	require.NoError(t, err)

	defer db.Close()

	_, err = Open(DriverBolt, path, nil)
	assert.ErrorIs(t, err, errWorkflowRunning)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("postgres", filepath.Join(t.TempDir(), "x.db"), nil)
	assert.ErrorIs(t, err, errUnknownDriver)
}
