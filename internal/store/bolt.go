package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/srworkflow/workflow/internal/identity"
	"github.com/srworkflow/workflow/internal/session"
)

var (
	sessionBucket = []byte("sessions")
	userBucket    = []byte("users")
	authBucket    = []byte("auth")
	currentKey    = []byte("current")
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
	logger *slog.Logger
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errWorkflowRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string, logger *slog.Logger) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{sessionBucket, userBucket, authBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Client{
		DB:     db,
		logger: logger,
	}, nil
}

// CreateSession stores a new open session under a random ID.
func (c *Client) CreateSession(
	_ context.Context,
	startTime time.Time,
	hourlyRateUSD float64,
	ownerID string,
) (*session.Session, error) {
	sess := session.Session{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		StartTime:     startTime,
		HourlyRateUSD: hourlyRateUSD,
	}

	value, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}

	err = c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).Put([]byte(sess.ID), value)
	})
	if err != nil {
		return nil, err
	}

	return &sess, nil
}

// FinalizeSession records the end time and earnings of an open session.
func (c *Client) FinalizeSession(
	_ context.Context,
	id string,
	endTime time.Time,
	earningsINR float64,
) error {
	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionBucket)

		v := b.Get([]byte(id))
		if v == nil {
			return session.ErrSessionNotFound
		}

		var sess session.Session
		if err := json.Unmarshal(v, &sess); err != nil {
			return err
		}

		if !sess.InProgress() {
			return session.ErrAlreadyFinalized
		}

		sess.EndTime = &endTime
		sess.EarningsINR = &earningsINR

		value, err := json.Marshal(sess)
		if err != nil {
			return err
		}

		return b.Put([]byte(id), value)
	})
}

// ListSessions returns the owner's sessions, most recently started first.
// Rows that cannot be decoded are logged and skipped.
func (c *Client) ListSessions(
	_ context.Context,
	ownerID string,
) ([]session.Session, error) {
	var sessions []session.Session

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionBucket).ForEach(func(k, v []byte) error {
			var sess session.Session

			if err := json.Unmarshal(v, &sess); err != nil {
				c.logger.Warn(
					"skipping unreadable session",
					slog.String("key", string(k)),
					slog.Any("error", err),
				)

				return nil
			}

			if sess.OwnerID == ownerID {
				sessions = append(sessions, sess)
			}

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sortByStartDesc(sessions)

	return sessions, nil
}

func sortByStartDesc(sessions []session.Session) {
	slices.SortStableFunc(sessions, func(a, b session.Session) int {
		return b.StartTime.Compare(a.StartTime)
	})
}

// CreateAccount stores a new account keyed by its email.
func (c *Client) CreateAccount(
	_ context.Context,
	acct identity.Account,
) (*identity.Account, error) {
	acct.ID = uuid.NewString()

	value, err := json.Marshal(acct)
	if err != nil {
		return nil, err
	}

	err = c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(userBucket)

		if b.Get([]byte(acct.Email)) != nil {
			return identity.ErrUserExists
		}

		return b.Put([]byte(acct.Email), value)
	})
	if err != nil {
		return nil, err
	}

	return &acct, nil
}

// AccountByEmail looks up an account by its email.
func (c *Client) AccountByEmail(
	_ context.Context,
	email string,
) (*identity.Account, error) {
	var acct identity.Account

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(userBucket).Get([]byte(email))
		if v == nil {
			return identity.ErrUserNotFound
		}

		return json.Unmarshal(v, &acct)
	})
	if err != nil {
		return nil, err
	}

	return &acct, nil
}

// SaveSignedIn persists the signed-in user, or clears it if u is nil.
func (c *Client) SaveSignedIn(_ context.Context, u *identity.User) error {
	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(authBucket)

		if u == nil {
			return b.Delete(currentKey)
		}

		value, err := json.Marshal(u)
		if err != nil {
			return err
		}

		return b.Put(currentKey, value)
	})
}

// SignedIn returns the persisted signed-in user, if any.
func (c *Client) SignedIn(context.Context) (*identity.User, error) {
	var u *identity.User

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(authBucket).Get(currentKey)
		if v == nil {
			return nil
		}

		u = &identity.User{}

		return json.Unmarshal(v, u)
	})
	if err != nil {
		return nil, fmt.Errorf("reading signed-in user: %w", err)
	}

	return u, nil
}
