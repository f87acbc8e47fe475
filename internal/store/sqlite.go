package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/srworkflow/workflow/internal/identity"
	"github.com/srworkflow/workflow/internal/session"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS time_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT,
		hourly_rate REAL NOT NULL,
		earnings_inr REAL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_user
		ON time_entries(user_id, start_time);`,
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash BLOB NOT NULL,
		created_at TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS auth (
		key TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		email TEXT NOT NULL
	);`,
}

// SQLClient is a SQLite database client.
type SQLClient struct {
	*sql.DB
	logger *slog.Logger
}

// NewSQLClient opens the SQLite database at dbPath and creates the schema.
func NewSQLClient(dbPath string, logger *slog.Logger) (*SQLClient, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	for _, query := range schema {
		if _, err = db.Exec(query); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return &SQLClient{
		DB:     db,
		logger: logger,
	}, nil
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// CreateSession inserts a new open time entry.
func (c *SQLClient) CreateSession(
	ctx context.Context,
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

	_, err := c.ExecContext(ctx, `
		INSERT INTO time_entries (id, user_id, start_time, hourly_rate)
		VALUES (?, ?, ?, ?)`,
		sess.ID, sess.OwnerID, formatTime(sess.StartTime), sess.HourlyRateUSD,
	)
	if err != nil {
		return nil, err
	}

	return &sess, nil
}

// FinalizeSession records the end time and earnings of an open entry.
func (c *SQLClient) FinalizeSession(
	ctx context.Context,
	id string,
	endTime time.Time,
	earningsINR float64,
) error {
	res, err := c.ExecContext(ctx, `
		UPDATE time_entries SET end_time = ?, earnings_inr = ?
		WHERE id = ? AND end_time IS NULL`,
		formatTime(endTime), earningsINR, id,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n > 0 {
		return nil
	}

	var exists int

	err = c.QueryRowContext(
		ctx,
		"SELECT COUNT(*) FROM time_entries WHERE id = ?",
		id,
	).Scan(&exists)
	if err != nil {
		return err
	}

	if exists == 0 {
		return session.ErrSessionNotFound
	}

	return session.ErrAlreadyFinalized
}

// ListSessions returns the owner's entries, most recently started first.
// Rows with unparseable timestamps are logged and skipped.
func (c *SQLClient) ListSessions(
	ctx context.Context,
	ownerID string,
) ([]session.Session, error) {
	rows, err := c.QueryContext(ctx, `
		SELECT id, user_id, start_time, end_time, hourly_rate, earnings_inr
		FROM time_entries
		WHERE user_id = ?`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []session.Session

	for rows.Next() {
		var (
			sess     session.Session
			start    string
			end      sql.NullString
			earnings sql.NullFloat64
		)

		err = rows.Scan(
			&sess.ID,
			&sess.OwnerID,
			&start,
			&end,
			&sess.HourlyRateUSD,
			&earnings,
		)
		if err != nil {
			return nil, err
		}

		if err = decodeTimes(&sess, start, end); err != nil {
			c.logger.Warn(
				"skipping unreadable time entry",
				slog.String("id", sess.ID),
				slog.Any("error", err),
			)

			continue
		}

		if earnings.Valid {
			v := earnings.Float64
			sess.EarningsINR = &v
		}

		sessions = append(sessions, sess)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	sortByStartDesc(sessions)

	return sessions, nil
}

func decodeTimes(sess *session.Session, start string, end sql.NullString) error {
	var err error

	sess.StartTime, err = time.Parse(time.RFC3339Nano, start)
	if err != nil {
		return err
	}

	if !end.Valid {
		return nil
	}

	endTime, err := time.Parse(time.RFC3339Nano, end.String)
	if err != nil {
		return err
	}

	sess.EndTime = &endTime

	return nil
}

// CreateAccount inserts a new account.
func (c *SQLClient) CreateAccount(
	ctx context.Context,
	acct identity.Account,
) (*identity.Account, error) {
	acct.ID = uuid.NewString()

	_, err := c.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)`,
		acct.ID, acct.Email, acct.PasswordHash, formatTime(acct.CreatedAt),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) &&
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, identity.ErrUserExists
		}

		return nil, err
	}

	return &acct, nil
}

// AccountByEmail looks up an account by its email.
func (c *SQLClient) AccountByEmail(
	ctx context.Context,
	email string,
) (*identity.Account, error) {
	var (
		acct    identity.Account
		created string
	)

	err := c.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users WHERE email = ?`,
		email,
	).Scan(&acct.ID, &acct.Email, &acct.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, identity.ErrUserNotFound
	}

	if err != nil {
		return nil, err
	}

	acct.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, err
	}

	return &acct, nil
}

// SaveSignedIn persists the signed-in user, or clears it if u is nil.
func (c *SQLClient) SaveSignedIn(ctx context.Context, u *identity.User) error {
	if u == nil {
		_, err := c.ExecContext(
			ctx,
			"DELETE FROM auth WHERE key = ?",
			string(currentKey),
		)

		return err
	}

	_, err := c.ExecContext(ctx, `
		INSERT OR REPLACE INTO auth (key, user_id, email)
		VALUES (?, ?, ?)`,
		string(currentKey), u.ID, u.Email,
	)

	return err
}

// SignedIn returns the persisted signed-in user, if any.
func (c *SQLClient) SignedIn(ctx context.Context) (*identity.User, error) {
	var u identity.User

	err := c.QueryRowContext(
		ctx,
		"SELECT user_id, email FROM auth WHERE key = ?",
		string(currentKey),
	).Scan(&u.ID, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading signed-in user: %w", err)
	}

	return &u, nil
}
