package localdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/dbx"
)

// CachedSession is the locally persisted trace of the current provider
// session: enough to restore auth headers on startup, nothing more. The
// provider remains the source of truth — bootstrap still revalidates against
// it.
type CachedSession struct {
	SessionID    string
	UserID       string
	Secret       string
	JWT          string
	JWTExpiresAt time.Time
	SavedAt      time.Time
}

// JWTStale reports whether the cached JWT is missing or expires within the
// next minute, i.e. whether bootstrap should mint a fresh one.
func (c *CachedSession) JWTStale(now time.Time) bool {
	if c.JWT == "" || c.JWTExpiresAt.IsZero() {
		return true
	}
	return !c.JWTExpiresAt.After(now.Add(time.Minute))
}

// SessionCache reads and writes the single cached session row.
type SessionCache struct {
	db *sql.DB
}

func NewSessionCache(db *sql.DB) *SessionCache {
	return &SessionCache{db: db}
}

// Save replaces the cached session. Delete-then-insert runs in one
// transaction so a crash cannot leave the cache empty-but-half-written.
func (c *SessionCache) Save(ctx context.Context, rec *CachedSession) error {
	if rec.SavedAt.IsZero() {
		rec.SavedAt = time.Now().UTC()
	}
	return dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM session_cache`); err != nil {
			return fmt.Errorf("clear session cache: %w", err)
		}
		var expires any
		if !rec.JWTExpiresAt.IsZero() {
			expires = rec.JWTExpiresAt.UTC()
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO session_cache (id, session_id, user_id, secret, jwt, jwt_expires_at, saved_at)
			VALUES (1, ?, ?, ?, ?, ?, ?)`,
			rec.SessionID, rec.UserID, rec.Secret, rec.JWT, expires, rec.SavedAt.UTC())
		if err != nil {
			return fmt.Errorf("save session cache: %w", err)
		}
		return nil
	})
}

// Load returns the cached session, or nil when none is stored.
func (c *SessionCache) Load(ctx context.Context) (*CachedSession, error) {
	rec := &CachedSession{}
	var expires sql.NullTime
	err := c.db.QueryRowContext(ctx, `
		SELECT session_id, user_id, secret, jwt, jwt_expires_at, saved_at
		FROM session_cache WHERE id = 1`).
		Scan(&rec.SessionID, &rec.UserID, &rec.Secret, &rec.JWT, &expires, &rec.SavedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session cache: %w", err)
	}
	if expires.Valid {
		rec.JWTExpiresAt = expires.Time
	}
	return rec, nil
}

// Clear wipes the cached session, e.g. on logout.
func (c *SessionCache) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM session_cache`); err != nil {
		return fmt.Errorf("clear session cache: %w", err)
	}
	return nil
}
