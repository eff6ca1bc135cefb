// Package session persists the authenticated session (bearer token and
// user identity) across CLI invocations. It is the credential
// collaborator the remote client reads from: a missing session simply
// yields an empty token, which blocks authenticated calls upstream.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"voucherdesk/internal/remote"

	_ "modernc.org/sqlite"
)

// ErrNoSession is returned by Current when nobody is logged in.
var ErrNoSession = errors.New("no active session")

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the session database at dbPath and
// runs migrations.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save stores the session, replacing any previous one. There is at most
// one session per database.
func (s *Store) Save(ctx context.Context, sess remote.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (id, token, user_id, email) VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET token = excluded.token,
			user_id = excluded.user_id, email = excluded.email`,
		sess.Token, sess.UserID, sess.Email)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Current returns the stored session or ErrNoSession.
func (s *Store) Current(ctx context.Context) (remote.Session, error) {
	var sess remote.Session
	err := s.db.QueryRowContext(ctx,
		`SELECT token, user_id, email FROM session WHERE id = 1`).
		Scan(&sess.Token, &sess.UserID, &sess.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return remote.Session{}, ErrNoSession
	}
	if err != nil {
		return remote.Session{}, fmt.Errorf("read session: %w", err)
	}
	return sess, nil
}

// Token implements httpapi.TokenSource. No session means an empty token,
// which the client treats as a hard precondition failure before any
// request is attempted.
func (s *Store) Token(ctx context.Context) (string, error) {
	sess, err := s.Current(ctx)
	if errors.Is(err, ErrNoSession) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}

// Clear logs out by deleting the stored session.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
