package sessionstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
)

// PostgresStore persists session values in PostgreSQL, scoped by a session id
// so one table serves every storefront session.
type PostgresStore struct {
	db        *sql.DB
	sessionID string
}

func NewPostgresStore(db *sql.DB, sessionID string) *PostgresStore {
	return &PostgresStore{db: db, sessionID: sessionID}
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM storefront_sessions WHERE session_id = $1 AND key = $2",
		s.sessionID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO storefront_sessions (session_id, key, value, updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (session_id, key) DO UPDATE SET value = $3, updated_at = $4`,
		s.sessionID, key, value, time.Now(),
	)
	return err
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM storefront_sessions WHERE session_id = $1 AND key = $2",
		s.sessionID, key,
	)
	return err
}

// InitSchema creates the sessions table if it does not exist.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS storefront_sessions (
			session_id TEXT NOT NULL,
			key        TEXT NOT NULL,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (session_id, key)
		)`)
	return err
}

// ConnectPostgres opens a pooled connection and verifies it.
func ConnectPostgres(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
