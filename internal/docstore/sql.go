package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const schema = `
	CREATE TABLE IF NOT EXISTS documents (
		doc_key    TEXT PRIMARY KEY,
		body       TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)
`

// SQL keeps documents in a single table. The statements are portable
// between Postgres and SQLite.
type SQL struct {
	db *sql.DB
}

// NewSQL creates the documents table when it is missing.
func NewSQL(ctx context.Context, db *sql.DB) (*SQL, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create documents table: %w", err)
	}

	return &SQL{db: db}, nil
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}

	var body string

	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE doc_key = $1`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("select document %s: %w", key, err)
	}

	return []byte(body), nil
}

func (s *SQL) Put(ctx context.Context, key string, body []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}

	query := `
		INSERT INTO documents (doc_key, body, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (doc_key) DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := s.db.ExecContext(ctx, query, key, string(body)); err != nil {
		return fmt.Errorf("upsert document %s: %w", key, err)
	}

	return nil
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE doc_key = $1`, key); err != nil {
		return fmt.Errorf("delete document %s: %w", key, err)
	}

	return nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}
