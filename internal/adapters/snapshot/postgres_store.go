// Package snapshot persists the planning-session document the engine treats
// as opaque: callers serialize, the store round-trips bytes.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"carpool-planner/internal/ports"
)

// PostgresStore keeps snapshots in a single jsonb-documents table.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

// InitSchema creates the snapshot table when it does not exist yet.
func InitSchema(db *sql.DB) error {
	const q = `
	CREATE TABLE IF NOT EXISTS plan_snapshots (
		id         text PRIMARY KEY,
		document   jsonb NOT NULL,
		updated_at timestamptz NOT NULL DEFAULT now()
	);
	`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init snapshot schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, id string, doc json.RawMessage) error {
	if s.DB == nil {
		return errors.New("snapshot store: db is nil")
	}
	if strings.TrimSpace(id) == "" {
		return errors.New("snapshot store: id must be non-empty")
	}

	const q = `
	INSERT INTO plan_snapshots (id, document, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (id) DO UPDATE
	SET document = EXCLUDED.document,
		updated_at = now();
	`

	if _, err := s.DB.ExecContext(ctx, q, id, []byte(doc)); err != nil {
		return fmt.Errorf("save snapshot %q: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, id string) (json.RawMessage, error) {
	if s.DB == nil {
		return nil, errors.New("snapshot store: db is nil")
	}

	const q = `SELECT document FROM plan_snapshots WHERE id = $1;`

	var doc []byte
	if err := s.DB.QueryRowContext(ctx, q, id).Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("load snapshot %q: %w", id, err)
	}

	return json.RawMessage(doc), nil
}
