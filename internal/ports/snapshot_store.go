package ports

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// Port: a boundary for persisting the planning-session snapshot. The engine
// treats the document as opaque; callers own its schema.
type SnapshotStore interface {
	Save(ctx context.Context, id string, doc json.RawMessage) error
	Load(ctx context.Context, id string) (json.RawMessage, error)
}
