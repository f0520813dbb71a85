package dto

import "encoding/json"

type SaveSnapshotRequest struct {
	ID       string          `json:"id,omitempty"`
	Document json.RawMessage `json:"document"`
}

type SaveSnapshotResponse struct {
	ID string `json:"id"`
}

type SnapshotResponse struct {
	ID       string          `json:"id"`
	Document json.RawMessage `json:"document"`
}
