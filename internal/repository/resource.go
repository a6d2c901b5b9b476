package repository

import (
	"encoding/json"

	"github.com/spec-kit/ticket-dashboard/internal/normalize"
)

// resourceEnvelope is the backend's batch convention: row payloads ride in a
// {resource:[...]} wrapper even for single-row inserts.
type resourceEnvelope struct {
	Resource []map[string]any `json:"resource"`
}

// decodeRows unwraps a collection response. A bare array is accepted too;
// some table backends skip the envelope on reads.
func decodeRows(raw json.RawMessage) ([]normalize.Raw, error) {
	var envelope struct {
		Resource []normalize.Raw `json:"resource"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Resource != nil {
		return envelope.Resource, nil
	}
	var rows []normalize.Raw
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// decodeRow unwraps a single-row response, reaching into a {resource:[row]}
// envelope when the backend answers a row request batch-shaped.
func decodeRow(raw json.RawMessage) (normalize.Raw, error) {
	var row normalize.Raw
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, err
	}
	if wrapped, ok := row["resource"].([]any); ok && len(wrapped) > 0 {
		if first, ok := wrapped[0].(map[string]any); ok {
			return normalize.Raw(first), nil
		}
	}
	return row, nil
}
