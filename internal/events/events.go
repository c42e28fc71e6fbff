// Package events publishes domain change notifications.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event types.
const (
	TypeLogChanged = "log_changed"
)

// Log change reasons.
const (
	ReasonEntryAdded   = "entry_added"
	ReasonEntryDeleted = "entry_deleted"
	ReasonReconciled   = "reconciled"
)

// LogChanged is emitted after a daily log has been written.
type LogChanged struct {
	Type       string    `json:"type"`
	Email      string    `json:"email"`
	Date       string    `json:"date"`
	Version    int64     `json:"version"`
	EntryCount int       `json:"entry_count"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Encode serializes the event for transport.
func (e LogChanged) Encode() ([]byte, error) {
	e.Type = TypeLogChanged
	return json.Marshal(e)
}

// DecodeLogChanged parses a LogChanged message body.
func DecodeLogChanged(data []byte) (LogChanged, error) {
	var e LogChanged
	err := json.Unmarshal(data, &e)
	return e, err
}

// Publisher publishes daily log change events.
type Publisher interface {
	PublishLogChanged(ctx context.Context, event LogChanged) error
}

// NopPublisher discards every event.
type NopPublisher struct{}

// PublishLogChanged implements Publisher.
func (NopPublisher) PublishLogChanged(context.Context, LogChanged) error {
	return nil
}

// Ensure NopPublisher implements Publisher interface.
var _ Publisher = NopPublisher{}
