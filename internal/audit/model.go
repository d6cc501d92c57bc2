package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuditEvent is one line of the append-only audit trail.
type AuditEvent struct {
	EventID    uuid.UUID       `json:"event_id"`
	Action     string          `json:"action"`
	TargetType string          `json:"target_type,omitempty"`
	TargetID   string          `json:"target_id,omitempty"`
	Result     string          `json:"result"` // success/failure
	RequestID  string          `json:"request_id,omitempty"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Meta marshals v for AuditEvent.Metadata, dropping it on encode failure.
func Meta(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
