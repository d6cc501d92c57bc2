package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Service appends audit events as JSON lines to a single file. Events are never rewritten.
type Service struct {
	path string
	mu   sync.Mutex
}

func NewService(path string) *Service {
	return &Service{path: path}
}

func (s *Service) WriteEvent(ctx context.Context, evt AuditEvent) error {
	// Missing id, timestamp, request id and result are filled in before the append.
	if evt.EventID == uuid.Nil {
		evt.EventID = uuid.New()
	}
	if evt.CreatedAt.IsZero() {
		evt.CreatedAt = time.Now().UTC()
	}
	if evt.RequestID == "" {
		evt.RequestID = chimiddleware.GetReqID(ctx)
	}
	if evt.Result == "" {
		evt.Result = "success"
	}

	line, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open audit trail: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append audit event %s: %w", evt.EventID, err)
	}
	return nil
}

