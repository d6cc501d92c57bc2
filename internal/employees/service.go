package employees

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/technosupport/site-safety/internal/audit"
	"github.com/technosupport/site-safety/internal/data"
	"github.com/technosupport/site-safety/internal/metrics"
)

const registryName = "employees"

var (
	ErrAlreadyExists   = errors.New("employee id already exists")
	ErrNotFound        = errors.New("employee not found")
	ErrInvalidEmployee = errors.New("employee id and name are required")
)

type Repository interface {
	LoadAll(ctx context.Context) ([]data.Employee, error)
	SaveAll(ctx context.Context, emps []data.Employee) error
}

type Auditor interface {
	WriteEvent(ctx context.Context, evt audit.AuditEvent) error
}

type CreateInput struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

type UpdateInput struct {
	Name *string `json:"name"`
}

type Service struct {
	repo         Repository
	auditService Auditor
	log          *zap.Logger

	mu sync.RWMutex
}

func NewService(repo Repository, aud Auditor, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, auditService: aud, log: logger.Named("employees")}
}

func (s *Service) List(ctx context.Context) ([]data.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	emps, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	metrics.SetRegistrySize(registryName, len(emps))
	return emps, nil
}

// Create rejects a duplicate id without touching the stored collection.
func (s *Service) Create(ctx context.Context, in CreateInput) (*data.Employee, error) {
	if in.ID == nil || *in.ID == "" || in.Name == nil {
		return nil, ErrInvalidEmployee
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	emps, err := s.repo.LoadAll(ctx)
	if err != nil {
		metrics.RecordMutation(registryName, "create", err)
		return nil, err
	}
	if indexOf(emps, *in.ID) >= 0 {
		metrics.RecordMutation(registryName, "create", ErrAlreadyExists)
		return nil, ErrAlreadyExists
	}

	e := data.Employee{ID: *in.ID, Name: *in.Name}
	if err := s.repo.SaveAll(ctx, append(emps, e)); err != nil {
		metrics.RecordMutation(registryName, "create", err)
		return nil, err
	}
	metrics.RecordMutation(registryName, "create", nil)
	metrics.SetRegistrySize(registryName, len(emps)+1)

	s.record(ctx, "employee.create", e.ID)
	return &e, nil
}

// Update changes the name when present. The id itself is never rewritten.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	emps, err := s.repo.LoadAll(ctx)
	if err != nil {
		metrics.RecordMutation(registryName, "update", err)
		return err
	}
	idx := indexOf(emps, id)
	if idx < 0 {
		metrics.RecordMutation(registryName, "update", ErrNotFound)
		return ErrNotFound
	}
	if in.Name != nil {
		emps[idx].Name = *in.Name
	}

	if err := s.repo.SaveAll(ctx, emps); err != nil {
		metrics.RecordMutation(registryName, "update", err)
		return err
	}
	metrics.RecordMutation(registryName, "update", nil)

	s.record(ctx, "employee.update", id)
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	emps, err := s.repo.LoadAll(ctx)
	if err != nil {
		metrics.RecordMutation(registryName, "delete", err)
		return err
	}
	idx := indexOf(emps, id)
	if idx < 0 {
		metrics.RecordMutation(registryName, "delete", ErrNotFound)
		return ErrNotFound
	}
	emps = append(emps[:idx], emps[idx+1:]...)

	if err := s.repo.SaveAll(ctx, emps); err != nil {
		metrics.RecordMutation(registryName, "delete", err)
		return err
	}
	metrics.RecordMutation(registryName, "delete", nil)
	metrics.SetRegistrySize(registryName, len(emps))

	s.record(ctx, "employee.delete", id)
	return nil
}

func (s *Service) record(ctx context.Context, action, id string) {
	if s.auditService == nil {
		return
	}
	evt := audit.AuditEvent{Action: action, TargetType: "employee", TargetID: id}
	if err := s.auditService.WriteEvent(ctx, evt); err != nil {
		s.log.Error("audit write failed", zap.String("action", action), zap.Error(err))
	}
}

func indexOf(emps []data.Employee, id string) int {
	for i := range emps {
		if emps[i].ID == id {
			return i
		}
	}
	return -1
}
