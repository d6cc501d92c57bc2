package cameras

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/technosupport/site-safety/internal/audit"
	"github.com/technosupport/site-safety/internal/data"
	"github.com/technosupport/site-safety/internal/metrics"
)

const registryName = "cameras"

type Repository interface {
	LoadAll(ctx context.Context) ([]data.Camera, error)
	SaveAll(ctx context.Context, cams []data.Camera) error
}

type Auditor interface {
	WriteEvent(ctx context.Context, evt audit.AuditEvent) error
}

// CreateInput fields are optional; nil means "use the default".
type CreateInput struct {
	Name *string `json:"name"`
	IP   *string `json:"ip"`
	Zone *string `json:"zone"`
}

// UpdateInput fields are optional; nil means "leave unchanged".
type UpdateInput struct {
	Name   *string `json:"name"`
	IP     *string `json:"ip"`
	Zone   *string `json:"zone"`
	Status *bool   `json:"status"`
}

// Service owns the camera registry. Every mutation holds mu across the whole
// load-modify-save cycle so concurrent creates never share an id or playback suffix.
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
	return &Service{repo: repo, auditService: aud, log: logger.Named("cameras")}
}

// List returns cameras in persisted order.
func (s *Service) List(ctx context.Context) ([]data.Camera, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cams, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	metrics.SetRegistrySize(registryName, len(cams))
	return cams, nil
}

// Create derives id, stream URL and playback URL from the current collection and appends.
func (s *Service) Create(ctx context.Context, in CreateInput) (*data.Camera, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cams, err := s.repo.LoadAll(ctx)
	if err != nil {
		metrics.RecordMutation(registryName, "create", err)
		return nil, err
	}

	name := valueOr(in.Name, DefaultName)
	ip := valueOr(in.IP, DefaultIP)

	c := data.Camera{
		ID:          nextID(cams),
		Name:        name,
		IP:          ip,
		RTSPURL:     StreamURL(ip, len(cams)+1),
		PlaybackURL: PlaybackURL(name, playbackSet(cams)),
		Zone:        valueOr(in.Zone, name),
		Status:      true,
	}

	if err := s.repo.SaveAll(ctx, append(cams, c)); err != nil {
		metrics.RecordMutation(registryName, "create", err)
		return nil, err
	}
	metrics.RecordMutation(registryName, "create", nil)
	metrics.SetRegistrySize(registryName, len(cams)+1)

	s.record(ctx, audit.AuditEvent{
		Action:     "camera.create",
		TargetType: "camera",
		TargetID:   strconv.Itoa(c.ID),
		Metadata:   audit.Meta(map[string]any{"name": c.Name, "ip": c.IP, "playback_url": c.PlaybackURL}),
	})
	return &c, nil
}

// Update overwrites the fields present in in. A new IP replaces the RTSP host but keeps
// the stream index; the playback URL stays as created.
func (s *Service) Update(ctx context.Context, id int, in UpdateInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cams, err := s.repo.LoadAll(ctx)
	if err != nil {
		metrics.RecordMutation(registryName, "update", err)
		return err
	}

	idx := indexOf(cams, id)
	if idx < 0 {
		metrics.RecordMutation(registryName, "update", ErrNotFound)
		return ErrNotFound
	}

	c := &cams[idx]
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.IP != nil {
		c.IP = *in.IP
		c.RTSPURL = ReplaceStreamHost(c.RTSPURL, c.IP)
	}
	if in.Zone != nil {
		c.Zone = *in.Zone
	}
	if in.Status != nil {
		c.Status = *in.Status
	}

	if err := s.repo.SaveAll(ctx, cams); err != nil {
		metrics.RecordMutation(registryName, "update", err)
		return err
	}
	metrics.RecordMutation(registryName, "update", nil)

	s.record(ctx, audit.AuditEvent{
		Action:     "camera.update",
		TargetType: "camera",
		TargetID:   strconv.Itoa(id),
	})
	return nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cams, err := s.repo.LoadAll(ctx)
	if err != nil {
		metrics.RecordMutation(registryName, "delete", err)
		return err
	}

	idx := indexOf(cams, id)
	if idx < 0 {
		metrics.RecordMutation(registryName, "delete", ErrNotFound)
		return ErrNotFound
	}
	cams = append(cams[:idx], cams[idx+1:]...)

	if err := s.repo.SaveAll(ctx, cams); err != nil {
		metrics.RecordMutation(registryName, "delete", err)
		return err
	}
	metrics.RecordMutation(registryName, "delete", nil)
	metrics.SetRegistrySize(registryName, len(cams))

	s.record(ctx, audit.AuditEvent{
		Action:     "camera.delete",
		TargetType: "camera",
		TargetID:   strconv.Itoa(id),
	})
	return nil
}

// record writes the audit event; the registry change is already persisted so failures only log.
func (s *Service) record(ctx context.Context, evt audit.AuditEvent) {
	if s.auditService == nil {
		return
	}
	if err := s.auditService.WriteEvent(ctx, evt); err != nil {
		s.log.Error("audit write failed", zap.String("action", evt.Action), zap.Error(err))
	}
}

func indexOf(cams []data.Camera, id int) int {
	for i := range cams {
		if cams[i].ID == id {
			return i
		}
	}
	return -1
}

func valueOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
