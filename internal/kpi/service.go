package kpi

import (
	"context"
	"strings"
	"time"

	"restoran-kpi-backend/internal/apperr"
	"restoran-kpi-backend/internal/audit"
	"restoran-kpi-backend/internal/metrics"
	"restoran-kpi-backend/internal/models"

	"go.uber.org/zap"
)

const entityType = "kpi"

type CreateInput struct {
	Name     string
	Category models.KPICategory
	Target   float64
	Actual   *float64 // verilmezse 0
	Period   models.KPIPeriod
	Unit     *string
	Position *int // verilmezse max+1
}

// UpdateInput'ta nil alanlar değişmez.
type UpdateInput struct {
	Name     *string
	Category *models.KPICategory
	Target   *float64
	Actual   *float64
	Period   *models.KPIPeriod
	Unit     *string // "" gönderilirse birim temizlenir
	Position *int
}

type Service struct {
	repo  Repository
	audit audit.Recorder
	log   *zap.Logger
	now   func() time.Time
}

func NewService(repo Repository, recorder audit.Recorder, log *zap.Logger) *Service {
	return &Service{repo: repo, audit: recorder, log: log, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]models.KPI, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uint) (*models.KPI, error) {
	k, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, apperr.NotFound("KPI bulunamadı")
	}
	return k, nil
}

// Create yeni KPI'ı listenin sonuna ekler. MAX(position) okuması ile insert ayrı
// sorgulardır; eşzamanlı iki create aynı pozisyonu alabilir.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.KPI, error) {
	k := &models.KPI{
		Name:     strings.TrimSpace(in.Name),
		Category: in.Category,
		Target:   in.Target,
		Period:   in.Period,
		Unit:     normalizeUnit(in.Unit),
	}
	if k.Name == "" {
		return nil, apperr.Validation("KPI adı zorunlu")
	}
	if in.Actual != nil {
		k.Actual = *in.Actual
	}

	if in.Position != nil {
		k.Position = *in.Position
	} else {
		max, err := s.repo.MaxPosition(ctx)
		if err != nil {
			return nil, err
		}
		k.Position = max + 1
	}

	if err := s.repo.Create(ctx, k); err != nil {
		return nil, err
	}

	audit.Safe(ctx, s.audit, s.log, audit.Entry{
		EntityType:  entityType,
		EntityID:    k.ID,
		Action:      models.AuditActionCreate,
		Description: "KPI eklendi: " + k.Name,
		After:       k,
	})
	return k, nil
}

func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*models.KPI, error) {
	before, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{"updated_at": s.now()}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.Validation("KPI adı boş olamaz")
		}
		changes["name"] = name
	}
	if in.Category != nil {
		changes["category"] = *in.Category
	}
	if in.Target != nil {
		changes["target"] = *in.Target
	}
	if in.Actual != nil {
		changes["actual"] = *in.Actual
	}
	if in.Period != nil {
		changes["period"] = *in.Period
	}
	if in.Unit != nil {
		changes["unit"] = normalizeUnit(in.Unit)
	}
	if in.Position != nil {
		changes["position"] = *in.Position
	}

	ok, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Get ile Update arasında silinmiş
		return nil, apperr.NotFound("KPI bulunamadı")
	}

	after, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	audit.Safe(ctx, s.audit, s.log, audit.Entry{
		EntityType:  entityType,
		EntityID:    id,
		Action:      models.AuditActionUpdate,
		Description: "KPI güncellendi: " + after.Name,
		Before:      before,
		After:       after,
	})
	return after, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	before, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("KPI bulunamadı")
	}

	audit.Safe(ctx, s.audit, s.log, audit.Entry{
		EntityType:  entityType,
		EntityID:    id,
		Action:      models.AuditActionDelete,
		Description: "KPI silindi: " + before.Name,
		Before:      before,
	})
	return nil
}

func (s *Service) Reorder(ctx context.Context, ids []uint) error {
	if err := s.repo.Reorder(ctx, ids); err != nil {
		return err
	}

	audit.Safe(ctx, s.audit, s.log, audit.Entry{
		EntityType:  entityType,
		Action:      models.AuditActionReorder,
		Description: "KPI sıralaması güncellendi",
		After:       ids,
	})
	return nil
}

type resetRow struct {
	ID     uint    `json:"id"`
	Target float64 `json:"target"`
	Actual float64 `json:"actual"`
}

// Reset tüm KPI'ların actual ve target değerlerini sıfırlar. Geri alınamaz; eski
// değerler sadece audit log'da kalır.
func (s *Service) Reset(ctx context.Context) (int64, error) {
	current, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	before := make([]resetRow, 0, len(current))
	for _, k := range current {
		before = append(before, resetRow{ID: k.ID, Target: k.Target, Actual: k.Actual})
	}

	n, err := s.repo.ResetValues(ctx, s.now())
	if err != nil {
		return 0, err
	}
	metrics.KPIResetsTotal.Inc()

	s.log.Info("KPI değerleri sıfırlandı", zap.Int64("count", n))
	audit.Safe(ctx, s.audit, s.log, audit.Entry{
		EntityType:  entityType,
		Action:      models.AuditActionReset,
		Description: "KPI değerleri sıfırlandı",
		Before:      before,
	})
	return n, nil
}

func normalizeUnit(unit *string) *string {
	if unit == nil {
		return nil
	}
	u := strings.TrimSpace(*unit)
	if u == "" {
		return nil
	}
	return &u
}
