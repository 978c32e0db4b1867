package occasion

import (
	"context"
	"strings"

	"restoran-kpi-backend/internal/apperr"
	"restoran-kpi-backend/internal/audit"
	"restoran-kpi-backend/internal/models"

	"go.uber.org/zap"
)

const entityType = "critical_occasion"

type CreateInput struct {
	Title       string
	SubUnit     *string
	Description *string
	IsCritical  string // boşsa "no"
}

type Service struct {
	repo  Repository
	audit audit.Recorder
	log   *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, log *zap.Logger) *Service {
	return &Service{repo: repo, audit: recorder, log: log}
}

func (s *Service) List(ctx context.Context) ([]models.CriticalOccasion, error) {
	return s.repo.List(ctx)
}

// Create yeni kritik durum ekler. Kritik ürünlerden (Ayran, Salata...) her biri için
// tek kayıt tutulur; ikinci kayıt Conflict döner. Kontrol ile insert arasında kilit yok.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.CriticalOccasion, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperr.Validation("Başlık zorunlu")
	}

	isCritical := in.IsCritical
	if isCritical == "" {
		isCritical = models.CriticalNo
	}
	if isCritical != models.CriticalYes && isCritical != models.CriticalNo {
		return nil, apperr.Validation("isCritical 'yes' veya 'no' olmalı")
	}

	o := &models.CriticalOccasion{
		Title:       title,
		SubUnit:     trimmed(in.SubUnit),
		Description: trimmed(in.Description),
		IsCritical:  isCritical,
	}

	if o.SubUnit != nil && models.IsCriticalProduct(*o.SubUnit) {
		exists, err := s.repo.ExistsBySubUnit(ctx, *o.SubUnit)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperr.Conflict(*o.SubUnit + " zaten eklenmiş")
		}
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	audit.Safe(ctx, s.audit, s.log, audit.Entry{
		EntityType:  entityType,
		EntityID:    o.ID,
		Action:      models.AuditActionCreate,
		Description: "Kritik durum eklendi: " + o.Title,
		After:       o,
	})
	return o, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if before == nil {
		return apperr.NotFound("Kritik durum bulunamadı")
	}

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("Kritik durum bulunamadı")
	}

	audit.Safe(ctx, s.audit, s.log, audit.Entry{
		EntityType:  entityType,
		EntityID:    id,
		Action:      models.AuditActionDelete,
		Description: "Kritik durum silindi: " + before.Title,
		Before:      before,
	})
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
