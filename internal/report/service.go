package report

import (
	"context"
	"encoding/json"
	"time"

	"restoran-kpi-backend/internal/apperr"
	"restoran-kpi-backend/internal/audit"
	"restoran-kpi-backend/internal/metrics"
	"restoran-kpi-backend/internal/models"

	"go.uber.org/zap"
)

const (
	entityType = "daily_report"

	DefaultListLimit = 30
	AdminListLimit   = 1000
)

type CreateInput struct {
	ReportDate     *time.Time // verilmezse şimdi
	Snapshot       json.RawMessage
	TotalKPIs      int
	SuccessfulKPIs int
	SuccessRate    int
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

// Create istemcinin hesapladığı değerleri olduğu gibi saklar; toplamlar yeniden hesaplanmaz.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.DailyReport, error) {
	if len(in.Snapshot) == 0 || !json.Valid(in.Snapshot) {
		return nil, apperr.Validation("Geçersiz veri", apperr.FieldError{Field: "snapshot", Message: "geçerli bir JSON olmalı"})
	}

	date := s.now()
	if in.ReportDate != nil {
		date = *in.ReportDate
	}

	rep := &models.DailyReport{
		ReportDate:     date,
		Snapshot:       string(in.Snapshot),
		TotalKPIs:      in.TotalKPIs,
		SuccessfulKPIs: in.SuccessfulKPIs,
		SuccessRate:    in.SuccessRate,
	}
	if err := s.repo.Create(ctx, rep); err != nil {
		return nil, err
	}
	metrics.DailyReportsCreatedTotal.Inc()

	audit.Safe(ctx, s.audit, s.log, audit.Entry{
		EntityType:  entityType,
		EntityID:    rep.ID,
		Action:      models.AuditActionCreate,
		Description: "Günlük rapor gönderildi: " + rep.ReportDate.Format("2006-01-02"),
		After: map[string]int{
			"totalKpis":      rep.TotalKPIs,
			"successfulKpis": rep.SuccessfulKPIs,
			"successRate":    rep.SuccessRate,
		},
	})
	return rep, nil
}

func (s *Service) List(ctx context.Context, limit int) ([]models.DailyReport, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > AdminListLimit {
		limit = AdminListLimit
	}
	return s.repo.List(ctx, limit)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if before == nil {
		return apperr.NotFound("Günlük rapor bulunamadı")
	}

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("Günlük rapor bulunamadı")
	}

	audit.Safe(ctx, s.audit, s.log, audit.Entry{
		EntityType:  entityType,
		EntityID:    id,
		Action:      models.AuditActionDelete,
		Description: "Günlük rapor silindi: " + before.ReportDate.Format("2006-01-02"),
		Before:      json.RawMessage(before.Snapshot),
	})
	return nil
}
