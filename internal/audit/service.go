package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"restoran-kpi-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

type Entry struct {
	Actor       string // boşsa context'teki aktör kullanılır
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// Recorder domain servislerinin audit log yazmak için kullandığı arayüz.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

type Filter struct {
	EntityType string
	EntityID   uint
	Limit      int
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log}
}

func (s *Service) Record(ctx context.Context, e Entry) error {
	actor := e.Actor
	if actor == "" {
		actor = ActorFrom(ctx)
	}

	entry := models.AuditLog{
		Actor:       actor,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		Action:      e.Action,
		Description: e.Description,
		BeforeData:  toJSON(e.Before),
		AfterData:   toJSON(e.After),
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]models.AuditLog, error) {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}

	q := s.db.WithContext(ctx).Model(&models.AuditLog{})
	if f.EntityType != "" {
		q = q.Where("entity_type = ?", f.EntityType)
	}
	if f.EntityID > 0 {
		q = q.Where("entity_id = ?", f.EntityID)
	}

	var logs []models.AuditLog
	if err := q.Order("created_at DESC").Limit(f.Limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("audit loglar listelenemedi: %w", err)
	}
	return logs, nil
}

// PostgreSQL jsonb için boş string yerine "null" kullanılmalı
func toJSON(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

// Safe, audit hatasının asıl işlemi bozmaması için hatayı sadece loglar.
func Safe(ctx context.Context, r Recorder, log *zap.Logger, e Entry) {
	if r == nil {
		return
	}
	if err := r.Record(ctx, e); err != nil {
		log.Warn("audit log yazılamadı",
			zap.String("entity_type", e.EntityType),
			zap.Uint("entity_id", e.EntityID),
			zap.Error(err),
		)
	}
}
