package report

import (
	"context"
	"errors"
	"fmt"

	"restoran-kpi-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, r *models.DailyReport) error
	List(ctx context.Context, limit int) ([]models.DailyReport, error)
	FindByID(ctx context.Context, id uint) (*models.DailyReport, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type GormRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewGormRepository(db *gorm.DB, log *zap.Logger) *GormRepository {
	return &GormRepository{db: db, log: log}
}

func (r *GormRepository) Create(ctx context.Context, rep *models.DailyReport) error {
	if err := r.db.WithContext(ctx).Create(rep).Error; err != nil {
		return fmt.Errorf("günlük rapor kaydedilemedi: %w", err)
	}
	return nil
}

// List en eski rapordan başlayarak en fazla limit kadar rapor döner.
func (r *GormRepository) List(ctx context.Context, limit int) ([]models.DailyReport, error) {
	var reports []models.DailyReport
	err := r.db.WithContext(ctx).
		Order("report_date asc").
		Order("id asc").
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("günlük raporlar alınamadı: %w", err)
	}
	return reports, nil
}

func (r *GormRepository) FindByID(ctx context.Context, id uint) (*models.DailyReport, error) {
	var rep models.DailyReport
	if err := r.db.WithContext(ctx).First(&rep, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("günlük rapor alınamadı: %w", err)
	}
	return &rep, nil
}

func (r *GormRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.DailyReport{})
	if res.Error != nil {
		return false, fmt.Errorf("günlük rapor silinemedi: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
