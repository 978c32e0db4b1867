package version

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restoran-kpi-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, v *models.AppVersion) error
	FindByID(ctx context.Context, id uint) (*models.AppVersion, error)
	List(ctx context.Context) ([]models.AppVersion, error)
	// Yayında olan en yüksek id'li sürüm, yoksa nil
	LatestPublished(ctx context.Context) (*models.AppVersion, error)
	SetStatus(ctx context.Context, id uint, status models.VersionStatus, at time.Time) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type GormRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewGormRepository(db *gorm.DB, log *zap.Logger) *GormRepository {
	return &GormRepository{db: db, log: log}
}

func (r *GormRepository) Create(ctx context.Context, v *models.AppVersion) error {
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("sürüm oluşturulamadı: %w", err)
	}
	return nil
}

func (r *GormRepository) FindByID(ctx context.Context, id uint) (*models.AppVersion, error) {
	var v models.AppVersion
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("sürüm alınamadı: %w", err)
	}
	return &v, nil
}

func (r *GormRepository) List(ctx context.Context) ([]models.AppVersion, error) {
	var versions []models.AppVersion
	if err := r.db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&versions).Error; err != nil {
		return nil, fmt.Errorf("sürümler alınamadı: %w", err)
	}
	return versions, nil
}

func (r *GormRepository) LatestPublished(ctx context.Context) (*models.AppVersion, error) {
	var v models.AppVersion
	err := r.db.WithContext(ctx).
		Where("status = ?", models.VersionPublished).
		Order("id desc").
		Take(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("son sürüm alınamadı: %w", err)
	}
	return &v, nil
}

func (r *GormRepository) SetStatus(ctx context.Context, id uint, status models.VersionStatus, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.AppVersion{}).Where("id = ?", id).Updates(map[string]any{
		"status":     status,
		"updated_at": at,
	})
	if res.Error != nil {
		return false, fmt.Errorf("sürüm durumu güncellenemedi: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.AppVersion{})
	if res.Error != nil {
		return false, fmt.Errorf("sürüm silinemedi: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
