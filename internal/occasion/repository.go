package occasion

import (
	"context"
	"errors"
	"fmt"

	"restoran-kpi-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context) ([]models.CriticalOccasion, error)
	FindByID(ctx context.Context, id uint) (*models.CriticalOccasion, error)
	ExistsBySubUnit(ctx context.Context, subUnit string) (bool, error)
	Create(ctx context.Context, o *models.CriticalOccasion) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type GormRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewGormRepository(db *gorm.DB, log *zap.Logger) *GormRepository {
	return &GormRepository{db: db, log: log}
}

func (r *GormRepository) List(ctx context.Context) ([]models.CriticalOccasion, error) {
	var list []models.CriticalOccasion
	if err := r.db.WithContext(ctx).Order("created_at asc").Order("id asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("kritik durumlar alınamadı: %w", err)
	}
	return list, nil
}

func (r *GormRepository) FindByID(ctx context.Context, id uint) (*models.CriticalOccasion, error) {
	var o models.CriticalOccasion
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("kritik durum alınamadı: %w", err)
	}
	return &o, nil
}

func (r *GormRepository) ExistsBySubUnit(ctx context.Context, subUnit string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CriticalOccasion{}).Where("sub_unit = ?", subUnit).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("kritik durum kontrol edilemedi: %w", err)
	}
	return count > 0, nil
}

func (r *GormRepository) Create(ctx context.Context, o *models.CriticalOccasion) error {
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		return fmt.Errorf("kritik durum kaydedilemedi: %w", err)
	}
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CriticalOccasion{})
	if res.Error != nil {
		return false, fmt.Errorf("kritik durum silinemedi: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
