package kpi

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restoran-kpi-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context) ([]models.KPI, error)
	FindByID(ctx context.Context, id uint) (*models.KPI, error)
	// Kayıt yoksa -1 döner
	MaxPosition(ctx context.Context) (int, error)
	Create(ctx context.Context, k *models.KPI) error
	Update(ctx context.Context, id uint, changes map[string]any) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	Reorder(ctx context.Context, ids []uint) error
	ResetValues(ctx context.Context, at time.Time) (int64, error)
}

type GormRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewGormRepository(db *gorm.DB, log *zap.Logger) *GormRepository {
	return &GormRepository{db: db, log: log}
}

func (r *GormRepository) List(ctx context.Context) ([]models.KPI, error) {
	var kpis []models.KPI
	if err := r.db.WithContext(ctx).Order("position asc").Order("id asc").Find(&kpis).Error; err != nil {
		return nil, fmt.Errorf("kpi listesi alınamadı: %w", err)
	}
	return kpis, nil
}

func (r *GormRepository) FindByID(ctx context.Context, id uint) (*models.KPI, error) {
	var k models.KPI
	err := r.db.WithContext(ctx).First(&k, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("kpi alınamadı: %w", err)
	}
	return &k, nil
}

func (r *GormRepository) MaxPosition(ctx context.Context) (int, error) {
	var max sql.NullInt64
	if err := r.db.WithContext(ctx).Model(&models.KPI{}).Select("MAX(position)").Scan(&max).Error; err != nil {
		return 0, fmt.Errorf("max position alınamadı: %w", err)
	}
	if !max.Valid {
		return -1, nil
	}
	return int(max.Int64), nil
}

func (r *GormRepository) Create(ctx context.Context, k *models.KPI) error {
	if err := r.db.WithContext(ctx).Create(k).Error; err != nil {
		return fmt.Errorf("kpi oluşturulamadı: %w", err)
	}
	return nil
}

func (r *GormRepository) Update(ctx context.Context, id uint, changes map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.KPI{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return false, fmt.Errorf("kpi güncellenemedi: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.KPI{})
	if res.Error != nil {
		return false, fmt.Errorf("kpi silinemedi: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Reorder listedeki her id'ye sırasıyla 0..n-1 atar. Listede olmayan KPI'lar eski
// pozisyonlarını korur.
func (r *GormRepository) Reorder(ctx context.Context, ids []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			if err := tx.Model(&models.KPI{}).Where("id = ?", id).Update("position", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("kpi sıralaması güncellenemedi: %w", err)
	}
	return nil
}

func (r *GormRepository) ResetValues(ctx context.Context, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.KPI{}).Where("1 = 1").Updates(map[string]any{
		"actual":     0,
		"target":     0,
		"updated_at": at,
	})
	if res.Error != nil {
		return 0, fmt.Errorf("kpi değerleri sıfırlanamadı: %w", res.Error)
	}
	return res.RowsAffected, nil
}
