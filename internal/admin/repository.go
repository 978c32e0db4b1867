package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restoran-kpi-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrDuplicate unique index ihlali
var ErrDuplicate = errors.New("kayıt zaten mevcut")

type Repository interface {
	FindAdminByAdminID(ctx context.Context, adminID string) (*models.Admin, error)
	FindAdminByID(ctx context.Context, id uint) (*models.Admin, error)
	CreateAdmin(ctx context.Context, a *models.Admin) error
	ListAdmins(ctx context.Context) ([]models.Admin, error)
	SetYetkili(ctx context.Context, id uint, approved bool) (bool, error)

	FindDevice(ctx context.Context, adminID uint, fingerprint string) (*models.AdminDevice, error)
	FindDeviceByID(ctx context.Context, id uint) (*models.AdminDevice, error)
	CreateDevice(ctx context.Context, d *models.AdminDevice) error
	ListDevices(ctx context.Context, pendingOnly bool) ([]models.AdminDevice, error)
	UpdateDevice(ctx context.Context, id uint, changes map[string]any) (bool, error)
	TouchDevice(ctx context.Context, id uint, at time.Time) error
}

type GormRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewGormRepository(db *gorm.DB, log *zap.Logger) *GormRepository {
	return &GormRepository{db: db, log: log}
}

func (r *GormRepository) FindAdminByAdminID(ctx context.Context, adminID string) (*models.Admin, error) {
	var a models.Admin
	if err := r.db.WithContext(ctx).First(&a, "admin_id = ?", adminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("admin alınamadı: %w", err)
	}
	return &a, nil
}

func (r *GormRepository) FindAdminByID(ctx context.Context, id uint) (*models.Admin, error) {
	var a models.Admin
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("admin alınamadı: %w", err)
	}
	return &a, nil
}

func (r *GormRepository) CreateAdmin(ctx context.Context, a *models.Admin) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("admin oluşturulamadı: %w", err)
	}
	return nil
}

func (r *GormRepository) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	var admins []models.Admin
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("adminler alınamadı: %w", err)
	}
	return admins, nil
}

func (r *GormRepository) SetYetkili(ctx context.Context, id uint, approved bool) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Admin{}).Where("id = ?", id).Update("yetkili_approved", approved)
	if res.Error != nil {
		return false, fmt.Errorf("yetkili durumu güncellenemedi: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepository) FindDevice(ctx context.Context, adminID uint, fingerprint string) (*models.AdminDevice, error) {
	var d models.AdminDevice
	err := r.db.WithContext(ctx).
		Where("admin_id = ? AND device_fingerprint = ?", adminID, fingerprint).
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("cihaz alınamadı: %w", err)
	}
	return &d, nil
}

func (r *GormRepository) FindDeviceByID(ctx context.Context, id uint) (*models.AdminDevice, error) {
	var d models.AdminDevice
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("cihaz alınamadı: %w", err)
	}
	return &d, nil
}

func (r *GormRepository) CreateDevice(ctx context.Context, d *models.AdminDevice) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("cihaz kaydedilemedi: %w", err)
	}
	return nil
}

func (r *GormRepository) ListDevices(ctx context.Context, pendingOnly bool) ([]models.AdminDevice, error) {
	q := r.db.WithContext(ctx).Model(&models.AdminDevice{})
	if pendingOnly {
		q = q.Where("is_approved = ?", false)
	}

	var devices []models.AdminDevice
	if err := q.Order("created_at asc").Find(&devices).Error; err != nil {
		return nil, fmt.Errorf("cihazlar alınamadı: %w", err)
	}
	return devices, nil
}

func (r *GormRepository) UpdateDevice(ctx context.Context, id uint, changes map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.AdminDevice{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return false, fmt.Errorf("cihaz güncellenemedi: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepository) TouchDevice(ctx context.Context, id uint, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.AdminDevice{}).Where("id = ?", id).Update("last_used", at).Error
	if err != nil {
		return fmt.Errorf("cihaz son kullanım güncellenemedi: %w", err)
	}
	return nil
}
