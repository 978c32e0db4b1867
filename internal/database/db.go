package database

import (
	"context"
	"fmt"
	"time"

	"restoran-kpi-backend/internal/config"
	"restoran-kpi-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	logMode := logger.Warn
	if cfg.DBLogQueries {
		logMode = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logMode),
		// unique ihlalleri gorm.ErrDuplicatedKey olarak döner
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("veritabanına bağlanılamadı: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql.DB alınamadı: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info("Veritabanı bağlantısı başarılı")
	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	err := db.AutoMigrate(
		&models.KPI{},
		&models.DailyReport{},
		&models.CriticalOccasion{},
		&models.Admin{},
		&models.AdminDevice{},
		&models.AppVersion{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("AutoMigrate hatası: %w", err)
	}

	log.Info("Migration tamamlandı")
	return nil
}

// Ping health check için kullanılır.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
