package main

import (
	"context"
	"log"

	"restoran-kpi-backend/internal/admin"
	"restoran-kpi-backend/internal/audit"
	"restoran-kpi-backend/internal/auth"
	"restoran-kpi-backend/internal/config"
	"restoran-kpi-backend/internal/database"
	"restoran-kpi-backend/internal/kpi"
	"restoran-kpi-backend/internal/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Config yüklenemedi: ", err)
	}

	logg, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatal("Logger oluşturulamadı: ", err)
	}
	defer logg.Sync()

	db, err := database.Open(cfg, logg)
	if err != nil {
		logg.Fatal("Veritabanına bağlanılamadı", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.Migrate(db, logg); err != nil {
		logg.Fatal("Migration başarısız", zap.Error(err))
	}

	auditSvc := audit.NewService(db, logg)
	ctx := audit.WithActor(context.Background(), "seed")

	if cfg.BootstrapAdminID != "" {
		adminSvc := admin.NewService(admin.NewGormRepository(db, logg), auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL), auditSvc, logg)
		if _, _, err := adminSvc.Bootstrap(ctx, admin.BootstrapInput{
			AdminID:           cfg.BootstrapAdminID,
			Password:          cfg.BootstrapAdminPassword,
			DeviceFingerprint: cfg.BootstrapDeviceFingerprint,
			DeviceName:        cfg.BootstrapDeviceName,
		}); err != nil {
			logg.Fatal("Bootstrap admin oluşturulamadı", zap.Error(err))
		}
	}

	svc := kpi.NewService(kpi.NewGormRepository(db, logg), auditSvc, logg)

	n, err := svc.SeedDefaults(ctx)
	if err != nil {
		logg.Fatal("Seed başarısız", zap.Int("inserted", n), zap.Error(err))
	}
	if n == 0 {
		logg.Info("KPI tablosu dolu, seed atlandı")
		return
	}
	logg.Info("Varsayılan KPI'lar eklendi", zap.Int("count", n))
}
