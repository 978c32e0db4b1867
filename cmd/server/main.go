package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restoran-kpi-backend/internal/auth"
	"restoran-kpi-backend/internal/cache"
	"restoran-kpi-backend/internal/config"
	"restoran-kpi-backend/internal/database"
	"restoran-kpi-backend/internal/logger"
	"restoran-kpi-backend/internal/server"

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

	for _, w := range cfg.Warnings {
		logg.Warn(w)
	}

	db, err := database.Open(cfg, logg)
	if err != nil {
		logg.Fatal("Veritabanına bağlanılamadı", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.Migrate(db, logg); err != nil {
		logg.Fatal("Migration başarısız", zap.Error(err))
	}

	c := newCache(cfg, logg)
	defer c.Close()

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	services := server.NewServices(cfg, db, c, issuer, logg)
	app := server.New(cfg, services, issuer, db, c, logg)

	go func() {
		logg.Info("HTTP sunucusu başlatılıyor",
			zap.String("port", cfg.HTTPPort),
			zap.String("env", cfg.Environment),
		)
		if err := app.Listen(":" + cfg.HTTPPort); err != nil {
			logg.Fatal("HTTP sunucusu durdu", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("Sunucu kapatılıyor...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logg.Error("Sunucu düzgün kapatılamadı", zap.Error(err))
	}
}

// REDIS_URL yoksa ya da Redis'e ulaşılamıyorsa bellek içi cache
func newCache(cfg *config.Config, log *zap.Logger) cache.Cache {
	if cfg.RedisURL == "" {
		return cache.NewLocalCache()
	}
	rc, err := cache.NewRedisCache(cfg.RedisURL, log)
	if err != nil {
		log.Warn("Redis kullanılamıyor, bellek içi cache'e geçildi", zap.Error(err))
		return cache.NewLocalCache()
	}
	return rc
}
