package health

import (
	"context"
	"time"

	"restoran-kpi-backend/internal/cache"
	"restoran-kpi-backend/internal/database"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const checkTimeout = 2 * time.Second

type Response struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// GET /api/health
// Veritabanı erişilemezse 503 döner; cache hatası sadece raporlanır.
func Handler(db *gorm.DB, c cache.Cache, log *zap.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		reqCtx, cancel := context.WithTimeout(ctx.UserContext(), checkTimeout)
		defer cancel()

		resp := Response{Status: "ok", Database: "ok", Cache: "ok"}
		status := fiber.StatusOK

		if err := database.Ping(reqCtx, db); err != nil {
			log.Error("health: veritabanı erişilemiyor", zap.Error(err))
			resp.Status = "down"
			resp.Database = "down"
			status = fiber.StatusServiceUnavailable
		}

		if err := c.Ping(reqCtx); err != nil {
			log.Warn("health: cache erişilemiyor", zap.Error(err))
			resp.Cache = "down"
			if resp.Status == "ok" {
				resp.Status = "degraded"
			}
		}

		return ctx.Status(status).JSON(resp)
	}
}
