package server

import (
	"strings"

	"restoran-kpi-backend/internal/admin"
	"restoran-kpi-backend/internal/audit"
	"restoran-kpi-backend/internal/auth"
	"restoran-kpi-backend/internal/cache"
	"restoran-kpi-backend/internal/config"
	"restoran-kpi-backend/internal/health"
	"restoran-kpi-backend/internal/kpi"
	"restoran-kpi-backend/internal/middleware"
	"restoran-kpi-backend/internal/occasion"
	"restoran-kpi-backend/internal/report"
	"restoran-kpi-backend/internal/version"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services HTTP katmanının ihtiyaç duyduğu servisler.
type Services struct {
	KPI      *kpi.Service
	Report   *report.Service
	Occasion *occasion.Service
	Admin    *admin.Service
	Version  *version.Service
	Audit    *audit.Service
}

// NewServices repository'leri kurar ve servisleri birbirine bağlar.
func NewServices(cfg *config.Config, db *gorm.DB, c cache.Cache, issuer *auth.TokenIssuer, log *zap.Logger) *Services {
	auditSvc := audit.NewService(db, log.Named("audit"))

	return &Services{
		KPI:      kpi.NewService(kpi.NewGormRepository(db, log), auditSvc, log.Named("kpi")),
		Report:   report.NewService(report.NewGormRepository(db, log), auditSvc, log.Named("report")),
		Occasion: occasion.NewService(occasion.NewGormRepository(db, log), auditSvc, log.Named("occasion")),
		Admin:    admin.NewService(admin.NewGormRepository(db, log), issuer, auditSvc, log.Named("admin")),
		Version:  version.NewService(version.NewGormRepository(db, log), c, cfg.VersionCacheTTL, auditSvc, log.Named("version")),
		Audit:    auditSvc,
	}
}

// New fiber uygulamasını middleware'ler ve rotalarla birlikte kurar.
func New(cfg *config.Config, svc *Services, issuer *auth.TokenIssuer, db *gorm.DB, c cache.Cache, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "restoran-kpi-backend",
		ErrorHandler: middleware.ErrorHandler(log),
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.RequestLogger(log.Named("http")))
	// panik logger'a hata olarak döner, 500 olarak sayılır ve loglanır
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	// Token varsa doğrulanır ve audit aktörü olarak kullanılır; yoksa istek geçer
	api.Use(auth.JWTMiddleware(issuer, false))

	api.Get("/health", health.Handler(db, c, log))
	api.Get("/version", version.LatestVersionHandler(svc.Version))

	// KPI
	api.Get("/kpis", kpi.ListKPIsHandler(svc.KPI))
	api.Post("/kpis", kpi.CreateKPIHandler(svc.KPI))
	api.Post("/kpis/reorder", kpi.ReorderKPIsHandler(svc.KPI))
	api.Post("/kpis/reset", kpi.ResetKPIsHandler(svc.KPI))
	api.Get("/kpis/:id", kpi.GetKPIHandler(svc.KPI))
	api.Patch("/kpis/:id", kpi.UpdateKPIHandler(svc.KPI))
	api.Delete("/kpis/:id", kpi.DeleteKPIHandler(svc.KPI))

	// Günlük raporlar
	api.Post("/reports/daily", report.CreateDailyReportHandler(svc.Report))
	api.Get("/reports/daily", report.ListDailyReportsHandler(svc.Report))
	api.Delete("/reports/daily/:id", report.DeleteDailyReportHandler(svc.Report))

	// Kritik durumlar
	api.Get("/critical-occasions", occasion.ListCriticalOccasionsHandler(svc.Occasion))
	api.Post("/critical-occasions", occasion.CreateCriticalOccasionHandler(svc.Occasion))
	api.Delete("/critical-occasions/:id", occasion.DeleteCriticalOccasionHandler(svc.Occasion))

	// Public admin auth
	api.Post("/admin/register", admin.RegisterHandler(svc.Admin))
	api.Post("/admin/login", admin.LoginHandler(svc.Admin))

	// Protected admin: onaylı cihaz ve yetkili hesap, durum her istekte veritabanından okunur
	adminRoutes := api.Group("/admin",
		auth.RequireClaims(cfg.RequireToken),
		auth.RequireYetkili(cfg.RequireToken, svc.Admin),
	)

	adminRoutes.Get("/reports", report.AdminListReportsHandler(svc.Report))
	adminRoutes.Get("/reports/export", report.ExportReportsHandler(svc.Report))
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler(svc.Audit))

	adminRoutes.Get("/all-admins", admin.ListAdminsHandler(svc.Admin))
	adminRoutes.Patch("/update-yetkili/:id", admin.UpdateYetkiliHandler(svc.Admin))

	adminRoutes.Get("/all-devices", admin.ListDevicesHandler(svc.Admin))
	adminRoutes.Get("/pending-devices", admin.ListPendingDevicesHandler(svc.Admin))
	adminRoutes.Post("/approve-device", admin.ApproveDeviceByBodyHandler(svc.Admin)) // eski istemci
	adminRoutes.Post("/approve-device/:id", admin.ApproveDeviceHandler(svc.Admin))
	adminRoutes.Post("/reject-device/:id", admin.RejectDeviceHandler(svc.Admin))
	adminRoutes.Patch("/update-device-authorization/:id", admin.UpdateDeviceAuthorizationHandler(svc.Admin))

	// Sürümler
	adminRoutes.Get("/versions", version.ListVersionsHandler(svc.Version))
	adminRoutes.Post("/versions", version.CreateVersionHandler(svc.Version))
	adminRoutes.Post("/versions/:id/publish", version.PublishVersionHandler(svc.Version))
	adminRoutes.Delete("/versions/:id", version.DeleteVersionHandler(svc.Version))
	adminRoutes.Post("/update-version", version.QuickPublishHandler(svc.Version))

	return app
}
