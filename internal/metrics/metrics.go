package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kpi_http_requests_total",
		Help: "İşlenen HTTP istek sayısı",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kpi_http_request_duration_seconds",
		Help:    "HTTP istek süresi",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	KPIResetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kpi_resets_total",
		Help: "Toplu KPI sıfırlama sayısı",
	})

	DailyReportsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kpi_daily_reports_created_total",
		Help: "Gönderilen günlük rapor sayısı",
	})

	AdminLoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kpi_admin_logins_total",
		Help: "Admin giriş denemeleri",
	}, []string{"result"})
)

const (
	LoginSuccess       = "success"
	LoginFailed        = "failed"
	LoginPendingDevice = "pending_device"
)
