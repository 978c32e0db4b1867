package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"restoran-kpi-backend/internal/apperr"
	"restoran-kpi-backend/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestApp(err error) *fiber.App {
	log := zap.NewNop()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(log)})
	app.Use(RequestLogger(log))
	app.Get("/", func(c *fiber.Ctx) error { return err })
	return app
}

func TestErrorHandlerMapsKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"not found", apperr.NotFound("KPI bulunamadı"), 404, `{"error":"KPI bulunamadı"}`},
		{"wrapped conflict", fmt.Errorf("kayıt: %w", apperr.Conflict("Bu Admin ID zaten kullanılıyor.")), 409, `{"error":"Bu Admin ID zaten kullanılıyor."}`},
		{"unauthorized", apperr.Unauthorized("Admin ID veya şifre yanlış."), 401, `{"error":"Admin ID veya şifre yanlış."}`},
		{"validation fields", apperr.Validation("Geçersiz veri", apperr.FieldError{Field: "name", Message: "zorunlu alan"}), 400, `{"error":[{"field":"name","message":"zorunlu alan"}]}`},
		{"fiber error", fiber.NewError(fiber.StatusBadRequest, "Geçersiz ID"), 400, `{"error":"Geçersiz ID"}`},
		{"unexpected", errors.New("connection refused"), 500, `{"error":"Beklenmeyen sunucu hatası"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newTestApp(tt.err).Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			assert.JSONEq(t, tt.body, string(body))
		})
	}
}

func TestRequestLoggerPassesSuccess(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Use(RequestLogger(zap.NewNop()))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"success": true}) })

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body["success"])
}

func TestRequestLoggerCountsPanics(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Use(requestid.New())
	app.Use(RequestLogger(zap.New(core)))
	app.Use(recover.New())
	app.Get("/panik", func(c *fiber.Ctx) error { panic("beklenmeyen durum") })

	counter := metrics.HTTPRequestsTotal.WithLabelValues("GET", "/panik", "500")
	before := promtest.ToFloat64(counter)

	resp, err := app.Test(httptest.NewRequest("GET", "/panik", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, before+1, promtest.ToFloat64(counter))

	entries := logs.FilterMessage("istek").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
	assert.NotEmpty(t, entries[0].ContextMap()["request_id"])
}
