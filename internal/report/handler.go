package report

import (
	"encoding/json"
	"fmt"
	"time"

	"restoran-kpi-backend/internal/httputil"
	"restoran-kpi-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type DailyReportResponse struct {
	ID             uint            `json:"id"`
	ReportDate     time.Time       `json:"reportDate"`
	Snapshot       json.RawMessage `json:"snapshot"`
	TotalKPIs      int             `json:"totalKpis"`
	SuccessfulKPIs int             `json:"successfulKpis"`
	SuccessRate    int             `json:"successRate"`
	CreatedAt      time.Time       `json:"createdAt"`
}

type CreateDailyReportRequest struct {
	ReportDate     *time.Time      `json:"reportDate"` // ISO 8601, opsiyonel
	Snapshot       json.RawMessage `json:"snapshot" validate:"required"`
	TotalKPIs      *int            `json:"totalKpis" validate:"required,gte=0"`
	SuccessfulKPIs *int            `json:"successfulKpis" validate:"required,gte=0"`
	SuccessRate    *int            `json:"successRate" validate:"required,gte=0,lte=100"`
}

func toResponse(r models.DailyReport) DailyReportResponse {
	return DailyReportResponse{
		ID:             r.ID,
		ReportDate:     r.ReportDate,
		Snapshot:       json.RawMessage(r.Snapshot),
		TotalKPIs:      r.TotalKPIs,
		SuccessfulKPIs: r.SuccessfulKPIs,
		SuccessRate:    r.SuccessRate,
		CreatedAt:      r.CreatedAt,
	}
}

func toResponses(reports []models.DailyReport) []DailyReportResponse {
	resp := make([]DailyReportResponse, 0, len(reports))
	for _, r := range reports {
		resp = append(resp, toResponse(r))
	}
	return resp
}

// POST /api/reports/daily
func CreateDailyReportHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateDailyReportRequest
		if err := httputil.ParseBody(c, &body); err != nil {
			return err
		}

		rep, err := svc.Create(c.UserContext(), CreateInput{
			ReportDate:     body.ReportDate,
			Snapshot:       body.Snapshot,
			TotalKPIs:      *body.TotalKPIs,
			SuccessfulKPIs: *body.SuccessfulKPIs,
			SuccessRate:    *body.SuccessRate,
		})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(*rep))
	}
}

// GET /api/reports/daily?limit=30
func ListDailyReportsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", DefaultListLimit)

		reports, err := svc.List(c.UserContext(), limit)
		if err != nil {
			return err
		}
		return c.JSON(toResponses(reports))
	}
}

// GET /api/admin/reports
func AdminListReportsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reports, err := svc.List(c.UserContext(), AdminListLimit)
		if err != nil {
			return err
		}
		return c.JSON(toResponses(reports))
	}
}

// DELETE /api/reports/daily/:id
func DeleteDailyReportHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c, "id")
		if err != nil {
			return err
		}

		if err := svc.Delete(c.UserContext(), id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/admin/reports/export?limit=1000
func ExportReportsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", AdminListLimit)

		reports, err := svc.List(c.UserContext(), limit)
		if err != nil {
			return err
		}

		buf, err := BuildWorkbook(reports)
		if err != nil {
			return err
		}

		filename := fmt.Sprintf("gunluk-raporlar-%s.xlsx", time.Now().Format("20060102"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(buf.Bytes())
	}
}
