package kpi

import (
	"time"

	"restoran-kpi-backend/internal/httputil"
	"restoran-kpi-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type KPIResponse struct {
	ID        uint               `json:"id"`
	Name      string             `json:"name"`
	Category  models.KPICategory `json:"category"`
	Target    float64            `json:"target"`
	Actual    float64            `json:"actual"`
	Period    models.KPIPeriod   `json:"period"`
	Unit      *string            `json:"unit"`
	Position  int                `json:"position"`
	Status    Status             `json:"status"` // hesaplanır, saklanmaz
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type CreateKPIRequest struct {
	Name     string             `json:"name" validate:"required,max=200"`
	Category models.KPICategory `json:"category" validate:"required,kpi_category"`
	Target   *float64           `json:"target" validate:"required"`
	Actual   *float64           `json:"actual"`
	Period   models.KPIPeriod   `json:"period" validate:"required,kpi_period"`
	Unit     *string            `json:"unit" validate:"omitempty,max=20"`
	Position *int               `json:"position" validate:"omitempty,gte=0"`
}

type UpdateKPIRequest struct {
	Name     *string             `json:"name" validate:"omitempty,max=200"`
	Category *models.KPICategory `json:"category" validate:"omitempty,kpi_category"`
	Target   *float64            `json:"target"`
	Actual   *float64            `json:"actual"`
	Period   *models.KPIPeriod   `json:"period" validate:"omitempty,kpi_period"`
	Unit     *string             `json:"unit" validate:"omitempty,max=20"`
	Position *int                `json:"position" validate:"omitempty,gte=0"`
}

type ReorderRequest struct {
	KPIIDs []uint `json:"kpiIds"`
}

func toResponse(k models.KPI) KPIResponse {
	return KPIResponse{
		ID:        k.ID,
		Name:      k.Name,
		Category:  k.Category,
		Target:    k.Target,
		Actual:    k.Actual,
		Period:    k.Period,
		Unit:      k.Unit,
		Position:  k.Position,
		Status:    CalculateStatus(k.Target, k.Actual),
		CreatedAt: k.CreatedAt,
		UpdatedAt: k.UpdatedAt,
	}
}

// GET /api/kpis
func ListKPIsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kpis, err := svc.List(c.UserContext())
		if err != nil {
			return err
		}

		resp := make([]KPIResponse, 0, len(kpis))
		for _, k := range kpis {
			resp = append(resp, toResponse(k))
		}
		return c.JSON(resp)
	}
}

// GET /api/kpis/:id
func GetKPIHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c, "id")
		if err != nil {
			return err
		}

		k, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(*k))
	}
}

// POST /api/kpis
func CreateKPIHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateKPIRequest
		if err := httputil.ParseBody(c, &body); err != nil {
			return err
		}

		k, err := svc.Create(c.UserContext(), CreateInput{
			Name:     body.Name,
			Category: body.Category,
			Target:   *body.Target,
			Actual:   body.Actual,
			Period:   body.Period,
			Unit:     body.Unit,
			Position: body.Position,
		})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(*k))
	}
}

// PATCH /api/kpis/:id
func UpdateKPIHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c, "id")
		if err != nil {
			return err
		}

		var body UpdateKPIRequest
		if err := httputil.ParseBody(c, &body); err != nil {
			return err
		}

		k, err := svc.Update(c.UserContext(), id, UpdateInput{
			Name:     body.Name,
			Category: body.Category,
			Target:   body.Target,
			Actual:   body.Actual,
			Period:   body.Period,
			Unit:     body.Unit,
			Position: body.Position,
		})
		if err != nil {
			return err
		}
		return c.JSON(toResponse(*k))
	}
}

// DELETE /api/kpis/:id
func DeleteKPIHandler(svc *Service) fiber.Handler {
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

// POST /api/kpis/reorder
func ReorderKPIsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ReorderRequest
		if err := c.BodyParser(&body); err != nil || body.KPIIDs == nil {
			return fiber.NewError(fiber.StatusBadRequest, "kpiIds bir dizi olmalı")
		}

		if err := svc.Reorder(c.UserContext(), body.KPIIDs); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// POST /api/kpis/reset
func ResetKPIsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := svc.Reset(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "count": n})
	}
}
