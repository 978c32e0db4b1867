package occasion

import (
	"time"

	"restoran-kpi-backend/internal/httputil"
	"restoran-kpi-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CriticalOccasionResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	SubUnit     *string   `json:"subUnit"`
	Description *string   `json:"description"`
	IsCritical  string    `json:"isCritical"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateCriticalOccasionRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	SubUnit     *string `json:"subUnit" validate:"omitempty,max=100"`
	Description *string `json:"description"`
	IsCritical  string  `json:"isCritical" validate:"omitempty,oneof=yes no"`
}

func toResponse(o models.CriticalOccasion) CriticalOccasionResponse {
	return CriticalOccasionResponse{
		ID:          o.ID,
		Title:       o.Title,
		SubUnit:     o.SubUnit,
		Description: o.Description,
		IsCritical:  o.IsCritical,
		CreatedAt:   o.CreatedAt,
	}
}

// GET /api/critical-occasions
func ListCriticalOccasionsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.List(c.UserContext())
		if err != nil {
			return err
		}

		resp := make([]CriticalOccasionResponse, 0, len(list))
		for _, o := range list {
			resp = append(resp, toResponse(o))
		}
		return c.JSON(resp)
	}
}

// POST /api/critical-occasions
func CreateCriticalOccasionHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCriticalOccasionRequest
		if err := httputil.ParseBody(c, &body); err != nil {
			return err
		}

		o, err := svc.Create(c.UserContext(), CreateInput{
			Title:       body.Title,
			SubUnit:     body.SubUnit,
			Description: body.Description,
			IsCritical:  body.IsCritical,
		})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(*o))
	}
}

// DELETE /api/critical-occasions/:id
func DeleteCriticalOccasionHandler(svc *Service) fiber.Handler {
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
