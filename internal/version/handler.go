package version

import (
	"time"

	"restoran-kpi-backend/internal/httputil"
	"restoran-kpi-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type VersionResponse struct {
	ID        uint                 `json:"id"`
	Version   string               `json:"version"`
	Changelog *string              `json:"changelog"`
	Status    models.VersionStatus `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

type VersionRequest struct {
	Version   string  `json:"version" validate:"required,max=50"`
	Changelog *string `json:"changelog"`
}

func toResponse(v models.AppVersion) VersionResponse {
	return VersionResponse{
		ID:        v.ID,
		Version:   v.Version,
		Changelog: v.Changelog,
		Status:    v.Status,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// GET /api/version
func LatestVersionHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l, err := svc.Latest(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(l)
	}
}

// GET /api/admin/versions
func ListVersionsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		versions, err := svc.List(c.UserContext())
		if err != nil {
			return err
		}

		resp := make([]VersionResponse, 0, len(versions))
		for _, v := range versions {
			resp = append(resp, toResponse(v))
		}
		return c.JSON(resp)
	}
}

// POST /api/admin/versions
func CreateVersionHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body VersionRequest
		if err := httputil.ParseBody(c, &body); err != nil {
			return err
		}

		v, err := svc.CreateDraft(c.UserContext(), body.Version, body.Changelog)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "version": toResponse(*v)})
	}
}

// POST /api/admin/versions/:id/publish
func PublishVersionHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c, "id")
		if err != nil {
			return err
		}

		v, err := svc.Publish(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "version": toResponse(*v)})
	}
}

// DELETE /api/admin/versions/:id
func DeleteVersionHandler(svc *Service) fiber.Handler {
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

// POST /api/admin/update-version
func QuickPublishHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body VersionRequest
		if err := httputil.ParseBody(c, &body); err != nil {
			return err
		}

		v, err := svc.QuickPublish(c.UserContext(), body.Version, body.Changelog)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "version": v.Version, "changelog": v.Changelog})
	}
}
