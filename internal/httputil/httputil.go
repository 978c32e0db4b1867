package httputil

import (
	"restoran-kpi-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ParseID path parametresini pozitif bir ID olarak okur.
func ParseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz ID")
	}
	return uint(id), nil
}

// ParseBody gövdeyi çözer ve validate tag'lerini çalıştırır.
func ParseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
	}
	return validation.Struct(dst)
}
