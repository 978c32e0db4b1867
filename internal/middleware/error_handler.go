package middleware

import (
	"errors"

	"restoran-kpi-backend/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var kindStatus = map[apperr.Kind]int{
	apperr.KindValidation:   fiber.StatusBadRequest,
	apperr.KindNotFound:     fiber.StatusNotFound,
	apperr.KindUnauthorized: fiber.StatusUnauthorized,
	apperr.KindForbidden:    fiber.StatusForbidden,
	apperr.KindConflict:     fiber.StatusConflict,
}

func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			status, ok := kindStatus[appErr.Kind]
			if !ok {
				status = fiber.StatusInternalServerError
			}
			if len(appErr.Fields) > 0 {
				return c.Status(status).JSON(fiber.Map{"error": appErr.Fields})
			}
			return c.Status(status).JSON(fiber.Map{"error": appErr.Message})
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		log.Error("Beklenmeyen hata",
			zap.Error(err),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Beklenmeyen sunucu hatası",
		})
	}
}
