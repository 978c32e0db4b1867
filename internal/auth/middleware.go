package auth

import (
	"context"
	"strings"

	"restoran-kpi-backend/internal/audit"

	"github.com/gofiber/fiber/v2"
)

const CtxClaimsKey = "admin_claims"

// JWTMiddleware Bearer token'ı doğrular, claim'leri locals'a ve aktörü context'e yazar.
// enforce false ise token opsiyoneldir: varsa doğrulanır, yoksa istek geçer.
func JWTMiddleware(issuer *TokenIssuer, enforce bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			if !enforce {
				return c.Next()
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header eksik")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization formatı 'Bearer <token>' olmalı")
		}

		claims, err := issuer.Parse(parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		}

		c.Locals(CtxClaimsKey, claims)
		c.SetUserContext(audit.WithActor(c.UserContext(), claims.AdminName))

		return c.Next()
	}
}

// RequireClaims JWTMiddleware'in opsiyonel modda çalıştığı gruplarda token'ı zorunlu kılar.
func RequireClaims(enforce bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !enforce {
			return c.Next()
		}
		if _, ok := ClaimsFrom(c); !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Bu işlem için giriş yapılmalı")
		}
		return c.Next()
	}
}

// Access token sahibinin veritabanındaki güncel onay durumu.
type Access struct {
	DeviceApproved bool
	Yetkili        bool
}

// AccessChecker claim'lerdeki admin ve cihaz için güncel durumu döner.
// Admin ya da cihaz artık yoksa nil döner.
type AccessChecker interface {
	CurrentAccess(ctx context.Context, adminID, deviceID uint) (*Access, error)
}

// RequireYetkili yetkili onayı ve onaylı cihaz ister. Token zorunlu değilse kontrol atlanır.
// checker verilirse token'daki bayraklar yerine veritabanındaki durum kullanılır.
func RequireYetkili(enforce bool, checker AccessChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !enforce {
			return c.Next()
		}

		claims, ok := ClaimsFrom(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Token bulunamadı")
		}

		access := &Access{DeviceApproved: claims.DeviceApproved, Yetkili: claims.YetkiliApproved}
		if checker != nil {
			current, err := checker.CurrentAccess(c.UserContext(), claims.AdminID, claims.DeviceID)
			if err != nil {
				return err
			}
			if current == nil {
				return fiber.NewError(fiber.StatusUnauthorized, "Oturum geçersiz, tekrar giriş yapın")
			}
			access = current
		}

		if !access.DeviceApproved {
			return fiber.NewError(fiber.StatusForbidden, "Bu cihaz henüz onaylanmamış")
		}
		if !access.Yetkili {
			return fiber.NewError(fiber.StatusForbidden, "Bu hesap yetkili olarak onaylanmamış")
		}
		return c.Next()
	}
}

func ClaimsFrom(c *fiber.Ctx) (*JWTCustomClaims, bool) {
	claims, ok := c.Locals(CtxClaimsKey).(*JWTCustomClaims)
	return claims, ok && claims != nil
}
