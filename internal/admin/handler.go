package admin

import (
	"time"

	"restoran-kpi-backend/internal/httputil"
	"restoran-kpi-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AdminResponse struct {
	ID              uint      `json:"id"`
	AdminID         string    `json:"adminId"`
	YetkiliApproved bool      `json:"yetkiliApproved"`
	CreatedAt       time.Time `json:"createdAt"`
}

type DeviceResponse struct {
	ID                uint      `json:"id"`
	AdminID           uint      `json:"adminId"`
	DeviceFingerprint string    `json:"deviceFingerprint"`
	DeviceName        string    `json:"deviceName"`
	IsApproved        bool      `json:"isApproved"`
	IsAuthorized      bool      `json:"isAuthorized"`
	CreatedAt         time.Time `json:"createdAt"`
	LastUsed          time.Time `json:"lastUsed"`
}

type RegisterRequest struct {
	AdminID  string `json:"adminId" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=72"` // bcrypt 72 byte sınırı
}

type LoginRequest struct {
	AdminID           string `json:"adminId" validate:"required"`
	Password          string `json:"password" validate:"required"`
	DeviceFingerprint string `json:"deviceFingerprint" validate:"required,max=255"`
	DeviceName        string `json:"deviceName" validate:"omitempty,max=255"`
}

type LoginResponse struct {
	Success bool              `json:"success"`
	Token   string            `json:"token"`
	Admin   AdminResponse     `json:"admin"`
	Device  LoginDeviceStatus `json:"device"`
}

type LoginDeviceStatus struct {
	ID           uint   `json:"id"`
	IsApproved   bool   `json:"isApproved"`
	IsAuthorized bool   `json:"isAuthorized"`
	DeviceName   string `json:"deviceName"`
}

type ApproveDeviceRequest struct {
	DeviceID uint `json:"deviceId"`
}

type DeviceAuthorizationRequest struct {
	IsAuthorized *bool `json:"isAuthorized"`
}

type YetkiliRequest struct {
	YetkiliApproved *bool `json:"yetkiliApproved"`
}

func toAdminResponse(a models.Admin) AdminResponse {
	return AdminResponse{
		ID:              a.ID,
		AdminID:         a.AdminID,
		YetkiliApproved: a.YetkiliApproved,
		CreatedAt:       a.CreatedAt,
	}
}

func toDeviceResponse(d models.AdminDevice) DeviceResponse {
	return DeviceResponse{
		ID:                d.ID,
		AdminID:           d.AdminID,
		DeviceFingerprint: d.DeviceFingerprint,
		DeviceName:        d.DeviceName,
		IsApproved:        d.IsApproved,
		IsAuthorized:      d.IsAuthorized,
		CreatedAt:         d.CreatedAt,
		LastUsed:          d.LastUsed,
	}
}

func toDeviceResponses(devices []models.AdminDevice) []DeviceResponse {
	resp := make([]DeviceResponse, 0, len(devices))
	for _, d := range devices {
		resp = append(resp, toDeviceResponse(d))
	}
	return resp
}

// ----------------------------------------
// KAYIT / GİRİŞ
// ----------------------------------------

// POST /api/admin/register
func RegisterHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := httputil.ParseBody(c, &body); err != nil {
			return err
		}

		a, err := svc.Register(c.UserContext(), body.AdminID, body.Password)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"admin":   fiber.Map{"id": a.ID, "adminId": a.AdminID},
		})
	}
}

// POST /api/admin/login
func LoginHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := httputil.ParseBody(c, &body); err != nil {
			return err
		}

		res, err := svc.Login(c.UserContext(), LoginInput{
			AdminID:           body.AdminID,
			Password:          body.Password,
			DeviceFingerprint: body.DeviceFingerprint,
			DeviceName:        body.DeviceName,
		})
		if err != nil {
			return err
		}

		return c.JSON(LoginResponse{
			Success: true,
			Token:   res.Token,
			Admin:   toAdminResponse(*res.Admin),
			Device: LoginDeviceStatus{
				ID:           res.Device.ID,
				IsApproved:   res.Device.IsApproved,
				IsAuthorized: res.Device.IsAuthorized,
				DeviceName:   res.Device.DeviceName,
			},
		})
	}
}

// ----------------------------------------
// YÖNETİCİLER
// ----------------------------------------

// GET /api/admin/all-admins
func ListAdminsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		admins, err := svc.ListAdmins(c.UserContext())
		if err != nil {
			return err
		}

		resp := make([]AdminResponse, 0, len(admins))
		for _, a := range admins {
			resp = append(resp, toAdminResponse(a))
		}
		return c.JSON(resp)
	}
}

// PATCH /api/admin/update-yetkili/:id
func UpdateYetkiliHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c, "id")
		if err != nil {
			return err
		}

		var body YetkiliRequest
		if err := c.BodyParser(&body); err != nil || body.YetkiliApproved == nil {
			return fiber.NewError(fiber.StatusBadRequest, "yetkiliApproved alanı boolean olmalıdır.")
		}

		a, err := svc.SetYetkili(c.UserContext(), id, *body.YetkiliApproved)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "admin": toAdminResponse(*a)})
	}
}

// ----------------------------------------
// CİHAZLAR
// ----------------------------------------

// GET /api/admin/all-devices
func ListDevicesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		devices, err := svc.ListDevices(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(toDeviceResponses(devices))
	}
}

// GET /api/admin/pending-devices
func ListPendingDevicesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		devices, err := svc.ListPendingDevices(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(toDeviceResponses(devices))
	}
}

// POST /api/admin/approve-device/:id
func ApproveDeviceHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c, "id")
		if err != nil {
			return err
		}

		d, err := svc.ApproveDevice(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "device": toDeviceResponse(*d)})
	}
}

// POST /api/admin/approve-device  {"deviceId": 3}
// Eski istemciler için gövdeden id alan sürüm.
func ApproveDeviceByBodyHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ApproveDeviceRequest
		if err := c.BodyParser(&body); err != nil || body.DeviceID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Device ID gereklidir.")
		}

		d, err := svc.ApproveDevice(c.UserContext(), body.DeviceID)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"success": true,
			"device":  fiber.Map{"id": d.ID, "isApproved": d.IsApproved},
		})
	}
}

// POST /api/admin/reject-device/:id
func RejectDeviceHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c, "id")
		if err != nil {
			return err
		}

		if err := svc.RejectDevice(c.UserContext(), id); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "message": "Cihaz reddedildi."})
	}
}

// PATCH /api/admin/update-device-authorization/:id
func UpdateDeviceAuthorizationHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httputil.ParseID(c, "id")
		if err != nil {
			return err
		}

		var body DeviceAuthorizationRequest
		if err := c.BodyParser(&body); err != nil || body.IsAuthorized == nil {
			return fiber.NewError(fiber.StatusBadRequest, "isAuthorized alanı boolean olmalıdır.")
		}

		d, err := svc.SetDeviceAuthorization(c.UserContext(), id, *body.IsAuthorized)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "device": toDeviceResponse(*d)})
	}
}
