package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"restoran-kpi-backend/internal/apperr"
	"restoran-kpi-backend/internal/audit"
	"restoran-kpi-backend/internal/auth"
	"restoran-kpi-backend/internal/metrics"
	"restoran-kpi-backend/internal/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEntity  = "admin"
	deviceEntity = "admin_device"

	DefaultDeviceName = "Unknown Device"
)

// TokenGenerator başarılı girişte oturum token'ı üretir.
type TokenGenerator interface {
	Generate(admin *models.Admin, device *models.AdminDevice) (string, error)
}

type LoginInput struct {
	AdminID           string
	Password          string
	DeviceFingerprint string
	DeviceName        string
}

type LoginResult struct {
	Admin  *models.Admin
	Device *models.AdminDevice
	Token  string
}

// BootstrapInput ilk yetkili hesabı ve onu kullanacak cihazı tanımlar.
type BootstrapInput struct {
	AdminID           string
	Password          string
	DeviceFingerprint string
	DeviceName        string
}

type Service struct {
	repo       Repository
	tokens     TokenGenerator
	audit      audit.Recorder
	log        *zap.Logger
	now        func() time.Time
	bcryptCost int
}

func NewService(repo Repository, tokens TokenGenerator, recorder audit.Recorder, log *zap.Logger) *Service {
	return &Service{
		repo:       repo,
		tokens:     tokens,
		audit:      recorder,
		log:        log,
		now:        time.Now,
		bcryptCost: bcrypt.DefaultCost,
	}
}

func (s *Service) Register(ctx context.Context, adminID, password string) (*models.Admin, error) {
	adminID = strings.TrimSpace(adminID)
	if adminID == "" || password == "" {
		return nil, apperr.Validation("Admin ID ve şifre gereklidir.")
	}

	existing, err := s.repo.FindAdminByAdminID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("Bu Admin ID zaten kullanılıyor.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("şifre hashlenemedi: %w", err)
	}

	a := &models.Admin{AdminID: adminID, PasswordHash: string(hash)}
	if err := s.repo.CreateAdmin(ctx, a); err != nil {
		// kontrol ile insert arasında aynı ID kaydedilmiş olabilir
		if errors.Is(err, ErrDuplicate) {
			return nil, apperr.Conflict("Bu Admin ID zaten kullanılıyor.")
		}
		return nil, err
	}

	s.log.Info("Yeni admin kaydedildi", zap.String("admin_id", a.AdminID))
	audit.Safe(ctx, s.audit, s.log, audit.Entry{
		Actor:       a.AdminID,
		EntityType:  adminEntity,
		EntityID:    a.ID,
		Action:      models.AuditActionCreate,
		Description: "Admin kaydı: " + a.AdminID,
	})
	return a, nil
}

// Login şifreyi doğrular ve (admin, parmak izi) için cihazı bulur ya da onaysız olarak oluşturur.
// Onaysız cihazla giriş de başarılıdır; istemci cihaz durumuna göre davranır.
func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	a, err := s.repo.FindAdminByAdminID(ctx, strings.TrimSpace(in.AdminID))
	if err != nil {
		return nil, err
	}
	if a == nil || bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(in.Password)) != nil {
		metrics.AdminLoginsTotal.WithLabelValues(metrics.LoginFailed).Inc()
		return nil, apperr.Unauthorized("Admin ID veya şifre yanlış.")
	}

	device, err := s.getOrCreateDevice(ctx, a.ID, in.DeviceFingerprint, in.DeviceName)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(a, device)
	if err != nil {
		return nil, fmt.Errorf("token üretilemedi: %w", err)
	}

	result := metrics.LoginSuccess
	if !device.IsApproved {
		result = metrics.LoginPendingDevice
	}
	metrics.AdminLoginsTotal.WithLabelValues(result).Inc()

	s.log.Info("Admin girişi",
		zap.String("admin_id", a.AdminID),
		zap.Uint("device_id", device.ID),
		zap.Bool("device_approved", device.IsApproved),
	)
	return &LoginResult{Admin: a, Device: device, Token: token}, nil
}

func (s *Service) getOrCreateDevice(ctx context.Context, adminID uint, fingerprint, name string) (*models.AdminDevice, error) {
	now := s.now()

	d, err := s.repo.FindDevice(ctx, adminID, fingerprint)
	if err != nil {
		return nil, err
	}
	if d != nil {
		if err := s.repo.TouchDevice(ctx, d.ID, now); err != nil {
			return nil, err
		}
		d.LastUsed = now
		return d, nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultDeviceName
	}
	d = &models.AdminDevice{
		AdminID:           adminID,
		DeviceFingerprint: fingerprint,
		DeviceName:        name,
		LastUsed:          now,
	}
	if err := s.repo.CreateDevice(ctx, d); err != nil {
		if !errors.Is(err, ErrDuplicate) {
			return nil, err
		}
		// eşzamanlı ilk girişte diğer istek cihazı oluşturmuş
		d, err = s.repo.FindDevice(ctx, adminID, fingerprint)
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, fmt.Errorf("cihaz kaydı bulunamadı: admin=%d", adminID)
		}
		return d, nil
	}

	s.log.Info("Yeni cihaz kaydedildi, onay bekliyor",
		zap.Uint("admin", adminID),
		zap.Uint("device_id", d.ID),
		zap.String("device_name", d.DeviceName),
	)
	return d, nil
}

func (s *Service) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	return s.repo.ListAdmins(ctx)
}

func (s *Service) SetYetkili(ctx context.Context, id uint, approved bool) (*models.Admin, error) {
	ok, err := s.repo.SetYetkili(ctx, id, approved)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("Yönetici bulunamadı.")
	}

	a, err := s.repo.FindAdminByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperr.NotFound("Yönetici bulunamadı.")
	}

	audit.Safe(ctx, s.audit, s.log, audit.Entry{
		EntityType:  adminEntity,
		EntityID:    id,
		Action:      models.AuditActionAuthorize,
		Description: fmt.Sprintf("Yetkili durumu: %s -> %t", a.AdminID, approved),
		After:       map[string]bool{"yetkiliApproved": approved},
	})
	return a, nil
}

func (s *Service) ListDevices(ctx context.Context) ([]models.AdminDevice, error) {
	return s.repo.ListDevices(ctx, false)
}

func (s *Service) ListPendingDevices(ctx context.Context) ([]models.AdminDevice, error) {
	return s.repo.ListDevices(ctx, true)
}

// ApproveDevice tekrar çağrılabilir; onaylı cihaz onaylı kalır.
func (s *Service) ApproveDevice(ctx context.Context, id uint) (*models.AdminDevice, error) {
	d, err := s.updateDevice(ctx, id, map[string]any{"is_approved": true})
	if err != nil {
		return nil, err
	}

	audit.Safe(ctx, s.audit, s.log, audit.Entry{
		EntityType:  deviceEntity,
		EntityID:    id,
		Action:      models.AuditActionApprove,
		Description: "Cihaz onaylandı: " + d.DeviceName,
	})
	return d, nil
}

// RejectDevice durumu değiştirmez; cihaz onaysız kalır ve listede görünmeye devam eder.
// TODO: cihazı silmek mi yoksa rejected durumu eklemek mi gerektiğine karar verilince güncellenecek.
func (s *Service) RejectDevice(ctx context.Context, id uint) error {
	s.log.Info("Cihaz reddedildi (durum değişmedi)", zap.Uint("device_id", id))
	audit.Safe(ctx, s.audit, s.log, audit.Entry{
		EntityType:  deviceEntity,
		EntityID:    id,
		Action:      models.AuditActionReject,
		Description: "Cihaz reddedildi",
	})
	return nil
}

func (s *Service) SetDeviceAuthorization(ctx context.Context, id uint, authorized bool) (*models.AdminDevice, error) {
	d, err := s.updateDevice(ctx, id, map[string]any{"is_authorized": authorized})
	if err != nil {
		return nil, err
	}

	audit.Safe(ctx, s.audit, s.log, audit.Entry{
		EntityType:  deviceEntity,
		EntityID:    id,
		Action:      models.AuditActionAuthorize,
		Description: fmt.Sprintf("Cihaz yetkisi: %s -> %t", d.DeviceName, authorized),
		After:       map[string]bool{"isAuthorized": authorized},
	})
	return d, nil
}

func (s *Service) updateDevice(ctx context.Context, id uint, changes map[string]any) (*models.AdminDevice, error) {
	ok, err := s.repo.UpdateDevice(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("Cihaz bulunamadı.")
	}

	d, err := s.repo.FindDeviceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.NotFound("Cihaz bulunamadı.")
	}
	return d, nil
}

// CurrentAccess token'daki admin ve cihazın güncel onay durumunu okur.
// Admin ya da cihaz silinmişse veya cihaz başka admine aitse nil döner.
func (s *Service) CurrentAccess(ctx context.Context, adminID, deviceID uint) (*auth.Access, error) {
	a, err := s.repo.FindAdminByID(ctx, adminID)
	if err != nil || a == nil {
		return nil, err
	}
	d, err := s.repo.FindDeviceByID(ctx, deviceID)
	if err != nil || d == nil {
		return nil, err
	}
	if d.AdminID != a.ID {
		return nil, nil
	}
	return &auth.Access{DeviceApproved: d.IsApproved, Yetkili: a.YetkiliApproved}, nil
}

// Bootstrap ilk yetkili admini ve onaylı cihazını hazırlar. Tekrar çalıştırılabilir;
// admin zaten varsa şifresine dokunulmaz.
func (s *Service) Bootstrap(ctx context.Context, in BootstrapInput) (*models.Admin, *models.AdminDevice, error) {
	adminID := strings.TrimSpace(in.AdminID)
	fingerprint := strings.TrimSpace(in.DeviceFingerprint)
	if adminID == "" || fingerprint == "" {
		return nil, nil, apperr.Validation("Bootstrap için admin ID ve cihaz parmak izi gereklidir.")
	}

	a, err := s.repo.FindAdminByAdminID(ctx, adminID)
	if err != nil {
		return nil, nil, err
	}
	if a == nil {
		if a, err = s.Register(ctx, adminID, in.Password); err != nil {
			return nil, nil, err
		}
	}
	if !a.YetkiliApproved {
		if a, err = s.SetYetkili(ctx, a.ID, true); err != nil {
			return nil, nil, err
		}
	}

	d, err := s.getOrCreateDevice(ctx, a.ID, fingerprint, in.DeviceName)
	if err != nil {
		return nil, nil, err
	}
	if !d.IsApproved || !d.IsAuthorized {
		if d, err = s.updateDevice(ctx, d.ID, map[string]any{"is_approved": true, "is_authorized": true}); err != nil {
			return nil, nil, err
		}
		audit.Safe(ctx, s.audit, s.log, audit.Entry{
			EntityType:  deviceEntity,
			EntityID:    d.ID,
			Action:      models.AuditActionApprove,
			Description: "Bootstrap cihazı onaylandı: " + d.DeviceName,
		})
	}

	s.log.Info("Bootstrap admin hazır",
		zap.String("admin_id", a.AdminID),
		zap.Uint("device_id", d.ID),
	)
	return a, d, nil
}
