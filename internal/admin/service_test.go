package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"restoran-kpi-backend/internal/apperr"
	"restoran-kpi-backend/internal/audit"
	"restoran-kpi-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type memRepo struct {
	admins  []*models.Admin
	devices []*models.AdminDevice
}

func (r *memRepo) FindAdminByAdminID(_ context.Context, adminID string) (*models.Admin, error) {
	for _, a := range r.admins {
		if a.AdminID == adminID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRepo) FindAdminByID(_ context.Context, id uint) (*models.Admin, error) {
	for _, a := range r.admins {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRepo) CreateAdmin(_ context.Context, a *models.Admin) error {
	for _, existing := range r.admins {
		if existing.AdminID == a.AdminID {
			return ErrDuplicate
		}
	}
	a.ID = uint(len(r.admins) + 1)
	a.CreatedAt = time.Now()
	cp := *a
	r.admins = append(r.admins, &cp)
	return nil
}

func (r *memRepo) ListAdmins(context.Context) ([]models.Admin, error) {
	out := make([]models.Admin, 0, len(r.admins))
	for _, a := range r.admins {
		out = append(out, *a)
	}
	return out, nil
}

func (r *memRepo) SetYetkili(_ context.Context, id uint, approved bool) (bool, error) {
	for _, a := range r.admins {
		if a.ID == id {
			a.YetkiliApproved = approved
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) FindDevice(_ context.Context, adminID uint, fingerprint string) (*models.AdminDevice, error) {
	for _, d := range r.devices {
		if d.AdminID == adminID && d.DeviceFingerprint == fingerprint {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRepo) FindDeviceByID(_ context.Context, id uint) (*models.AdminDevice, error) {
	for _, d := range r.devices {
		if d.ID == id {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRepo) CreateDevice(_ context.Context, d *models.AdminDevice) error {
	for _, existing := range r.devices {
		if existing.AdminID == d.AdminID && existing.DeviceFingerprint == d.DeviceFingerprint {
			return ErrDuplicate
		}
	}
	d.ID = uint(len(r.devices) + 1)
	d.CreatedAt = time.Now()
	cp := *d
	r.devices = append(r.devices, &cp)
	return nil
}

func (r *memRepo) ListDevices(_ context.Context, pendingOnly bool) ([]models.AdminDevice, error) {
	out := []models.AdminDevice{}
	for _, d := range r.devices {
		if pendingOnly && d.IsApproved {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

func (r *memRepo) UpdateDevice(_ context.Context, id uint, changes map[string]any) (bool, error) {
	for _, d := range r.devices {
		if d.ID != id {
			continue
		}
		if v, ok := changes["is_approved"]; ok {
			d.IsApproved = v.(bool)
		}
		if v, ok := changes["is_authorized"]; ok {
			d.IsAuthorized = v.(bool)
		}
		return true, nil
	}
	return false, nil
}

func (r *memRepo) TouchDevice(_ context.Context, id uint, at time.Time) error {
	for _, d := range r.devices {
		if d.ID == id {
			d.LastUsed = at
		}
	}
	return nil
}

type stubTokens struct{ err error }

func (s stubTokens) Generate(a *models.Admin, d *models.AdminDevice) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "token-" + a.AdminID, nil
}

type recordingAudit struct{ entries []audit.Entry }

func (a *recordingAudit) Record(_ context.Context, e audit.Entry) error {
	a.entries = append(a.entries, e)
	return nil
}

func newTestService() (*Service, *memRepo, *recordingAudit) {
	repo := &memRepo{}
	rec := &recordingAudit{}
	svc := NewService(repo, stubTokens{}, rec, zap.NewNop())
	svc.bcryptCost = bcrypt.MinCost
	return svc, repo, rec
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, repo, _ := newTestService()

	a, err := svc.Register(context.Background(), " mudur1 ", "gizli123")

	require.NoError(t, err)
	assert.Equal(t, "mudur1", a.AdminID)
	assert.False(t, a.YetkiliApproved)
	require.Len(t, repo.admins, 1)
	assert.NotEqual(t, "gizli123", repo.admins[0].PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.admins[0].PasswordHash), []byte("gizli123")))
}

func TestRegisterDuplicateAdminIDIsConflict(t *testing.T) {
	svc, repo, _ := newTestService()
	_, err := svc.Register(context.Background(), "mudur1", "gizli123")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "mudur1", "baska")

	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Len(t, repo.admins, 1)
}

// FindAdminByAdminID kaçırsa bile unique ihlali Conflict'e çevrilir
type racyRepo struct{ *memRepo }

func (racyRepo) FindAdminByAdminID(context.Context, string) (*models.Admin, error) { return nil, nil }

func TestRegisterMapsUniqueViolationToConflict(t *testing.T) {
	mem := &memRepo{admins: []*models.Admin{{ID: 1, AdminID: "mudur1"}}}
	svc := NewService(racyRepo{mem}, stubTokens{}, nil, zap.NewNop())
	svc.bcryptCost = bcrypt.MinCost

	_, err := svc.Register(context.Background(), "mudur1", "gizli123")

	assert.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	svc, repo, _ := newTestService()
	_, err := svc.Register(context.Background(), "mudur1", "gizli123")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{AdminID: "mudur1", Password: "yanlis", DeviceFingerprint: "fp-1"})
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	_, err = svc.Login(context.Background(), LoginInput{AdminID: "yok", Password: "gizli123", DeviceFingerprint: "fp-1"})
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	assert.Empty(t, repo.devices)
}

func TestLoginCreatesExactlyOneUnapprovedDevicePerFingerprint(t *testing.T) {
	svc, repo, _ := newTestService()
	_, err := svc.Register(context.Background(), "mudur1", "gizli123")
	require.NoError(t, err)

	first, err := svc.Login(context.Background(), LoginInput{AdminID: "mudur1", Password: "gizli123", DeviceFingerprint: "fp-1"})
	require.NoError(t, err)
	assert.False(t, first.Device.IsApproved)
	assert.False(t, first.Device.IsAuthorized)
	assert.Equal(t, DefaultDeviceName, first.Device.DeviceName)
	assert.Equal(t, "token-mudur1", first.Token)

	later := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return later }
	second, err := svc.Login(context.Background(), LoginInput{AdminID: "mudur1", Password: "gizli123", DeviceFingerprint: "fp-1", DeviceName: "Kasa Tableti"})
	require.NoError(t, err)

	require.Len(t, repo.devices, 1)
	assert.Equal(t, first.Device.ID, second.Device.ID)
	assert.Equal(t, DefaultDeviceName, second.Device.DeviceName, "ilk kayıttaki ad korunur")
	assert.Equal(t, later, repo.devices[0].LastUsed)

	_, err = svc.Login(context.Background(), LoginInput{AdminID: "mudur1", Password: "gizli123", DeviceFingerprint: "fp-2", DeviceName: "Telefon"})
	require.NoError(t, err)
	assert.Len(t, repo.devices, 2)
}

func TestLoginReturnsApprovalFlags(t *testing.T) {
	svc, repo, _ := newTestService()
	_, err := svc.Register(context.Background(), "mudur1", "gizli123")
	require.NoError(t, err)
	first, err := svc.Login(context.Background(), LoginInput{AdminID: "mudur1", Password: "gizli123", DeviceFingerprint: "fp-1"})
	require.NoError(t, err)

	_, err = svc.ApproveDevice(context.Background(), first.Device.ID)
	require.NoError(t, err)
	_, err = svc.SetYetkili(context.Background(), repo.admins[0].ID, true)
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), LoginInput{AdminID: "mudur1", Password: "gizli123", DeviceFingerprint: "fp-1"})

	require.NoError(t, err)
	assert.True(t, res.Device.IsApproved)
	assert.True(t, res.Admin.YetkiliApproved)
}

func TestLoginTokenFailure(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, stubTokens{err: errors.New("imza hatası")}, nil, zap.NewNop())
	svc.bcryptCost = bcrypt.MinCost
	_, err := svc.Register(context.Background(), "mudur1", "gizli123")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{AdminID: "mudur1", Password: "gizli123", DeviceFingerprint: "fp-1"})

	assert.Error(t, err)
}

func TestApproveDeviceIsIdempotent(t *testing.T) {
	svc, repo, rec := newTestService()
	repo.devices = []*models.AdminDevice{{ID: 1, AdminID: 1, DeviceFingerprint: "fp", DeviceName: "Tablet"}}

	for i := 0; i < 2; i++ {
		d, err := svc.ApproveDevice(context.Background(), 1)
		require.NoError(t, err)
		assert.True(t, d.IsApproved)
	}
	assert.Len(t, rec.entries, 2)

	_, err := svc.ApproveDevice(context.Background(), 9)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestRejectDeviceDoesNotChangeState(t *testing.T) {
	svc, repo, rec := newTestService()
	repo.devices = []*models.AdminDevice{{ID: 1, AdminID: 1, DeviceFingerprint: "fp", DeviceName: "Tablet"}}

	require.NoError(t, svc.RejectDevice(context.Background(), 1))

	assert.False(t, repo.devices[0].IsApproved)
	pending, err := svc.ListPendingDevices(context.Background())
	require.NoError(t, err)
	assert.Len(t, pending, 1)
	require.Len(t, rec.entries, 1)
	assert.Equal(t, models.AuditActionReject, rec.entries[0].Action)
}

func TestSetDeviceAuthorization(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.devices = []*models.AdminDevice{{ID: 1, AdminID: 1, DeviceFingerprint: "fp", IsAuthorized: true}}

	d, err := svc.SetDeviceAuthorization(context.Background(), 1, false)

	require.NoError(t, err)
	assert.False(t, d.IsAuthorized)

	_, err = svc.SetDeviceAuthorization(context.Background(), 2, true)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestSetYetkiliMissingAdmin(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.SetYetkili(context.Background(), 4, true)

	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestBootstrapCreatesYetkiliAdminWithApprovedDevice(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	a, d, err := svc.Bootstrap(ctx, BootstrapInput{AdminID: "patron", Password: "ilk-sifre", DeviceFingerprint: "fp-ofis"})

	require.NoError(t, err)
	assert.True(t, a.YetkiliApproved)
	assert.True(t, d.IsApproved)
	assert.True(t, d.IsAuthorized)
	assert.Equal(t, DefaultDeviceName, d.DeviceName)

	// tekrar çalıştırmak kayıt çoğaltmaz
	_, _, err = svc.Bootstrap(ctx, BootstrapInput{AdminID: "patron", Password: "baska", DeviceFingerprint: "fp-ofis"})
	require.NoError(t, err)
	assert.Len(t, repo.admins, 1)
	assert.Len(t, repo.devices, 1)

	res, err := svc.Login(ctx, LoginInput{AdminID: "patron", Password: "ilk-sifre", DeviceFingerprint: "fp-ofis"})
	require.NoError(t, err)
	assert.True(t, res.Device.IsApproved)
}

func TestBootstrapRequiresFingerprint(t *testing.T) {
	svc, repo, _ := newTestService()

	_, _, err := svc.Bootstrap(context.Background(), BootstrapInput{AdminID: "patron", Password: "x"})

	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Empty(t, repo.admins)
}

func TestCurrentAccessReadsLatestState(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.admins = []*models.Admin{{ID: 1, AdminID: "mudur1"}, {ID: 2, AdminID: "mudur2"}}
	repo.devices = []*models.AdminDevice{{ID: 5, AdminID: 1}}
	ctx := context.Background()

	access, err := svc.CurrentAccess(ctx, 1, 5)
	require.NoError(t, err)
	assert.False(t, access.DeviceApproved)
	assert.False(t, access.Yetkili)

	_, err = svc.ApproveDevice(ctx, 5)
	require.NoError(t, err)
	_, err = svc.SetYetkili(ctx, 1, true)
	require.NoError(t, err)

	access, err = svc.CurrentAccess(ctx, 1, 5)
	require.NoError(t, err)
	assert.True(t, access.DeviceApproved)
	assert.True(t, access.Yetkili)

	// başka adminin cihazı ve olmayan kayıtlar
	for _, ids := range [][2]uint{{2, 5}, {9, 5}, {1, 9}} {
		access, err = svc.CurrentAccess(ctx, ids[0], ids[1])
		require.NoError(t, err)
		assert.Nil(t, access)
	}
}
