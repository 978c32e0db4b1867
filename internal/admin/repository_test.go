package admin

import (
	"context"
	"testing"

	"restoran-kpi-backend/internal/models"
	"restoran-kpi-backend/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRepositoryFindDeviceByFingerprint(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewGormRepository(db, zap.NewNop())

	mock.ExpectQuery(`SELECT \* FROM "admin_devices" WHERE admin_id = \$1 AND device_fingerprint = \$2`).
		WithArgs(3, "fp-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "admin_id", "device_fingerprint", "device_name", "is_approved", "is_authorized"}).
			AddRow(8, 3, "fp-1", "Kasa", true, false))

	d, err := repo.FindDevice(context.Background(), 3, "fp-1")

	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, uint(8), d.ID)
	assert.True(t, d.IsApproved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListPendingDevices(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewGormRepository(db, zap.NewNop())

	mock.ExpectQuery(`SELECT \* FROM "admin_devices" WHERE is_approved = \$1 ORDER BY created_at asc`).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))

	devices, err := repo.ListDevices(context.Background(), true)

	require.NoError(t, err)
	assert.Len(t, devices, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateAdminTranslatesUniqueViolation(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	repo := NewGormRepository(db, zap.NewNop())

	mock.ExpectQuery(`INSERT INTO "admins"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err = repo.CreateAdmin(context.Background(), &models.Admin{AdminID: "mudur1", PasswordHash: "x"})

	assert.ErrorIs(t, err, ErrDuplicate)
}
