package kpi

import (
	"context"
	"errors"
	"testing"
	"time"

	"restoran-kpi-backend/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var kpiColumns = []string{"id", "name", "category", "target", "actual", "period", "unit", "position", "created_at", "updated_at"}

func TestRepositoryListOrdersByPosition(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewGormRepository(db, zap.NewNop())

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "kpis" ORDER BY position asc,id asc`).
		WillReturnRows(sqlmock.NewRows(kpiColumns).
			AddRow(2, "Fire Oranı", "Mutfak", 3, 4, "Haftalık", "%", 0, now, now).
			AddRow(1, "Masa Devir Hızı", "Operasyon", 3, 2.5, "Günlük", nil, 1, now, now))

	kpis, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, kpis, 2)
	assert.Equal(t, "Fire Oranı", kpis[0].Name)
	require.NotNil(t, kpis[0].Unit)
	assert.Nil(t, kpis[1].Unit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryFindByIDMissingReturnsNil(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewGormRepository(db, zap.NewNop())

	mock.ExpectQuery(`SELECT \* FROM "kpis" WHERE id = \$1 ORDER BY "kpis"."id" LIMIT \$2`).
		WithArgs(7, 1).
		WillReturnRows(sqlmock.NewRows(kpiColumns))

	k, err := repo.FindByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Nil(t, k)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryMaxPositionEmptyTable(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewGormRepository(db, zap.NewNop())

	mock.ExpectQuery(`SELECT MAX\(position\) FROM "kpis"`).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

	max, err := repo.MaxPosition(context.Background())

	require.NoError(t, err)
	assert.Equal(t, -1, max)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryMaxPosition(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewGormRepository(db, zap.NewNop())

	mock.ExpectQuery(`SELECT MAX\(position\) FROM "kpis"`).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(12))

	max, err := repo.MaxPosition(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 12, max)
}

func TestRepositoryDeleteReportsMissingRow(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewGormRepository(db, zap.NewNop())

	mock.ExpectExec(`DELETE FROM "kpis" WHERE id = \$1`).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Delete(context.Background(), 99)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryReorderRunsInTransaction(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewGormRepository(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "kpis" SET "position"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs(0, sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "kpis" SET "position"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs(1, sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Reorder(context.Background(), []uint{3, 1}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryReorderRollsBackOnError(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewGormRepository(db, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "kpis" SET "position"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "kpis" SET "position"`).
		WillReturnError(errors.New("bağlantı koptu"))
	mock.ExpectRollback()

	err := repo.Reorder(context.Background(), []uint{3, 1})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryResetValuesTouchesAllRows(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewGormRepository(db, zap.NewNop())

	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectExec(`UPDATE "kpis" SET "actual"=\$1,"target"=\$2,"updated_at"=\$3 WHERE 1 = 1`).
		WithArgs(0, 0, at).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.ResetValues(context.Background(), at)

	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
