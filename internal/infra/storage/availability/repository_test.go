package availability

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/dbmetrics"
)

var testDate = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db := dbmetrics.Wrap(sqlDB, nil)
	return NewRepository(db), db, mock
}

func TestGetAvailableSlots_SortedInCatalogOrder(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery("SELECT time_slot FROM advisor_availability").
		WithArgs(int64(7), "2024-06-10", true).
		WillReturnRows(sqlmock.NewRows([]string{"time_slot"}).
			AddRow("slot-4").
			AddRow("slot-1"))

	slots, err := repo.GetAvailableSlots(context.Background(), 7, testDate)
	require.NoError(t, err)
	assert.Equal(t, []domain.SlotID{"slot-1", "slot-4"}, slots)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAvailableSlots_Empty(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery("SELECT time_slot FROM advisor_availability").
		WillReturnRows(sqlmock.NewRows([]string{"time_slot"}))

	slots, err := repo.GetAvailableSlots(context.Background(), 7, testDate)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGetSlot_LocksRowInsideTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM advisor_availability WHERE (.+) FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "advisor_id", "date", "time_slot", "is_available", "created_at"}).
			AddRow(1, 7, testDate, "slot-2", true, time.Now()))
	mock.ExpectRollback()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	slot, err := repo.GetSlot(dbmetrics.WithTx(ctx, tx), 7, testDate, "slot-2")
	require.NoError(t, err)
	assert.True(t, slot.IsAvailable)
	assert.Equal(t, domain.SlotID("slot-2"), slot.SlotID)

	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSlot_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM advisor_availability").
		WillReturnRows(sqlmock.NewRows([]string{"id", "advisor_id", "date", "time_slot", "is_available", "created_at"}))

	_, err := repo.GetSlot(context.Background(), 7, testDate, "slot-2")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestInsertSlots_SingleStatement(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec("INSERT INTO advisor_availability").
		WithArgs(int64(7), "2024-06-10", domain.SlotID("slot-1"), true, int64(7), "2024-06-10", domain.SlotID("slot-2"), false).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.InsertSlots(context.Background(), []*domain.AvailabilitySlot{
		{AdvisorID: 7, Date: testDate, SlotID: "slot-1", IsAvailable: true},
		{AdvisorID: 7, Date: testDate, SlotID: "slot-2", IsAvailable: false},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertSlots_NothingToInsert(t *testing.T) {
	repo, _, mock := newRepo(t)

	require.NoError(t, repo.InsertSlots(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkUnavailable_AlreadyTaken(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec("UPDATE advisor_availability SET is_available").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkUnavailable(context.Background(), 7, testDate, "slot-2")
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestMarkAvailable_Upserts(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec("INSERT INTO advisor_availability (.+) ON CONFLICT").
		WithArgs(int64(7), "2024-06-10", domain.SlotID("slot-2"), true).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.MarkAvailable(context.Background(), 7, testDate, "slot-2"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByAdvisorAndDate_ExecErrorIsWrapped(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec("DELETE FROM advisor_availability").WillReturnError(assert.AnError)

	_, err := repo.DeleteByAdvisorAndDate(context.Background(), 7, testDate)
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestGetAvailableAdvisors(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM advisor_availability av JOIN advisors a ON a.id = av.advisor_id (.+) ORDER BY a.id ASC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "position", "email", "phone_number", "image", "is_active", "created_at", "updated_at"}).
			AddRow(1, "Anna", "Sales", "anna@example.com", nil, nil, true, now, now).
			AddRow(3, "Boris", nil, "boris@example.com", "+100", nil, true, now, now))

	advisors, err := repo.GetAvailableAdvisors(context.Background(), testDate, "slot-3")
	require.NoError(t, err)
	require.Len(t, advisors, 2)
	assert.Equal(t, int64(1), advisors[0].ID)
	assert.Nil(t, advisors[1].Position)
	require.NotNil(t, advisors[1].PhoneNumber)
	assert.Equal(t, "+100", *advisors[1].PhoneNumber)
}
