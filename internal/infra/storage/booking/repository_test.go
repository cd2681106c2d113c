package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultationService/pkg/ptr"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewRepository(dbmetrics.Wrap(sqlDB, nil)), mock
}

func bookingRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns).AddRow(
		42, nil, "Jane Doe", "jane@example.com", "+123", nil, "purchase", "sedan",
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), "slot-2", "PENDING", nil, 1,
		nil, nil, now, now,
	)
}

func TestCreate_FillsGeneratedFields(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO consultation_bookings (.+) RETURNING id, version, created_at, updated_at").
		WillReturnRows(sqlmock.NewRows([]string{"id", "version", "created_at", "updated_at"}).AddRow(42, 1, now, now))

	created, err := repo.Create(context.Background(), &domain.Booking{
		FullName:         "Jane Doe",
		Email:            "jane@example.com",
		Phone:            "+123",
		ConsultationType: "purchase",
		VehicleType:      "sedan",
		PreferredDate:    time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		PreferredTime:    "slot-2",
		Status:           domain.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, 1, created.Version)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM consultation_bookings WHERE id = \\$1").
		WithArgs(int64(42)).
		WillReturnRows(bookingRow(time.Now()))

	b, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, domain.SlotID("slot-2"), b.PreferredTime)
	assert.Nil(t, b.AdvisorID)
	assert.Nil(t, b.Message)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM consultation_bookings").
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetWithFilter_OrdersByPreferredDate(t *testing.T) {
	repo, mock := newRepo(t)
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	status := domain.StatusPending

	mock.ExpectQuery("SELECT (.+) FROM consultation_bookings WHERE advisor_id = \\$1 AND status = \\$2 AND preferred_date >= \\$3 AND preferred_date <= \\$4 ORDER BY preferred_date ASC, preferred_time ASC, id ASC").
		WithArgs(int64(7), status, "2024-06-10", "2024-06-10").
		WillReturnRows(bookingRow(time.Now()))

	bookings, err := repo.GetWithFilter(context.Background(), domain.BookingFilter{
		AdvisorID: ptr.Ptr(int64(7)),
		Status:    &status,
		StartDate: &date,
		EndDate:   &date,
	})
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccept_VersionConflict(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("UPDATE consultation_bookings SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Accept(context.Background(), 42, 7, 1)
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestAccept_UniqueViolationMeansSlotTaken(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("UPDATE consultation_bookings SET status").
		WillReturnError(&pq.Error{Code: uniqueViolation})

	err := repo.Accept(context.Background(), 42, 7, 1)
	assert.ErrorIs(t, err, ErrSlotAlreadyTaken)
}

func TestCancel_OnlyFromActiveStatuses(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("UPDATE consultation_bookings SET (.+) WHERE id = \\$1 AND status IN \\(\\$2,\\$3\\) AND version = \\$4").
		WithArgs(int64(42), domain.StatusPending, domain.StatusAccepted, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Cancel(context.Background(), 42, 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetCandidate_ClearsAdvisor(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("UPDATE consultation_bookings SET advisor_id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetCandidate(context.Background(), 42, nil, 2))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByAdvisor(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM consultation_bookings").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := repo.CountByAdvisor(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}
