package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultationService/pkg/psqlbuilder"
)

const (
	table = "consultation_bookings"

	// uniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
	uniqueViolation = "23505"
)

var bookingColumns = []string{
	"id",
	"customer_id",
	"full_name",
	"email",
	"phone",
	"message",
	"consultation_type",
	"vehicle_type",
	"preferred_date",
	"preferred_time",
	"status",
	"advisor_id",
	"version",
	"accepted_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заявками на консультацию
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку
// Заполняет ID, Version, CreatedAt и UpdatedAt из RETURNING
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"customer_id",
			"full_name",
			"email",
			"phone",
			"message",
			"consultation_type",
			"vehicle_type",
			"preferred_date",
			"preferred_time",
			"status",
			"advisor_id",
		).
		Values(
			booking.CustomerID,
			booking.FullName,
			booking.Email,
			booking.Phone,
			booking.Message,
			booking.ConsultationType,
			booking.VehicleType,
			dateArg(booking.PreferredDate),
			booking.PreferredTime,
			booking.Status,
			booking.AdvisorID,
		).
		Suffix("RETURNING id, version, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.Version,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает заявку по ID
// Внутри транзакции блокирует строку (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetWithFilter получает заявки с фильтрацией по консультанту, клиенту, статусу и периоду
// Сортировка: по дате консультации, затем по слоту и ID
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).From(table)

	if filter.AdvisorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"advisor_id": *filter.AdvisorID})
	}
	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"preferred_date": dateArg(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"preferred_date": dateArg(*filter.EndDate)})
	}

	query, args, err := selectBuilder.
		OrderBy("preferred_date ASC", "preferred_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetAcceptedSlots возвращает слоты, занятые принятыми заявками консультанта на день
func (r *Repository) GetAcceptedSlots(ctx context.Context, advisorID int64, date time.Time) ([]domain.SlotID, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("preferred_time").
		From(table).
		Where(squirrel.Eq{
			"advisor_id":     advisorID,
			"preferred_date": dateArg(date),
			"status":         domain.StatusAccepted,
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAcceptedSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAcceptedSlots - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.SlotID, 0)
	for rows.Next() {
		var slot domain.SlotID
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("%w: GetAcceptedSlots - scan preferred_time: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAcceptedSlots - rows error: %w", ErrScanRow, err)
	}

	domain.SortSlots(slots)
	return slots, nil
}

// CountByAdvisor возвращает количество заявок, назначенных или предложенных консультанту
func (r *Repository) CountByAdvisor(ctx context.Context, advisorID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"advisor_id": advisorID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByAdvisor - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByAdvisor - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// Accept переводит PENDING заявку в ACCEPTED и назначает консультанта
// Обновление условное по статусу и версии: если заявку успели изменить, возвращает ErrVersionConflict
func (r *Repository) Accept(ctx context.Context, id, advisorID int64, expectedVersion int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusAccepted).
		Set("advisor_id", advisorID).
		Set("version", squirrel.Expr("version + 1")).
		Set("accepted_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":      id,
			"status":  domain.StatusPending,
			"version": expectedVersion,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Accept - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: Accept - execute update: %w", ErrSlotAlreadyTaken, err)
		}
		return fmt.Errorf("%w: Accept - execute update: %w", ErrExecQuery, err)
	}

	return checkAffected(result, "Accept")
}

// Cancel переводит PENDING или ACCEPTED заявку в CANCELLED
// Консультант сохраняется в заявке для истории
func (r *Repository) Cancel(ctx context.Context, id int64, expectedVersion int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("version", squirrel.Expr("version + 1")).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":      id,
			"status":  []domain.BookingStatus{domain.StatusPending, domain.StatusAccepted},
			"version": expectedVersion,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	return checkAffected(result, "Cancel")
}

// SetCandidate предлагает PENDING заявку консультанту (nil снимает предложение)
// Статус заявки не меняется
func (r *Repository) SetCandidate(ctx context.Context, id int64, advisorID *int64, expectedVersion int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("advisor_id", advisorID).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":      id,
			"status":  domain.StatusPending,
			"version": expectedVersion,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetCandidate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetCandidate - execute update: %w", ErrExecQuery, err)
	}

	return checkAffected(result, "SetCandidate")
}

func checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.FullName,
		&booking.Email,
		&booking.Phone,
		&booking.Message,
		&booking.ConsultationType,
		&booking.VehicleType,
		&booking.PreferredDate,
		&booking.PreferredTime,
		&booking.Status,
		&booking.AdvisorID,
		&booking.Version,
		&booking.AcceptedAt,
		&booking.CancelledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс заявок
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func dateArg(date time.Time) string {
	return date.Format(domain.DateFormat)
}
