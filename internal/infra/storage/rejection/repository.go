package rejection

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultationService/pkg/psqlbuilder"
)

const table = "booking_rejections"

// Repository журнал отказов консультантов от заявок
// Записи только добавляются
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись об отказе
func (r *Repository) Create(ctx context.Context, rejection *domain.Rejection) (*domain.Rejection, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("booking_id", "advisor_id").
		Values(rejection.BookingID, rejection.AdvisorID).
		Suffix("RETURNING id, rejected_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rejection.ID, &rejection.RejectedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return rejection, nil
}

// GetByBooking возвращает отказы по заявке в порядке их появления
func (r *Repository) GetByBooking(ctx context.Context, bookingID int64) ([]*domain.Rejection, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "advisor_id", "rejected_at").
		From(table).
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("rejected_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBooking - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rejections := make([]*domain.Rejection, 0)
	for rows.Next() {
		var rej domain.Rejection
		if err := rows.Scan(&rej.ID, &rej.BookingID, &rej.AdvisorID, &rej.RejectedAt); err != nil {
			return nil, fmt.Errorf("%w: GetByBooking - scan rejection: %v", ErrScanRow, err)
		}
		rejections = append(rejections, &rej)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBooking - rows error: %w", ErrScanRow, err)
	}

	return rejections, nil
}

// GetAdvisorIDsByBooking возвращает множество консультантов, отказавшихся от заявки
func (r *Repository) GetAdvisorIDsByBooking(ctx context.Context, bookingID int64) (map[int64]struct{}, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT advisor_id").
		From(table).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAdvisorIDsByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAdvisorIDsByBooking - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetAdvisorIDsByBooking - scan advisor_id: %v", ErrScanRow, err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAdvisorIDsByBooking - rows error: %w", ErrScanRow, err)
	}

	return ids, nil
}

// Exists проверяет, отказывался ли консультант от заявки
func (r *Repository) Exists(ctx context.Context, bookingID, advisorID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From(table).
		Where(squirrel.Eq{"booking_id": bookingID, "advisor_id": advisorID}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: Exists - scan: %w", ErrScanRow, err)
	}

	return exists, nil
}
