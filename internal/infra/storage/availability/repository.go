package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultationService/pkg/psqlbuilder"
)

const table = "advisor_availability"

// Repository репозиторий доступности консультантов по слотам
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAvailableSlots возвращает слоты, отмеченные доступными, на календарный день
// Результат отсортирован в порядке каталога слотов
func (r *Repository) GetAvailableSlots(ctx context.Context, advisorID int64, date time.Time) ([]domain.SlotID, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("time_slot").
		From(table).
		Where(squirrel.Eq{
			"advisor_id":   advisorID,
			"date":         dateArg(date),
			"is_available": true,
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailableSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailableSlots - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.SlotID, 0)
	for rows.Next() {
		var slot domain.SlotID
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("%w: GetAvailableSlots - scan time_slot: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAvailableSlots - rows error: %w", ErrScanRow, err)
	}

	domain.SortSlots(slots)
	return slots, nil
}

// GetSlot получает запись о слоте консультанта на день
// Внутри транзакции блокирует строку (FOR UPDATE), чтобы параллельное принятие
// заявки или сохранение доступности дождались завершения текущей операции
func (r *Repository) GetSlot(ctx context.Context, advisorID int64, date time.Time, slotID domain.SlotID) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"advisor_id",
		"date",
		"time_slot",
		"is_available",
		"created_at",
	).
		From(table).
		Where(squirrel.Eq{
			"advisor_id": advisorID,
			"date":       dateArg(date),
			"time_slot":  slotID,
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlot - build select query: %v", ErrBuildQuery, err)
	}

	var slot domain.AvailabilitySlot
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.AdvisorID,
		&slot.Date,
		&slot.SlotID,
		&slot.IsAvailable,
		&slot.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlot - scan slot: %w", ErrScanRow, err)
	}

	return &slot, nil
}

// DeleteByAdvisorAndDate удаляет все записи консультанта на календарный день
// Возвращает количество удаленных строк
func (r *Repository) DeleteByAdvisorAndDate(ctx context.Context, advisorID int64, date time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{
			"advisor_id": advisorID,
			"date":       dateArg(date),
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByAdvisorAndDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByAdvisorAndDate - execute delete: %w", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByAdvisorAndDate - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// InsertSlots вставляет записи одним запросом
// Вызывается после DeleteByAdvisorAndDate в той же транзакции, поэтому конфликтов
// по (advisor_id, date, time_slot) быть не должно
func (r *Repository) InsertSlots(ctx context.Context, slots []*domain.AvailabilitySlot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert(table).
		Columns("advisor_id", "date", "time_slot", "is_available")

	for _, s := range slots {
		insertBuilder = insertBuilder.Values(s.AdvisorID, dateArg(s.Date), s.SlotID, s.IsAvailable)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: InsertSlots - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: InsertSlots - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// MarkUnavailable снимает слот с доступности (слот занят принятой заявкой)
// Обновление условное: если слот уже недоступен или записи нет, возвращает ErrSlotNotAvailable
func (r *Repository) MarkUnavailable(ctx context.Context, advisorID int64, date time.Time, slotID domain.SlotID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_available", false).
		Where(squirrel.Eq{
			"advisor_id":   advisorID,
			"date":         dateArg(date),
			"time_slot":    slotID,
			"is_available": true,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkUnavailable - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkUnavailable - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkUnavailable - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotAvailable
	}

	return nil
}

// MarkAvailable возвращает слот в доступные (например, после отмены принятой заявки)
// Если записи нет (консультант успел убрать слот), она создается заново
func (r *Repository) MarkAvailable(ctx context.Context, advisorID int64, date time.Time, slotID domain.SlotID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("advisor_id", "date", "time_slot", "is_available").
		Values(advisorID, dateArg(date), slotID, true).
		Suffix("ON CONFLICT (advisor_id, date, time_slot) DO UPDATE SET is_available = TRUE").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkAvailable - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkAvailable - execute upsert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetAvailableAdvisors возвращает активных консультантов, доступных в слот на день
// Отсортировано по ID консультанта
func (r *Repository) GetAvailableAdvisors(ctx context.Context, date time.Time, slotID domain.SlotID) ([]*domain.Advisor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"a.id",
		"a.name",
		"a.position",
		"a.email",
		"a.phone_number",
		"a.image",
		"a.is_active",
		"a.created_at",
		"a.updated_at",
	).
		From(table + " av").
		Join("advisors a ON a.id = av.advisor_id").
		Where(squirrel.Eq{
			"av.date":         dateArg(date),
			"av.time_slot":    slotID,
			"av.is_available": true,
			"a.is_active":     true,
		}).
		OrderBy("a.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailableAdvisors - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailableAdvisors - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	advisors := make([]*domain.Advisor, 0)
	for rows.Next() {
		var a domain.Advisor
		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Position,
			&a.Email,
			&a.PhoneNumber,
			&a.Image,
			&a.IsActive,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetAvailableAdvisors - scan advisor: %v", ErrScanRow, err)
		}
		advisors = append(advisors, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAvailableAdvisors - rows error: %w", ErrScanRow, err)
	}

	return advisors, nil
}

// dateArg передает дату в БД как YYYY-MM-DD, чтобы сравнение с колонкой DATE
// не зависело от часового пояса соединения
func dateArg(date time.Time) string {
	return date.Format(domain.DateFormat)
}
