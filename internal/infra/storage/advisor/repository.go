package advisor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultationService/pkg/psqlbuilder"
)

const table = "advisors"

var advisorColumns = []string{
	"id",
	"name",
	"position",
	"email",
	"phone_number",
	"image",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий справочника консультантов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория консультантов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает консультанта по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Advisor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(advisorColumns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	advisor, err := scanAdvisor(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdvisorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan advisor: %w", ErrScanRow, err)
	}

	return advisor, nil
}

// GetAll возвращает консультантов, отсортированных по ID
// При activeOnly=true неактивные консультанты исключаются
func (r *Repository) GetAll(ctx context.Context, activeOnly bool) ([]*domain.Advisor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(advisorColumns...).From(table)
	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	advisors := make([]*domain.Advisor, 0)
	for rows.Next() {
		advisor, err := scanAdvisor(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan advisor: %v", ErrScanRow, err)
		}
		advisors = append(advisors, advisor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %w", ErrScanRow, err)
	}

	return advisors, nil
}

// Update частично обновляет профиль консультанта
// Обновляются только поля, переданные в update (не nil)
func (r *Repository) Update(ctx context.Context, id int64, update *domain.AdvisorUpdate) (*domain.Advisor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(table).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if update.Name != nil {
		updateBuilder = updateBuilder.Set("name", *update.Name)
	}
	if update.Position != nil {
		updateBuilder = updateBuilder.Set("position", *update.Position)
	}
	if update.PhoneNumber != nil {
		updateBuilder = updateBuilder.Set("phone_number", *update.PhoneNumber)
	}
	if update.Image != nil {
		updateBuilder = updateBuilder.Set("image", *update.Image)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + strings.Join(advisorColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	advisor, err := scanAdvisor(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdvisorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return advisor, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAdvisor(row rowScanner) (*domain.Advisor, error) {
	var a domain.Advisor
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Position,
		&a.Email,
		&a.PhoneNumber,
		&a.Image,
		&a.IsActive,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
