package advisors

import (
	"context"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// AdvisorRepository интерфейс справочника консультантов
type AdvisorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Advisor, error)
	GetAll(ctx context.Context, activeOnly bool) ([]*domain.Advisor, error)
	Update(ctx context.Context, id int64, update *domain.AdvisorUpdate) (*domain.Advisor, error)
}

// BookingRepository интерфейс для подсчета заявок консультанта
type BookingRepository interface {
	CountByAdvisor(ctx context.Context, advisorID int64) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
