package offer_booking

import (
	"context"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория заявок
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	SetCandidate(ctx context.Context, id int64, advisorID *int64, expectedVersion int) error
}

// AdvisorRepository интерфейс справочника консультантов
type AdvisorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Advisor, error)
}

// RejectionRepository интерфейс журнала отказов
type RejectionRepository interface {
	Exists(ctx context.Context, bookingID, advisorID int64) (bool, error)
}

// EventNotifier публикация событий жизненного цикла заявки
type EventNotifier interface {
	Notify(ctx context.Context, event notifier.Event)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
