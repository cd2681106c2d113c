package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория заявок
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, expectedVersion int) error
}

// AvailabilityRepository интерфейс репозитория доступности
type AvailabilityRepository interface {
	GetAvailableSlots(ctx context.Context, advisorID int64, date time.Time) ([]domain.SlotID, error)
	MarkAvailable(ctx context.Context, advisorID int64, date time.Time, slotID domain.SlotID) error
}

// Cache кэш доступности консультанта
type Cache interface {
	Set(ctx context.Context, advisorID int64, date time.Time, slots []domain.SlotID) error
	Invalidate(ctx context.Context, advisorID int64, date time.Time) error
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
