package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/notifier"
)

// AdvisorRepository интерфейс справочника консультантов
type AdvisorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Advisor, error)
}

// AvailabilityRepository интерфейс репозитория доступности
type AvailabilityRepository interface {
	GetAvailableSlots(ctx context.Context, advisorID int64, date time.Time) ([]domain.SlotID, error)
	DeleteByAdvisorAndDate(ctx context.Context, advisorID int64, date time.Time) (int64, error)
	InsertSlots(ctx context.Context, slots []*domain.AvailabilitySlot) error
}

// BookingRepository интерфейс репозитория заявок
type BookingRepository interface {
	GetAcceptedSlots(ctx context.Context, advisorID int64, date time.Time) ([]domain.SlotID, error)
}

// Cache кэш доступных слотов
type Cache interface {
	Get(ctx context.Context, advisorID int64, date time.Time) ([]domain.SlotID, error)
	Set(ctx context.Context, advisorID int64, date time.Time, slots []domain.SlotID) error
	Fill(ctx context.Context, advisorID int64, date time.Time, slots []domain.SlotID) (bool, error)
	Invalidate(ctx context.Context, advisorID int64, date time.Time) error
}

// EventNotifier публикация событий
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
