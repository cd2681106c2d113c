package find_candidates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория доступности
type AvailabilityRepository interface {
	GetAvailableAdvisors(ctx context.Context, date time.Time, slotID domain.SlotID) ([]*domain.Advisor, error)
}

// BookingRepository интерфейс репозитория заявок
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// RejectionRepository интерфейс журнала отказов
type RejectionRepository interface {
	GetAdvisorIDsByBooking(ctx context.Context, bookingID int64) (map[int64]struct{}, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
