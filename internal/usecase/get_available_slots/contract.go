package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория доступности консультантов
type AvailabilityRepository interface {
	GetAvailableAdvisors(ctx context.Context, date time.Time, slotID domain.SlotID) ([]*domain.Advisor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
