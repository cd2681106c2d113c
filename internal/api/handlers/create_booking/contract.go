package create_booking

import (
	"context"

	createBooking "github.com/m04kA/SMC-ConsultationService/internal/usecase/create_booking"
)

// CreateBookingUseCase принимает заявку на консультацию от клиента или анонимного посетителя.
// Ошибки валидации оборачивают createBooking.ErrInvalidInput
type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// Logger логгер обработчика
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
