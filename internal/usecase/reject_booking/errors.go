package reject_booking

import (
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

var (
	// ErrAccessDenied возвращается, когда отказ оформляет не сам консультант
	ErrAccessDenied = fmt.Errorf("reject_booking: only the advisor can reject for themselves: %w", domain.ErrForbidden)

	// ErrBookingNotFound возвращается, когда нет ожидающей заявки с таким ID
	ErrBookingNotFound = fmt.Errorf("reject_booking: pending booking not found: %w", domain.ErrNotFound)

	// ErrConcurrentUpdate возвращается, когда заявка изменилась параллельно
	ErrConcurrentUpdate = fmt.Errorf("reject_booking: concurrent update: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("reject_booking: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("reject_booking: internal error: %w", domain.ErrStorage)
)
