package cancel_booking

import (
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = fmt.Errorf("cancel_booking: booking not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не может отменить заявку
	ErrAccessDenied = fmt.Errorf("cancel_booking: access denied: %w", domain.ErrForbidden)

	// ErrCannotCancel возвращается, когда заявка уже в терминальном статусе
	ErrCannotCancel = fmt.Errorf("cancel_booking: booking cannot be cancelled: %w", domain.ErrConflict)

	// ErrVersionMismatch возвращается, когда заявка изменилась с момента чтения клиентом
	ErrVersionMismatch = fmt.Errorf("cancel_booking: booking version mismatch: %w", domain.ErrConflict)

	// ErrConcurrentUpdate возвращается, когда параллельная транзакция изменила заявку
	ErrConcurrentUpdate = fmt.Errorf("cancel_booking: concurrent update: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("cancel_booking: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("cancel_booking: internal error: %w", domain.ErrStorage)
)
