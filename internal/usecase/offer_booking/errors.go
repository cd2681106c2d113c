package offer_booking

import (
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

var (
	// ErrAccessDenied возвращается, когда заявку распределяет не диспетчер
	ErrAccessDenied = fmt.Errorf("offer_booking: only dispatchers can offer bookings: %w", domain.ErrForbidden)

	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = fmt.Errorf("offer_booking: booking not found: %w", domain.ErrNotFound)

	// ErrAdvisorNotFound возвращается, когда консультант не найден
	ErrAdvisorNotFound = fmt.Errorf("offer_booking: advisor not found: %w", domain.ErrNotFound)

	// ErrNotPending возвращается, когда заявка уже не ожидает назначения
	ErrNotPending = fmt.Errorf("offer_booking: booking is not pending: %w", domain.ErrConflict)

	// ErrConcurrentUpdate возвращается, когда заявка изменилась параллельно
	ErrConcurrentUpdate = fmt.Errorf("offer_booking: concurrent update: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("offer_booking: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("offer_booking: internal error: %w", domain.ErrStorage)
)
