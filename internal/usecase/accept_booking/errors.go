package accept_booking

import (
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

var (
	// ErrAccessDenied возвращается, когда заявку пытается принять не сам консультант
	ErrAccessDenied = fmt.Errorf("accept_booking: only the advisor can accept for themselves: %w", domain.ErrForbidden)

	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = fmt.Errorf("accept_booking: booking not found: %w", domain.ErrNotFound)

	// ErrNotPending возвращается, когда заявка уже не ожидает назначения
	ErrNotPending = fmt.Errorf("accept_booking: booking is not pending: %w", domain.ErrConflict)

	// ErrVersionMismatch возвращается, когда заявка изменилась с момента чтения клиентом
	ErrVersionMismatch = fmt.Errorf("accept_booking: booking version mismatch: %w", domain.ErrConflict)

	// ErrOfferedToOther возвращается, когда заявка предложена другому консультанту
	ErrOfferedToOther = fmt.Errorf("accept_booking: booking is offered to another advisor: %w", domain.ErrConflict)

	// ErrSlotNotAvailable возвращается, когда у консультанта нет свободного слота на дату заявки
	ErrSlotNotAvailable = fmt.Errorf("accept_booking: advisor slot is not available: %w", domain.ErrConflict)

	// ErrConcurrentUpdate возвращается, когда параллельная транзакция изменила те же данные
	ErrConcurrentUpdate = fmt.Errorf("accept_booking: concurrent update: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("accept_booking: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("accept_booking: internal error: %w", domain.ErrStorage)
)
