package availability

import (
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

var (
	// ErrAdvisorNotFound возвращается, когда консультант не найден
	ErrAdvisorNotFound = fmt.Errorf("availability: advisor not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не может управлять доступностью консультанта
	ErrAccessDenied = fmt.Errorf("availability: access denied: %w", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("availability: invalid input: %w", domain.ErrValidation)

	// ErrUnknownSlot возвращается, когда слота нет в каталоге
	ErrUnknownSlot = fmt.Errorf("availability: unknown slot id: %w", domain.ErrValidation)

	// ErrConcurrentUpdate возвращается, когда транзакция отменена из-за конкурентной записи.
	// Клиент перечитывает доступность и повторяет сохранение
	ErrConcurrentUpdate = fmt.Errorf("availability: concurrent update: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("availability: internal error: %w", domain.ErrStorage)
)
