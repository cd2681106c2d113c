package advisors

import (
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

var (
	// ErrAdvisorNotFound возвращается, когда консультант не найден
	ErrAdvisorNotFound = fmt.Errorf("advisors: advisor not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет доступа к профилю
	ErrAccessDenied = fmt.Errorf("advisors: access denied: %w", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректных данных профиля
	ErrInvalidInput = fmt.Errorf("advisors: invalid input: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("advisors: internal error: %w", domain.ErrStorage)
)
