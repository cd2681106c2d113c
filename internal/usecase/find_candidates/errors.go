package find_candidates

import (
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

var (
	// ErrAccessDenied возвращается, когда кандидатов запрашивает не диспетчер
	ErrAccessDenied = fmt.Errorf("find_candidates: only dispatchers can search candidates: %w", domain.ErrForbidden)

	// ErrBookingNotFound возвращается, когда указанная заявка не найдена
	ErrBookingNotFound = fmt.Errorf("find_candidates: booking not found: %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("find_candidates: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("find_candidates: internal error: %w", domain.ErrStorage)
)
