package availability

import "errors"

var (
	// ErrSlotNotFound возвращается, когда у консультанта нет записи о слоте на этот день
	ErrSlotNotFound = errors.New("availability.repository: slot not found")

	// ErrSlotNotAvailable возвращается, когда слот уже занят или снят с доступности
	ErrSlotNotAvailable = errors.New("availability.repository: slot not available")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
