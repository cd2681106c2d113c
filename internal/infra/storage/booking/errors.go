package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrVersionConflict возвращается, когда заявка была изменена параллельно
	// или уже находится в статусе, не допускающем изменение
	ErrVersionConflict = errors.New("booking.repository: booking was modified concurrently")

	// ErrSlotAlreadyTaken возвращается, когда у консультанта уже есть принятая заявка на этот слот
	ErrSlotAlreadyTaken = errors.New("booking.repository: slot already taken by another accepted booking")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
