package domain

import "errors"

// Виды ошибок, видимые вызывающей стороне
// Ошибки слоёв usecase/service оборачивают один из них, поэтому
// errors.Is(err, domain.ErrConflict) работает для любой конкретной ошибки конфликта
var (
	// ErrValidation некорректные или отсутствующие входные данные
	ErrValidation = errors.New("validation error")

	// ErrNotFound неизвестный ID заявки или консультанта
	ErrNotFound = errors.New("not found")

	// ErrConflict состояние изменилось конкурентно или консультант больше недоступен
	// Вызывающая сторона должна перечитать данные и повторить действие
	ErrConflict = errors.New("conflict")

	// ErrForbidden у пользователя нет прав на действие
	ErrForbidden = errors.New("forbidden")

	// ErrStorage сбой хранилища. Изменения откатываются целиком
	ErrStorage = errors.New("storage error")
)
