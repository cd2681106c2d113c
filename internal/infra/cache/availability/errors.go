package availability

import "errors"

var (
	// ErrCacheMiss возвращается, когда записи в кэше нет
	ErrCacheMiss = errors.New("availability.cache: cache miss")

	// ErrCache возвращается при ошибке обращения к Redis
	ErrCache = errors.New("availability.cache: redis error")

	// ErrDecode возвращается, если запись в кэше повреждена
	ErrDecode = errors.New("availability.cache: failed to decode cached value")
)
