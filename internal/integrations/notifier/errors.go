package notifier

import "errors"

var (
	// ErrConnect возвращается, если не удалось подключиться к RabbitMQ
	ErrConnect = errors.New("notifier: failed to connect to rabbitmq")

	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("notifier: failed to publish event")
)
