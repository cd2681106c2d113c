package notifier

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// EventCounter счетчик опубликованных событий
type EventCounter interface {
	IncBookingEvent(event string)
}

// Publisher публикует событие с routing key
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}
