package notifier

import (
	"context"
	"time"
)

const publishTimeout = 3 * time.Second

// Notifier публикует события по заявкам в режиме best-effort:
// ошибка публикации логируется и не влияет на результат операции
type Notifier struct {
	publisher Publisher
	counter   EventCounter
	logger    Logger
}

// NewNotifier создает notifier. counter может быть nil
func NewNotifier(publisher Publisher, counter EventCounter, logger Logger) *Notifier {
	return &Notifier{
		publisher: publisher,
		counter:   counter,
		logger:    logger,
	}
}

// Notify публикует событие
// Отмена контекста запроса не должна обрывать публикацию уже зафиксированного изменения
func (n *Notifier) Notify(ctx context.Context, event Event) {
	if n.counter != nil {
		n.counter.IncBookingEvent(string(event.Type))
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := n.publisher.Publish(pubCtx, event); err != nil {
		n.logger.Warn("Failed to publish event %s: %v", event.Type, err)
	}
}
