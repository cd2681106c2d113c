// Package fakes тестовые реализации кэша доступности и публикатора событий
package fakes

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	cacheAvailability "github.com/m04kA/SMC-ConsultationService/internal/infra/cache/availability"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/notifier"
)

// Notifier запоминает опубликованные события
type Notifier struct {
	mu     sync.Mutex
	events []notifier.Event
}

func (n *Notifier) Notify(_ context.Context, event notifier.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

// Events возвращает копию опубликованных событий
func (n *Notifier) Events() []notifier.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notifier.Event(nil), n.events...)
}

// Types возвращает типы опубликованных событий по порядку
func (n *Notifier) Types() []notifier.EventType {
	n.mu.Lock()
	defer n.mu.Unlock()
	types := make([]notifier.EventType, 0, len(n.events))
	for _, e := range n.events {
		types = append(types, e.Type)
	}
	return types
}

// Cache кэш доступности в памяти с журналами записей и инвалидаций
type Cache struct {
	mu          sync.Mutex
	entries     map[string][]domain.SlotID
	written     []string
	invalidated []string
}

// NewCache создает пустой кэш
func NewCache() *Cache {
	return &Cache{entries: map[string][]domain.SlotID{}}
}

func (c *Cache) Get(_ context.Context, advisorID int64, date time.Time) ([]domain.SlotID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	slots, ok := c.entries[cacheAvailability.Key(advisorID, date)]
	if !ok {
		return nil, cacheAvailability.ErrCacheMiss
	}
	return slots, nil
}

func (c *Cache) Set(_ context.Context, advisorID int64, date time.Time, slots []domain.SlotID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheAvailability.Key(advisorID, date)
	c.entries[key] = slots
	c.written = append(c.written, key)
	return nil
}

func (c *Cache) Fill(_ context.Context, advisorID int64, date time.Time, slots []domain.SlotID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheAvailability.Key(advisorID, date)
	if _, ok := c.entries[key]; ok {
		return false, nil
	}
	c.entries[key] = slots
	return true, nil
}

func (c *Cache) Invalidate(_ context.Context, advisorID int64, date time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheAvailability.Key(advisorID, date)
	delete(c.entries, key)
	c.invalidated = append(c.invalidated, key)
	return nil
}

// Has проверяет наличие записи в кэше
func (c *Cache) Has(advisorID int64, date time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[cacheAvailability.Key(advisorID, date)]
	return ok
}

// Slots возвращает закэшированные слоты дня и признак наличия записи
func (c *Cache) Slots(advisorID int64, date time.Time) ([]domain.SlotID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	slots, ok := c.entries[cacheAvailability.Key(advisorID, date)]
	return slots, ok
}

// Written возвращает ключи, перезаписанные через Set
func (c *Cache) Written() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.written...)
}

// Invalidated возвращает ключи, сброшенные через Invalidate
func (c *Cache) Invalidated() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.invalidated...)
}
