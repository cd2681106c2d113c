package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

const keyNamespace = "advisory:availability"

type cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Cache кэш доступных слотов консультанта на день поверх Redis
// Источник истины - БД. Читатели заполняют промах через Fill (SETNX),
// писатели после коммита перезаписывают запись свежим набором через Set,
// поэтому читатель с устаревшими данными не затирает результат записи
type Cache struct {
	store cmdable
	ttl   time.Duration
}

// NewCache создает кэш поверх клиента Redis
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{store: client, ttl: ttl}
}

// Get возвращает закэшированные слоты или ErrCacheMiss
func (c *Cache) Get(ctx context.Context, advisorID int64, date time.Time) ([]domain.SlotID, error) {
	raw, err := c.store.Get(ctx, Key(advisorID, date)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get: %w", ErrCache, err)
	}

	var slots []domain.SlotID
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, fmt.Errorf("%w: Get: %v", ErrDecode, err)
	}
	return slots, nil
}

// Set перезаписывает слоты на время TTL
func (c *Cache) Set(ctx context.Context, advisorID int64, date time.Time, slots []domain.SlotID) error {
	payload, err := encode(slots)
	if err != nil {
		return fmt.Errorf("%w: Set: %v", ErrDecode, err)
	}
	if err := c.store.Set(ctx, Key(advisorID, date), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %w", ErrCache, err)
	}
	return nil
}

// Fill сохраняет слоты, только если записи еще нет.
// Возвращает false, если ключ уже заполнен писателем
func (c *Cache) Fill(ctx context.Context, advisorID int64, date time.Time, slots []domain.SlotID) (bool, error) {
	payload, err := encode(slots)
	if err != nil {
		return false, fmt.Errorf("%w: Fill: %v", ErrDecode, err)
	}
	stored, err := c.store.SetNX(ctx, Key(advisorID, date), payload, c.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: Fill: %w", ErrCache, err)
	}
	return stored, nil
}

// Invalidate удаляет запись о дне консультанта
func (c *Cache) Invalidate(ctx context.Context, advisorID int64, date time.Time) error {
	if err := c.store.Del(ctx, Key(advisorID, date)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate: %w", ErrCache, err)
	}
	return nil
}

func encode(slots []domain.SlotID) ([]byte, error) {
	if slots == nil {
		slots = []domain.SlotID{}
	}
	return json.Marshal(slots)
}

// Key строит ключ вида advisory:availability:<advisorId>:<YYYY-MM-DD>
func Key(advisorID int64, date time.Time) string {
	return fmt.Sprintf("%s:%d:%s", keyNamespace, advisorID, date.Format(domain.DateFormat))
}

// Nop кэш-заглушка, когда Redis выключен: всегда промах, запись игнорируется
type Nop struct{}

func (Nop) Get(context.Context, int64, time.Time) ([]domain.SlotID, error) {
	return nil, ErrCacheMiss
}

func (Nop) Set(context.Context, int64, time.Time, []domain.SlotID) error { return nil }

func (Nop) Fill(context.Context, int64, time.Time, []domain.SlotID) (bool, error) { return false, nil }

func (Nop) Invalidate(context.Context, int64, time.Time) error { return nil }
