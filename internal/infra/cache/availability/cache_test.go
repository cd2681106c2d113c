package availability

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

type mockCmdable struct {
	data     map[string]string
	ttls     map[string]time.Duration
	failWith error
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	if m.failWith != nil {
		return redis.NewStringResult("", m.failWith)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if m.failWith != nil {
		return redis.NewStatusResult("", m.failWith)
	}
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	if m.failWith != nil {
		return redis.NewBoolResult(false, m.failWith)
	}
	if _, ok := m.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	m.Set(ctx, key, value, expiration)
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

var day = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func TestKey(t *testing.T) {
	assert.Equal(t, "advisory:availability:7:2024-06-10", Key(7, day))
}

func TestCache_RoundTripAndInvalidate(t *testing.T) {
	ctx := context.Background()
	store := newMockCmdable()
	c := &Cache{store: store, ttl: time.Minute}

	_, err := c.Get(ctx, 7, day)
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, 7, day, []domain.SlotID{"slot-1", "slot-4"}))
	assert.Equal(t, time.Minute, store.ttls[Key(7, day)])

	slots, err := c.Get(ctx, 7, day)
	require.NoError(t, err)
	assert.Equal(t, []domain.SlotID{"slot-1", "slot-4"}, slots)

	require.NoError(t, c.Invalidate(ctx, 7, day))
	_, err = c.Get(ctx, 7, day)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_FillDoesNotOverwriteWriter(t *testing.T) {
	ctx := context.Background()
	store := newMockCmdable()
	c := &Cache{store: store, ttl: time.Minute}

	// писатель успел сохранить свежий набор раньше читателя
	require.NoError(t, c.Set(ctx, 7, day, []domain.SlotID{"slot-4"}))

	stored, err := c.Fill(ctx, 7, day, []domain.SlotID{"slot-1", "slot-4"})
	require.NoError(t, err)
	assert.False(t, stored)

	slots, err := c.Get(ctx, 7, day)
	require.NoError(t, err)
	assert.Equal(t, []domain.SlotID{"slot-4"}, slots)
}

func TestCache_FillOnMiss(t *testing.T) {
	ctx := context.Background()
	store := newMockCmdable()
	c := &Cache{store: store, ttl: time.Minute}

	stored, err := c.Fill(ctx, 7, day, []domain.SlotID{"slot-2"})
	require.NoError(t, err)
	assert.True(t, stored)
	assert.Equal(t, time.Minute, store.ttls[Key(7, day)])

	store.failWith = assert.AnError
	_, err = c.Fill(ctx, 8, day, nil)
	assert.ErrorIs(t, err, ErrCache)
}

func TestCache_EmptyDayIsCachedAsEmptyList(t *testing.T) {
	ctx := context.Background()
	c := &Cache{store: newMockCmdable(), ttl: time.Minute}

	require.NoError(t, c.Set(ctx, 7, day, nil))

	slots, err := c.Get(ctx, 7, day)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestCache_RedisErrorsAreWrapped(t *testing.T) {
	ctx := context.Background()
	store := newMockCmdable()
	store.failWith = assert.AnError
	c := &Cache{store: store, ttl: time.Minute}

	_, err := c.Get(ctx, 7, day)
	assert.ErrorIs(t, err, ErrCache)
	assert.ErrorIs(t, err, assert.AnError)

	assert.ErrorIs(t, c.Set(ctx, 7, day, []domain.SlotID{"slot-1"}), ErrCache)
}

func TestCache_CorruptedValue(t *testing.T) {
	store := newMockCmdable()
	store.data[Key(7, day)] = "not-json"
	c := &Cache{store: store, ttl: time.Minute}

	_, err := c.Get(context.Background(), 7, day)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestNop(t *testing.T) {
	var c Nop
	_, err := c.Get(context.Background(), 7, day)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, c.Set(context.Background(), 7, day, nil))
	stored, err := c.Fill(context.Background(), 7, day, nil)
	assert.NoError(t, err)
	assert.False(t, stored)
	assert.NoError(t, c.Invalidate(context.Background(), 7, day))
}
