// Package memstore хранилище в памяти для тестов сервисов и use case.
// Повторяет семантику PostgreSQL репозиториев: условные обновления, уникальность
// слотов, откат транзакции целиком при ошибке.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

type txKey struct{}

type availabilityKey struct {
	advisorID int64
	date      string
	slot      domain.SlotID
}

type state struct {
	advisors     map[int64]domain.Advisor
	availability map[availabilityKey]domain.AvailabilitySlot
	bookings     map[int64]domain.Booking
	rejections   []domain.Rejection
	nextID       int64
}

func (s state) clone() state {
	c := state{
		advisors:     make(map[int64]domain.Advisor, len(s.advisors)),
		availability: make(map[availabilityKey]domain.AvailabilitySlot, len(s.availability)),
		bookings:     make(map[int64]domain.Booking, len(s.bookings)),
		rejections:   append([]domain.Rejection(nil), s.rejections...),
		nextID:       s.nextID,
	}
	for k, v := range s.advisors {
		c.advisors[k] = v
	}
	for k, v := range s.availability {
		c.availability[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	return c
}

// Store общее состояние всех репозиториев и менеджер транзакций
// Транзакции сериализуются: одновременно выполняется не более одной
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	data state

	failures map[string]error
	now      func() time.Time
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		data: state{
			advisors:     map[int64]domain.Advisor{},
			availability: map[availabilityKey]domain.AvailabilitySlot{},
			bookings:     map[int64]domain.Booking{},
		},
		failures: map[string]error{},
		now:      time.Now,
	}
}

// SetNow подменяет часы хранилища (created_at, rejected_at и т.д.)
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// FailOn заставляет операцию op (например "availability.InsertSlots") возвращать err
// nil снимает сбой
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// failure вызывается под s.mu
func (s *Store) failure(op string) error {
	if err, ok := s.failures[op]; ok {
		return fmt.Errorf("memstore: %s: %w", op, err)
	}
	return nil
}

func (s *Store) id() int64 {
	s.data.nextID++
	return s.data.nextID
}

// Do выполняет fn в транзакции
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

// DoSerializable выполняет fn в транзакции
func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

// DoReadOnly выполняет fn в транзакции
func (s *Store) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

func (s *Store) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	rollback := func() {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
	}

	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		rollback()
		return err
	}
	return nil
}

// AddAdvisor добавляет активного консультанта
func (s *Store) AddAdvisor(name, email string) domain.Advisor {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	a := domain.Advisor{
		ID:        s.id(),
		Name:      name,
		Email:     email,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.data.advisors[a.ID] = a
	return a
}

// PutAvailability записывает отметку слота напрямую, минуя сервис
func (s *Store) PutAvailability(advisorID int64, date time.Time, slot domain.SlotID, available bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := availabilityKey{advisorID, date.Format(domain.DateFormat), slot}
	s.data.availability[key] = domain.AvailabilitySlot{
		ID:          s.id(),
		AdvisorID:   advisorID,
		Date:        domain.NormalizeDate(date),
		SlotID:      slot,
		IsAvailable: available,
		CreatedAt:   s.now(),
	}
}

// AvailabilityRows возвращает число строк доступности консультанта на день
func (s *Store) AvailabilityRows(advisorID int64, date time.Time) map[domain.SlotID]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := date.Format(domain.DateFormat)
	rows := map[domain.SlotID]int{}
	for k := range s.data.availability {
		if k.advisorID == advisorID && k.date == day {
			rows[k.slot]++
		}
	}
	return rows
}

// Booking возвращает копию заявки
func (s *Store) Booking(id int64) (domain.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.data.bookings[id]
	return b, ok
}

// Advisors репозиторий консультантов
func (s *Store) Advisors() *AdvisorRepository { return &AdvisorRepository{s: s} }

// Availability репозиторий доступности
func (s *Store) Availability() *AvailabilityRepository { return &AvailabilityRepository{s: s} }

// Bookings репозиторий заявок
func (s *Store) Bookings() *BookingRepository { return &BookingRepository{s: s} }

// Rejections репозиторий отказов
func (s *Store) Rejections() *RejectionRepository { return &RejectionRepository{s: s} }
