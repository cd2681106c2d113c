package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	cacheAvailability "github.com/m04kA/SMC-ConsultationService/internal/infra/cache/availability"
	advisorRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/advisor"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ConsultationService/internal/service/availability/models"
	"github.com/m04kA/SMC-ConsultationService/pkg/txmanager"
)

// Service сервис доступности консультантов по слотам
type Service struct {
	advisorRepo      AdvisorRepository
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	cache            Cache
	txManager        TransactionManager
	notifier         EventNotifier
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	advisorRepo AdvisorRepository,
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	cache Cache,
	txManager TransactionManager,
	notifier EventNotifier,
	logger Logger,
) *Service {
	return &Service{
		advisorRepo:      advisorRepo,
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		cache:            cache,
		txManager:        txManager,
		notifier:         notifier,
		logger:           logger,
	}
}

// GetAvailability возвращает доступные слоты консультанта на календарный день
// Читает через кэш: промах -> БД -> Fill, который не затирает запись писателя
func (s *Service) GetAvailability(ctx context.Context, actor domain.Actor, advisorID int64, date time.Time) (*models.AvailabilityResponse, error) {
	day := domain.NormalizeDate(date)

	if !actor.CanManageAdvisor(advisorID) {
		s.logger.Warn("GetAvailability: access denied for user=%d to advisor=%d", actor.ID, advisorID)
		return nil, ErrAccessDenied
	}
	if err := s.ensureAdvisor(ctx, advisorID); err != nil {
		return nil, err
	}

	slots, err := s.cache.Get(ctx, advisorID, day)
	if err == nil {
		return models.NewAvailabilityResponse(advisorID, day, slots, nil), nil
	}
	if !errors.Is(err, cacheAvailability.ErrCacheMiss) {
		s.logger.Warn("GetAvailability: cache read failed for advisor=%d date=%s: %v",
			advisorID, day.Format(domain.DateFormat), err)
	}

	slots, err = s.availabilityRepo.GetAvailableSlots(ctx, advisorID, day)
	if err != nil {
		s.logger.Error("GetAvailability: repository error for advisor=%d: %v", advisorID, err)
		return nil, fmt.Errorf("%w: GetAvailability - repository error: %v", ErrInternal, err)
	}

	if _, err := s.cache.Fill(ctx, advisorID, day, slots); err != nil {
		s.logger.Warn("GetAvailability: cache write failed for advisor=%d: %v", advisorID, err)
	}

	return models.NewAvailabilityResponse(advisorID, day, slots, nil), nil
}

// SetAvailability заменяет набор слотов консультанта на день целиком
// Удаление старых и вставка новых строк выполняются в одной транзакции.
// Слоты, занятые принятыми заявками, сохраняются недоступными
func (s *Service) SetAvailability(ctx context.Context, actor domain.Actor, req *models.SetAvailabilityRequest) (*models.AvailabilityResponse, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	day := domain.NormalizeDate(req.Date)

	s.logger.Info("SetAvailability: advisor=%d, date=%s, slots=%v by user=%d",
		req.AdvisorID, day.Format(domain.DateFormat), req.Slots, actor.ID)

	if !actor.CanManageAdvisor(req.AdvisorID) {
		s.logger.Warn("SetAvailability: access denied for user=%d to advisor=%d", actor.ID, req.AdvisorID)
		return nil, ErrAccessDenied
	}

	ids := make([]domain.SlotID, 0, len(req.Slots))
	for _, slot := range req.Slots {
		ids = append(ids, domain.SlotID(strings.TrimSpace(slot)))
	}
	valid, unknown := domain.NormalizeSlots(ids)
	if len(unknown) > 0 {
		s.logger.Warn("SetAvailability: unknown slots %v for advisor=%d", unknown, req.AdvisorID)
		return nil, fmt.Errorf("%w: %v", ErrUnknownSlot, unknown)
	}

	if err := s.ensureAdvisor(ctx, req.AdvisorID); err != nil {
		return nil, err
	}

	var available, reserved []domain.SlotID

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		accepted, err := s.bookingRepo.GetAcceptedSlots(txCtx, req.AdvisorID, day)
		if err != nil {
			return fmt.Errorf("%w: get accepted slots: %w", ErrInternal, err)
		}
		taken := make(map[domain.SlotID]struct{}, len(accepted))
		for _, slot := range accepted {
			taken[slot] = struct{}{}
		}

		available = make([]domain.SlotID, 0, len(valid))
		reserved = make([]domain.SlotID, 0)
		rows := make([]*domain.AvailabilitySlot, 0, len(valid))
		for _, slot := range valid {
			_, isTaken := taken[slot]
			if isTaken {
				reserved = append(reserved, slot)
			} else {
				available = append(available, slot)
			}
			rows = append(rows, &domain.AvailabilitySlot{
				AdvisorID:   req.AdvisorID,
				Date:        day,
				SlotID:      slot,
				IsAvailable: !isTaken,
			})
		}

		if _, err := s.availabilityRepo.DeleteByAdvisorAndDate(txCtx, req.AdvisorID, day); err != nil {
			return fmt.Errorf("%w: delete day: %w", ErrInternal, err)
		}
		if err := s.availabilityRepo.InsertSlots(txCtx, rows); err != nil {
			return fmt.Errorf("%w: insert slots: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case txmanager.IsSerializationFailure(err):
			s.logger.Warn("SetAvailability: serialization failure for advisor=%d date=%s: %v",
				req.AdvisorID, day.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
		case errors.Is(err, ErrInternal):
			s.logger.Error("SetAvailability: transaction failed for advisor=%d date=%s: %v",
				req.AdvisorID, day.Format(domain.DateFormat), err)
			return nil, err
		default:
			s.logger.Error("SetAvailability: transaction failed for advisor=%d date=%s: %v",
				req.AdvisorID, day.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: SetAvailability - transaction: %v", ErrInternal, err)
		}
	}

	// Свежий набор записывается поверх кэша; при ошибке запись сбрасывается
	if err := s.cache.Set(ctx, req.AdvisorID, day, available); err != nil {
		s.logger.Warn("SetAvailability: cache write failed for advisor=%d: %v", req.AdvisorID, err)
		if err := s.cache.Invalidate(ctx, req.AdvisorID, day); err != nil {
			s.logger.Warn("SetAvailability: cache invalidation failed for advisor=%d: %v", req.AdvisorID, err)
		}
	}

	advisorID := req.AdvisorID
	s.notifier.Notify(ctx, notifier.Event{
		Type:       notifier.EventAvailabilityUpdated,
		AdvisorID:  &advisorID,
		ActorID:    &actor.ID,
		Date:       day.Format(domain.DateFormat),
		Slots:      available,
		OccurredAt: time.Now().UTC(),
	})

	s.logger.Info("SetAvailability: saved %d slots (%d reserved) for advisor=%d date=%s",
		len(available), len(reserved), req.AdvisorID, day.Format(domain.DateFormat))
	return models.NewAvailabilityResponse(req.AdvisorID, day, available, reserved), nil
}

func (s *Service) ensureAdvisor(ctx context.Context, advisorID int64) error {
	if _, err := s.advisorRepo.GetByID(ctx, advisorID); err != nil {
		if errors.Is(err, advisorRepo.ErrAdvisorNotFound) {
			s.logger.Warn("advisor id=%d not found", advisorID)
			return ErrAdvisorNotFound
		}
		s.logger.Error("failed to get advisor id=%d: %v", advisorID, err)
		return fmt.Errorf("%w: get advisor: %v", ErrInternal, err)
	}
	return nil
}
