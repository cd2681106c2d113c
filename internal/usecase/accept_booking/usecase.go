package accept_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ConsultationService/pkg/txmanager"
)

// Причины конфликтов для метрик
const (
	reasonNotPending     = "not_pending"
	reasonVersion        = "version"
	reasonOfferedToOther = "offered_to_other"
	reasonSlot           = "slot_unavailable"
	reasonConcurrent     = "concurrent"
)

// UseCase use case для принятия заявки консультантом
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	cache            Cache
	txManager        TransactionManager
	notifier         EventNotifier
	conflicts        ConflictCounter
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	cache Cache,
	txManager TransactionManager,
	notifier EventNotifier,
	conflicts ConflictCounter,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		cache:            cache,
		txManager:        txManager,
		notifier:         notifier,
		conflicts:        conflicts,
		logger:           logger,
	}
}

// Execute принимает заявку: привязывает консультанта и занимает его слот
// Проверки и обе записи выполняются в одной сериализуемой транзакции,
// поэтому из параллельных попыток принять один слот успешна ровно одна
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AcceptBooking: booking=%d, advisor=%d, user=%d", req.BookingID, req.AdvisorID, req.Actor.ID)

	// 1. Валидация и авторизация
	if req.BookingID <= 0 || req.AdvisorID <= 0 {
		return nil, fmt.Errorf("%w: bookingID and advisorID must be positive", ErrInvalidInput)
	}
	if !req.Actor.IsAdvisorSelf(req.AdvisorID) {
		uc.logger.Warn("AcceptBooking: user=%d cannot accept on behalf of advisor=%d", req.Actor.ID, req.AdvisorID)
		return nil, ErrAccessDenied
	}

	var result *domain.Booking

	// 2. Проверки и изменения в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Перечитываем заявку с блокировкой (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		// 2.2. Проверяем состояние заявки
		if !booking.IsPending() {
			return fmt.Errorf("%w: status is %s", ErrNotPending, booking.Status)
		}
		if req.ExpectedVersion != nil && *req.ExpectedVersion != booking.Version {
			return fmt.Errorf("%w: expected %d, actual %d", ErrVersionMismatch, *req.ExpectedVersion, booking.Version)
		}
		if booking.IsOfferedToOther(req.AdvisorID) {
			return ErrOfferedToOther
		}

		// 2.3. Перечитываем слот консультанта с блокировкой
		slot, err := uc.availabilityRepo.GetSlot(txCtx, req.AdvisorID, booking.PreferredDate, booking.PreferredTime)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrSlotNotFound) {
				return fmt.Errorf("%w: advisor has no %s on %s", ErrSlotNotAvailable,
					booking.PreferredTime, booking.PreferredDate.Format(domain.DateFormat))
			}
			return fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
		}
		if !slot.IsAvailable {
			return fmt.Errorf("%w: %s on %s is taken", ErrSlotNotAvailable,
				booking.PreferredTime, booking.PreferredDate.Format(domain.DateFormat))
		}

		// 2.4. Переводим заявку в ACCEPTED с проверкой версии
		if err := uc.bookingRepo.Accept(txCtx, req.BookingID, req.AdvisorID, booking.Version); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrVersionConflict):
				return ErrConcurrentUpdate
			case errors.Is(err, bookingRepo.ErrSlotAlreadyTaken):
				return ErrSlotNotAvailable
			default:
				return fmt.Errorf("%w: failed to accept booking: %w", ErrInternal, err)
			}
		}

		// 2.5. Занимаем слот (условное обновление WHERE is_available)
		if err := uc.availabilityRepo.MarkUnavailable(txCtx, req.AdvisorID, booking.PreferredDate, booking.PreferredTime); err != nil {
			if errors.Is(err, availabilityRepo.ErrSlotNotAvailable) {
				return ErrSlotNotAvailable
			}
			return fmt.Errorf("%w: failed to mark slot unavailable: %w", ErrInternal, err)
		}

		// 2.6. Возвращаем актуальное состояние
		accepted, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			return fmt.Errorf("%w: failed to reload booking: %w", ErrInternal, err)
		}
		result = accepted
		return nil
	})

	if err != nil {
		return nil, uc.handleError(req, err)
	}

	uc.logger.Info("AcceptBooking: booking=%d accepted by advisor=%d", req.BookingID, req.AdvisorID)

	// 3. После коммита: обновляем кэш и публикуем событие
	uc.refreshCache(ctx, req.AdvisorID, result.PreferredDate)
	uc.notifier.Notify(ctx, notifier.BookingEvent(notifier.EventBookingAccepted, result, &req.Actor.ID))

	return &Response{Booking: result}, nil
}

// handleError логирует ошибку транзакции и приводит ее к ошибке usecase
func (uc *UseCase) handleError(req *Request, err error) error {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		uc.logger.Warn("AcceptBooking: booking id=%d not found", req.BookingID)
		return err
	case errors.Is(err, ErrNotPending):
		uc.conflicts.IncAcceptConflict(reasonNotPending)
	case errors.Is(err, ErrVersionMismatch):
		uc.conflicts.IncAcceptConflict(reasonVersion)
	case errors.Is(err, ErrOfferedToOther):
		uc.conflicts.IncAcceptConflict(reasonOfferedToOther)
	case errors.Is(err, ErrSlotNotAvailable):
		uc.conflicts.IncAcceptConflict(reasonSlot)
	case errors.Is(err, ErrConcurrentUpdate):
		uc.conflicts.IncAcceptConflict(reasonConcurrent)
	case txmanager.IsSerializationFailure(err):
		uc.conflicts.IncAcceptConflict(reasonConcurrent)
		uc.logger.Warn("AcceptBooking: serialization failure for booking=%d: %v", req.BookingID, err)
		return fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
	case errors.Is(err, ErrInternal):
		uc.logger.Error("AcceptBooking: booking=%d: %v", req.BookingID, err)
		return err
	default:
		uc.logger.Error("AcceptBooking: transaction failed for booking=%d: %v", req.BookingID, err)
		return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Warn("AcceptBooking: conflict for booking=%d advisor=%d: %v", req.BookingID, req.AdvisorID, err)
	return err
}

// refreshCache записывает в кэш актуальные слоты дня после коммита.
// Если прочитать или записать не удалось, запись сбрасывается
func (uc *UseCase) refreshCache(ctx context.Context, advisorID int64, date time.Time) {
	slots, err := uc.availabilityRepo.GetAvailableSlots(ctx, advisorID, date)
	if err == nil {
		err = uc.cache.Set(ctx, advisorID, date, slots)
	}
	if err == nil {
		return
	}
	uc.logger.Warn("AcceptBooking: cache refresh failed for advisor=%d: %v", advisorID, err)
	if err := uc.cache.Invalidate(ctx, advisorID, date); err != nil {
		uc.logger.Warn("AcceptBooking: cache invalidation failed for advisor=%d: %v", advisorID, err)
	}
}
