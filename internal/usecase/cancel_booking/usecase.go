package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ConsultationService/pkg/txmanager"
)

// UseCase use case для отмены заявки
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	cache            Cache
	txManager        TransactionManager
	notifier         EventNotifier
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	cache Cache,
	txManager TransactionManager,
	notifier EventNotifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		cache:            cache,
		txManager:        txManager,
		notifier:         notifier,
		logger:           logger,
	}
}

// Execute отменяет заявку в статусе PENDING или ACCEPTED.
// Для принятой заявки слот консультанта возвращается в доступность в той же транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, user=%d", req.BookingID, req.Actor.ID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	var result Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Перечитываем заявку с блокировкой
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		// 2. Проверяем права и состояние
		if !canCancel(req.Actor, booking) {
			return ErrAccessDenied
		}
		if !booking.CanBeCancelled() {
			return fmt.Errorf("%w: status is %s", ErrCannotCancel, booking.Status)
		}
		if req.ExpectedVersion != nil && *req.ExpectedVersion != booking.Version {
			return fmt.Errorf("%w: expected %d, actual %d", ErrVersionMismatch, *req.ExpectedVersion, booking.Version)
		}

		// 3. Отменяем
		if err := uc.bookingRepo.Cancel(txCtx, req.BookingID, booking.Version); err != nil {
			if errors.Is(err, bookingRepo.ErrVersionConflict) {
				return ErrConcurrentUpdate
			}
			return fmt.Errorf("%w: failed to cancel booking: %w", ErrInternal, err)
		}

		// 4. Возвращаем слот консультанту
		if booking.Status == domain.StatusAccepted && booking.AdvisorID != nil {
			if err := uc.availabilityRepo.MarkAvailable(txCtx, *booking.AdvisorID, booking.PreferredDate, booking.PreferredTime); err != nil {
				return fmt.Errorf("%w: failed to restore slot: %w", ErrInternal, err)
			}
			result.SlotRestored = true
		}

		cancelled, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			return fmt.Errorf("%w: failed to reload booking: %w", ErrInternal, err)
		}
		result.Booking = cancelled
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrAccessDenied):
			uc.logger.Warn("CancelBooking: booking=%d, user=%d: %v", req.BookingID, req.Actor.ID, err)
			return nil, err
		case errors.Is(err, domain.ErrConflict):
			uc.logger.Warn("CancelBooking: conflict for booking=%d: %v", req.BookingID, err)
			return nil, err
		case txmanager.IsSerializationFailure(err):
			uc.logger.Warn("CancelBooking: serialization failure for booking=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CancelBooking: booking=%d: %v", req.BookingID, err)
			return nil, err
		default:
			uc.logger.Error("CancelBooking: transaction failed for booking=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CancelBooking: booking=%d cancelled by user=%d", req.BookingID, req.Actor.ID)

	if result.SlotRestored {
		uc.refreshCache(ctx, *result.Booking.AdvisorID, result.Booking.PreferredDate)
	}
	uc.notifier.Notify(ctx, notifier.BookingEvent(notifier.EventBookingCancelled, result.Booking, &req.Actor.ID))

	return &result, nil
}

// canCancel проверяет право отмены: диспетчер, назначенный консультант или автор заявки
func canCancel(actor domain.Actor, booking *domain.Booking) bool {
	if actor.IsDispatcher() {
		return true
	}
	if booking.Status == domain.StatusAccepted && booking.AdvisorID != nil && actor.IsAdvisorSelf(*booking.AdvisorID) {
		return true
	}
	return actor.Role == domain.RoleUser && booking.CustomerID != nil && *booking.CustomerID == actor.ID
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
	uc.logger.Warn("CancelBooking: cache refresh failed for advisor=%d: %v", advisorID, err)
	if err := uc.cache.Invalidate(ctx, advisorID, date); err != nil {
		uc.logger.Warn("CancelBooking: cache invalidation failed for advisor=%d: %v", advisorID, err)
	}
}
