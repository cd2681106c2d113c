package reject_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ConsultationService/pkg/txmanager"
)

// UseCase use case для отказа консультанта от заявки
type UseCase struct {
	bookingRepo   BookingRepository
	rejectionRepo RejectionRepository
	txManager     TransactionManager
	notifier      EventNotifier
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	rejectionRepo RejectionRepository,
	txManager TransactionManager,
	notifier EventNotifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		rejectionRepo: rejectionRepo,
		txManager:     txManager,
		notifier:      notifier,
		logger:        logger,
	}
}

// Execute записывает отказ консультанта. Заявка остается PENDING,
// а если она была предложена этому консультанту, возвращается в очередь диспетчера.
// Доступность консультанта не меняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RejectBooking: booking=%d, advisor=%d, user=%d", req.BookingID, req.AdvisorID, req.Actor.ID)

	if req.BookingID <= 0 || req.AdvisorID <= 0 {
		return nil, fmt.Errorf("%w: bookingID and advisorID must be positive", ErrInvalidInput)
	}
	if !req.Actor.IsAdvisorSelf(req.AdvisorID) {
		uc.logger.Warn("RejectBooking: user=%d cannot reject on behalf of advisor=%d", req.Actor.ID, req.AdvisorID)
		return nil, ErrAccessDenied
	}

	var result Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}
		if !booking.IsPending() {
			return fmt.Errorf("%w: status is %s", ErrBookingNotFound, booking.Status)
		}

		rejection, err := uc.rejectionRepo.Create(txCtx, &domain.Rejection{
			BookingID: req.BookingID,
			AdvisorID: req.AdvisorID,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create rejection: %w", ErrInternal, err)
		}
		result.Rejection = rejection

		if booking.IsBoundTo(req.AdvisorID) {
			if err := uc.bookingRepo.SetCandidate(txCtx, req.BookingID, nil, booking.Version); err != nil {
				if errors.Is(err, bookingRepo.ErrVersionConflict) {
					return ErrConcurrentUpdate
				}
				return fmt.Errorf("%w: failed to clear candidate: %w", ErrInternal, err)
			}
			booking, err = uc.bookingRepo.GetByID(txCtx, req.BookingID)
			if err != nil {
				return fmt.Errorf("%w: failed to reload booking: %w", ErrInternal, err)
			}
		}
		result.Booking = booking
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			uc.logger.Warn("RejectBooking: %v", err)
			return nil, err
		case errors.Is(err, ErrConcurrentUpdate):
			uc.logger.Warn("RejectBooking: booking=%d changed concurrently", req.BookingID)
			return nil, err
		case txmanager.IsSerializationFailure(err):
			uc.logger.Warn("RejectBooking: serialization failure for booking=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
		case errors.Is(err, ErrInternal):
			uc.logger.Error("RejectBooking: booking=%d: %v", req.BookingID, err)
			return nil, err
		default:
			uc.logger.Error("RejectBooking: transaction failed for booking=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("RejectBooking: advisor=%d rejected booking=%d", req.AdvisorID, req.BookingID)

	event := notifier.BookingEvent(notifier.EventBookingRejected, result.Booking, &req.Actor.ID)
	event.AdvisorID = &req.AdvisorID
	uc.notifier.Notify(ctx, event)

	return &result, nil
}
