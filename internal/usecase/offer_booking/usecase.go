package offer_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	advisorRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/advisor"
	bookingRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ConsultationService/pkg/txmanager"
)

// UseCase use case для предложения заявки консультанту диспетчером
type UseCase struct {
	bookingRepo   BookingRepository
	advisorRepo   AdvisorRepository
	rejectionRepo RejectionRepository
	txManager     TransactionManager
	notifier      EventNotifier
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	advisorRepo AdvisorRepository,
	rejectionRepo RejectionRepository,
	txManager TransactionManager,
	notifier EventNotifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		advisorRepo:   advisorRepo,
		rejectionRepo: rejectionRepo,
		txManager:     txManager,
		notifier:      notifier,
		logger:        logger,
	}
}

// Execute делает консультанта кандидатом на заявку. Статус остается PENDING.
// Наличие свободного слота не проверяется: это делает консультант при принятии
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("OfferBooking: booking=%d, advisor=%d, user=%d", req.BookingID, req.AdvisorID, req.Actor.ID)

	if req.BookingID <= 0 || req.AdvisorID <= 0 {
		return nil, fmt.Errorf("%w: bookingID and advisorID must be positive", ErrInvalidInput)
	}
	if !req.Actor.IsDispatcher() {
		uc.logger.Warn("OfferBooking: user=%d is not a dispatcher", req.Actor.ID)
		return nil, ErrAccessDenied
	}

	if _, err := uc.advisorRepo.GetByID(ctx, req.AdvisorID); err != nil {
		if errors.Is(err, advisorRepo.ErrAdvisorNotFound) {
			uc.logger.Warn("OfferBooking: advisor id=%d not found", req.AdvisorID)
			return nil, ErrAdvisorNotFound
		}
		uc.logger.Error("OfferBooking: failed to get advisor id=%d: %v", req.AdvisorID, err)
		return nil, fmt.Errorf("%w: failed to get advisor: %v", ErrInternal, err)
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
			return fmt.Errorf("%w: status is %s", ErrNotPending, booking.Status)
		}

		if err := uc.bookingRepo.SetCandidate(txCtx, req.BookingID, &req.AdvisorID, booking.Version); err != nil {
			if errors.Is(err, bookingRepo.ErrVersionConflict) {
				return ErrConcurrentUpdate
			}
			return fmt.Errorf("%w: failed to set candidate: %w", ErrInternal, err)
		}

		rejected, err := uc.rejectionRepo.Exists(txCtx, req.BookingID, req.AdvisorID)
		if err != nil {
			return fmt.Errorf("%w: failed to check rejections: %w", ErrInternal, err)
		}
		result.PreviouslyRejected = rejected

		offered, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			return fmt.Errorf("%w: failed to reload booking: %w", ErrInternal, err)
		}
		result.Booking = offered
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			uc.logger.Warn("OfferBooking: booking id=%d not found", req.BookingID)
			return nil, err
		case errors.Is(err, domain.ErrConflict):
			uc.logger.Warn("OfferBooking: conflict for booking=%d: %v", req.BookingID, err)
			return nil, err
		case txmanager.IsSerializationFailure(err):
			uc.logger.Warn("OfferBooking: serialization failure for booking=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
		case errors.Is(err, ErrInternal):
			uc.logger.Error("OfferBooking: booking=%d: %v", req.BookingID, err)
			return nil, err
		default:
			uc.logger.Error("OfferBooking: transaction failed for booking=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	if result.PreviouslyRejected {
		uc.logger.Warn("OfferBooking: advisor=%d already rejected booking=%d", req.AdvisorID, req.BookingID)
	}
	uc.logger.Info("OfferBooking: booking=%d offered to advisor=%d", req.BookingID, req.AdvisorID)

	uc.notifier.Notify(ctx, notifier.BookingEvent(notifier.EventBookingOffered, result.Booking, &req.Actor.ID))

	return &result, nil
}
