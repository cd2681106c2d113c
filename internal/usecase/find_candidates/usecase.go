package find_candidates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/booking"
)

// UseCase use case для подбора консультантов на слот
type UseCase struct {
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	rejectionRepo    RejectionRepository
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	rejectionRepo RejectionRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		rejectionRepo:    rejectionRepo,
		logger:           logger,
	}
}

// Execute возвращает консультантов с доступным слотом на дату в порядке их ID.
// Отказавшиеся от заявки консультанты не исключаются, а только помечаются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if !req.Actor.IsDispatcher() {
		uc.logger.Warn("FindCandidates: user=%d is not a dispatcher", req.Actor.ID)
		return nil, ErrAccessDenied
	}

	slotID := domain.SlotID(strings.TrimSpace(req.SlotID))
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !domain.IsValidSlot(slotID) {
		return nil, fmt.Errorf("%w: unknown slot %q", ErrInvalidInput, req.SlotID)
	}
	day := domain.NormalizeDate(req.Date)

	uc.logger.Info("FindCandidates: date=%s, slot=%s", day.Format(domain.DateFormat), slotID)

	rejected := map[int64]struct{}{}
	if req.BookingID != nil {
		if _, err := uc.bookingRepo.GetByID(ctx, *req.BookingID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("FindCandidates: booking id=%d not found", *req.BookingID)
				return nil, ErrBookingNotFound
			}
			uc.logger.Error("FindCandidates: failed to get booking id=%d: %v", *req.BookingID, err)
			return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		ids, err := uc.rejectionRepo.GetAdvisorIDsByBooking(ctx, *req.BookingID)
		if err != nil {
			uc.logger.Error("FindCandidates: failed to get rejections for booking=%d: %v", *req.BookingID, err)
			return nil, fmt.Errorf("%w: failed to get rejections: %v", ErrInternal, err)
		}
		rejected = ids
	}

	advisors, err := uc.availabilityRepo.GetAvailableAdvisors(ctx, day, slotID)
	if err != nil {
		uc.logger.Error("FindCandidates: failed to get available advisors: %v", err)
		return nil, fmt.Errorf("%w: failed to get available advisors: %v", ErrInternal, err)
	}

	candidates := make([]Candidate, 0, len(advisors))
	for _, a := range advisors {
		_, wasRejected := rejected[a.ID]
		candidates = append(candidates, toCandidate(a, wasRejected))
	}

	uc.logger.Info("FindCandidates: found %d candidates for %s %s", len(candidates), day.Format(domain.DateFormat), slotID)

	return &Response{
		Date:       day,
		SlotID:     slotID,
		BookingID:  req.BookingID,
		Candidates: candidates,
	}, nil
}

func toCandidate(a *domain.Advisor, previouslyRejected bool) Candidate {
	specialization := domain.DefaultAdvisorSpecialization
	if a.Position != nil && strings.TrimSpace(*a.Position) != "" {
		specialization = *a.Position
	}
	phone := domain.DefaultAdvisorPhone
	if a.PhoneNumber != nil && *a.PhoneNumber != "" {
		phone = *a.PhoneNumber
	}
	name := a.Name
	if name == "" {
		name = domain.UnknownAdvisorName
	}

	return Candidate{
		AdvisorID:          a.ID,
		Name:               name,
		Email:              a.Email,
		Phone:              phone,
		Image:              a.Image,
		Specialization:     specialization,
		Rating:             domain.DefaultAdvisorRating,
		Experience:         domain.DefaultAdvisorExperience,
		PreviouslyRejected: previouslyRejected,
	}
}
