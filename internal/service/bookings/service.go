package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ConsultationService/internal/service/bookings/models"
)

// Service сервис чтения заявок: карточка, списки и история отказов
type Service struct {
	bookingRepo   BookingRepository
	rejectionRepo RejectionRepository
	timeProvider  TimeProvider
	location      *time.Location
	logger        Logger
}

// NewService создает новый экземпляр сервиса заявок
// location - часовой пояс дилерского центра, в нем вычисляется "сегодня"
func NewService(
	bookingRepo BookingRepository,
	rejectionRepo RejectionRepository,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		bookingRepo:   bookingRepo,
		rejectionRepo: rejectionRepo,
		timeProvider:  &RealTimeProvider{},
		location:      location,
		logger:        logger,
	}
}

// GetByID получает заявку по ID
// Видеть заявку могут диспетчер, консультант, которому она предложена или назначена,
// и клиент, который ее создал
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.ID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !canView(actor, booking) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.ID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// List получает заявки с фильтрацией
// Консультант видит только свои заявки, клиент - только созданные им, диспетчер - все
func (s *Service) List(ctx context.Context, actor domain.Actor, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := s.buildFilter(actor, req)
	if err != nil {
		s.logger.Warn("List: invalid filter for user=%d: %v", actor.ID, err)
		return nil, err
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings for user=%d", len(bookings), actor.ID)
	return models.FromDomainBookingList(bookings), nil
}

// GetRejections возвращает историю отказов по заявке
// Доступно диспетчерам: используется для предупреждения перед повторным предложением
func (s *Service) GetRejections(ctx context.Context, actor domain.Actor, bookingID int64) (*models.RejectionsResponse, error) {
	if !actor.IsDispatcher() {
		s.logger.Warn("GetRejections: user=%d is not a dispatcher", actor.ID)
		return nil, ErrAccessDenied
	}

	if _, err := s.bookingRepo.GetByID(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetRejections: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetRejections: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetRejections - get booking: %v", ErrInternal, err)
	}

	rejections, err := s.rejectionRepo.GetByBooking(ctx, bookingID)
	if err != nil {
		s.logger.Error("GetRejections: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetRejections - get rejections: %v", ErrInternal, err)
	}

	return models.FromDomainRejections(bookingID, rejections), nil
}

func (s *Service) buildFilter(actor domain.Actor, req *models.ListBookingsRequest) (domain.BookingFilter, error) {
	filter := domain.BookingFilter{AdvisorID: req.AdvisorID}

	switch {
	case actor.IsDispatcher():
	case actor.IsAdvisor():
		if req.AdvisorID != nil && *req.AdvisorID != actor.ID {
			return filter, ErrAccessDenied
		}
		id := actor.ID
		filter.AdvisorID = &id
	default:
		id := actor.ID
		filter.CustomerID = &id
	}

	if req.Status != nil && *req.Status != "" {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			return filter, fmt.Errorf("%w: status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	today := false
	if req.Filter != nil {
		switch strings.ToLower(strings.TrimSpace(*req.Filter)) {
		case "", models.FilterAll:
		case models.FilterToday:
			today = true
		case models.FilterPending:
			if filter.Status == nil {
				status := domain.StatusPending
				filter.Status = &status
			}
		case models.FilterConfirmed:
			if filter.Status == nil {
				status := domain.StatusAccepted
				filter.Status = &status
			}
		default:
			return filter, fmt.Errorf("%w: filter %q", ErrInvalidInput, *req.Filter)
		}
	}

	// Явная дата важнее именованного фильтра today
	switch {
	case req.Date != nil:
		day := domain.NormalizeDate(*req.Date)
		filter.StartDate = &day
		filter.EndDate = &day
	case today:
		day := domain.NormalizeDate(s.timeProvider.Now().In(s.location))
		filter.StartDate = &day
		filter.EndDate = &day
	}

	return filter, nil
}

func canView(actor domain.Actor, booking *domain.Booking) bool {
	if actor.IsDispatcher() {
		return true
	}
	if actor.IsAdvisor() {
		return booking.IsBoundTo(actor.ID)
	}
	return booking.CustomerID != nil && *booking.CustomerID == actor.ID
}
