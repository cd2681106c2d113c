package advisors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	advisorRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/advisor"
	"github.com/m04kA/SMC-ConsultationService/internal/service/advisors/models"
)

// Service сервис справочника консультантов
type Service struct {
	advisorRepo AdvisorRepository
	bookingRepo BookingRepository
	validate    *validator.Validate
	logger      Logger
}

// NewService создает новый экземпляр сервиса консультантов
func NewService(advisorRepo AdvisorRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		advisorRepo: advisorRepo,
		bookingRepo: bookingRepo,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      logger,
	}
}

// GetProfile возвращает профиль консультанта с числом его заявок
func (s *Service) GetProfile(ctx context.Context, actor domain.Actor, advisorID int64) (*models.AdvisorResponse, error) {
	if !actor.CanManageAdvisor(advisorID) {
		s.logger.Warn("GetProfile: access denied for user=%d to advisor=%d", actor.ID, advisorID)
		return nil, ErrAccessDenied
	}

	advisor, err := s.advisorRepo.GetByID(ctx, advisorID)
	if err != nil {
		return nil, s.mapRepoError("GetProfile", advisorID, err)
	}

	total, err := s.bookingRepo.CountByAdvisor(ctx, advisorID)
	if err != nil {
		s.logger.Error("GetProfile: failed to count bookings for advisor=%d: %v", advisorID, err)
		return nil, fmt.Errorf("%w: GetProfile - count bookings: %v", ErrInternal, err)
	}

	resp := models.FromDomainAdvisor(advisor)
	resp.TotalBookings = &total
	return &resp, nil
}

// UpdateProfile частично обновляет профиль консультанта
func (s *Service) UpdateProfile(ctx context.Context, actor domain.Actor, advisorID int64, req *models.UpdateProfileRequest) (*models.AdvisorResponse, error) {
	if !actor.CanManageAdvisor(advisorID) {
		s.logger.Warn("UpdateProfile: access denied for user=%d to advisor=%d", actor.ID, advisorID)
		return nil, ErrAccessDenied
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("UpdateProfile: validation failed for advisor=%d: %v", advisorID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	update := req.ToDomain()
	if update.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	advisor, err := s.advisorRepo.Update(ctx, advisorID, update)
	if err != nil {
		return nil, s.mapRepoError("UpdateProfile", advisorID, err)
	}

	s.logger.Info("UpdateProfile: advisor=%d updated by user=%d", advisorID, actor.ID)
	resp := models.FromDomainAdvisor(advisor)
	return &resp, nil
}

// List возвращает активных консультантов для диспетчера
func (s *Service) List(ctx context.Context, actor domain.Actor) (*models.AdvisorListResponse, error) {
	if !actor.IsDispatcher() {
		s.logger.Warn("List: access denied for user=%d", actor.ID)
		return nil, ErrAccessDenied
	}

	list, err := s.advisorRepo.GetAll(ctx, true)
	if err != nil {
		s.logger.Error("List: failed to get advisors: %v", err)
		return nil, fmt.Errorf("%w: List - get advisors: %v", ErrInternal, err)
	}
	return models.FromDomainAdvisors(list), nil
}

func (s *Service) mapRepoError(op string, advisorID int64, err error) error {
	if errors.Is(err, advisorRepo.ErrAdvisorNotFound) {
		s.logger.Warn("%s: advisor id=%d not found", op, advisorID)
		return ErrAdvisorNotFound
	}
	s.logger.Error("%s: repository error for advisor=%d: %v", op, advisorID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
