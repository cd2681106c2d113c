package create_booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/notifier"
)

// UseCase use case для создания заявки на консультацию
type UseCase struct {
	bookingRepo BookingRepository
	notifier    EventNotifier
	validate    *validator.Validate
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, notifier EventNotifier, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		validate:    newValidator(),
		logger:      logger,
	}
}

// Execute создает заявку в статусе PENDING без назначенного консультанта
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	normalize(req)

	uc.logger.Info("CreateBooking: date=%s, slot=%s, type=%s",
		req.PreferredDate.Format(domain.DateFormat), req.PreferredTime, req.ConsultationType)

	// 1. Валидация входных данных
	if req.PreferredDate.IsZero() {
		uc.logger.Warn("CreateBooking: validation failed: preferredDate is required")
		return nil, fmt.Errorf("%w: preferredDate is required", ErrInvalidInput)
	}
	if err := uc.validate.Struct(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Сохраняем заявку
	booking := &domain.Booking{
		CustomerID:       req.CustomerID,
		FullName:         req.FullName,
		Email:            req.Email,
		Phone:            req.Phone,
		Message:          req.Message,
		ConsultationType: req.ConsultationType,
		VehicleType:      req.VehicleType,
		PreferredDate:    domain.NormalizeDate(req.PreferredDate),
		PreferredTime:    domain.SlotID(req.PreferredTime),
		Status:           domain.StatusPending,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", created.ID)

	// 3. Уведомляем диспетчеров
	uc.notifier.Notify(ctx, notifier.BookingEvent(notifier.EventBookingCreated, created, req.CustomerID))

	return &Response{Booking: created}, nil
}

// newValidator создает валидатор с проверкой принадлежности слота каталогу
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("slot", func(fl validator.FieldLevel) bool {
		return domain.IsValidSlot(domain.SlotID(fl.Field().String()))
	})
	return v
}

func normalize(req *Request) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.ConsultationType = strings.TrimSpace(req.ConsultationType)
	req.VehicleType = strings.TrimSpace(req.VehicleType)
	req.PreferredTime = strings.TrimSpace(req.PreferredTime)
	if req.Message != nil {
		msg := strings.TrimSpace(*req.Message)
		if msg == "" {
			req.Message = nil
		} else {
			req.Message = &msg
		}
	}
}
