package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/ptr"
)

// UseCase use case для получения каталога слотов консультаций
type UseCase struct {
	availabilityRepo AvailabilityRepository
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availabilityRepo AvailabilityRepository, logger Logger) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		logger:           logger,
	}
}

// Execute возвращает каталог слотов в порядке отображения.
// С датой дополнительно считает свободных консультантов по каждому слоту
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	catalog := domain.ListSlots()
	resp := &Response{Slots: make([]Slot, 0, len(catalog))}

	if req.Date != nil {
		day := domain.NormalizeDate(*req.Date)
		resp.Date = &day
	}

	for _, descriptor := range catalog {
		slot := Slot{
			ID:        string(descriptor.ID),
			Label:     descriptor.Label,
			StartTime: descriptor.StartTime,
			EndTime:   descriptor.EndTime,
		}

		if resp.Date != nil {
			advisors, err := uc.availabilityRepo.GetAvailableAdvisors(ctx, *resp.Date, descriptor.ID)
			if err != nil {
				uc.logger.Error("GetAvailableSlots: failed to count advisors for date=%s, slot=%s: %v",
					resp.Date.Format(domain.DateFormat), descriptor.ID, err)
				return nil, fmt.Errorf("%w: failed to get available advisors: %w", ErrInternal, err)
			}
			slot.AvailableAdvisors = ptr.Ptr(len(advisors))
		}

		resp.Slots = append(resp.Slots, slot)
	}

	if resp.Date != nil {
		uc.logger.Info("GetAvailableSlots: catalog with availability for date=%s", resp.Date.Format(domain.DateFormat))
	}
	return resp, nil
}
