package set_availability

import (
	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/service/availability/models"
)

// SetAvailabilityRequest HTTP request model
type SetAvailabilityRequest struct {
	Date  string   `json:"date"`  // "2024-06-10"
	Slots []string `json:"slots"` // ["slot-1", "slot-3"]
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SetAvailabilityRequest) ToServiceRequest(advisorID int64) (*models.SetAvailabilityRequest, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	slots := r.Slots
	if slots == nil {
		slots = []string{}
	}

	return &models.SetAvailabilityRequest{
		AdvisorID: advisorID,
		Date:      date,
		Slots:     slots,
	}, nil
}
