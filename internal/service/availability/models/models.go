package models

import (
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// SetAvailabilityRequest запрос на сохранение доступности консультанта на день
type SetAvailabilityRequest struct {
	AdvisorID int64
	Date      time.Time
	Slots     []string
}

// AvailabilityResponse доступные слоты консультанта на день
type AvailabilityResponse struct {
	AdvisorID int64    `json:"advisorId"`
	Date      string   `json:"date"`
	Slots     []string `json:"slots"`
	// Reserved слоты, которые консультант отметил, но они уже заняты принятыми заявками
	Reserved []string `json:"reserved,omitempty"`
}

// NewAvailabilityResponse строит ответ по списку слотов
func NewAvailabilityResponse(advisorID int64, date time.Time, slots, reserved []domain.SlotID) *AvailabilityResponse {
	return &AvailabilityResponse{
		AdvisorID: advisorID,
		Date:      date.Format(domain.DateFormat),
		Slots:     toStrings(slots),
		Reserved:  toStrings(reserved),
	}
}

func toStrings(slots []domain.SlotID) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, string(s))
	}
	return result
}
