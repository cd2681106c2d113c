package get_available_slots

import (
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ConsultationService/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date  *string        `json:"date,omitempty"`
	Slots []SlotResponse `json:"slots"`
}

// SlotResponse слот каталога
type SlotResponse struct {
	ID                string `json:"id"`
	Label             string `json:"label"`
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	AvailableAdvisors *int   `json:"availableAdvisors,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	result := &SlotsResponse{
		Slots: make([]SlotResponse, 0, len(resp.Slots)),
	}
	if resp.Date != nil {
		date := resp.Date.Format(domain.DateFormat)
		result.Date = &date
	}

	for _, s := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{
			ID:                s.ID,
			Label:             s.Label,
			StartTime:         s.StartTime.String(),
			EndTime:           s.EndTime.String(),
			AvailableAdvisors: s.AvailableAdvisors,
		})
	}
	return result
}
