package cancel_booking

import (
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/service/bookings/models"
	cancelBooking "github.com/m04kA/SMC-ConsultationService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model. Тело запроса необязательно
type CancelBookingRequest struct {
	ExpectedVersion *int `json:"expectedVersion,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Booking      *models.BookingResponse `json:"booking"`
	SlotRestored bool                    `json:"slotRestored"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(actor domain.Actor, bookingID int64) *cancelBooking.Request {
	return &cancelBooking.Request{
		Actor:           actor,
		BookingID:       bookingID,
		ExpectedVersion: r.ExpectedVersion,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		Booking:      models.FromDomainBooking(resp.Booking),
		SlotRestored: resp.SlotRestored,
	}
}
