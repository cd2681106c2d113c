package accept_booking

import (
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/service/bookings/models"
	acceptBooking "github.com/m04kA/SMC-ConsultationService/internal/usecase/accept_booking"
)

// AcceptBookingRequest HTTP request model
type AcceptBookingRequest struct {
	AdvisorID       int64 `json:"advisorId"`
	ExpectedVersion *int  `json:"expectedVersion,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AcceptBookingRequest) ToUseCaseRequest(actor domain.Actor, bookingID int64) *acceptBooking.Request {
	return &acceptBooking.Request{
		Actor:           actor,
		BookingID:       bookingID,
		AdvisorID:       r.AdvisorID,
		ExpectedVersion: r.ExpectedVersion,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *acceptBooking.Response) *models.BookingResponse {
	return models.FromDomainBooking(resp.Booking)
}
