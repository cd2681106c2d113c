package offer_booking

import (
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/service/bookings/models"
	offerBooking "github.com/m04kA/SMC-ConsultationService/internal/usecase/offer_booking"
)

// OfferBookingRequest HTTP request model
type OfferBookingRequest struct {
	AdvisorID int64 `json:"advisorId"`
}

// OfferBookingResponse HTTP response model
// PreviouslyRejected - предупреждение диспетчеру: консультант уже отказывался от заявки
type OfferBookingResponse struct {
	Booking            *models.BookingResponse `json:"booking"`
	PreviouslyRejected bool                    `json:"previouslyRejected"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *OfferBookingRequest) ToUseCaseRequest(actor domain.Actor, bookingID int64) *offerBooking.Request {
	return &offerBooking.Request{
		Actor:     actor,
		BookingID: bookingID,
		AdvisorID: r.AdvisorID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *offerBooking.Response) *OfferBookingResponse {
	return &OfferBookingResponse{
		Booking:            models.FromDomainBooking(resp.Booking),
		PreviouslyRejected: resp.PreviouslyRejected,
	}
}
