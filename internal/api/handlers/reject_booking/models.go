package reject_booking

import (
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/service/bookings/models"
	rejectBooking "github.com/m04kA/SMC-ConsultationService/internal/usecase/reject_booking"
)

// RejectBookingRequest HTTP request model
type RejectBookingRequest struct {
	AdvisorID int64 `json:"advisorId"`
}

// RejectBookingResponse HTTP response model
type RejectBookingResponse struct {
	Booking    *models.BookingResponse `json:"booking"`
	AdvisorID  int64                   `json:"advisorId"`
	RejectedAt time.Time               `json:"rejectedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RejectBookingRequest) ToUseCaseRequest(actor domain.Actor, bookingID int64) *rejectBooking.Request {
	return &rejectBooking.Request{
		Actor:     actor,
		BookingID: bookingID,
		AdvisorID: r.AdvisorID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rejectBooking.Response) *RejectBookingResponse {
	return &RejectBookingResponse{
		Booking:    models.FromDomainBooking(resp.Booking),
		AdvisorID:  resp.Rejection.AdvisorID,
		RejectedAt: resp.Rejection.RejectedAt,
	}
}
