package reject_booking

import "github.com/m04kA/SMC-ConsultationService/internal/domain"

// Request модель запроса на отказ консультанта от заявки
type Request struct {
	Actor     domain.Actor
	BookingID int64
	AdvisorID int64
}

// Response модель ответа: заявка остается PENDING
type Response struct {
	Booking   *domain.Booking
	Rejection *domain.Rejection
}
