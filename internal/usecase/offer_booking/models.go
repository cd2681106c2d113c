package offer_booking

import "github.com/m04kA/SMC-ConsultationService/internal/domain"

// Request модель запроса на предложение заявки консультанту
type Request struct {
	Actor     domain.Actor
	BookingID int64
	AdvisorID int64
}

// Response модель ответа
type Response struct {
	Booking *domain.Booking
	// PreviouslyRejected консультант уже отказывался от этой заявки
	PreviouslyRejected bool
}
