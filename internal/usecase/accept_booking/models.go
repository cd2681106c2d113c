package accept_booking

import "github.com/m04kA/SMC-ConsultationService/internal/domain"

// Request модель запроса на принятие заявки консультантом
type Request struct {
	Actor     domain.Actor
	BookingID int64
	AdvisorID int64
	// ExpectedVersion версия заявки, которую видел клиент. nil - без проверки
	ExpectedVersion *int
}

// Response модель ответа с принятой заявкой
type Response struct {
	Booking *domain.Booking
}
