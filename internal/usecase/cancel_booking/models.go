package cancel_booking

import "github.com/m04kA/SMC-ConsultationService/internal/domain"

// Request модель запроса на отмену заявки
type Request struct {
	Actor     domain.Actor
	BookingID int64
	// ExpectedVersion версия заявки, которую видел клиент. nil - без проверки
	ExpectedVersion *int
}

// Response модель ответа с отмененной заявкой
type Response struct {
	Booking *domain.Booking
	// SlotRestored true, если слот консультанта вернулся в доступность
	SlotRestored bool
}
