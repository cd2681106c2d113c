package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// Request модель запроса на создание заявки
type Request struct {
	CustomerID *int64 // ID авторизованного клиента, nil для анонимной заявки

	FullName         string    `validate:"required,max=255"`
	Email            string    `validate:"required,email,max=255"`
	Phone            string    `validate:"required,max=32"`
	Message          *string   `validate:"omitempty,max=2000"`
	ConsultationType string    `validate:"required,max=64"`
	VehicleType      string    `validate:"required,max=64"`
	PreferredDate    time.Time // Дата консультации (без времени)
	PreferredTime    string    `validate:"required,slot"`
}

// Response модель ответа с созданной заявкой
type Response struct {
	Booking *domain.Booking
}
