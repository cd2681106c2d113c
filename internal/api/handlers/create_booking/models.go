package create_booking

import (
	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-ConsultationService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model (форма записи на консультацию)
type CreateBookingRequest struct {
	FullName         string  `json:"fullName"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	Message          *string `json:"message,omitempty"`
	ConsultationType string  `json:"consultationType"`
	VehicleType      string  `json:"vehicleType"`
	PreferredDate    string  `json:"preferredDate"` // "2024-06-10"
	PreferredTime    string  `json:"preferredTime"` // "slot-1"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// customer - авторизованный клиент, если форма отправлена из личного кабинета
func (r *CreateBookingRequest) ToUseCaseRequest(customer *domain.Actor) (*createBooking.Request, error) {
	preferredDate, err := handlers.ParseDate(r.PreferredDate)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		FullName:         r.FullName,
		Email:            r.Email,
		Phone:            r.Phone,
		Message:          r.Message,
		ConsultationType: r.ConsultationType,
		VehicleType:      r.VehicleType,
		PreferredDate:    preferredDate,
		PreferredTime:    r.PreferredTime,
	}
	if customer != nil && customer.Role == domain.RoleUser {
		id := customer.ID
		req.CustomerID = &id
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.BookingResponse {
	return models.FromDomainBooking(resp.Booking)
}
