package models

import (
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// AdvisorResponse профиль консультанта
type AdvisorResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Position    *string `json:"position,omitempty"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Image       *string `json:"image,omitempty"`
	Rating      float64 `json:"rating"`
	Experience  string  `json:"experience"`
	// TotalBookings заполняется только в профиле
	TotalBookings *int64 `json:"totalBookings,omitempty"`
}

// AdvisorListResponse список консультантов
type AdvisorListResponse struct {
	Advisors []AdvisorResponse `json:"advisors"`
}

// UpdateProfileRequest частичное обновление профиля
// nil поля не меняются
type UpdateProfileRequest struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=255"`
	Position    *string `json:"position" validate:"omitempty,max=255"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=32"`
	Image       *string `json:"image" validate:"omitempty,max=2048"`
}

// ToDomain преобразует запрос в доменное обновление
func (r *UpdateProfileRequest) ToDomain() *domain.AdvisorUpdate {
	return &domain.AdvisorUpdate{
		Name:        r.Name,
		Position:    r.Position,
		PhoneNumber: r.PhoneNumber,
		Image:       r.Image,
	}
}

// FromDomainAdvisor преобразует доменную модель в ответ
func FromDomainAdvisor(a *domain.Advisor) AdvisorResponse {
	return AdvisorResponse{
		ID:          a.ID,
		Name:        a.Name,
		Position:    a.Position,
		Email:       a.Email,
		PhoneNumber: a.PhoneNumber,
		Image:       a.Image,
		Rating:      domain.DefaultAdvisorRating,
		Experience:  domain.DefaultAdvisorExperience,
	}
}

// FromDomainAdvisors преобразует список консультантов
func FromDomainAdvisors(list []*domain.Advisor) *AdvisorListResponse {
	result := make([]AdvisorResponse, 0, len(list))
	for _, a := range list {
		result = append(result, FromDomainAdvisor(a))
	}
	return &AdvisorListResponse{Advisors: result}
}
