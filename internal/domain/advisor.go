package domain

import "time"

// Advisor профиль консультанта
type Advisor struct {
	ID          int64
	Name        string
	Position    *string
	Email       string
	PhoneNumber *string
	Image       *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AdvisorUpdate частичное обновление профиля: nil поля не меняются
type AdvisorUpdate struct {
	Name        *string
	Position    *string
	PhoneNumber *string
	Image       *string
}

// IsEmpty возвращает true, если обновлять нечего
func (u AdvisorUpdate) IsEmpty() bool {
	return u.Name == nil && u.Position == nil && u.PhoneNumber == nil && u.Image == nil
}
