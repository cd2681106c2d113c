package domain

import "time"

// BookingStatus статус заявки на консультацию
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusAccepted  BookingStatus = "ACCEPTED"
	StatusRejected  BookingStatus = "REJECTED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// IsValid возвращает true для известных статусов
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal возвращает true для статусов, из которых нет переходов
func (s BookingStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusCancelled || s == StatusRejected
}

// CanTransitionTo проверяет допустимость перехода по машине состояний:
// PENDING -> ACCEPTED, PENDING -> CANCELLED, ACCEPTED -> CANCELLED
// Отказ консультанта не меняет статус (заявка остаётся PENDING)
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusAccepted || next == StatusCancelled
	case StatusAccepted:
		return next == StatusCancelled
	default:
		return false
	}
}

// Booking заявка клиента на консультацию
type Booking struct {
	ID         int64
	CustomerID *int64 // ID авторизованного клиента, nil для анонимной заявки

	FullName string
	Email    string
	Phone    string
	Message  *string

	ConsultationType string
	VehicleType      string

	PreferredDate time.Time // календарный день без времени
	PreferredTime SlotID

	Status BookingStatus
	// AdvisorID консультант, которому предложена (PENDING) или назначена (ACCEPTED) заявка
	AdvisorID *int64
	// Version увеличивается при каждом изменении заявки (оптимистичная блокировка)
	Version int

	AcceptedAt  *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsPending возвращает true, если заявка ожидает назначения
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// CanBeCancelled возвращает true, если заявку можно отменить
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// IsBoundTo возвращает true, если заявка предложена или назначена консультанту
func (b *Booking) IsBoundTo(advisorID int64) bool {
	return b.AdvisorID != nil && *b.AdvisorID == advisorID
}

// IsOfferedToOther возвращает true, если PENDING заявка предложена другому консультанту
func (b *Booking) IsOfferedToOther(advisorID int64) bool {
	return b.IsPending() && b.AdvisorID != nil && *b.AdvisorID != advisorID
}

// BookingFilter фильтр списка заявок
// StartDate/EndDate - границы по календарным дням включительно
type BookingFilter struct {
	AdvisorID  *int64
	CustomerID *int64
	Status     *BookingStatus
	StartDate  *time.Time
	EndDate    *time.Time
}
