package models

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidFilter возвращается при неизвестном именованном фильтре
	ErrInvalidFilter = errors.New("invalid bookings filter")
)

// Именованные фильтры списка заявок (кнопки панели консультанта)
const (
	FilterAll       = "all"
	FilterToday     = "today"
	FilterPending   = "pending"
	FilterConfirmed = "confirmed"
)

// Request модели

// ListBookingsRequest запрос на получение списка заявок
// Date имеет приоритет над именованным фильтром today
type ListBookingsRequest struct {
	AdvisorID *int64     `json:"advisorId,omitempty"`
	Status    *string    `json:"status,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	Filter    *string    `json:"filter,omitempty"` // all | today | pending | confirmed
}

// Response модели

// BookingResponse ответ с данными заявки
type BookingResponse struct {
	ID         int64  `json:"id"`
	CustomerID *int64 `json:"customerId,omitempty"`

	FullName string  `json:"fullName"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Message  *string `json:"message,omitempty"`

	ConsultationType string `json:"consultationType"`
	VehicleType      string `json:"vehicleType"`

	PreferredDate  string `json:"preferredDate"` // "2024-06-10"
	PreferredTime  string `json:"preferredTime"` // "slot-1"
	PreferredLabel string `json:"preferredTimeLabel,omitempty"`

	Status    string `json:"status"`
	AdvisorID *int64 `json:"advisorId,omitempty"`
	Version   int    `json:"version"`

	AcceptedAt  *string `json:"acceptedAt,omitempty"`  // ISO 8601
	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком заявок
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// RejectionResponse запись об отказе
type RejectionResponse struct {
	AdvisorID  int64     `json:"advisorId"`
	RejectedAt time.Time `json:"rejectedAt"`
}

// RejectionsResponse история отказов по заявке
// AdvisorIDs - уникальные консультанты в порядке первого отказа
type RejectionsResponse struct {
	BookingID  int64               `json:"bookingId"`
	AdvisorIDs []int64             `json:"advisorIds"`
	Rejections []RejectionResponse `json:"rejections"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:               b.ID,
		CustomerID:       b.CustomerID,
		FullName:         b.FullName,
		Email:            b.Email,
		Phone:            b.Phone,
		Message:          b.Message,
		ConsultationType: b.ConsultationType,
		VehicleType:      b.VehicleType,
		PreferredDate:    b.PreferredDate.Format(domain.DateFormat),
		PreferredTime:    string(b.PreferredTime),
		Status:           string(b.Status),
		AdvisorID:        b.AdvisorID,
		Version:          b.Version,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}

	if slot, ok := domain.GetSlot(b.PreferredTime); ok {
		resp.PreferredLabel = slot.Label
	}
	if b.AcceptedAt != nil {
		acceptedStr := b.AcceptedAt.Format(time.RFC3339)
		resp.AcceptedAt = &acceptedStr
	}
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainRejections строит историю отказов
func FromDomainRejections(bookingID int64, rejections []*domain.Rejection) *RejectionsResponse {
	resp := &RejectionsResponse{
		BookingID:  bookingID,
		AdvisorIDs: make([]int64, 0),
		Rejections: make([]RejectionResponse, 0, len(rejections)),
	}

	seen := make(map[int64]struct{}, len(rejections))
	for _, r := range rejections {
		resp.Rejections = append(resp.Rejections, RejectionResponse{
			AdvisorID:  r.AdvisorID,
			RejectedAt: r.RejectedAt,
		})
		if _, ok := seen[r.AdvisorID]; ok {
			continue
		}
		seen[r.AdvisorID] = struct{}{}
		resp.AdvisorIDs = append(resp.AdvisorIDs, r.AdvisorID)
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
// Регистр не важен; "confirmed" - синоним ACCEPTED
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	normalized := strings.ToUpper(strings.TrimSpace(status))
	if normalized == "CONFIRMED" {
		return domain.StatusAccepted, nil
	}

	s := domain.BookingStatus(normalized)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
