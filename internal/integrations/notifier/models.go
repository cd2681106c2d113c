package notifier

import (
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// EventType тип события по заявке, он же routing key
type EventType string

const (
	EventBookingCreated      EventType = "booking.created"
	EventBookingOffered      EventType = "booking.offered"
	EventBookingAccepted     EventType = "booking.accepted"
	EventBookingRejected     EventType = "booking.rejected"
	EventBookingCancelled    EventType = "booking.cancelled"
	EventAvailabilityUpdated EventType = "availability.updated"
)

// Event сообщение, публикуемое в exchange
type Event struct {
	Type          EventType             `json:"type"`
	BookingID     *int64                `json:"bookingId,omitempty"`
	AdvisorID     *int64                `json:"advisorId,omitempty"`
	ActorID       *int64                `json:"actorId,omitempty"`
	Status        *domain.BookingStatus `json:"status,omitempty"`
	Date          string                `json:"date,omitempty"`
	SlotID        *domain.SlotID        `json:"slotId,omitempty"`
	Slots         []domain.SlotID       `json:"slots,omitempty"`
	CustomerEmail string                `json:"customerEmail,omitempty"`
	OccurredAt    time.Time             `json:"occurredAt"`
}

// BookingEvent строит событие по состоянию заявки
func BookingEvent(eventType EventType, booking *domain.Booking, actorID *int64) Event {
	status := booking.Status
	slot := booking.PreferredTime
	id := booking.ID
	return Event{
		Type:          eventType,
		BookingID:     &id,
		AdvisorID:     booking.AdvisorID,
		ActorID:       actorID,
		Status:        &status,
		Date:          booking.PreferredDate.Format(domain.DateFormat),
		SlotID:        &slot,
		CustomerEmail: booking.Email,
		OccurredAt:    time.Now().UTC(),
	}
}
