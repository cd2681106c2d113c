package domain

import "time"

// Rejection запись об отказе консультанта от заявки (append-only)
type Rejection struct {
	ID         int64
	BookingID  int64
	AdvisorID  int64
	RejectedAt time.Time
}
