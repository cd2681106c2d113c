package domain

import "time"

// AvailabilitySlot отметка доступности консультанта в слот на конкретный день
// Уникальна по (AdvisorID, Date, SlotID)
type AvailabilitySlot struct {
	ID          int64
	AdvisorID   int64
	Date        time.Time
	SlotID      SlotID
	IsAvailable bool
	CreatedAt   time.Time
}

// NormalizeDate приводит момент времени к календарному дню (полночь UTC того же дня)
// День берётся в часовом поясе самого значения
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsSameDay проверяет, что две даты относятся к одному календарному дню
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
