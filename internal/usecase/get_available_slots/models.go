package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// Request модель запроса каталога слотов
type Request struct {
	// Date если указана, для каждого слота считается число свободных консультантов
	Date *time.Time
}

// Response модель ответа с каталогом слотов
type Response struct {
	Date  *time.Time
	Slots []Slot
}

// Slot слот каталога
type Slot struct {
	ID        string
	Label     string
	StartTime types.TimeString
	EndTime   types.TimeString
	// AvailableAdvisors число консультантов, открывших слот на дату. nil без даты
	AvailableAdvisors *int
}
