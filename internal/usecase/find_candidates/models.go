package find_candidates

import (
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// Request модель запроса кандидатов на слот
type Request struct {
	Actor  domain.Actor
	Date   time.Time
	SlotID string
	// BookingID если указан, кандидаты помечаются флагом прежнего отказа
	BookingID *int64
}

// Candidate консультант, свободный в запрошенный слот
type Candidate struct {
	AdvisorID      int64
	Name           string
	Email          string
	Phone          string
	Image          *string
	Specialization string
	Rating         float64
	Experience     string
	// PreviouslyRejected консультант уже отказывался от заявки BookingID
	PreviouslyRejected bool
}

// Response модель ответа со списком кандидатов
type Response struct {
	Date       time.Time
	SlotID     domain.SlotID
	BookingID  *int64
	Candidates []Candidate
}
