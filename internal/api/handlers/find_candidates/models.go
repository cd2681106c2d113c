package find_candidates

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	findCandidates "github.com/m04kA/SMC-ConsultationService/internal/usecase/find_candidates"
)

var (
	errInvalidDate      = errors.New("invalid date")
	errInvalidBookingID = errors.New("invalid bookingId")
)

// CandidatesResponse HTTP response model
type CandidatesResponse struct {
	Date       string              `json:"date"`
	SlotID     string              `json:"slotId"`
	BookingID  *int64              `json:"bookingId,omitempty"`
	Candidates []CandidateResponse `json:"candidates"`
}

// CandidateResponse консультант, свободный в слот
type CandidateResponse struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Phone              string  `json:"phone"`
	Image              *string `json:"image,omitempty"`
	Specialization     string  `json:"specialization"`
	Rating             float64 `json:"rating"`
	Experience         string  `json:"experience"`
	PreviouslyRejected bool    `json:"previouslyRejected"`
}

// toUseCaseRequest разбирает параметры date, slotId, bookingId
func toUseCaseRequest(actor domain.Actor, q url.Values) (*findCandidates.Request, error) {
	date, err := handlers.ParseDate(q.Get("date"))
	if err != nil {
		return nil, errInvalidDate
	}

	req := &findCandidates.Request{
		Actor:  actor,
		Date:   date,
		SlotID: q.Get("slotId"),
	}

	if v := q.Get("bookingId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return nil, errInvalidBookingID
		}
		req.BookingID = &id
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findCandidates.Response) *CandidatesResponse {
	result := &CandidatesResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		SlotID:     string(resp.SlotID),
		BookingID:  resp.BookingID,
		Candidates: make([]CandidateResponse, 0, len(resp.Candidates)),
	}

	for _, c := range resp.Candidates {
		result.Candidates = append(result.Candidates, CandidateResponse{
			ID:                 c.AdvisorID,
			Name:               c.Name,
			Email:              c.Email,
			Phone:              c.Phone,
			Image:              c.Image,
			Specialization:     c.Specialization,
			Rating:             c.Rating,
			Experience:         c.Experience,
			PreviouslyRejected: c.PreviouslyRejected,
		})
	}
	return result
}
