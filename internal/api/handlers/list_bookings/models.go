package list_bookings

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/service/bookings/models"
)

var (
	errInvalidAdvisorID = errors.New("invalid advisorId")
	errInvalidDate      = errors.New("invalid date")
)

// parseQuery разбирает параметры списка: advisorId, status, date, filter
func parseQuery(q url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if v := q.Get("advisorId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return nil, errInvalidAdvisorID
		}
		req.AdvisorID = &id
	}

	if v := q.Get("status"); v != "" {
		req.Status = &v
	}

	if v := q.Get("date"); v != "" {
		date, err := handlers.ParseDate(v)
		if err != nil {
			return nil, errInvalidDate
		}
		req.Date = &date
	}

	if v := q.Get("filter"); v != "" {
		req.Filter = &v
	}

	return req, nil
}
