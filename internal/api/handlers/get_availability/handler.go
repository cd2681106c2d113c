package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/service/availability"
)

const (
	msgInvalidAdvisorID = "некорректный ID консультанта"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUser      = "отсутствуют данные пользователя"
	msgAdvisorNotFound  = "консультант не найден"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/advisors/{advisorId}/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	advisorID, err := strconv.ParseInt(mux.Vars(r)["advisorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /advisors/{id}/availability - Invalid advisor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdvisorID)
		return
	}

	date, err := handlers.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /advisors/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /advisors/{id}/availability - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	result, err := h.service.GetAvailability(r.Context(), actor, advisorID, date)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("GET /advisors/{id}/availability - Access denied: advisor_id=%d, user_id=%d", advisorID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrAdvisorNotFound):
			h.logger.Warn("GET /advisors/{id}/availability - Advisor not found: advisor_id=%d", advisorID)
			handlers.RespondNotFound(w, msgAdvisorNotFound)

		default:
			h.logger.Error("GET /advisors/{id}/availability - Failed to get availability: advisor_id=%d, error=%v", advisorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
