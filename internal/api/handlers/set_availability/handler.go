package set_availability

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
	msgInvalidAdvisorID   = "некорректный ID консультанта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgUnknownSlot        = "неизвестный временной слот"
	msgInvalidInput       = "некорректные данные доступности"
	msgMissingUser        = "отсутствуют данные пользователя"
	msgAdvisorNotFound    = "консультант не найден"
	msgForbidden          = "доступ запрещен"
	msgConcurrentUpdate   = "доступность изменена параллельно, обновите данные и повторите"
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

// Handle PUT /api/v1/advisors/{advisorId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	advisorID, err := strconv.ParseInt(mux.Vars(r)["advisorId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /advisors/{id}/availability - Invalid advisor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdvisorID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /advisors/{id}/availability - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req SetAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /advisors/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(advisorID)
	if err != nil {
		h.logger.Warn("PUT /advisors/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.SetAvailability(r.Context(), actor, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /advisors/{id}/availability - Access denied: advisor_id=%d, user_id=%d", advisorID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrAdvisorNotFound):
			h.logger.Warn("PUT /advisors/{id}/availability - Advisor not found: advisor_id=%d", advisorID)
			handlers.RespondNotFound(w, msgAdvisorNotFound)

		case errors.Is(err, availability.ErrUnknownSlot):
			h.logger.Warn("PUT /advisors/{id}/availability - Unknown slot: advisor_id=%d, error=%v", advisorID, err)
			handlers.RespondBadRequest(w, msgUnknownSlot)

		case errors.Is(err, availability.ErrConcurrentUpdate):
			h.logger.Warn("PUT /advisors/{id}/availability - Concurrent update: advisor_id=%d, error=%v", advisorID, err)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /advisors/{id}/availability - Invalid input: advisor_id=%d, error=%v", advisorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /advisors/{id}/availability - Failed to set availability: advisor_id=%d, error=%v", advisorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /advisors/{id}/availability - Availability saved: advisor_id=%d, date=%s, slots=%d",
		advisorID, result.Date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
