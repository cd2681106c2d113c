package update_advisor

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/service/advisors"
	"github.com/m04kA/SMC-ConsultationService/internal/service/advisors/models"
)

const (
	msgInvalidAdvisorID   = "некорректный ID консультанта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "отсутствуют данные пользователя"
	msgNotFound           = "консультант не найден"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service AdvisorService
	logger  Logger
}

func NewHandler(service AdvisorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/advisors/{advisorId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	advisorID, err := strconv.ParseInt(mux.Vars(r)["advisorId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /advisors/{id} - Invalid advisor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdvisorID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /advisors/{id} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req models.UpdateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /advisors/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), actor, advisorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, advisors.ErrInvalidInput):
			h.logger.Warn("PATCH /advisors/{id} - Validation failed: advisor_id=%d, error=%v", advisorID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, advisors.ErrAccessDenied):
			h.logger.Warn("PATCH /advisors/{id} - Access denied: advisor_id=%d, user_id=%d", advisorID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, advisors.ErrAdvisorNotFound):
			h.logger.Warn("PATCH /advisors/{id} - Advisor not found: advisor_id=%d", advisorID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /advisors/{id} - Failed to update profile: advisor_id=%d, error=%v", advisorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /advisors/{id} - Profile updated: advisor_id=%d, user_id=%d", advisorID, actor.ID)
	handlers.RespondJSON(w, http.StatusOK, profile)
}
