package get_advisor

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/service/advisors"
)

const (
	msgInvalidAdvisorID = "некорректный ID консультанта"
	msgMissingUser      = "отсутствуют данные пользователя"
	msgNotFound         = "консультант не найден"
	msgForbidden        = "доступ запрещен"
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

// Handle GET /api/v1/advisors/{advisorId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	advisorID, err := strconv.ParseInt(mux.Vars(r)["advisorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /advisors/{id} - Invalid advisor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdvisorID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /advisors/{id} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	profile, err := h.service.GetProfile(r.Context(), actor, advisorID)
	if err != nil {
		switch {
		case errors.Is(err, advisors.ErrAccessDenied):
			h.logger.Warn("GET /advisors/{id} - Access denied: advisor_id=%d, user_id=%d", advisorID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, advisors.ErrAdvisorNotFound):
			h.logger.Warn("GET /advisors/{id} - Advisor not found: advisor_id=%d", advisorID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /advisors/{id} - Failed to get profile: advisor_id=%d, error=%v", advisorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, profile)
}
