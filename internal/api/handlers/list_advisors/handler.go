package list_advisors

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/service/advisors"
)

const (
	msgMissingUser = "отсутствуют данные пользователя"
	msgForbidden   = "список консультантов доступен только диспетчеру"
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

// Handle GET /api/v1/advisors
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /advisors - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	result, err := h.service.List(r.Context(), actor)
	if err != nil {
		if errors.Is(err, advisors.ErrAccessDenied) {
			h.logger.Warn("GET /advisors - Access denied: user_id=%d", actor.ID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /advisors - Failed to list advisors: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
