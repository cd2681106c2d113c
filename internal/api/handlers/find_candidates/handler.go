package find_candidates

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	findCandidates "github.com/m04kA/SMC-ConsultationService/internal/usecase/find_candidates"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidBookingID = "некорректный ID заявки"
	msgInvalidSlot      = "неизвестный временной слот"
	msgMissingUser      = "отсутствуют данные пользователя"
	msgForbidden        = "подбор консультантов доступен только диспетчеру"
	msgBookingNotFound  = "заявка не найдена"
)

type Handler struct {
	useCase FindCandidatesUseCase
	logger  Logger
}

func NewHandler(useCase FindCandidatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/candidates?date=YYYY-MM-DD&slotId=slot-1&bookingId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /candidates - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	req, err := toUseCaseRequest(actor, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /candidates - Invalid query: %v", err)
		if errors.Is(err, errInvalidBookingID) {
			handlers.RespondBadRequest(w, msgInvalidBookingID)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, findCandidates.ErrAccessDenied):
			h.logger.Warn("GET /candidates - Access denied: user_id=%d", actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, findCandidates.ErrInvalidInput):
			h.logger.Warn("GET /candidates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, findCandidates.ErrBookingNotFound):
			h.logger.Warn("GET /candidates - Booking not found: booking_id=%d", *req.BookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("GET /candidates - Failed to find candidates: date=%s, slot=%s, error=%v",
				r.URL.Query().Get("date"), req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /candidates - Candidates found: date=%s, slot=%s, count=%d",
		r.URL.Query().Get("date"), req.SlotID, len(result.Candidates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
