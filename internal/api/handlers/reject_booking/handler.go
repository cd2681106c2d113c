package reject_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	rejectBooking "github.com/m04kA/SMC-ConsultationService/internal/usecase/reject_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные запроса"
	msgMissingUser        = "отсутствуют данные пользователя"
	msgForbidden          = "консультант может отказаться от заявки только от своего имени"
	msgNotFound           = "ожидающая заявка не найдена"
	msgConcurrentUpdate   = "заявка одновременно изменена, повторите попытку"
)

type Handler struct {
	useCase RejectBookingUseCase
	logger  Logger
}

func NewHandler(useCase RejectBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reject - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/reject - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req RejectBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor, bookingID))
	if err != nil {
		switch {
		case errors.Is(err, rejectBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/reject - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, rejectBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/reject - Access denied: booking_id=%d, user_id=%d, advisor_id=%d",
				bookingID, actor.ID, req.AdvisorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rejectBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reject - Pending booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rejectBooking.ErrConcurrentUpdate):
			h.logger.Warn("POST /bookings/{id}/reject - Concurrent update: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("POST /bookings/{id}/reject - Failed to reject booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reject - Booking rejected: booking_id=%d, advisor_id=%d", bookingID, req.AdvisorID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
