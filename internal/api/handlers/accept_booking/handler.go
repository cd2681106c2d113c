package accept_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	acceptBooking "github.com/m04kA/SMC-ConsultationService/internal/usecase/accept_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные запроса"
	msgMissingUser        = "отсутствуют данные пользователя"
	msgForbidden          = "консультант может принять заявку только от своего имени"
	msgNotFound           = "заявка не найдена"
	msgNotPending         = "заявка уже обработана"
	msgVersionMismatch    = "заявка была изменена, обновите данные"
	msgOfferedToOther     = "заявка предложена другому консультанту"
	msgSlotNotAvailable   = "выбранный слот консультанта недоступен"
	msgConcurrentUpdate   = "заявка одновременно изменена, повторите попытку"
)

type Handler struct {
	useCase AcceptBookingUseCase
	logger  Logger
}

func NewHandler(useCase AcceptBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/accept
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/accept - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/accept - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req AcceptBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/accept - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor, bookingID))
	if err != nil {
		switch {
		case errors.Is(err, acceptBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/accept - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, acceptBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/accept - Access denied: booking_id=%d, user_id=%d, advisor_id=%d",
				bookingID, actor.ID, req.AdvisorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, acceptBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/accept - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, acceptBooking.ErrNotPending):
			h.logger.Warn("POST /bookings/{id}/accept - Not pending: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, acceptBooking.ErrVersionMismatch):
			h.logger.Warn("POST /bookings/{id}/accept - Version mismatch: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgVersionMismatch)

		case errors.Is(err, acceptBooking.ErrOfferedToOther):
			h.logger.Warn("POST /bookings/{id}/accept - Offered to other advisor: booking_id=%d, advisor_id=%d",
				bookingID, req.AdvisorID)
			handlers.RespondConflict(w, msgOfferedToOther)

		case errors.Is(err, acceptBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings/{id}/accept - Slot not available: booking_id=%d, advisor_id=%d",
				bookingID, req.AdvisorID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, acceptBooking.ErrConcurrentUpdate):
			h.logger.Warn("POST /bookings/{id}/accept - Concurrent update: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("POST /bookings/{id}/accept - Failed to accept booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/accept - Booking accepted: booking_id=%d, advisor_id=%d", bookingID, req.AdvisorID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
