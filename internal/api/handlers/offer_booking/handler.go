package offer_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	offerBooking "github.com/m04kA/SMC-ConsultationService/internal/usecase/offer_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные запроса"
	msgMissingUser        = "отсутствуют данные пользователя"
	msgForbidden          = "предлагать заявки может только диспетчер"
	msgBookingNotFound    = "заявка не найдена"
	msgAdvisorNotFound    = "консультант не найден"
	msgNotPending         = "заявка уже обработана"
	msgConcurrentUpdate   = "заявка одновременно изменена, повторите попытку"
)

type Handler struct {
	useCase OfferBookingUseCase
	logger  Logger
}

func NewHandler(useCase OfferBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/offer
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/offer - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/offer - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req OfferBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/offer - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor, bookingID))
	if err != nil {
		switch {
		case errors.Is(err, offerBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/offer - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, offerBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/offer - Access denied: user_id=%d", actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, offerBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/offer - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, offerBooking.ErrAdvisorNotFound):
			h.logger.Warn("POST /bookings/{id}/offer - Advisor not found: advisor_id=%d", req.AdvisorID)
			handlers.RespondNotFound(w, msgAdvisorNotFound)

		case errors.Is(err, offerBooking.ErrNotPending):
			h.logger.Warn("POST /bookings/{id}/offer - Not pending: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, offerBooking.ErrConcurrentUpdate):
			h.logger.Warn("POST /bookings/{id}/offer - Concurrent update: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("POST /bookings/{id}/offer - Failed to offer booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.PreviouslyRejected {
		h.logger.Warn("POST /bookings/{id}/offer - Advisor rejected this booking before: booking_id=%d, advisor_id=%d",
			bookingID, req.AdvisorID)
	}
	h.logger.Info("POST /bookings/{id}/offer - Booking offered: booking_id=%d, advisor_id=%d", bookingID, req.AdvisorID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
