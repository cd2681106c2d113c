package offer_booking

import (
	"context"

	offerBooking "github.com/m04kA/SMC-ConsultationService/internal/usecase/offer_booking"
)

type OfferBookingUseCase interface {
	Execute(ctx context.Context, req *offerBooking.Request) (*offerBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
