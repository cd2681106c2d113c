package offer_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	offerBooking "github.com/m04kA/SMC-ConsultationService/internal/usecase/offer_booking"
	"github.com/m04kA/SMC-ConsultationService/pkg/logger"
)

type useCaseFunc func(ctx context.Context, req *offerBooking.Request) (*offerBooking.Response, error)

func (f useCaseFunc) Execute(ctx context.Context, req *offerBooking.Request) (*offerBooking.Response, error) {
	return f(ctx, req)
}

func serve(uc OfferBookingUseCase, path, body string, authorized bool) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Handle("/bookings/{bookingId}/offer", middleware.Auth(http.HandlerFunc(NewHandler(uc, logger.NewNop()).Handle)))

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if authorized {
		req.Header.Set(middleware.HeaderUserID, "900")
		req.Header.Set(middleware.HeaderUserRole, "admin")
		req.Header.Set(middleware.HeaderAdminRole, "ADMIN")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleSuccess(t *testing.T) {
	for _, rejected := range []bool{false, true} {
		var got *offerBooking.Request
		uc := useCaseFunc(func(_ context.Context, req *offerBooking.Request) (*offerBooking.Response, error) {
			got = req
			advisorID := req.AdvisorID
			return &offerBooking.Response{
				Booking: &domain.Booking{
					ID:            req.BookingID,
					Status:        domain.StatusPending,
					AdvisorID:     &advisorID,
					PreferredDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
					PreferredTime: "slot-4",
					Version:       2,
				},
				PreviouslyRejected: rejected,
			}, nil
		})

		rec := serve(uc, "/bookings/42/offer", `{"advisorId":7}`, true)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got)
		assert.Equal(t, int64(42), got.BookingID)
		assert.Equal(t, int64(7), got.AdvisorID)
		assert.True(t, got.Actor.IsDispatcher())

		var resp OfferBookingResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, rejected, resp.PreviouslyRejected)
		require.NotNil(t, resp.Booking)
		assert.Equal(t, "PENDING", resp.Booking.Status)
		require.NotNil(t, resp.Booking.AdvisorID)
		assert.Equal(t, int64(7), *resp.Booking.AdvisorID)
	}
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid input", offerBooking.ErrInvalidInput, http.StatusBadRequest},
		{"access denied", offerBooking.ErrAccessDenied, http.StatusForbidden},
		{"booking not found", offerBooking.ErrBookingNotFound, http.StatusNotFound},
		{"advisor not found", offerBooking.ErrAdvisorNotFound, http.StatusNotFound},
		{"not pending", offerBooking.ErrNotPending, http.StatusConflict},
		{"concurrent", offerBooking.ErrConcurrentUpdate, http.StatusConflict},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := useCaseFunc(func(context.Context, *offerBooking.Request) (*offerBooking.Response, error) {
				return nil, tt.err
			})

			rec := serve(uc, "/bookings/1/offer", `{"advisorId":7}`, true)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandleBadRequests(t *testing.T) {
	uc := useCaseFunc(func(context.Context, *offerBooking.Request) (*offerBooking.Response, error) {
		t.Fatal("use case must not be called")
		return nil, nil
	})

	assert.Equal(t, http.StatusBadRequest, serve(uc, "/bookings/x/offer", `{"advisorId":7}`, true).Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, "/bookings/1/offer", ``, true).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(uc, "/bookings/1/offer", `{"advisorId":7}`, false).Code)
}
