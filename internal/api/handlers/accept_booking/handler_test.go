package accept_booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	acceptBooking "github.com/m04kA/SMC-ConsultationService/internal/usecase/accept_booking"
	"github.com/m04kA/SMC-ConsultationService/pkg/logger"
)

type useCaseFunc func(ctx context.Context, req *acceptBooking.Request) (*acceptBooking.Response, error)

func (f useCaseFunc) Execute(ctx context.Context, req *acceptBooking.Request) (*acceptBooking.Response, error) {
	return f(ctx, req)
}

func serve(uc AcceptBookingUseCase, path, body string, authorized bool) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Handle("/bookings/{bookingId}/accept", middleware.Auth(http.HandlerFunc(NewHandler(uc, logger.NewNop()).Handle)))

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if authorized {
		req.Header.Set(middleware.HeaderUserID, "3")
		req.Header.Set(middleware.HeaderUserRole, "advisor")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleSuccess(t *testing.T) {
	var got *acceptBooking.Request
	uc := useCaseFunc(func(_ context.Context, req *acceptBooking.Request) (*acceptBooking.Response, error) {
		got = req
		advisorID := req.AdvisorID
		return &acceptBooking.Response{Booking: &domain.Booking{
			ID:            req.BookingID,
			Status:        domain.StatusAccepted,
			AdvisorID:     &advisorID,
			PreferredTime: "slot-1",
			Version:       2,
		}}, nil
	})

	rec := serve(uc, "/bookings/42/accept", `{"advisorId":3,"expectedVersion":1}`, true)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, int64(42), got.BookingID)
	assert.Equal(t, int64(3), got.AdvisorID)
	assert.Equal(t, domain.Actor{ID: 3, Role: domain.RoleAdvisor}, got.Actor)
	require.NotNil(t, got.ExpectedVersion)
	assert.Equal(t, 1, *got.ExpectedVersion)
	assert.Contains(t, rec.Body.String(), `"status":"ACCEPTED"`)
	assert.Contains(t, rec.Body.String(), `"version":2`)
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid input", fmt.Errorf("%w: advisorId must be positive", acceptBooking.ErrInvalidInput), http.StatusBadRequest},
		{"access denied", acceptBooking.ErrAccessDenied, http.StatusForbidden},
		{"not found", acceptBooking.ErrBookingNotFound, http.StatusNotFound},
		{"not pending", acceptBooking.ErrNotPending, http.StatusConflict},
		{"version", acceptBooking.ErrVersionMismatch, http.StatusConflict},
		{"offered to other", acceptBooking.ErrOfferedToOther, http.StatusConflict},
		{"slot", acceptBooking.ErrSlotNotAvailable, http.StatusConflict},
		{"concurrent", acceptBooking.ErrConcurrentUpdate, http.StatusConflict},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := useCaseFunc(func(context.Context, *acceptBooking.Request) (*acceptBooking.Response, error) {
				return nil, tt.err
			})

			rec := serve(uc, "/bookings/1/accept", `{"advisorId":3}`, true)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandleBadRequests(t *testing.T) {
	uc := useCaseFunc(func(context.Context, *acceptBooking.Request) (*acceptBooking.Response, error) {
		t.Fatal("use case must not be called")
		return nil, nil
	})

	assert.Equal(t, http.StatusBadRequest, serve(uc, "/bookings/abc/accept", `{"advisorId":3}`, true).Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, "/bookings/1/accept", `{"advisorId":`, true).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(uc, "/bookings/1/accept", `{"advisorId":3}`, false).Code)
}
