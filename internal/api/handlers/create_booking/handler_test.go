package create_booking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ConsultationService/internal/testutil/fakes"
	"github.com/m04kA/SMC-ConsultationService/internal/testutil/memstore"
	createBooking "github.com/m04kA/SMC-ConsultationService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ConsultationService/pkg/logger"
)

const validBody = `{
	"fullName": "Ivan Petrov",
	"email": "ivan@example.com",
	"phone": "+79990000000",
	"consultationType": "purchase",
	"vehicleType": "suv",
	"preferredDate": "2024-06-10",
	"preferredTime": "slot-2"
}`

func newTestHandler() (*memstore.Store, http.Handler) {
	store := memstore.New()
	uc := createBooking.NewUseCase(store.Bookings(), &fakes.Notifier{}, logger.NewNop())
	return store, middleware.OptionalAuth(http.HandlerFunc(NewHandler(uc, logger.NewNop()).Handle))
}

func TestHandleCreatesPendingBooking(t *testing.T) {
	store, h := newTestHandler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(validBody)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, "2024-06-10", resp.PreferredDate)
	assert.Equal(t, "slot-2", resp.PreferredTime)
	assert.Equal(t, "10:00 AM - 11:00 AM", resp.PreferredLabel)
	assert.Nil(t, resp.AdvisorID)
	assert.Nil(t, resp.CustomerID)
	assert.Equal(t, 1, resp.Version)

	stored, ok := store.Booking(resp.ID)
	require.True(t, ok)
	assert.Equal(t, "Ivan Petrov", stored.FullName)
}

func TestHandleBindsLoggedInCustomer(t *testing.T) {
	_, h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(validBody))
	req.Header.Set(middleware.HeaderUserID, "77")
	req.Header.Set(middleware.HeaderUserRole, "user")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.CustomerID)
	assert.Equal(t, int64(77), *resp.CustomerID)
}

func TestHandleValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"fullName":`},
		{"bad date", strings.Replace(validBody, "2024-06-10", "10.06.2024", 1)},
		{"bad email", strings.Replace(validBody, "ivan@example.com", "ivan", 1)},
		{"unknown slot", strings.Replace(validBody, "slot-2", "slot-9", 1)},
		{"missing name", strings.Replace(validBody, "Ivan Petrov", "  ", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, h := newTestHandler()

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotEmpty(t, body.Message)

			_, exists := store.Booking(1)
			assert.False(t, exists)
		})
	}
}
