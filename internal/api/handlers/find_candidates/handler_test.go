package find_candidates

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/testutil/memstore"
	findCandidates "github.com/m04kA/SMC-ConsultationService/internal/usecase/find_candidates"
	"github.com/m04kA/SMC-ConsultationService/pkg/logger"
)

func get(h http.Handler, query string, role, adminRole string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/candidates?"+query, nil)
	req.Header.Set(middleware.HeaderUserID, "1")
	req.Header.Set(middleware.HeaderUserRole, role)
	if adminRole != "" {
		req.Header.Set(middleware.HeaderAdminRole, adminRole)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	store := memstore.New()
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	anna := store.AddAdvisor("Anna", "anna@example.com")
	boris := store.AddAdvisor("Boris", "boris@example.com")
	store.PutAvailability(boris.ID, day, "slot-2", true)
	store.PutAvailability(anna.ID, day, "slot-2", true)
	store.PutAvailability(anna.ID, day, "slot-3", true)

	booking, err := store.Bookings().Create(context.Background(), &domain.Booking{
		FullName: "Client", Email: "c@example.com", Phone: "+7000",
		PreferredDate: day, PreferredTime: "slot-2", Status: domain.StatusPending,
	})
	require.NoError(t, err)
	_, err = store.Rejections().Create(context.Background(), &domain.Rejection{BookingID: booking.ID, AdvisorID: boris.ID})
	require.NoError(t, err)

	uc := findCandidates.NewUseCase(store.Availability(), store.Bookings(), store.Rejections(), logger.NewNop())
	h := middleware.Auth(http.HandlerFunc(NewHandler(uc, logger.NewNop()).Handle))

	t.Run("dispatcher", func(t *testing.T) {
		rec := get(h, "date=2024-06-10&slotId=slot-2&bookingId="+jsonInt(booking.ID), "admin", "ADMIN")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp CandidatesResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp.Candidates, 2)
		assert.Equal(t, anna.ID, resp.Candidates[0].ID)
		assert.False(t, resp.Candidates[0].PreviouslyRejected)
		assert.Equal(t, boris.ID, resp.Candidates[1].ID)
		assert.True(t, resp.Candidates[1].PreviouslyRejected)
		assert.Equal(t, "slot-2", resp.SlotID)
	})

	t.Run("advisor forbidden", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, get(h, "date=2024-06-10&slotId=slot-2", "advisor", "").Code)
	})

	t.Run("unknown slot", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get(h, "date=2024-06-10&slotId=slot-0", "admin", "ADMIN").Code)
	})

	t.Run("missing date", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get(h, "slotId=slot-2", "admin", "ADMIN").Code)
	})

	t.Run("unknown booking", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get(h, "date=2024-06-10&slotId=slot-2&bookingId=999", "admin", "ADMIN").Code)
	})
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
