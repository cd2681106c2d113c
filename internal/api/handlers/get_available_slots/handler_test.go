package get_available_slots

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/testutil/memstore"
	getAvailableSlots "github.com/m04kA/SMC-ConsultationService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ConsultationService/pkg/logger"
)

func TestHandle(t *testing.T) {
	store := memstore.New()
	advisor := store.AddAdvisor("Anna", "anna@example.com")
	store.PutAvailability(advisor.ID, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), "slot-4", true)

	h := NewHandler(getAvailableSlots.NewUseCase(store.Availability(), logger.NewNop()), logger.NewNop())

	t.Run("catalog", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/slots", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp SlotsResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp.Slots, 6)
		assert.Nil(t, resp.Date)
		assert.Equal(t, SlotResponse{ID: "slot-4", Label: "02:00 PM - 03:00 PM", StartTime: "14:00", EndTime: "15:00"}, resp.Slots[3])
	})

	t.Run("with date", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/slots?date=2024-06-10", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp SlotsResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.NotNil(t, resp.Date)
		assert.Equal(t, "2024-06-10", *resp.Date)
		require.NotNil(t, resp.Slots[3].AvailableAdvisors)
		assert.Equal(t, 1, *resp.Slots[3].AvailableAdvisors)
		require.NotNil(t, resp.Slots[0].AvailableAdvisors)
		assert.Equal(t, 0, *resp.Slots[0].AvailableAdvisors)
	})

	t.Run("bad date", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/slots?date=tomorrow", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
