package create_booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ConsultationService/internal/testutil/fakes"
	"github.com/m04kA/SMC-ConsultationService/internal/testutil/memstore"
	"github.com/m04kA/SMC-ConsultationService/pkg/logger"
	"github.com/m04kA/SMC-ConsultationService/pkg/ptr"
)

func validRequest() *Request {
	return &Request{
		FullName:         "Ivan Petrov",
		Email:            "ivan@example.com",
		Phone:            "+79990000000",
		Message:          ptr.Ptr("Interested in a test drive"),
		ConsultationType: "purchase",
		VehicleType:      "sedan",
		PreferredDate:    time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC),
		PreferredTime:    "slot-1",
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	store := memstore.New()
	events := &fakes.Notifier{}
	uc := NewUseCase(store.Bookings(), events, logger.NewNop())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	b := resp.Booking
	assert.NotZero(t, b.ID)
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Nil(t, b.AdvisorID)
	assert.Equal(t, 1, b.Version)
	assert.Equal(t, domain.SlotID("slot-1"), b.PreferredTime)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), b.PreferredDate)

	stored, ok := store.Booking(b.ID)
	require.True(t, ok)
	assert.Equal(t, "Ivan Petrov", stored.FullName)

	assert.Equal(t, []notifier.EventType{notifier.EventBookingCreated}, events.Types())
}

func TestExecute_KeepsCustomerAndTrimsInput(t *testing.T) {
	store := memstore.New()
	uc := NewUseCase(store.Bookings(), &fakes.Notifier{}, logger.NewNop())

	req := validRequest()
	req.CustomerID = ptr.Ptr(int64(77))
	req.FullName = "  Ivan Petrov  "
	req.Message = ptr.Ptr("   ")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Ivan Petrov", resp.Booking.FullName)
	assert.Nil(t, resp.Booking.Message)
	require.NotNil(t, resp.Booking.CustomerID)
	assert.Equal(t, int64(77), *resp.Booking.CustomerID)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *Request)
	}{
		{name: "missing full name", modify: func(r *Request) { r.FullName = " " }},
		{name: "missing email", modify: func(r *Request) { r.Email = "" }},
		{name: "malformed email", modify: func(r *Request) { r.Email = "not-an-email" }},
		{name: "missing phone", modify: func(r *Request) { r.Phone = "" }},
		{name: "missing date", modify: func(r *Request) { r.PreferredDate = time.Time{} }},
		{name: "missing slot", modify: func(r *Request) { r.PreferredTime = "" }},
		{name: "unknown slot", modify: func(r *Request) { r.PreferredTime = "slot-7" }},
		{name: "missing consultation type", modify: func(r *Request) { r.ConsultationType = "" }},
		{name: "missing vehicle type", modify: func(r *Request) { r.VehicleType = "" }},
		{name: "message too long", modify: func(r *Request) { r.Message = ptr.Ptr(strings.Repeat("a", domain.MaxMessageLength+1)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.New()
			events := &fakes.Notifier{}
			uc := NewUseCase(store.Bookings(), events, logger.NewNop())

			req := validRequest()
			tt.modify(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, events.Types())
		})
	}
}

func TestExecute_StorageFailure(t *testing.T) {
	store := memstore.New()
	store.FailOn("booking.Create", errors.New("connection refused"))
	events := &fakes.Notifier{}
	uc := NewUseCase(store.Bookings(), events, logger.NewNop())

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Empty(t, events.Types())
}
