package reject_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ConsultationService/internal/testutil/fakes"
	"github.com/m04kA/SMC-ConsultationService/internal/testutil/memstore"
	"github.com/m04kA/SMC-ConsultationService/pkg/logger"
)

var june10 = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*memstore.Store, *fakes.Notifier, *UseCase) {
	t.Helper()
	store := memstore.New()
	events := &fakes.Notifier{}
	uc := NewUseCase(store.Bookings(), store.Rejections(), store, events, logger.NewNop())
	return store, events, uc
}

func createBooking(t *testing.T, store *memstore.Store) *domain.Booking {
	t.Helper()
	b, err := store.Bookings().Create(context.Background(), &domain.Booking{
		FullName:      "Ivan",
		PreferredDate: june10,
		PreferredTime: "slot-1",
		Status:        domain.StatusPending,
	})
	require.NoError(t, err)
	return b
}

func reject(uc *UseCase, advisorID, bookingID int64) (*Response, error) {
	return uc.Execute(context.Background(), &Request{
		Actor:     domain.Actor{ID: advisorID, Role: domain.RoleAdvisor},
		BookingID: bookingID,
		AdvisorID: advisorID,
	})
}

func TestExecute_RejectKeepsBookingPending(t *testing.T) {
	store, events, uc := setup(t)
	a := store.AddAdvisor("Anna", "anna@example.com")
	store.PutAvailability(a.ID, june10, "slot-1", true)
	b := createBooking(t, store)

	resp, err := reject(uc, a.ID, b.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, resp.Booking.Status)
	assert.Equal(t, a.ID, resp.Rejection.AdvisorID)

	ids, err := store.Rejections().GetAdvisorIDsByBooking(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Contains(t, ids, a.ID)

	slots, err := store.Availability().GetAvailableSlots(context.Background(), a.ID, june10)
	require.NoError(t, err)
	assert.Equal(t, []domain.SlotID{"slot-1"}, slots)

	require.Len(t, events.Events(), 1)
	assert.Equal(t, notifier.EventBookingRejected, events.Events()[0].Type)
	assert.Equal(t, a.ID, *events.Events()[0].AdvisorID)
}

func TestExecute_ClearsOwnCandidatePointer(t *testing.T) {
	store, _, uc := setup(t)
	a := store.AddAdvisor("Anna", "anna@example.com")
	b := createBooking(t, store)
	require.NoError(t, store.Bookings().SetCandidate(context.Background(), b.ID, &a.ID, b.Version))

	resp, err := reject(uc, a.ID, b.ID)
	require.NoError(t, err)

	assert.Nil(t, resp.Booking.AdvisorID)
	assert.Equal(t, b.Version+2, resp.Booking.Version)
	assert.Equal(t, domain.StatusPending, resp.Booking.Status)
}

func TestExecute_KeepsOtherCandidatePointer(t *testing.T) {
	store, _, uc := setup(t)
	a := store.AddAdvisor("Anna", "anna@example.com")
	other := store.AddAdvisor("Oleg", "oleg@example.com")
	b := createBooking(t, store)
	require.NoError(t, store.Bookings().SetCandidate(context.Background(), b.ID, &other.ID, b.Version))

	resp, err := reject(uc, a.ID, b.ID)
	require.NoError(t, err)

	require.NotNil(t, resp.Booking.AdvisorID)
	assert.Equal(t, other.ID, *resp.Booking.AdvisorID)
}

func TestExecute_NotPendingIsNotFound(t *testing.T) {
	store, events, uc := setup(t)
	a := store.AddAdvisor("Anna", "anna@example.com")
	b := createBooking(t, store)
	require.NoError(t, store.Bookings().Cancel(context.Background(), b.ID, b.Version))

	_, err := reject(uc, a.ID, b.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = reject(uc, a.ID, 9999)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	ids, err := store.Rejections().GetAdvisorIDsByBooking(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Empty(t, events.Types())
}

func TestExecute_AccessDenied(t *testing.T) {
	store, _, uc := setup(t)
	a := store.AddAdvisor("Anna", "anna@example.com")
	b := createBooking(t, store)

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     domain.Actor{ID: 1000, Role: domain.RoleAdmin, AdminRole: domain.AdminRoleSuperAdmin},
		BookingID: b.ID,
		AdvisorID: a.ID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestExecute_RollsBackRejectionOnFailure(t *testing.T) {
	store, _, uc := setup(t)
	a := store.AddAdvisor("Anna", "anna@example.com")
	b := createBooking(t, store)
	require.NoError(t, store.Bookings().SetCandidate(context.Background(), b.ID, &a.ID, b.Version))
	store.FailOn("booking.SetCandidate", errors.New("timeout"))

	_, err := reject(uc, a.ID, b.ID)
	require.ErrorIs(t, err, ErrInternal)

	ids, err := store.Rejections().GetAdvisorIDsByBooking(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
