package availability

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	cacheAvailability "github.com/m04kA/SMC-ConsultationService/internal/infra/cache/availability"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ConsultationService/internal/service/availability/models"
	"github.com/m04kA/SMC-ConsultationService/internal/testutil/fakes"
	"github.com/m04kA/SMC-ConsultationService/internal/testutil/memstore"
	"github.com/m04kA/SMC-ConsultationService/pkg/logger"
	"github.com/m04kA/SMC-ConsultationService/pkg/ptr"
	"github.com/m04kA/SMC-ConsultationService/pkg/txmanager"
)

var june10 = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

type fixture struct {
	store    *memstore.Store
	cache    *fakes.Cache
	events   *fakes.Notifier
	service  *Service
	advisor  domain.Actor
	advisorM domain.Advisor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	cache := fakes.NewCache()
	events := &fakes.Notifier{}
	svc := NewService(
		store.Advisors(),
		store.Availability(),
		store.Bookings(),
		cache,
		store,
		events,
		logger.NewNop(),
	)
	adv := store.AddAdvisor("Anna Petrova", "anna@example.com")
	return &fixture{
		store:    store,
		cache:    cache,
		events:   events,
		service:  svc,
		advisor:  domain.Actor{ID: adv.ID, Role: domain.RoleAdvisor},
		advisorM: adv,
	}
}

func (f *fixture) set(t *testing.T, slots ...string) *models.AvailabilityResponse {
	t.Helper()
	resp, err := f.service.SetAvailability(context.Background(), f.advisor, &models.SetAvailabilityRequest{
		AdvisorID: f.advisorM.ID,
		Date:      june10,
		Slots:     slots,
	})
	require.NoError(t, err)
	return resp
}

func TestSetAvailability_ReplacesDay(t *testing.T) {
	f := newFixture(t)

	f.set(t, "slot-1", "slot-2", "slot-3")
	resp := f.set(t, "slot-4")

	assert.Equal(t, []string{"slot-4"}, resp.Slots)
	assert.Equal(t, "2024-06-10", resp.Date)

	got, err := f.service.GetAvailability(context.Background(), f.advisor, f.advisorM.ID, june10)
	require.NoError(t, err)
	assert.Equal(t, []string{"slot-4"}, got.Slots)
	assert.Equal(t, map[domain.SlotID]int{"slot-4": 1}, f.store.AvailabilityRows(f.advisorM.ID, june10))
}

func TestSetAvailability_Idempotent(t *testing.T) {
	f := newFixture(t)

	first := f.set(t, "slot-2", "slot-1")
	second := f.set(t, "slot-1", "slot-2", "slot-2")

	assert.Equal(t, first.Slots, second.Slots)
	assert.Equal(t, []string{"slot-1", "slot-2"}, second.Slots)
	assert.Len(t, f.store.AvailabilityRows(f.advisorM.ID, june10), 2)
}

func TestSetAvailability_EmptyClearsDay(t *testing.T) {
	f := newFixture(t)
	f.set(t, "slot-1")

	resp := f.set(t)

	assert.Empty(t, resp.Slots)
	assert.Empty(t, f.store.AvailabilityRows(f.advisorM.ID, june10))
}

func TestSetAvailability_UnknownSlotRejected(t *testing.T) {
	f := newFixture(t)
	f.set(t, "slot-1")

	_, err := f.service.SetAvailability(context.Background(), f.advisor, &models.SetAvailabilityRequest{
		AdvisorID: f.advisorM.ID,
		Date:      june10,
		Slots:     []string{"slot-1", "slot-99"},
	})

	require.ErrorIs(t, err, ErrUnknownSlot)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, map[domain.SlotID]int{"slot-1": 1}, f.store.AvailabilityRows(f.advisorM.ID, june10))
}

func TestSetAvailability_RollsBackOnInsertFailure(t *testing.T) {
	f := newFixture(t)
	f.set(t, "slot-1", "slot-2")

	f.store.FailOn("availability.InsertSlots", errors.New("connection reset"))
	_, err := f.service.SetAvailability(context.Background(), f.advisor, &models.SetAvailabilityRequest{
		AdvisorID: f.advisorM.ID,
		Date:      june10,
		Slots:     []string{"slot-5", "slot-6"},
	})

	require.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t,
		map[domain.SlotID]int{"slot-1": 1, "slot-2": 1},
		f.store.AvailabilityRows(f.advisorM.ID, june10),
	)
}

func TestSetAvailability_KeepsAcceptedSlotsReserved(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		FullName:      "Ivan",
		PreferredDate: june10,
		PreferredTime: "slot-2",
		Status:        domain.StatusAccepted,
		AdvisorID:     ptr.Ptr(f.advisorM.ID),
	})
	require.NoError(t, err)

	resp := f.set(t, "slot-1", "slot-2")

	assert.Equal(t, []string{"slot-1"}, resp.Slots)
	assert.Equal(t, []string{"slot-2"}, resp.Reserved)

	got, err := f.service.GetAvailability(context.Background(), f.advisor, f.advisorM.ID, june10)
	require.NoError(t, err)
	assert.Equal(t, []string{"slot-1"}, got.Slots)
}

func TestSetAvailability_Authorization(t *testing.T) {
	f := newFixture(t)
	other := f.store.AddAdvisor("Oleg", "oleg@example.com")

	tests := []struct {
		name    string
		actor   domain.Actor
		wantErr error
	}{
		{name: "other advisor", actor: domain.Actor{ID: other.ID, Role: domain.RoleAdvisor}, wantErr: ErrAccessDenied},
		{name: "customer", actor: domain.Actor{ID: 500, Role: domain.RoleUser}, wantErr: ErrAccessDenied},
		{name: "dispatcher", actor: domain.Actor{ID: 900, Role: domain.RoleAdmin, AdminRole: domain.AdminRoleAdmin}},
		{name: "admin with advisor level", actor: domain.Actor{ID: f.advisorM.ID, Role: domain.RoleAdmin, AdminRole: domain.AdminRoleAdvisor}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.SetAvailability(context.Background(), tt.actor, &models.SetAvailabilityRequest{
				AdvisorID: f.advisorM.ID,
				Date:      june10,
				Slots:     []string{"slot-1"},
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, domain.ErrForbidden)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSetAvailability_UnknownAdvisor(t *testing.T) {
	f := newFixture(t)
	dispatcher := domain.Actor{ID: 900, Role: domain.RoleAdmin, AdminRole: domain.AdminRoleSuperAdmin}

	_, err := f.service.SetAvailability(context.Background(), dispatcher, &models.SetAvailabilityRequest{
		AdvisorID: 4242,
		Date:      june10,
		Slots:     []string{"slot-1"},
	})

	assert.ErrorIs(t, err, ErrAdvisorNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetAvailability_MissingDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.SetAvailability(context.Background(), f.advisor, &models.SetAvailabilityRequest{
		AdvisorID: f.advisorM.ID,
		Slots:     []string{"slot-1"},
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetAvailability_WritesFreshSetToCacheAndNotifies(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GetAvailability(context.Background(), f.advisor, f.advisorM.ID, june10)
	require.NoError(t, err)
	key := cacheAvailability.Key(f.advisorM.ID, june10)
	require.True(t, f.cache.Has(f.advisorM.ID, june10))

	f.set(t, "slot-3")

	cached, ok := f.cache.Slots(f.advisorM.ID, june10)
	require.True(t, ok)
	assert.Equal(t, []domain.SlotID{"slot-3"}, cached)
	assert.Equal(t, []string{key}, f.cache.Written())
	assert.Empty(t, f.cache.Invalidated())
	events := f.events.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notifier.EventAvailabilityUpdated, events[0].Type)
	assert.Equal(t, []domain.SlotID{"slot-3"}, events[0].Slots)
}

func TestGetAvailability_StaleReadDoesNotOverwriteWriter(t *testing.T) {
	f := newFixture(t)
	f.set(t, "slot-1", "slot-2")

	// читатель прочитал БД до записи, но заполняет кэш уже после нее
	stale, err := f.store.Availability().GetAvailableSlots(context.Background(), f.advisorM.ID, june10)
	require.NoError(t, err)
	f.set(t, "slot-5")
	_, err = f.cache.Fill(context.Background(), f.advisorM.ID, june10, stale)
	require.NoError(t, err)

	got, err := f.service.GetAvailability(context.Background(), f.advisor, f.advisorM.ID, june10)
	require.NoError(t, err)
	assert.Equal(t, []string{"slot-5"}, got.Slots)
}

type serializationTxManager struct {
	err error
}

func (m serializationTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return m.err
}

func TestSetAvailability_SerializationFailureIsConflict(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture) TransactionManager
	}{
		{
			name: "commit aborted",
			setup: func(f *fixture) TransactionManager {
				return serializationTxManager{err: fmt.Errorf("%w: %w", txmanager.ErrSerialization, &pq.Error{Code: "40001"})}
			},
		},
		{
			name: "deadlock on insert",
			setup: func(f *fixture) TransactionManager {
				f.store.FailOn("availability.InsertSlots", &pq.Error{Code: "40P01", Message: "deadlock detected"})
				return f.store
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			svc := NewService(
				f.store.Advisors(),
				f.store.Availability(),
				f.store.Bookings(),
				f.cache,
				tt.setup(f),
				f.events,
				logger.NewNop(),
			)

			_, err := svc.SetAvailability(context.Background(), f.advisor, &models.SetAvailabilityRequest{
				AdvisorID: f.advisorM.ID,
				Date:      june10,
				Slots:     []string{"slot-1"},
			})

			require.ErrorIs(t, err, ErrConcurrentUpdate)
			assert.ErrorIs(t, err, domain.ErrConflict)
			assert.NotErrorIs(t, err, domain.ErrStorage)
			assert.Empty(t, f.cache.Written())
			assert.Empty(t, f.events.Events())
		})
	}
}

func TestGetAvailability_ServesFromCache(t *testing.T) {
	f := newFixture(t)
	f.set(t, "slot-1")

	first, err := f.service.GetAvailability(context.Background(), f.advisor, f.advisorM.ID, june10)
	require.NoError(t, err)

	// запись в обход сервиса не видна, пока кэш не сброшен
	f.store.PutAvailability(f.advisorM.ID, june10, "slot-6", true)
	second, err := f.service.GetAvailability(context.Background(), f.advisor, f.advisorM.ID, june10)
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
	assert.Equal(t, []string{"slot-1"}, second.Slots)
}

func TestGetAvailability_NormalizesTimeOfDay(t *testing.T) {
	f := newFixture(t)
	f.set(t, "slot-2")

	got, err := f.service.GetAvailability(context.Background(), f.advisor, f.advisorM.ID, june10.Add(17*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"slot-2"}, got.Slots)
}

func TestGetAvailability_AccessDenied(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GetAvailability(context.Background(), domain.Actor{ID: 1, Role: domain.RoleUser}, f.advisorM.ID, june10)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
