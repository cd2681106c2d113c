package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	advisorRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/advisor"
	availabilityRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/booking"
)

// AdvisorRepository повторяет advisor.Repository
type AdvisorRepository struct{ s *Store }

func (r *AdvisorRepository) GetByID(ctx context.Context, id int64) (*domain.Advisor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("advisor.GetByID"); err != nil {
		return nil, err
	}
	a, ok := r.s.data.advisors[id]
	if !ok {
		return nil, advisorRepo.ErrAdvisorNotFound
	}
	return &a, nil
}

func (r *AdvisorRepository) GetAll(ctx context.Context, activeOnly bool) ([]*domain.Advisor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("advisor.GetAll"); err != nil {
		return nil, err
	}
	result := make([]*domain.Advisor, 0, len(r.s.data.advisors))
	for _, a := range r.s.data.advisors {
		if activeOnly && !a.IsActive {
			continue
		}
		a := a
		result = append(result, &a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *AdvisorRepository) Update(ctx context.Context, id int64, update *domain.AdvisorUpdate) (*domain.Advisor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("advisor.Update"); err != nil {
		return nil, err
	}
	a, ok := r.s.data.advisors[id]
	if !ok {
		return nil, advisorRepo.ErrAdvisorNotFound
	}
	if update.Name != nil {
		a.Name = *update.Name
	}
	if update.Position != nil {
		v := *update.Position
		a.Position = &v
	}
	if update.PhoneNumber != nil {
		v := *update.PhoneNumber
		a.PhoneNumber = &v
	}
	if update.Image != nil {
		v := *update.Image
		a.Image = &v
	}
	a.UpdatedAt = r.s.now()
	r.s.data.advisors[id] = a
	return &a, nil
}

// AvailabilityRepository повторяет availability.Repository
type AvailabilityRepository struct{ s *Store }

func (r *AvailabilityRepository) GetAvailableSlots(ctx context.Context, advisorID int64, date time.Time) ([]domain.SlotID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("availability.GetAvailableSlots"); err != nil {
		return nil, err
	}
	day := date.Format(domain.DateFormat)
	slots := make([]domain.SlotID, 0)
	for k, v := range r.s.data.availability {
		if k.advisorID == advisorID && k.date == day && v.IsAvailable {
			slots = append(slots, k.slot)
		}
	}
	domain.SortSlots(slots)
	return slots, nil
}

func (r *AvailabilityRepository) GetSlot(ctx context.Context, advisorID int64, date time.Time, slotID domain.SlotID) (*domain.AvailabilitySlot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("availability.GetSlot"); err != nil {
		return nil, err
	}
	v, ok := r.s.data.availability[availabilityKey{advisorID, date.Format(domain.DateFormat), slotID}]
	if !ok {
		return nil, availabilityRepo.ErrSlotNotFound
	}
	return &v, nil
}

func (r *AvailabilityRepository) DeleteByAdvisorAndDate(ctx context.Context, advisorID int64, date time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("availability.DeleteByAdvisorAndDate"); err != nil {
		return 0, err
	}
	day := date.Format(domain.DateFormat)
	var deleted int64
	for k := range r.s.data.availability {
		if k.advisorID == advisorID && k.date == day {
			delete(r.s.data.availability, k)
			deleted++
		}
	}
	return deleted, nil
}

func (r *AvailabilityRepository) InsertSlots(ctx context.Context, slots []*domain.AvailabilitySlot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// Сбой срабатывает после записи первой строки, чтобы проверять откат транзакции
	for _, slot := range slots {
		key := availabilityKey{slot.AdvisorID, slot.Date.Format(domain.DateFormat), slot.SlotID}
		if _, exists := r.s.data.availability[key]; exists {
			return fmt.Errorf("%w: InsertSlots - duplicate key %v", availabilityRepo.ErrExecQuery, key)
		}
		r.s.data.availability[key] = domain.AvailabilitySlot{
			ID:          r.s.id(),
			AdvisorID:   slot.AdvisorID,
			Date:        domain.NormalizeDate(slot.Date),
			SlotID:      slot.SlotID,
			IsAvailable: slot.IsAvailable,
			CreatedAt:   r.s.now(),
		}
		if err := r.s.failure("availability.InsertSlots"); err != nil {
			return err
		}
	}
	return nil
}

func (r *AvailabilityRepository) MarkUnavailable(ctx context.Context, advisorID int64, date time.Time, slotID domain.SlotID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("availability.MarkUnavailable"); err != nil {
		return err
	}
	key := availabilityKey{advisorID, date.Format(domain.DateFormat), slotID}
	v, ok := r.s.data.availability[key]
	if !ok || !v.IsAvailable {
		return availabilityRepo.ErrSlotNotAvailable
	}
	v.IsAvailable = false
	r.s.data.availability[key] = v
	return nil
}

func (r *AvailabilityRepository) MarkAvailable(ctx context.Context, advisorID int64, date time.Time, slotID domain.SlotID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("availability.MarkAvailable"); err != nil {
		return err
	}
	key := availabilityKey{advisorID, date.Format(domain.DateFormat), slotID}
	v, ok := r.s.data.availability[key]
	if !ok {
		v = domain.AvailabilitySlot{
			ID:        r.s.id(),
			AdvisorID: advisorID,
			Date:      domain.NormalizeDate(date),
			SlotID:    slotID,
			CreatedAt: r.s.now(),
		}
	}
	v.IsAvailable = true
	r.s.data.availability[key] = v
	return nil
}

func (r *AvailabilityRepository) GetAvailableAdvisors(ctx context.Context, date time.Time, slotID domain.SlotID) ([]*domain.Advisor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("availability.GetAvailableAdvisors"); err != nil {
		return nil, err
	}
	day := date.Format(domain.DateFormat)
	result := make([]*domain.Advisor, 0)
	for k, v := range r.s.data.availability {
		if k.date != day || k.slot != slotID || !v.IsAvailable {
			continue
		}
		a, ok := r.s.data.advisors[k.advisorID]
		if !ok || !a.IsActive {
			continue
		}
		result = append(result, &a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// BookingRepository повторяет booking.Repository
type BookingRepository struct{ s *Store }

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("booking.Create"); err != nil {
		return nil, err
	}
	now := r.s.now()
	booking.ID = r.s.id()
	booking.Version = 1
	booking.PreferredDate = domain.NormalizeDate(booking.PreferredDate)
	booking.CreatedAt = now
	booking.UpdatedAt = now
	r.s.data.bookings[booking.ID] = *booking
	return booking, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("booking.GetByID"); err != nil {
		return nil, err
	}
	b, ok := r.s.data.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingRepository) GetWithFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("booking.GetWithFilter"); err != nil {
		return nil, err
	}
	result := make([]*domain.Booking, 0)
	for _, b := range r.s.data.bookings {
		if filter.AdvisorID != nil && (b.AdvisorID == nil || *b.AdvisorID != *filter.AdvisorID) {
			continue
		}
		if filter.CustomerID != nil && (b.CustomerID == nil || *b.CustomerID != *filter.CustomerID) {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		day := b.PreferredDate.Format(domain.DateFormat)
		if filter.StartDate != nil && day < filter.StartDate.Format(domain.DateFormat) {
			continue
		}
		if filter.EndDate != nil && day > filter.EndDate.Format(domain.DateFormat) {
			continue
		}
		b := b
		result = append(result, &b)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.PreferredDate.Equal(b.PreferredDate) {
			return a.PreferredDate.Before(b.PreferredDate)
		}
		if a.PreferredTime != b.PreferredTime {
			return a.PreferredTime < b.PreferredTime
		}
		return a.ID < b.ID
	})
	return result, nil
}

func (r *BookingRepository) GetAcceptedSlots(ctx context.Context, advisorID int64, date time.Time) ([]domain.SlotID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("booking.GetAcceptedSlots"); err != nil {
		return nil, err
	}
	day := date.Format(domain.DateFormat)
	slots := make([]domain.SlotID, 0)
	for _, b := range r.s.data.bookings {
		if b.Status == domain.StatusAccepted && b.IsBoundTo(advisorID) && b.PreferredDate.Format(domain.DateFormat) == day {
			slots = append(slots, b.PreferredTime)
		}
	}
	domain.SortSlots(slots)
	return slots, nil
}

func (r *BookingRepository) CountByAdvisor(ctx context.Context, advisorID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("booking.CountByAdvisor"); err != nil {
		return 0, err
	}
	var count int64
	for _, b := range r.s.data.bookings {
		if b.IsBoundTo(advisorID) {
			count++
		}
	}
	return count, nil
}

func (r *BookingRepository) Accept(ctx context.Context, id, advisorID int64, expectedVersion int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("booking.Accept"); err != nil {
		return err
	}
	b, ok := r.s.data.bookings[id]
	if !ok || b.Status != domain.StatusPending || b.Version != expectedVersion {
		return bookingRepo.ErrVersionConflict
	}
	for _, other := range r.s.data.bookings {
		if other.ID != id && other.Status == domain.StatusAccepted && other.IsBoundTo(advisorID) &&
			domain.IsSameDay(other.PreferredDate, b.PreferredDate) && other.PreferredTime == b.PreferredTime {
			return bookingRepo.ErrSlotAlreadyTaken
		}
	}
	now := r.s.now()
	b.Status = domain.StatusAccepted
	b.AdvisorID = &advisorID
	b.Version++
	b.AcceptedAt = &now
	b.UpdatedAt = now
	r.s.data.bookings[id] = b
	return nil
}

func (r *BookingRepository) Cancel(ctx context.Context, id int64, expectedVersion int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("booking.Cancel"); err != nil {
		return err
	}
	b, ok := r.s.data.bookings[id]
	if !ok || !b.CanBeCancelled() || b.Version != expectedVersion {
		return bookingRepo.ErrVersionConflict
	}
	now := r.s.now()
	b.Status = domain.StatusCancelled
	b.Version++
	b.CancelledAt = &now
	b.UpdatedAt = now
	r.s.data.bookings[id] = b
	return nil
}

func (r *BookingRepository) SetCandidate(ctx context.Context, id int64, advisorID *int64, expectedVersion int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("booking.SetCandidate"); err != nil {
		return err
	}
	b, ok := r.s.data.bookings[id]
	if !ok || b.Status != domain.StatusPending || b.Version != expectedVersion {
		return bookingRepo.ErrVersionConflict
	}
	if advisorID != nil {
		v := *advisorID
		b.AdvisorID = &v
	} else {
		b.AdvisorID = nil
	}
	b.Version++
	b.UpdatedAt = r.s.now()
	r.s.data.bookings[id] = b
	return nil
}

// RejectionRepository повторяет rejection.Repository
type RejectionRepository struct{ s *Store }

func (r *RejectionRepository) Create(ctx context.Context, rejection *domain.Rejection) (*domain.Rejection, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("rejection.Create"); err != nil {
		return nil, err
	}
	rejection.ID = r.s.id()
	rejection.RejectedAt = r.s.now()
	r.s.data.rejections = append(r.s.data.rejections, *rejection)
	return rejection, nil
}

func (r *RejectionRepository) GetByBooking(ctx context.Context, bookingID int64) ([]*domain.Rejection, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("rejection.GetByBooking"); err != nil {
		return nil, err
	}
	result := make([]*domain.Rejection, 0)
	for _, rej := range r.s.data.rejections {
		if rej.BookingID == bookingID {
			rej := rej
			result = append(result, &rej)
		}
	}
	return result, nil
}

func (r *RejectionRepository) GetAdvisorIDsByBooking(ctx context.Context, bookingID int64) (map[int64]struct{}, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("rejection.GetAdvisorIDsByBooking"); err != nil {
		return nil, err
	}
	ids := make(map[int64]struct{})
	for _, rej := range r.s.data.rejections {
		if rej.BookingID == bookingID {
			ids[rej.AdvisorID] = struct{}{}
		}
	}
	return ids, nil
}

func (r *RejectionRepository) Exists(ctx context.Context, bookingID, advisorID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.failure("rejection.Exists"); err != nil {
		return false, err
	}
	for _, rej := range r.s.data.rejections {
		if rej.BookingID == bookingID && rej.AdvisorID == advisorID {
			return true, nil
		}
	}
	return false, nil
}
