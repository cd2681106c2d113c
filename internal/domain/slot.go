package domain

import (
	"sort"

	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// SlotID идентификатор слота из каталога (например, "slot-1")
type SlotID string

// SlotDescriptor описание фиксированного ежедневного окна для консультаций
type SlotDescriptor struct {
	ID        SlotID
	Label     string
	StartTime types.TimeString
	EndTime   types.TimeString
}

// slotCatalog каталог слотов. Порядок важен: он же порядок отображения
var slotCatalog = []SlotDescriptor{
	{ID: "slot-1", Label: "09:00 AM - 10:00 AM", StartTime: "09:00", EndTime: "10:00"},
	{ID: "slot-2", Label: "10:00 AM - 11:00 AM", StartTime: "10:00", EndTime: "11:00"},
	{ID: "slot-3", Label: "11:00 AM - 12:00 PM", StartTime: "11:00", EndTime: "12:00"},
	{ID: "slot-4", Label: "02:00 PM - 03:00 PM", StartTime: "14:00", EndTime: "15:00"},
	{ID: "slot-5", Label: "03:00 PM - 04:00 PM", StartTime: "15:00", EndTime: "16:00"},
	{ID: "slot-6", Label: "04:00 PM - 05:00 PM", StartTime: "16:00", EndTime: "17:00"},
}

var slotIndex = func() map[SlotID]int {
	idx := make(map[SlotID]int, len(slotCatalog))
	for i, s := range slotCatalog {
		idx[s.ID] = i
	}
	return idx
}()

// ListSlots возвращает копию каталога слотов в порядке отображения
func ListSlots() []SlotDescriptor {
	out := make([]SlotDescriptor, len(slotCatalog))
	copy(out, slotCatalog)
	return out
}

// GetSlot возвращает описание слота по ID
func GetSlot(id SlotID) (SlotDescriptor, bool) {
	i, ok := slotIndex[id]
	if !ok {
		return SlotDescriptor{}, false
	}
	return slotCatalog[i], true
}

// IsValidSlot возвращает true, если слот есть в каталоге
func IsValidSlot(id SlotID) bool {
	_, ok := slotIndex[id]
	return ok
}

// NormalizeSlots убирает дубликаты и сортирует слоты в порядке каталога
// Неизвестные слоты возвращаются отдельным списком
func NormalizeSlots(ids []SlotID) (valid []SlotID, unknown []SlotID) {
	seen := make(map[SlotID]struct{}, len(ids))
	valid = make([]SlotID, 0, len(ids))

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if !IsValidSlot(id) {
			unknown = append(unknown, id)
			continue
		}
		valid = append(valid, id)
	}

	SortSlots(valid)
	return valid, unknown
}

// SortSlots сортирует слоты на месте в порядке каталога
func SortSlots(ids []SlotID) {
	sort.SliceStable(ids, func(i, j int) bool {
		return slotIndex[ids[i]] < slotIndex[ids[j]]
	})
}
