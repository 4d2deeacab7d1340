package services

import "github.com/skyvoyage/booking-backend/internal/models"

// RoomPicker tracks per-room-type counters bounded to the reported
// availability. Aggregate rooms and guest capacity are derived from
// the counters on demand so they can never drift.
type RoomPicker struct {
	types  []models.RoomType
	byName map[string]models.RoomType
	counts models.RoomAllocation
}

// NewRoomPicker creates a picker over a hotel's room types
func NewRoomPicker(roomTypes []models.RoomType) *RoomPicker {
	byName := make(map[string]models.RoomType, len(roomTypes))
	for _, rt := range roomTypes {
		byName[rt.Type] = rt
	}
	return &RoomPicker{
		types:  roomTypes,
		byName: byName,
		counts: make(models.RoomAllocation),
	}
}

// Increment adds one room of the given type, clamped to availability.
// Returns the resulting count.
func (p *RoomPicker) Increment(roomType string) int {
	return p.adjust(roomType, 1)
}

// Decrement removes one room of the given type, clamped to zero.
// Returns the resulting count.
func (p *RoomPicker) Decrement(roomType string) int {
	return p.adjust(roomType, -1)
}

func (p *RoomPicker) adjust(roomType string, delta int) int {
	rt, ok := p.byName[roomType]
	if !ok {
		return 0
	}
	count := p.counts[roomType] + delta
	if count < 0 {
		count = 0
	}
	if count > rt.Available {
		count = rt.Available
	}
	p.counts[roomType] = count
	return count
}

// Allocation returns a copy of the current per-type counts with zero
// entries omitted
func (p *RoomPicker) Allocation() models.RoomAllocation {
	out := make(models.RoomAllocation, len(p.counts))
	for roomType, count := range p.counts {
		if count > 0 {
			out[roomType] = count
		}
	}
	return out
}

// TotalRooms is the derived sum of all counters
func (p *RoomPicker) TotalRooms() int {
	return p.counts.TotalRooms()
}

// TotalGuests is the derived guest capacity of the current selection
func (p *RoomPicker) TotalGuests() int {
	return p.counts.TotalGuests(p.types)
}
