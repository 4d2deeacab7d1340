package services

import (
	"fmt"
	"sort"

	"github.com/skyvoyage/booking-backend/internal/models"
)

// SeatPicker tracks seat choices for one flight leg against the seat
// map reported by the flight service. It enforces the capacity
// constraints the reservation protocol will check again server-side:
// only available seats can be picked, and never more than the
// passenger count.
type SeatPicker struct {
	passengers int
	seats      map[string]models.Seat
	selected   map[string]struct{}
}

// NewSeatPicker creates a picker over a seat map for the given
// passenger count
func NewSeatPicker(seatMap []models.Seat, passengers int) *SeatPicker {
	seats := make(map[string]models.Seat, len(seatMap))
	for _, seat := range seatMap {
		seats[seat.SeatNumber] = seat
	}
	return &SeatPicker{
		passengers: passengers,
		seats:      seats,
		selected:   make(map[string]struct{}),
	}
}

// Toggle selects an available seat or deselects a currently selected
// one. Picking a reserved/booked seat or exceeding the passenger
// count is rejected with an error, never silently dropped.
func (p *SeatPicker) Toggle(seatNumber string) error {
	if _, ok := p.selected[seatNumber]; ok {
		delete(p.selected, seatNumber)
		return nil
	}

	seat, ok := p.seats[seatNumber]
	if !ok {
		return models.NewValidationError("seat", fmt.Sprintf("seat %s does not exist", seatNumber))
	}
	if seat.Status != models.SeatAvailable {
		return models.NewValidationError("seat", fmt.Sprintf("seat %s is not available", seatNumber))
	}
	if len(p.selected) >= p.passengers {
		return models.NewValidationError("seats",
			fmt.Sprintf("you can only select %d seat(s)", p.passengers))
	}

	p.selected[seatNumber] = struct{}{}
	return nil
}

// Selected returns the chosen seat numbers in stable order
func (p *SeatPicker) Selected() []string {
	out := make([]string, 0, len(p.selected))
	for seat := range p.selected {
		out = append(out, seat)
	}
	sort.Strings(out)
	return out
}

// Count returns how many seats are currently selected
func (p *SeatPicker) Count() int {
	return len(p.selected)
}

// View returns the seat map with this picker's choices marked
// selected, in seat-number order
func (p *SeatPicker) View() []models.Seat {
	out := make([]models.Seat, 0, len(p.seats))
	for _, seat := range p.seats {
		if _, ok := p.selected[seat.SeatNumber]; ok {
			seat.Status = models.SeatSelected
		}
		out = append(out, seat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SeatNumber < out[j].SeatNumber })
	return out
}

// Complete reports whether exactly one seat per passenger is chosen
func (p *SeatPicker) Complete() bool {
	return len(p.selected) == p.passengers
}
