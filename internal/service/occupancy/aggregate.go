package occupancy

import (
	"math"
	"time"

	"github.com/aruizdev/tablero/internal/domain/models"
)

// Aggregate reduces raw occupancy rows into the derived metrics entity.
// It is a pure, total function: the empty sequence yields zeroed metrics
// with ActiveDays pinned to 1 so the occupancy rate stays defined.
func Aggregate(records []models.RawOccupancyRecord, filter models.Filter) models.AggregatedMetrics {
	metrics := models.AggregatedMetrics{
		PerShift: map[models.Shift]models.ShiftTotals{
			models.ShiftLunch:  {},
			models.ShiftDinner: {},
		},
	}

	dayIndex := make(map[time.Time]int)

	for _, record := range records {
		metrics.TotalReservations += record.Reservations
		metrics.TotalGuests += record.Guests

		day := record.Date
		idx, seen := dayIndex[day]
		if !seen {
			idx = len(metrics.PerDay)
			dayIndex[day] = idx
			metrics.PerDay = append(metrics.PerDay, models.DayEntry{Date: day})
		}
		metrics.PerDay[idx].Guests += record.Guests
		metrics.PerDay[idx].Reservations += record.Reservations

		totals := metrics.PerShift[record.Shift]
		totals.Guests += record.Guests
		totals.Reservations += record.Reservations
		metrics.PerShift[record.Shift] = totals
	}

	metrics.ActiveDays = len(dayIndex)
	if metrics.ActiveDays < 1 {
		metrics.ActiveDays = 1
	}

	theoretical := filter.CapacityMax * metrics.ActiveDays
	metrics.OccupancyRatePct = round2(float64(metrics.TotalGuests) / float64(theoretical) * 100)
	// Overbooking beyond nominal capacity is meaningful, so this may go negative.
	metrics.LostCapacity = theoretical - metrics.TotalGuests

	return metrics
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
