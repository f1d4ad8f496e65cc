package models

import "time"

// RawOccupancyRecord is one datastore row per (date, shift).
type RawOccupancyRecord struct {
	Date         time.Time `json:"date"`
	Shift        Shift     `json:"shift"`
	Reservations int       `json:"reservations"`
	Guests       int       `json:"guests"`
}

// DayEntry aggregates one calendar day inside a period.
type DayEntry struct {
	Date         time.Time `json:"date"`
	Guests       int       `json:"guests"`
	Reservations int       `json:"reservations"`
}

// ShiftTotals aggregates one service period across the filter range.
type ShiftTotals struct {
	Guests       int `json:"guests"`
	Reservations int `json:"reservations"`
}

// AggregatedMetrics is the derived occupancy entity, computed fresh on every
// filter change and never mutated in place.
type AggregatedMetrics struct {
	TotalReservations int                   `json:"total_reservations"`
	TotalGuests       int                   `json:"total_guests"`
	ActiveDays        int                   `json:"active_days"`
	OccupancyRatePct  float64               `json:"occupancy_rate_pct"`
	LostCapacity      int                   `json:"lost_capacity"`
	PerDay            []DayEntry            `json:"per_day"`
	PerShift          map[Shift]ShiftTotals `json:"per_shift"`
	TrendPct          *float64              `json:"trend_pct"`
}

// GuestsPerReservation is the average party size, zero when no reservations
// were taken in the period.
func (m AggregatedMetrics) GuestsPerReservation() float64 {
	if m.TotalReservations == 0 {
		return 0
	}
	return float64(m.TotalGuests) / float64(m.TotalReservations)
}

// InactiveDays counts the days of the period that served no guests.
func (m AggregatedMetrics) InactiveDays() int {
	var count int
	for _, day := range m.PerDay {
		if day.Guests == 0 {
			count++
		}
	}
	return count
}
