package occupancy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aruizdev/tablero/internal/domain/models"
)

func day(dayOfMonth int) time.Time {
	return time.Date(2025, 3, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func mustFilter(t *testing.T, dateStart, dateEnd string, shift models.Shift, capacity int) models.Filter {
	t.Helper()
	filter, err := models.NewFilter(dateStart, dateEnd, shift, capacity)
	require.NoError(t, err)
	return filter
}

func TestAggregate_EmptyInput(t *testing.T) {
	filter := mustFilter(t, "2025-03-01", "2025-03-07", models.ShiftAll, 65)

	metrics := Aggregate(nil, filter)

	assert.Equal(t, 0, metrics.TotalGuests)
	assert.Equal(t, 0, metrics.TotalReservations)
	assert.Equal(t, 1, metrics.ActiveDays)
	assert.Equal(t, 0.0, metrics.OccupancyRatePct)
	assert.Equal(t, 65, metrics.LostCapacity)
	assert.Empty(t, metrics.PerDay)
	assert.Equal(t, models.ShiftTotals{}, metrics.PerShift[models.ShiftLunch])
	assert.Equal(t, models.ShiftTotals{}, metrics.PerShift[models.ShiftDinner])
}

func TestAggregate_Idempotent(t *testing.T) {
	filter := mustFilter(t, "2025-03-01", "2025-03-02", models.ShiftAll, 50)
	records := []models.RawOccupancyRecord{
		{Date: day(1), Shift: models.ShiftLunch, Reservations: 10, Guests: 30},
		{Date: day(2), Shift: models.ShiftDinner, Reservations: 12, Guests: 40},
	}

	first := Aggregate(records, filter)
	second := Aggregate(records, filter)

	assert.Equal(t, first, second)
}

func TestAggregate_Totals(t *testing.T) {
	filter := mustFilter(t, "2025-03-01", "2025-03-03", models.ShiftAll, 50)
	records := []models.RawOccupancyRecord{
		{Date: day(1), Shift: models.ShiftLunch, Reservations: 8, Guests: 24},
		{Date: day(1), Shift: models.ShiftDinner, Reservations: 10, Guests: 36},
		{Date: day(2), Shift: models.ShiftLunch, Reservations: 5, Guests: 15},
		{Date: day(3), Shift: models.ShiftDinner, Reservations: 7, Guests: 25},
	}

	metrics := Aggregate(records, filter)

	assert.Equal(t, 30, metrics.TotalReservations)
	assert.Equal(t, 100, metrics.TotalGuests)
	assert.Equal(t, 3, metrics.ActiveDays)
	// 100 / (50*3) * 100 = 66.666... -> 66.67
	assert.Equal(t, 66.67, metrics.OccupancyRatePct)
	assert.Equal(t, 50, metrics.LostCapacity)
}

func TestAggregate_PerDayBreakdown(t *testing.T) {
	filter := mustFilter(t, "2025-03-01", "2025-03-03", models.ShiftAll, 50)
	// Day 3 arrives before day 1; per-day order must follow first-seen order.
	records := []models.RawOccupancyRecord{
		{Date: day(3), Shift: models.ShiftLunch, Reservations: 4, Guests: 10},
		{Date: day(1), Shift: models.ShiftLunch, Reservations: 6, Guests: 20},
		{Date: day(3), Shift: models.ShiftDinner, Reservations: 5, Guests: 12},
	}

	metrics := Aggregate(records, filter)

	require.Len(t, metrics.PerDay, 2)
	assert.Equal(t, day(3), metrics.PerDay[0].Date)
	assert.Equal(t, 22, metrics.PerDay[0].Guests)
	assert.Equal(t, 9, metrics.PerDay[0].Reservations)
	assert.Equal(t, day(1), metrics.PerDay[1].Date)
	assert.Equal(t, 20, metrics.PerDay[1].Guests)

	// Sum invariant: per-day guests add up to the total.
	var sum int
	for _, entry := range metrics.PerDay {
		sum += entry.Guests
	}
	assert.Equal(t, metrics.TotalGuests, sum)
}

func TestAggregate_PerShiftBreakdown(t *testing.T) {
	filter := mustFilter(t, "2025-03-01", "2025-03-02", models.ShiftAll, 50)
	records := []models.RawOccupancyRecord{
		{Date: day(1), Shift: models.ShiftDinner, Reservations: 10, Guests: 30},
		{Date: day(2), Shift: models.ShiftDinner, Reservations: 6, Guests: 18},
	}

	metrics := Aggregate(records, filter)

	assert.Equal(t, models.ShiftTotals{Guests: 48, Reservations: 16}, metrics.PerShift[models.ShiftDinner])
	// Shifts absent from the input still get a zero entry.
	assert.Equal(t, models.ShiftTotals{}, metrics.PerShift[models.ShiftLunch])
}

func TestAggregate_OrderIrrelevant(t *testing.T) {
	filter := mustFilter(t, "2025-03-01", "2025-03-02", models.ShiftAll, 50)
	records := []models.RawOccupancyRecord{
		{Date: day(1), Shift: models.ShiftLunch, Reservations: 3, Guests: 9},
		{Date: day(2), Shift: models.ShiftDinner, Reservations: 4, Guests: 16},
	}
	reversed := []models.RawOccupancyRecord{records[1], records[0]}

	a := Aggregate(records, filter)
	b := Aggregate(reversed, filter)

	assert.Equal(t, a.TotalGuests, b.TotalGuests)
	assert.Equal(t, a.TotalReservations, b.TotalReservations)
	assert.Equal(t, a.OccupancyRatePct, b.OccupancyRatePct)
	assert.Equal(t, a.PerShift, b.PerShift)
}

func TestAggregate_BelowTargetScenario(t *testing.T) {
	// 7 active days at capacity 65 with 300 guests -> 65.93%.
	filter := mustFilter(t, "2025-03-01", "2025-03-07", models.ShiftAll, 65)

	var records []models.RawOccupancyRecord
	guests := []int{50, 45, 40, 45, 40, 40, 40}
	for i, g := range guests {
		records = append(records, models.RawOccupancyRecord{
			Date: day(i + 1), Shift: models.ShiftDinner, Reservations: g / 3, Guests: g,
		})
	}

	metrics := Aggregate(records, filter)

	assert.Equal(t, 300, metrics.TotalGuests)
	assert.Equal(t, 7, metrics.ActiveDays)
	assert.Equal(t, 65.93, metrics.OccupancyRatePct)
	assert.Equal(t, 65*7-300, metrics.LostCapacity)
}

func TestAggregate_OverbookedLostCapacityNegative(t *testing.T) {
	filter := mustFilter(t, "2025-03-01", "2025-03-01", models.ShiftAll, 40)
	records := []models.RawOccupancyRecord{
		{Date: day(1), Shift: models.ShiftLunch, Reservations: 15, Guests: 30},
		{Date: day(1), Shift: models.ShiftDinner, Reservations: 12, Guests: 25},
	}

	metrics := Aggregate(records, filter)

	// Overbooking beyond nominal capacity is not clamped.
	assert.Equal(t, -15, metrics.LostCapacity)
	assert.Equal(t, 137.5, metrics.OccupancyRatePct)
}

func TestGuestsPerReservation(t *testing.T) {
	metrics := models.AggregatedMetrics{TotalGuests: 70, TotalReservations: 20}
	assert.Equal(t, 3.5, metrics.GuestsPerReservation())

	empty := models.AggregatedMetrics{}
	assert.Equal(t, 0.0, empty.GuestsPerReservation())
}
