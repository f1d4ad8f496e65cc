package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidRange indicates the filter start date falls after the end date.
var ErrInvalidRange = errors.New("date_start must not be after date_end")

// ErrInvalidCapacity indicates a non-positive capacity ceiling.
var ErrInvalidCapacity = errors.New("capacity_max must be positive")

// DateLayout is the wire format for calendar dates across the API.
const DateLayout = "2006-01-02"

// Shift identifies a restaurant service period.
type Shift string

const (
	ShiftAll    Shift = "all"
	ShiftLunch  Shift = "lunch"
	ShiftDinner Shift = "dinner"
)

// ParseShift maps free-form input to a Shift. Empty input means all shifts.
func ParseShift(value string) (Shift, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(ShiftAll):
		return ShiftAll, nil
	case string(ShiftLunch):
		return ShiftLunch, nil
	case string(ShiftDinner):
		return ShiftDinner, nil
	default:
		return ShiftAll, fmt.Errorf("unknown shift %q", value)
	}
}

// Filter is the immutable value object driving every occupancy query.
// It is recreated on each request; the core never mutates it.
type Filter struct {
	DateStart   time.Time
	DateEnd     time.Time
	Shift       Shift
	CapacityMax int
}

// NewFilter validates raw picker input and materializes a Filter.
func NewFilter(dateStart, dateEnd string, shift Shift, capacityMax int) (Filter, error) {
	start, err := time.ParseInLocation(DateLayout, strings.TrimSpace(dateStart), time.UTC)
	if err != nil {
		return Filter{}, fmt.Errorf("parse date_start: %w", err)
	}

	end, err := time.ParseInLocation(DateLayout, strings.TrimSpace(dateEnd), time.UTC)
	if err != nil {
		return Filter{}, fmt.Errorf("parse date_end: %w", err)
	}

	if start.After(end) {
		return Filter{}, ErrInvalidRange
	}

	if capacityMax <= 0 {
		return Filter{}, ErrInvalidCapacity
	}

	if shift == "" {
		shift = ShiftAll
	}

	return Filter{
		DateStart:   start,
		DateEnd:     end,
		Shift:       shift,
		CapacityMax: capacityMax,
	}, nil
}

// Equal reports structural equality. Identical filters are interchangeable,
// which lets callers skip a redundant refetch.
func (f Filter) Equal(other Filter) bool {
	return f.DateStart.Equal(other.DateStart) &&
		f.DateEnd.Equal(other.DateEnd) &&
		f.Shift == other.Shift &&
		f.CapacityMax == other.CapacityMax
}

// Days returns the number of calendar days covered by the filter, inclusive.
func (f Filter) Days() int {
	return int(f.DateEnd.Sub(f.DateStart).Hours()/24) + 1
}

// PreviousPeriod returns the equal-length window immediately preceding the
// filter range: it ends the day before DateStart.
func (f Filter) PreviousPeriod() (start, end time.Time) {
	end = f.DateStart.AddDate(0, 0, -1)
	start = end.AddDate(0, 0, -(f.Days() - 1))
	return start, end
}
