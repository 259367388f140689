package growth

import (
	"errors"
	"time"

	"github.com/starkbrilliance/smartharvest/internal/models"
)

// ErrUnknownFrequency is returned for frequency tokens outside the known set.
// Validation should reject these before they reach the engine; refusing them
// here keeps the step loop from spinning forever on a zero interval.
var ErrUnknownFrequency = errors.New("unknown maintenance frequency")

// Interval maps a frequency token to its step size.
func Interval(f models.MaintenanceFrequency) (time.Duration, bool) {
	switch f {
	case models.FrequencyDaily:
		return day, true
	case models.FrequencyWeekly:
		return 7 * day, true
	case models.FrequencyEvery2Days:
		return 2 * day, true
	case models.FrequencyEvery3Days:
		return 3 * day, true
	}
	return 0, false
}

// NextOccurrence computes the next maintenance occurrence strictly after now,
// or nil if the schedule has lapsed. Before the start date the first
// occurrence is the start date itself; the end date is inclusive.
func NextOccurrence(f models.MaintenanceFrequency, start, end, now time.Time) (*time.Time, error) {
	step, ok := Interval(f)
	if !ok {
		return nil, ErrUnknownFrequency
	}

	if now.After(end) {
		return nil, nil
	}
	if now.Before(start) {
		first := start
		return &first, nil
	}

	next := start
	for !next.After(now) {
		next = next.Add(step)
	}

	if next.After(end) {
		return nil, nil
	}
	return &next, nil
}

// NextEntryOccurrence is NextOccurrence applied to a maintenance entry.
func NextEntryOccurrence(entry models.MaintenanceEntry, now time.Time) (*time.Time, error) {
	return NextOccurrence(entry.Frequency, entry.StartDate, entry.EndDate, now)
}
