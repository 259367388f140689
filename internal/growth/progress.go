// Package growth holds the pure date arithmetic behind crop progress and
// maintenance scheduling. Every function takes the reference time explicitly
// so results are reproducible in tests.
package growth

import (
	"math"
	"time"

	"github.com/starkbrilliance/smartharvest/internal/models"
)

const day = 24 * time.Hour

// DaysUntilHarvest returns the whole days remaining until the expected
// harvest date, rounded up. Zero or negative means due or overdue.
func DaysUntilHarvest(expectedHarvest, now time.Time) int {
	return int(math.Ceil(expectedHarvest.Sub(now).Hours() / 24))
}

// DaysSincePlanted returns the whole days elapsed since planting, rounded
// down. Future planting dates yield a negative count rather than an error.
func DaysSincePlanted(planted, now time.Time) int {
	return int(math.Floor(now.Sub(planted).Hours() / 24))
}

// ProgressPercent returns how far along the growing window the crop is,
// as an integer clamped to [0,100]. A degenerate window (harvest at or
// before planting) is 100 once planting time has passed and 0 before it.
func ProgressPercent(planted, expectedHarvest, now time.Time) int {
	total := expectedHarvest.Sub(planted)
	if total <= 0 {
		if now.Before(planted) {
			return 0
		}
		return 100
	}

	progress := float64(now.Sub(planted)) / float64(total) * 100
	progress = math.Max(0, math.Min(100, progress))
	return int(math.Round(progress))
}

// Overdue reports whether an unharvested crop has passed its expected
// harvest date. Derived on every read, never stored.
func Overdue(status models.CropStatus, expectedHarvest, now time.Time) bool {
	return status != models.CropStatusHarvested && !expectedHarvest.After(now)
}
