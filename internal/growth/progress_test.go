package growth

import (
	"testing"
	"time"

	"github.com/starkbrilliance/smartharvest/internal/models"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProgressPercent(t *testing.T) {
	planted := date(2024, 3, 1)
	harvest := date(2024, 3, 31)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"at planting", planted, 0},
		{"at harvest", harvest, 100},
		{"past harvest clamps to 100", harvest.AddDate(0, 0, 14), 100},
		{"before planting clamps to 0", planted.AddDate(0, 0, -3), 0},
		{"midway", date(2024, 3, 16), 50},
		{"rounds to nearest", planted.Add(10 * 24 * time.Hour), 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ProgressPercent(planted, harvest, tt.now))
		})
	}
}

func TestProgressPercent_Monotonic(t *testing.T) {
	planted := date(2024, 3, 1)
	harvest := date(2024, 3, 31)

	prev := 0
	for now := planted; !now.After(harvest); now = now.Add(6 * time.Hour) {
		got := ProgressPercent(planted, harvest, now)
		require.GreaterOrEqual(t, got, prev)
		require.LessOrEqual(t, got, 100)
		prev = got
	}
}

func TestProgressPercent_DegenerateSpan(t *testing.T) {
	day := date(2024, 3, 1)

	require.Equal(t, 100, ProgressPercent(day, day, day))
	require.Equal(t, 100, ProgressPercent(day, day, day.AddDate(0, 0, 1)))
	require.Equal(t, 0, ProgressPercent(day, day, day.AddDate(0, 0, -1)))
}

func TestDayCounts(t *testing.T) {
	now := date(2024, 3, 11)
	planted := now.AddDate(0, 0, -10)
	harvest := planted.AddDate(0, 0, 30)

	require.Equal(t, 10, DaysSincePlanted(planted, now))
	require.Equal(t, 20, DaysUntilHarvest(harvest, now))
}

func TestDaysUntilHarvest_RoundsUp(t *testing.T) {
	now := date(2024, 3, 11)

	// A sliver under ten days still counts as ten.
	harvest := now.Add(10*24*time.Hour - time.Hour)
	require.Equal(t, 10, DaysUntilHarvest(harvest, now))

	require.Equal(t, 0, DaysUntilHarvest(now, now))
	require.Equal(t, -2, DaysUntilHarvest(now.AddDate(0, 0, -2), now))
}

func TestDaysSincePlanted_FutureDateGoesNegative(t *testing.T) {
	now := date(2024, 3, 11)
	require.Equal(t, -5, DaysSincePlanted(now.AddDate(0, 0, 5), now))
}

func TestOverdue(t *testing.T) {
	now := date(2024, 3, 11)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 1)

	require.True(t, Overdue(models.CropStatusGrowing, past, now))
	require.True(t, Overdue(models.CropStatusReady, now, now))
	require.False(t, Overdue(models.CropStatusGrowing, future, now))
	require.False(t, Overdue(models.CropStatusHarvested, past, now))
}
