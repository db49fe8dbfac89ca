package quality

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BumpSlide/internal/domain/models"
)

func sessionDay(date time.Time, minutes int) []models.Bar {
	start := time.Date(date.Year(), date.Month(), date.Day(), 9, 30, 0, 0, time.UTC)
	bars := make([]models.Bar, minutes)
	for i := range bars {
		bars[i] = models.Bar{
			Time: start.Add(time.Duration(i) * time.Minute),
			Open: 100, High: 101, Low: 99, Close: 100.5,
			Volume: 500,
		}
	}
	return bars
}

func TestReportCleanDay(t *testing.T) {
	bars := sessionDay(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 391)
	rep := Report(bars)

	assert.Equal(t, 391, rep.Rows)
	assert.Zero(t, rep.DuplicateRows)
	assert.Zero(t, rep.MissingFields)
	assert.Empty(t, rep.IntradayGaps)
	assert.Empty(t, rep.IncompleteDays)
	assert.Zero(t, rep.MissingMinutes)
}

func TestReportDuplicates(t *testing.T) {
	bars := sessionDay(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 391)
	bars = append(bars[:10], append([]models.Bar{bars[9]}, bars[10:]...)...)

	rep := Report(bars)
	assert.Equal(t, 1, rep.DuplicateRows)
	// The duplicate must not mask the day as over-complete.
	assert.Empty(t, rep.IncompleteDays)
}

func TestReportIntradayGap(t *testing.T) {
	bars := sessionDay(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 391)
	// Remove five bars mid-session: a 6-minute jump between neighbors.
	bars = append(bars[:100], bars[105:]...)

	rep := Report(bars)
	require.Len(t, rep.IntradayGaps, 1)
	gap := rep.IntradayGaps[0]
	assert.Equal(t, 6, gap.DurationMinutes)
	assert.True(t, gap.End.After(gap.Start))

	require.Len(t, rep.IncompleteDays, 1)
	day := rep.IncompleteDays[0]
	assert.Equal(t, "2024-03-04", day.Date)
	assert.Equal(t, 386, day.ActualCount)
	assert.Equal(t, 5, day.MissingCount)
	assert.Equal(t, 5, rep.MissingMinutes)
	assert.InDelta(t, 98.72, day.Completeness, 0.01)
}

func TestReportOvernightGapIgnored(t *testing.T) {
	day1 := sessionDay(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 391)
	day2 := sessionDay(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), 391)
	rep := Report(append(day1, day2...))

	assert.Empty(t, rep.IntradayGaps)
	assert.Empty(t, rep.IncompleteDays)
}

func TestReportBadFields(t *testing.T) {
	bars := sessionDay(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 391)
	bars[5].Close = math.NaN()
	bars[6].Volume = -1

	rep := Report(bars)
	assert.Equal(t, 2, rep.MissingFields)
}

func TestReportEmpty(t *testing.T) {
	rep := Report(nil)
	assert.Zero(t, rep.Rows)
	assert.Empty(t, rep.IntradayGaps)
}
