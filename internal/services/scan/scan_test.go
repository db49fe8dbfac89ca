package scan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BumpSlide/internal/domain/models"
	"BumpSlide/pkg/util"
)

func risingBars(n int, start time.Time) []models.Bar {
	bars := make([]models.Bar, n)
	for i := range bars {
		bars[i] = models.Bar{
			Time:   start.Add(time.Duration(i) * time.Minute),
			Open:   100.00 + float64(i)*0.01,
			High:   100.02 + float64(i)*0.01,
			Low:    99.99 + float64(i)*0.01,
			Close:  100.01 + float64(i)*0.01,
			Volume: 1000,
		}
	}
	return bars
}

func baseParams() Params {
	return Params{
		BumpLen:   3,
		BumpMode:  ModePercent,
		SlideLen:  2,
		SlideMode: ModePercent,
	}
}

func TestScanCandidateCount(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	cases := []struct {
		n, b, s int
		want    int
	}{
		{10, 3, 2, 6},
		{5, 3, 2, 1},
		{4, 3, 2, 0},
		{0, 3, 2, 0},
		{100, 5, 3, 93},
		{1, 1, 1, 0},
		{2, 1, 1, 1},
	}
	for _, tc := range cases {
		p := baseParams()
		p.BumpLen = tc.b
		p.SlideLen = tc.s
		matches, _, err := Scan(risingBars(tc.n, start), p, nil)
		require.NoError(t, err)
		assert.Len(t, matches, tc.want, "n=%d b=%d s=%d", tc.n, tc.b, tc.s)
	}
}

func TestScanRisingSeriesScenario(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	bars := risingBars(10, start)

	matches, stats, err := Scan(bars, baseParams(), nil)
	require.NoError(t, err)
	require.Len(t, matches, 6)

	assert.Equal(t, 6, stats.TotalBumps)
	assert.Equal(t, 6, stats.Hits)
	assert.Equal(t, 0, stats.Misses)
	assert.InDelta(t, 100.0, stats.HitRatio, 1e-9)

	first := matches[0]
	assert.Equal(t, bars[0].Time, first.Start)
	assert.Equal(t, bars[2].Time, first.BumpEnd)
	assert.Equal(t, bars[4].Time, first.SlideEnd)
	assert.Equal(t, bars[0].Open, first.BumpStartPrice)
	assert.Equal(t, bars[2].Close, first.BumpEndPrice)
	assert.Equal(t, bars[3].Open, first.SlideStartPrice)
	assert.Equal(t, bars[4].Close, first.SlideEndPrice)
	assert.Equal(t, int64(3000), first.BumpVolume)
	assert.Equal(t, int64(2000), first.SlideVolume)
	assert.Greater(t, first.BumpChange, 0.0)
	assert.Greater(t, first.SlideChange, 0.0)

	// Matches come back in original time order.
	for i := 1; i < len(matches); i++ {
		assert.True(t, matches[i-1].Start.Before(matches[i].Start))
	}
}

func TestScanHighThresholdEmptiesMatches(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	bars := risingBars(10, start)

	p := baseParams()
	p.BumpThreshold = 50 // far above any achievable move
	matches, stats, err := Scan(bars, p, nil)
	require.NoError(t, err)

	assert.Empty(t, matches)
	assert.Equal(t, 0, stats.TotalBumps)
	assert.Equal(t, 0.0, stats.HitRatio)

	// Same on the slide leg: bumps still count, all miss.
	p = baseParams()
	p.SlideThreshold = 50
	matches, stats, err = Scan(bars, p, nil)
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.Equal(t, 6, stats.TotalBumps)
	assert.Equal(t, 0, stats.Hits)
	assert.Equal(t, 6, stats.Misses)
	assert.Equal(t, 0.0, stats.HitRatio)
}

func TestScanDeterminism(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	bars := risingBars(50, start)
	p := baseParams()
	p.BumpThreshold = 0.005
	p.SlideThreshold = 0.003

	m1, s1, err := Scan(bars, p, nil)
	require.NoError(t, err)
	m2, s2, err := Scan(bars, p, nil)
	require.NoError(t, err)

	assert.Equal(t, m1, m2)
	assert.Equal(t, s1, s2)
}

func TestScanThresholdMonotonicity(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	bars := risingBars(60, start)

	prev := -1
	for _, thr := range []float64{0, 0.001, 0.01, 0.05, 1, 100} {
		p := baseParams()
		p.BumpThreshold = thr
		matches, _, err := Scan(bars, p, nil)
		require.NoError(t, err)
		if prev >= 0 {
			assert.LessOrEqual(t, len(matches), prev, "threshold %v", thr)
		}
		prev = len(matches)
	}
}

func TestScanModeEquivalenceAtZeroThreshold(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	bars := risingBars(20, start)

	pct := baseParams()
	abs := baseParams()
	abs.BumpMode = ModeAbsolute
	abs.SlideMode = ModeAbsolute

	mPct, _, err := Scan(bars, pct, nil)
	require.NoError(t, err)
	mAbs, _, err := Scan(bars, abs, nil)
	require.NoError(t, err)

	require.Len(t, mAbs, len(mPct))
	for i := range mPct {
		assert.Equal(t, mPct[i].Start, mAbs[i].Start)
		assert.Equal(t, mPct[i].BumpVolume, mAbs[i].BumpVolume)
	}
}

func TestScanZeroOpenExcludedInPercentMode(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	bars := risingBars(10, start)
	bars[3].Open = 0 // slide start for i=0, bump start for i=3

	matches, stats, err := Scan(bars, baseParams(), nil)
	require.NoError(t, err)

	// Candidates starting at 0 and 3 vanish; the other four survive.
	require.Len(t, matches, 4)
	for _, m := range matches {
		assert.NotEqual(t, bars[0].Time, m.Start)
		assert.NotEqual(t, bars[3].Time, m.Start)
	}
	assert.Equal(t, 4, stats.TotalBumps)

	// Absolute mode has no undefined changes, so nothing is dropped.
	p := baseParams()
	p.BumpMode = ModeAbsolute
	p.SlideMode = ModeAbsolute
	matches, _, err = Scan(bars, p, nil)
	require.NoError(t, err)
	assert.Len(t, matches, 6)
}

func TestScanTimeRangeFilter(t *testing.T) {
	early := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	bars := risingBars(10, early)

	p := baseParams()
	p.TimeRange = &util.ClockRange{Start: util.NewClock(9, 30), End: util.NewClock(16, 0)}
	matches, stats, err := Scan(bars, p, nil)
	require.NoError(t, err)

	// Every bump start sits between 08:00 and 08:09, outside the session.
	assert.Empty(t, matches)
	// Stats ignore the schedule filters entirely.
	assert.Equal(t, 6, stats.TotalBumps)
	assert.Equal(t, 6, stats.Hits)
}

func TestScanTimeRangeWrapsMidnight(t *testing.T) {
	late := time.Date(2024, 3, 4, 23, 55, 0, 0, time.UTC)
	bars := risingBars(10, late) // bump starts 23:55 .. 00:04

	p := baseParams()
	p.TimeRange = &util.ClockRange{Start: util.NewClock(23, 0), End: util.NewClock(1, 0)}
	matches, _, err := Scan(bars, p, nil)
	require.NoError(t, err)
	assert.Len(t, matches, 6)
}

func TestScanDayFilter(t *testing.T) {
	monday := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	require.Equal(t, time.Monday, monday.Weekday())
	bars := risingBars(10, monday)

	p := baseParams()
	p.Days = []string{"Tuesday", "Thursday"}
	matches, stats, err := Scan(bars, p, nil)
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.Equal(t, 6, stats.TotalBumps)

	// Disabled filter and an all-days filter agree.
	p.Days = nil
	all, _, err := Scan(bars, p, nil)
	require.NoError(t, err)
	p.Days = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	everyDay, _, err := Scan(bars, p, nil)
	require.NoError(t, err)
	assert.Equal(t, len(all), len(everyDay))
}

func TestScanVolumeFilters(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	bars := risingBars(10, start)
	bars[1].Volume = 10 // starves the bump windows covering row 1

	p := baseParams()
	p.MinBumpVolume = 3000
	matches, stats, err := Scan(bars, p, nil)
	require.NoError(t, err)

	// Starts 0 and 1 include the thin bar in their bump window and fall short.
	assert.Len(t, matches, 4)
	assert.Equal(t, 4, stats.TotalBumps)
}

func TestScanEmptyAndShortSeries(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	for _, n := range []int{0, 1, 4} {
		matches, stats, err := Scan(risingBars(n, start), baseParams(), nil)
		require.NoError(t, err)
		assert.Empty(t, matches)
		assert.Equal(t, models.ScanStats{}, stats)
	}
}

func TestScanProgressReporting(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	bars := risingBars(10, start)

	var percents []int
	progress := func(message string, percent int) {
		assert.NotEmpty(t, message)
		percents = append(percents, percent)
	}
	_, _, err := Scan(bars, baseParams(), progress)
	require.NoError(t, err)

	require.NotEmpty(t, percents)
	assert.Equal(t, 100, percents[len(percents)-1])
	for i := 1; i < len(percents); i++ {
		assert.GreaterOrEqual(t, percents[i], percents[i-1])
	}
}

func TestScanValidation(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	bars := risingBars(10, start)

	bad := []func(*Params){
		func(p *Params) { p.BumpLen = 0 },
		func(p *Params) { p.SlideLen = -1 },
		func(p *Params) { p.BumpThreshold = -0.1 },
		func(p *Params) { p.BumpMode = "median" },
		func(p *Params) { p.SlideMode = "" },
		func(p *Params) { p.MinBumpVolume = -5 },
		func(p *Params) { p.Days = []string{"someday"} },
	}
	for i, mutate := range bad {
		p := baseParams()
		mutate(&p)
		_, _, err := Scan(bars, p, nil)
		assert.Error(t, err, "case %d", i)
	}
}

func TestScanHitRatioBounds(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	bars := risingBars(40, start)
	// Push some slides below threshold to mix hits and misses.
	for i := 10; i < 20; i++ {
		bars[i].Close = bars[i].Open
	}

	for _, thr := range []float64{0, 0.001, 0.005, 0.02} {
		p := baseParams()
		p.SlideThreshold = thr
		_, stats, err := Scan(bars, p, nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, stats.HitRatio, 0.0)
		assert.LessOrEqual(t, stats.HitRatio, 100.0)
		assert.Equal(t, stats.TotalBumps, stats.Hits+stats.Misses)
	}
}

func TestAssembleRangeShardsConcatenate(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	bars := risingBars(30, start)
	p := baseParams()
	prefix := prefixVolumes(bars)

	total := len(bars) - p.BumpLen - p.SlideLen + 1
	whole := assembleRange(bars, prefix, p, 0, total)

	var sharded []models.Match
	for lo := 0; lo < total; lo += 7 {
		hi := lo + 7
		if hi > total {
			hi = total
		}
		sharded = append(sharded, assembleRange(bars, prefix, p, lo, hi)...)
	}
	assert.Equal(t, whole, sharded)
}

func TestPrefixVolumes(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	bars := risingBars(6, start)
	for i := range bars {
		bars[i].Volume = int64(i + 1)
	}
	prefix := prefixVolumes(bars)

	assert.Equal(t, int64(0), prefix[0])
	assert.Equal(t, int64(21), prefix[6])
	assert.Equal(t, int64(9), windowVolume(prefix, 1, 3))  // 2+3+4
	assert.Equal(t, int64(11), windowVolume(prefix, 4, 2)) // 5+6
}
