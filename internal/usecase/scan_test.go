package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BumpSlide/internal/domain/models"
	domrepo "BumpSlide/internal/domain/repository"
	icache "BumpSlide/internal/service/cache"
	"BumpSlide/internal/services/scan"
)

type fakeBarStore struct {
	bars  []models.Bar
	calls int
}

func (f *fakeBarStore) GetBars(_ context.Context, _ string, _, _ time.Time, _ domrepo.Timeframe) ([]models.Bar, error) {
	f.calls++
	return f.bars, nil
}

func (f *fakeBarStore) GetLatestNBars(_ context.Context, _ string, n int, _ domrepo.Timeframe) ([]models.Bar, error) {
	if n > len(f.bars) {
		n = len(f.bars)
	}
	return f.bars[len(f.bars)-n:], nil
}

func testBars(n int) []models.Bar {
	start := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	bars := make([]models.Bar, n)
	for i := range bars {
		bars[i] = models.Bar{
			Time:   start.Add(time.Duration(i) * time.Minute),
			Symbol: "SPY",
			Open:   100 + float64(i)*0.01,
			Close:  100.01 + float64(i)*0.01,
			Volume: 1000,
		}
	}
	return bars
}

func engineParams() scan.Params {
	return scan.Params{
		BumpLen: 3, BumpMode: scan.ModePercent,
		SlideLen: 2, SlideMode: scan.ModePercent,
	}
}

func scanParams() ScanParams {
	return ScanParams{
		Symbol:    "SPY",
		From:      time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		To:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Timeframe: domrepo.TF1m,
		Engine:    engineParams(),
	}
}

func TestScanUseCaseRun(t *testing.T) {
	store := &fakeBarStore{bars: testBars(10)}
	uc := NewScanUseCase(store, nil)

	res, err := uc.Run(context.Background(), scanParams(), nil)
	require.NoError(t, err)
	assert.Equal(t, "SPY", res.Symbol)
	assert.Equal(t, 6, res.Count)
	assert.Len(t, res.Matches, 6)
	assert.Equal(t, 6, res.Stats.TotalBumps)
	for _, m := range res.Matches {
		assert.Empty(t, m.NewsURL)
	}
}

func TestScanUseCaseCaching(t *testing.T) {
	store := &fakeBarStore{bars: testBars(10)}
	uc := NewScanUseCase(store, nil)
	uc.SetCache(icache.NewTTLCache(), time.Minute)

	p := scanParams()
	first, err := uc.Run(context.Background(), p, nil)
	require.NoError(t, err)
	second, err := uc.Run(context.Background(), p, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, store.calls)
	assert.Equal(t, first.Count, second.Count)
	assert.Equal(t, first.Stats, second.Stats)

	// Different parameters bypass the cached entry.
	p.Engine.BumpThreshold = 1
	_, err = uc.Run(context.Background(), p, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, store.calls)
}

func TestScanUseCaseNewsLinks(t *testing.T) {
	store := &fakeBarStore{bars: testBars(10)}
	uc := NewScanUseCase(store, nil)
	uc.SetNewsQuery("SPY stock")

	p := scanParams()
	p.AttachNews = true
	res, err := uc.Run(context.Background(), p, nil)
	require.NoError(t, err)
	require.NotEmpty(t, res.Matches)
	for _, m := range res.Matches {
		assert.Contains(t, m.NewsURL, "tbm=nws")
		assert.Contains(t, m.NewsURL, "03/04/2024")
	}
}

func TestScanUseCaseRejectsBadInput(t *testing.T) {
	uc := NewScanUseCase(&fakeBarStore{}, nil)

	p := scanParams()
	p.Symbol = ""
	_, err := uc.Run(context.Background(), p, nil)
	assert.Error(t, err)

	p = scanParams()
	p.From, p.To = p.To, p.From
	_, err = uc.Run(context.Background(), p, nil)
	assert.Error(t, err)

	p = scanParams()
	p.Engine.BumpLen = 0
	_, err = uc.Run(context.Background(), p, nil)
	assert.Error(t, err)
}
