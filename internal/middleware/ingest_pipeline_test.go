package middleware

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"BumpSlide/internal/domain/models"
)

type nopMetrics struct{}

func (nopMetrics) RecordBarsIngested(string, int) {}
func (nopMetrics) RecordScan(string, float64)     {}
func (nopMetrics) RecordMatches(string, int)      {}
func (nopMetrics) RecordError(string)             {}
func (nopMetrics) RecordLatency(string, float64)  {}

type countProc struct {
	mu   sync.Mutex
	fail bool
	n    int
}

func (p *countProc) Process(ctx context.Context, b *models.Bar) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return fmt.Errorf("downstream unavailable")
	}
	p.n++
	return nil
}

func (p *countProc) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.n
}

func testBar(sym string) *models.Bar {
	return &models.Bar{
		Symbol: sym,
		Time:   time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC),
		Open:   100, High: 101, Low: 99, Close: 100.5,
		Volume: 1000,
	}
}

func TestProcessRejectsInvalidBar(t *testing.T) {
	proc := &countProc{}
	p := NewIngestPipeline(proc, nopMetrics{})

	require.Error(t, p.Process(context.Background(), nil))
	require.Error(t, p.Process(context.Background(), &models.Bar{Symbol: "", Time: time.Now()}))

	b := testBar("SPY")
	b.Volume = -1
	require.Error(t, p.Process(context.Background(), b))
	require.Equal(t, 0, proc.count())
}

func TestProcessThrottlesPerSymbol(t *testing.T) {
	proc := &countProc{}
	p := NewIngestPipeline(proc, nopMetrics{}, WithMaxRPS(1))

	// first bar per symbol passes, an immediate second one is dropped
	require.NoError(t, p.Process(context.Background(), testBar("SPY")))
	require.NoError(t, p.Process(context.Background(), testBar("SPY")))
	require.NoError(t, p.Process(context.Background(), testBar("QQQ")))
	require.Equal(t, 2, proc.count())
}

func TestProcessThrottleConcurrent(t *testing.T) {
	proc := &countProc{}
	p := NewIngestPipeline(proc, nopMetrics{}, WithMaxRPS(1))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = p.Process(context.Background(), testBar("SPY"))
			}
		}()
	}
	wg.Wait()

	// at most one bar per throttle interval may get through
	got := proc.count()
	require.GreaterOrEqual(t, got, 1)
	require.Less(t, got, 400)
}

func TestStopDrainsBufferedBars(t *testing.T) {
	proc := &countProc{fail: true}
	p := NewIngestPipeline(proc, nopMetrics{}, WithBufferSize(10))

	// downstream down: the bar lands in the buffer
	require.Error(t, p.Process(context.Background(), testBar("SPY")))
	require.Equal(t, 0, proc.count())

	proc.mu.Lock()
	proc.fail = false
	proc.mu.Unlock()

	p.Stop()
	require.Equal(t, 1, proc.count())
}
