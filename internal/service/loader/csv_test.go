package loader

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BumpSlide/pkg/logger"
)

func testLoader(t *testing.T) *CSVLoader {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return NewCSVLoader(log)
}

func TestLoadParsesHistoricalFormat(t *testing.T) {
	data := `,date,open,high,low,close,volume
0,20080102  09:30:00,146.53,146.65,146.50,146.60,2816
1,20080102  09:31:00,146.60,146.70,146.55,146.62,1530
`
	bars, err := testLoader(t).Load(strings.NewReader(data), "SPY")
	require.NoError(t, err)
	require.Len(t, bars, 2)

	b := bars[0]
	assert.Equal(t, time.Date(2008, 1, 2, 9, 30, 0, 0, time.UTC), b.Time)
	assert.Equal(t, "SPY", b.Symbol)
	assert.Equal(t, 146.53, b.Open)
	assert.Equal(t, 146.60, b.Close)
	assert.Equal(t, int64(2816), b.Volume)
}

func TestLoadSortsAndDeduplicates(t *testing.T) {
	data := `date,open,high,low,close,volume
2008-01-02 09:32:00,3,3,3,3,30
2008-01-02 09:30:00,1,1,1,1,10
2008-01-02 09:30:00,9,9,9,9,90
2008-01-02 09:31:00,2,2,2,2,20
`
	bars, err := testLoader(t).Load(strings.NewReader(data), "")
	require.NoError(t, err)
	require.Len(t, bars, 3)

	assert.True(t, bars[0].Time.Before(bars[1].Time))
	assert.True(t, bars[1].Time.Before(bars[2].Time))
	// First occurrence wins on duplicate timestamps.
	assert.Equal(t, 1.0, bars[0].Open)
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	data := `date,open,high,low,close,volume
2008-01-02 09:30:00,1,1,1,1,10
not-a-date,2,2,2,2,20
2008-01-02 09:31:00,3,3,3,3,notanumber
2008-01-02 09:32:00,4,4,4,4,40
`
	bars, err := testLoader(t).Load(strings.NewReader(data), "")
	require.NoError(t, err)
	assert.Len(t, bars, 2)
}

func TestLoadRejectsBadHeader(t *testing.T) {
	data := `date,open,close
2008-01-02 09:30:00,1,1
`
	_, err := testLoader(t).Load(strings.NewReader(data), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}
