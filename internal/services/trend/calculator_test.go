package trend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateIncrease(t *testing.T) {
	// Chunks of 3: [1,2,3] rises and continues (4), [4,5,2] does not rise,
	// [6,7,8] rises but nothing follows.
	values := []float64{1, 2, 3, 4, 5, 2, 6, 7, 8}

	rows, err := Calculate(values, 3, 3, Increase)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 3, row.SampleSize)
	assert.Equal(t, 3, row.TotalSamples)
	assert.Equal(t, 2, row.Matches)
	assert.Equal(t, 1, row.Continued)
	assert.InDelta(t, 66.666, row.PctMatching, 0.01)
	assert.InDelta(t, 33.333, row.PctContTotal, 0.01)
	assert.InDelta(t, 50.0, row.PctContRel, 0.01)
}

func TestCalculateDecrease(t *testing.T) {
	values := []float64{5, 4, 3, 2, 9, 8}

	rows, err := Calculate(values, 2, 2, Decrease)
	require.NoError(t, err)
	row := rows[0]
	assert.Equal(t, 3, row.TotalSamples)
	assert.Equal(t, 3, row.Matches) // [5,4] [3,2] [9,8]
	assert.Equal(t, 1, row.Continued)
}

func TestCalculateEqualValuesBreakTrend(t *testing.T) {
	values := []float64{1, 1, 2, 3}
	rows, err := Calculate(values, 2, 2, Increase)
	require.NoError(t, err)
	assert.Equal(t, 1, rows[0].Matches) // [1,1] fails strict increase, [2,3] passes
}

func TestCalculateSampleRange(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	rows, err := Calculate(values, 2, 4, Increase)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, 2+i, row.SampleSize)
	}
}

func TestCalculateEmptyAndInvalid(t *testing.T) {
	rows, err := Calculate(nil, 2, 3, Increase)
	require.NoError(t, err)
	for _, row := range rows {
		assert.Zero(t, row.TotalSamples)
		assert.Zero(t, row.PctMatching)
	}

	_, err = Calculate([]float64{1, 2}, 1, 3, Increase)
	assert.Error(t, err)
	_, err = Calculate([]float64{1, 2}, 3, 2, Increase)
	assert.Error(t, err)
	_, err = Calculate([]float64{1, 2}, 2, 3, "sideways")
	assert.Error(t, err)
}
