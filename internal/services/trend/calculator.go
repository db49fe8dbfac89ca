package trend

import (
	"fmt"

	"BumpSlide/internal/domain/models"
)

// Direction selects which strict monotonic run counts as a trend chunk.
type Direction string

const (
	Increase Direction = "increase"
	Decrease Direction = "decrease"
)

// ParseDirection resolves a direction string.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Increase, Decrease:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("unknown trend direction %q", s)
	}
}

// Calculate splits values into non-overlapping chunks of each sample size in
// [startSample, endSample], counts chunks that are strictly monotonic in the
// given direction, and of those, how many are continued by the value right
// after the chunk. One row per sample size.
func Calculate(values []float64, startSample, endSample int, dir Direction) ([]models.TrendRow, error) {
	if startSample < 2 {
		return nil, fmt.Errorf("sample size must be >= 2, got %d", startSample)
	}
	if endSample < startSample {
		return nil, fmt.Errorf("sample range %d..%d is empty", startSample, endSample)
	}
	if _, err := ParseDirection(string(dir)); err != nil {
		return nil, err
	}

	rows := make([]models.TrendRow, 0, endSample-startSample+1)
	for size := startSample; size <= endSample; size++ {
		rows = append(rows, calculateOne(values, size, dir))
	}
	return rows, nil
}

func calculateOne(values []float64, size int, dir Direction) models.TrendRow {
	row := models.TrendRow{SampleSize: size}
	n := len(values)

	for i := 0; i+size <= n; i += size {
		chunk := values[i : i+size]
		row.TotalSamples++
		if !monotonic(chunk, dir) {
			continue
		}
		row.Matches++
		if i+size < n && continues(chunk[size-1], values[i+size], dir) {
			row.Continued++
		}
	}

	if row.TotalSamples > 0 {
		row.PctMatching = float64(row.Matches) / float64(row.TotalSamples) * 100
		row.PctContTotal = float64(row.Continued) / float64(row.TotalSamples) * 100
	}
	if row.Matches > 0 {
		row.PctContRel = float64(row.Continued) / float64(row.Matches) * 100
	}
	return row
}

func monotonic(chunk []float64, dir Direction) bool {
	for j := 0; j < len(chunk)-1; j++ {
		if dir == Increase {
			if chunk[j] >= chunk[j+1] {
				return false
			}
		} else if chunk[j] <= chunk[j+1] {
			return false
		}
	}
	return true
}

func continues(last, next float64, dir Direction) bool {
	if dir == Increase {
		return last < next
	}
	return last > next
}
