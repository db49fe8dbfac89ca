package scan

import "BumpSlide/internal/domain/models"

// prefixVolumes returns the running volume sum: out[i] holds the total volume
// of bars[0:i], so any window sum is two lookups instead of a re-summation.
func prefixVolumes(bars []models.Bar) []int64 {
	out := make([]int64, len(bars)+1)
	for i, b := range bars {
		out[i+1] = out[i] + b.Volume
	}
	return out
}

// windowVolume is the summed volume over rows [start, start+length-1].
func windowVolume(prefix []int64, start, length int) int64 {
	return prefix[start+length] - prefix[start]
}
