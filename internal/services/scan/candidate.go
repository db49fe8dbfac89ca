package scan

import (
	"runtime"
	"sync"

	"BumpSlide/internal/domain/models"
)

// shardThreshold is the series length below which sharded assembly is not
// worth the goroutine overhead.
const shardThreshold = 1 << 17

// assemble builds one candidate per start index i where both the bump window
// [i, i+bumpLen-1] and the slide window [i+bumpLen, i+bumpLen+slideLen-1]
// fit inside the series. Starts whose percent-mode change is undefined
// (zero open) are dropped.
func assemble(bars []models.Bar, prefix []int64, p Params) []models.Match {
	total := len(bars) - p.BumpLen - p.SlideLen + 1
	if total <= 0 {
		return []models.Match{}
	}
	if total < shardThreshold {
		return assembleRange(bars, prefix, p, 0, total)
	}

	workers := runtime.NumCPU()
	if workers > total {
		workers = total
	}
	parts := make([][]models.Match, workers)
	chunk := (total + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > total {
			hi = total
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			parts[w] = assembleRange(bars, prefix, p, lo, hi)
		}(w, lo, hi)
	}
	wg.Wait()

	out := make([]models.Match, 0, total)
	for _, part := range parts {
		out = append(out, part...)
	}
	return out
}

// assembleRange builds candidates for start indices [lo, hi). Each shard
// covers a contiguous range so concatenating shard outputs in order keeps
// the result identical to a single-threaded pass.
func assembleRange(bars []models.Bar, prefix []int64, p Params, lo, hi int) []models.Match {
	out := make([]models.Match, 0, hi-lo)
	for i := lo; i < hi; i++ {
		bumpStart := bars[i]
		bumpEnd := bars[i+p.BumpLen-1]
		slideStart := bars[i+p.BumpLen]
		slideEnd := bars[i+p.BumpLen+p.SlideLen-1]

		bumpChange, ok := change(bumpStart.Open, bumpEnd.Close, p.BumpMode)
		if !ok {
			continue
		}
		slideChange, ok := change(slideStart.Open, slideEnd.Close, p.SlideMode)
		if !ok {
			continue
		}

		out = append(out, models.Match{
			Start:           bumpStart.Time,
			BumpEnd:         bumpEnd.Time,
			SlideEnd:        slideEnd.Time,
			BumpChange:      bumpChange,
			SlideChange:     slideChange,
			BumpVolume:      windowVolume(prefix, i, p.BumpLen),
			SlideVolume:     windowVolume(prefix, i+p.BumpLen, p.SlideLen),
			BumpStartPrice:  bumpStart.Open,
			BumpEndPrice:    bumpEnd.Close,
			SlideStartPrice: slideStart.Open,
			SlideEndPrice:   slideEnd.Close,
		})
	}
	return out
}
