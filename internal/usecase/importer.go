package usecase

import (
	"context"
	"fmt"
	"time"

	"BumpSlide/internal/domain/models"
	"BumpSlide/internal/service/loader"
	applogger "BumpSlide/pkg/logger"
)

// Importer loads historical CSV exports and pushes them through the bar
// processor in batches.
type Importer struct {
	loader *loader.CSVLoader
	proc   *BarProcessor
	l      *applogger.Logger
}

func NewImporter(ld *loader.CSVLoader, proc *BarProcessor, l *applogger.Logger) *Importer {
	return &Importer{loader: ld, proc: proc, l: l}
}

// ImportFile loads path and stores every bar. Returns the number of bars
// written.
func (im *Importer) ImportFile(ctx context.Context, path, symbol string) (int, error) {
	start := time.Now()
	bars, err := im.loader.LoadFile(path, symbol)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", path, err)
	}

	batchSz := im.proc.BatchSize()
	if batchSz <= 0 {
		batchSz = 5000
	}

	written := 0
	for lo := 0; lo < len(bars); lo += batchSz {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		hi := lo + batchSz
		if hi > len(bars) {
			hi = len(bars)
		}
		batch := make([]*models.Bar, hi-lo)
		for i := range batch {
			batch[i] = &bars[lo+i]
		}
		if err := im.proc.ProcessBatch(ctx, batch); err != nil {
			return written, fmt.Errorf("batch at row %d: %w", lo, err)
		}
		written += len(batch)
	}

	if im.l != nil {
		im.l.Info("import complete",
			applogger.String("path", path),
			applogger.String("symbol", symbol),
			applogger.Int("bars", written),
			applogger.Duration("took", time.Since(start)),
		)
	}
	return written, nil
}
