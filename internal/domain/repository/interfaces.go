package repository

import (
	"context"
	"time"

	"BumpSlide/internal/domain/models"
)

// Publisher fans ingested bars out to the message bus.
type Publisher interface {
	Publish(ctx context.Context, b *models.Bar) error
	PublishBatch(ctx context.Context, bars []*models.Bar) error
	Close() error
}

// Storage is the write/read side of the bar warehouse.
type Storage interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, b *models.Bar) error
	StoreBatch(ctx context.Context, bars []*models.Bar) error
	Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]models.Bar, error)
	Health(ctx context.Context) error // ping
	Close() error
}

// Metrics abstracts the counters the pipeline and scan paths record.
type Metrics interface {
	RecordBarsIngested(source string, count int)
	RecordScan(outcome string, seconds float64)
	RecordMatches(symbol string, count int)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
