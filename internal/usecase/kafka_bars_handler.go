package usecase

import (
	"context"
	"encoding/json"
	"time"

	"BumpSlide/internal/domain/models"
	domrepo "BumpSlide/internal/domain/repository"
	pkgkafka "BumpSlide/pkg/kafka"
)

// BarSink receives consumed bars; the ingest pipeline satisfies it.
type BarSink interface {
	Process(ctx context.Context, b *models.Bar) error
}

// KafkaBarsHandler consumes bar messages from Kafka and writes to storage,
// optionally through an ingest pipeline.
type KafkaBarsHandler struct {
	topic   string
	storage domrepo.Storage
	metrics domrepo.Metrics
	sink    BarSink
}

func NewKafkaBarsHandler(topic string, storage domrepo.Storage, metrics domrepo.Metrics) *KafkaBarsHandler {
	return &KafkaBarsHandler{topic: topic, storage: storage, metrics: metrics}
}

// SetSink routes consumed bars through sink instead of writing storage
// directly.
func (h *KafkaBarsHandler) SetSink(s BarSink) { h.sink = s }

func (h *KafkaBarsHandler) Topic() string { return h.topic }

// incoming message schema: {symbol, t, o, h, l, c, v}
func (h *KafkaBarsHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		Symbol string  `json:"symbol"`
		T      int64   `json:"t"`
		O      float64 `json:"o"`
		H      float64 `json:"h"`
		L      float64 `json:"l"`
		C      float64 `json:"c"`
		V      int64   `json:"v"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if m.T > 1e11 { // ms
		m.T = m.T / 1000
	}
	// E2E latency from bar time to now (approx)
	h.metrics.RecordLatency("ingest_e2e_seconds", time.Since(time.Unix(m.T, 0)).Seconds())

	bar := &models.Bar{
		Symbol: m.Symbol,
		Time:   time.Unix(m.T, 0).UTC(),
		Open:   m.O,
		High:   m.H,
		Low:    m.L,
		Close:  m.C,
		Volume: m.V,
	}

	start := time.Now()
	var err error
	if h.sink != nil {
		err = h.sink.Process(ctx, bar)
	} else {
		err = h.storage.Store(ctx, bar)
	}
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	h.metrics.RecordBarsIngested("clickhouse", 1)
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaBarsHandler)(nil)
