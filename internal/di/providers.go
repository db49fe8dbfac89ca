package di

import (
	"context"
	"fmt"
	"time"

	"BumpSlide/internal/domain/repository"
	mid "BumpSlide/internal/middleware"
	internalrepo "BumpSlide/internal/repository"
	"BumpSlide/internal/usecase"
	pkgch "BumpSlide/pkg/clickhouse"
	"BumpSlide/pkg/config"
	pkgkafka "BumpSlide/pkg/kafka"
	applogger "BumpSlide/pkg/logger"
	"BumpSlide/pkg/metrics"
	"BumpSlide/pkg/server"
)

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS bumpslide",
		"CREATE TABLE IF NOT EXISTS bumpslide.bars_1m (symbol String, ts DateTime, open Float64, high Float64, low Float64, close Float64, volume Int64) ENGINE=ReplacingMergeTree ORDER BY (symbol, ts)",
	}); err != nil {
		_ = client.Close() // cannot log here (DI layer no logger); propagate error
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideBarStorage creates ClickHouse storage repository.
func ProvideBarStorage(chClient *pkgch.Client, cfg *config.Config) repository.Storage {
	return internalrepo.NewClickHouseStorage(chClient.DB(), cfg.ClickHouse.Database+".bars_1m")
}

// ProvideBarPublisher creates Kafka publisher repository.
func ProvideBarPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideBarProcessor creates the bar processor use case.
func ProvideBarProcessor(
	pub repository.Publisher,
	store repository.Storage,
	metrics repository.Metrics,
	cfg *config.Config,
) *usecase.BarProcessor {
	return usecase.NewBarProcessor(
		pub,
		store,
		metrics,
		cfg.Backend.Type,
		cfg.Backend.BatchSize,
		cfg.Backend.BatchTimeout,
	)
}

// ProvideIngestPipeline creates and starts the pipeline that sits between the
// Kafka bars handler and ClickHouse. The sink always targets storage so a
// kafka-backed main processor cannot loop messages back onto the topic.
func ProvideIngestPipeline(
	store repository.Storage,
	metrics repository.Metrics,
	cfg *config.Config,
) *mid.IngestPipeline {
	sinkProc := usecase.NewBarProcessor(nil, store, metrics, "clickhouse", cfg.Backend.BatchSize, cfg.Backend.BatchTimeout)
	pipe := mid.NewIngestPipeline(sinkProc, metrics,
		mid.WithBufferSize(2000),
	)
	pipe.Start(context.Background())
	return pipe
}

// ProvideKafkaBarsHandler registers handler for the bars topic, routing
// consumed bars through the ingest pipeline into ClickHouse.
func ProvideKafkaBarsHandler(
	store repository.Storage,
	metrics repository.Metrics,
	pipe *mid.IngestPipeline,
	cfg *config.Config,
) *usecase.KafkaBarsHandler {
	h := usecase.NewKafkaBarsHandler(cfg.Kafka.Topic, store, metrics)
	h.SetSink(pipe)
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaBarsHandler,
	proc *usecase.BarProcessor,
	pipe *mid.IngestPipeline,
	chClient *pkgch.Client,
) *server.App {
	if consumer != nil {
		if l, err := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"}); err == nil {
			consumer.WithConsumerHook(pkgkafka.LoggingHook{L: l})
		}
	}
	app := server.New(cfg, consumer, kh, chClient)
	// attach owned resources to app for closing on shutdown
	app.BarProc = proc
	app.Ingest = pipe
	return app
}
