package server

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"BumpSlide/internal/handler/api"
	"BumpSlide/internal/repository"
	icache "BumpSlide/internal/service/cache"
	"BumpSlide/internal/usecase"
	pkgch "BumpSlide/pkg/clickhouse"
	"BumpSlide/pkg/config"
	xhttp "BumpSlide/pkg/http"
	pkgkafka "BumpSlide/pkg/kafka"
	applogger "BumpSlide/pkg/logger"
	pkgmetrics "BumpSlide/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// IngestStage is anything buffering bars between the consumer and storage.
// It is stopped and drained during shutdown.
type IngestStage interface {
	Stop()
}

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	consumer    *pkgkafka.Consumer
	kh          pkgkafka.MessageHandler
	chClient    *pkgch.Client
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
	BarProc     *usecase.BarProcessor
	Ingest      IngestStage
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:      cfg,
		consumer: consumer,
		kh:       kh,
		chClient: chClient,
	}
}

// SetHTTPHandler allows DI to inject an HTTP handler.
func (a *App) SetHTTPHandler(h xhttp.Handler) { a.httpHandler = h }

// handlerGroup registers several route handlers as one.
type handlerGroup []xhttp.Handler

func (g handlerGroup) RegisterRoutes(e *echo.Echo) {
	for _, h := range g {
		h.RegisterRoutes(e)
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// init app logger (console info by default)
	l, _ := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})

	// Setup Echo HTTP server using pkg/http and register routes via handler
	var httpHandler xhttp.Handler
	if a.httpHandler != nil {
		httpHandler = a.httpHandler
	} else if a.chClient != nil {
		store := repository.NewCHBarStore(a.chClient)
		store.SetLogger(l)

		scanUC := usecase.NewScanUseCase(store, pkgmetrics.New())
		scanUC.SetLogger(l)
		scanUC.SetNewsQuery(a.cfg.Scan.NewsQuery)
		if a.cfg.Scan.Redis.Enabled {
			scanUC.SetCache(icache.NewRedisCache(icache.RedisConfig{
				Addr:     a.cfg.Scan.Redis.Addr,
				Password: a.cfg.Scan.Redis.Password,
				DB:       a.cfg.Scan.Redis.DB,
			}), a.cfg.Scan.CacheTTL)
		} else {
			scanUC.SetCache(icache.NewTTLCache(), a.cfg.Scan.CacheTTL)
		}

		rest := api.NewScanEchoHandler(l,
			scanUC,
			usecase.NewBarsUseCase(store),
			usecase.NewTrendUseCase(store),
			usecase.NewQualityUseCase(store),
		)
		ws := api.NewScanWSHandler(l, scanUC)
		httpHandler = handlerGroup{rest, ws}
	}

	a.httpServer = xhttp.NewServer(httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(l),
	)

	// Start consumer if configured
	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		l.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}
	l.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	l, err := applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		log.Printf("failed to create logger: %v", err)
		return err
	}
	l.Info("shutting down...")

	// Shutdown HTTP server
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	// Stop consumer
	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	// Drain the ingest pipeline before its downstream goes away
	if a.Ingest != nil {
		a.Ingest.Stop()
	}

	// Close bar processor resources (publisher/storage)
	if a.BarProc != nil {
		a.BarProc.Close()
	}

	// Close infrastructure clients
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	l.Info("shutdown complete")
	return nil
}
