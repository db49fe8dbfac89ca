package api

import (
	"fmt"
	"time"

	models "BumpSlide/internal/domain/models"
	domrepo "BumpSlide/internal/domain/repository"
	"BumpSlide/internal/service/metrics"
	"BumpSlide/internal/service/ratelimit"
	"BumpSlide/internal/services/scan"
	"BumpSlide/internal/services/trend"
	"BumpSlide/internal/usecase"
	xhttp "BumpSlide/pkg/http"
	xlogger "BumpSlide/pkg/logger"
	"BumpSlide/pkg/util"

	"github.com/labstack/echo/v4"
)

// ScanEchoHandler exposes the scan, bars, trend and quality endpoints.
type ScanEchoHandler struct {
	logger  *xlogger.Logger
	scan    *usecase.ScanUseCase
	bars    *usecase.BarsUseCase
	trend   *usecase.TrendUseCase
	quality *usecase.QualityUseCase
	rl      *ratelimit.Limiter
}

func NewScanEchoHandler(
	logger *xlogger.Logger,
	scanUC *usecase.ScanUseCase,
	barsUC *usecase.BarsUseCase,
	trendUC *usecase.TrendUseCase,
	qualityUC *usecase.QualityUseCase,
) *ScanEchoHandler {
	metrics.Register()
	return &ScanEchoHandler{
		logger:  logger,
		scan:    scanUC,
		bars:    barsUC,
		trend:   trendUC,
		quality: qualityUC,
		rl:      ratelimit.New(),
	}
}

func (h *ScanEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/scan", h.Scan)
	g.GET("/bars", h.Bars)
	g.POST("/trend", h.Trend)
	g.GET("/quality", h.Quality)
}

func (h *ScanEchoHandler) Scan(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.ScanLatency.WithLabelValues("scan").Observe(time.Since(start).Seconds()) }()

	req := &models.ScanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":scan", 5, 2) {
		return xhttp.TooManyRequestsResponse(c, "rate limited")
	}

	p, err := buildScanParams(req)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}

	res, err := h.scan.Run(c.Request().Context(), p, nil)
	if err != nil {
		metrics.ScanErrors.WithLabelValues("scan").Inc()
		h.logger.Error("scan usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ScanEchoHandler) Bars(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.ScanLatency.WithLabelValues("bars").Observe(time.Since(start).Seconds()) }()

	req := &models.BarsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}

	res, err := h.bars.GetBars(c.Request().Context(), usecase.GetBarsParams{
		Symbol:    req.Symbol,
		From:      from,
		To:        to,
		Timeframe: domrepo.NormalizeTimeframe(req.TF),
		Limit:     req.Limit,
	})
	if err != nil {
		metrics.ScanErrors.WithLabelValues("bars").Inc()
		h.logger.Error("bars usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ScanEchoHandler) Trend(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.ScanLatency.WithLabelValues("trend").Observe(time.Since(start).Seconds()) }()

	req := &models.TrendRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}
	dir, err := trend.ParseDirection(req.Direction)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}

	res, err := h.trend.Calculate(c.Request().Context(), usecase.TrendParams{
		Symbol:      req.Symbol,
		From:        from,
		To:          to,
		StartSample: req.StartSample,
		EndSample:   req.EndSample,
		Direction:   dir,
	})
	if err != nil {
		metrics.ScanErrors.WithLabelValues("trend").Inc()
		h.logger.Error("trend usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ScanEchoHandler) Quality(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.ScanLatency.WithLabelValues("quality").Observe(time.Since(start).Seconds()) }()

	req := &models.QualityRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		return xhttp.BadRequestResponse(c, err.Error())
	}

	res, err := h.quality.Report(c.Request().Context(), usecase.QualityParams{
		Symbol: req.Symbol,
		From:   from,
		To:     to,
	})
	if err != nil {
		metrics.ScanErrors.WithLabelValues("quality").Inc()
		h.logger.Error("quality usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// buildScanParams converts the wire request into usecase parameters.
func buildScanParams(req *models.ScanRequest) (usecase.ScanParams, error) {
	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		return usecase.ScanParams{}, err
	}

	engine := scan.Params{
		BumpLen:        req.BumpLen,
		BumpThreshold:  req.BumpThreshold,
		BumpMode:       scan.Mode(req.BumpMode),
		SlideLen:       req.SlideLen,
		SlideThreshold: req.SlideThreshold,
		SlideMode:      scan.Mode(req.SlideMode),
		MinBumpVolume:  req.MinBumpVolume,
		MinSlideVolume: req.MinSlideVolume,
		Days:           req.Days,
	}
	if req.StartTime != "" || req.EndTime != "" {
		if req.StartTime == "" || req.EndTime == "" {
			return usecase.ScanParams{}, fmt.Errorf("start_time and end_time must both be set")
		}
		tr, err := util.ParseClockRange(req.StartTime, req.EndTime)
		if err != nil {
			return usecase.ScanParams{}, err
		}
		engine.TimeRange = &tr
	}

	return usecase.ScanParams{
		Symbol:     req.Symbol,
		From:       from,
		To:         to,
		Timeframe:  domrepo.NormalizeTimeframe(req.TF),
		Engine:     engine,
		AttachNews: req.AttachNews,
	}, nil
}

// parseRange accepts RFC3339, unix seconds, or plain dates.
func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := parseStamp(fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("from: %w", err)
	}
	to, err := parseStamp(toStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("to: %w", err)
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("from must be <= to")
	}
	return from, to, nil
}

func parseStamp(s string) (time.Time, error) {
	if t, ok := util.ParseTime(s); ok {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unparseable time %q", s)
}
