package usecase

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"BumpSlide/internal/domain/models"
	domrepo "BumpSlide/internal/domain/repository"
	icache "BumpSlide/internal/service/cache"
	"BumpSlide/internal/services/news"
	"BumpSlide/internal/services/scan"
	xhttp "BumpSlide/pkg/http"
	applogger "BumpSlide/pkg/logger"
	"BumpSlide/pkg/util"
)

// ScanUseCase loads a bar series from the store and runs the pattern scan
// over it, with an optional byte-cache in front of repeated identical scans.
type ScanUseCase struct {
	store     domrepo.BarStore
	cache     icache.BytesCache
	metrics   domrepo.Metrics
	l         *applogger.Logger
	cacheTTL  time.Duration
	newsQuery string
}

func NewScanUseCase(store domrepo.BarStore, metrics domrepo.Metrics) *ScanUseCase {
	return &ScanUseCase{store: store, metrics: metrics, cacheTTL: 60 * time.Second}
}

func (uc *ScanUseCase) SetCache(c icache.BytesCache, ttl time.Duration) {
	uc.cache = c
	if ttl > 0 {
		uc.cacheTTL = ttl
	}
}

// SetLogger injects a structured logger.
func (uc *ScanUseCase) SetLogger(l *applogger.Logger) { uc.l = l }

// SetNewsQuery sets the search topic used when news links are requested.
func (uc *ScanUseCase) SetNewsQuery(q string) { uc.newsQuery = q }

type ScanParams struct {
	Symbol     string
	From, To   time.Time
	Timeframe  domrepo.Timeframe
	Engine     scan.Params
	AttachNews bool
}

type ScanResult struct {
	Symbol  string           `json:"symbol"`
	From    time.Time        `json:"from"`
	To      time.Time        `json:"to"`
	Count   int              `json:"count"`
	Matches []models.Match   `json:"matches"`
	Stats   models.ScanStats `json:"stats"`
}

// Run executes the scan. A non-nil progress receives stage updates; cache
// hits report completion immediately.
func (uc *ScanUseCase) Run(ctx context.Context, p ScanParams, progress scan.Progress) (*ScanResult, error) {
	if p.Symbol == "" {
		return nil, xhttp.BadRequestError("symbol required")
	}
	if p.From.After(p.To) {
		return nil, xhttp.BadRequestError("from must be <= to")
	}
	if err := p.Engine.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	key := uc.cacheKey(p)
	if uc.cache != nil {
		if b, ok, err := uc.cache.GetBytes(key); err != nil {
			if uc.l != nil {
				uc.l.Warn("scan cache_get_error", applogger.Error(err))
			}
		} else if ok {
			var res ScanResult
			if err := json.Unmarshal(b, &res); err == nil {
				if progress != nil {
					progress("scan complete", 100)
				}
				if uc.metrics != nil {
					uc.metrics.RecordScan("cached", time.Since(start).Seconds())
				}
				return &res, nil
			}
		}
	}
	bars, err := uc.store.GetBars(ctx, p.Symbol, p.From, p.To, p.Timeframe)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.RecordError("scan_load")
		}
		return nil, fmt.Errorf("load bars: %w", err)
	}

	matches, stats, err := scan.Scan(bars, p.Engine, progress)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.RecordError("scan")
		}
		return nil, err
	}

	if p.AttachNews {
		for i := range matches {
			matches[i].NewsURL = news.SearchURL(matches[i].Start, uc.newsQuery)
		}
	}

	res := &ScanResult{
		Symbol:  p.Symbol,
		From:    p.From,
		To:      p.To,
		Count:   len(matches),
		Matches: matches,
		Stats:   stats,
	}

	if uc.metrics != nil {
		uc.metrics.RecordScan("ok", time.Since(start).Seconds())
		uc.metrics.RecordMatches(p.Symbol, len(matches))
	}
	if uc.l != nil {
		uc.l.Info("scan complete",
			applogger.String("symbol", p.Symbol),
			applogger.Int("bars", len(bars)),
			applogger.Int("matches", len(matches)),
			applogger.Duration("took", time.Since(start)),
		)
	}

	if uc.cache != nil {
		if b, err := json.Marshal(res); err == nil {
			if err := uc.cache.SetBytes(key, b, uc.cacheTTL); err != nil && uc.l != nil {
				uc.l.Warn("scan cache_set_error", applogger.Error(err))
			}
		}
	}
	return res, nil
}

// cacheKey digests every parameter that affects the result.
func (uc *ScanUseCase) cacheKey(p ScanParams) string {
	payload := struct {
		Symbol    string
		From, To  int64
		TF        string
		Engine    scan.Params
		TimeRange *util.ClockRange
		News      bool
	}{
		Symbol: p.Symbol,
		From:   p.From.Unix(), To: p.To.Unix(),
		TF:        string(p.Timeframe),
		Engine:    p.Engine,
		TimeRange: p.Engine.TimeRange,
		News:      p.AttachNews,
	}
	b, _ := json.Marshal(payload)
	sum := sha1.Sum(b)
	return "scan:" + hex.EncodeToString(sum[:])
}
