package usecase

import (
	"context"
	"fmt"
	"time"

	"BumpSlide/internal/domain/models"
	domrepo "BumpSlide/internal/domain/repository"
	"BumpSlide/internal/services/quality"
	xhttp "BumpSlide/pkg/http"
)

// QualityUseCase inspects a stored series for duplicates, gaps and
// incomplete trading days.
type QualityUseCase struct {
	store domrepo.BarStore
}

func NewQualityUseCase(store domrepo.BarStore) *QualityUseCase {
	return &QualityUseCase{store: store}
}

type QualityParams struct {
	Symbol   string
	From, To time.Time
}

func (uc *QualityUseCase) Report(ctx context.Context, p QualityParams) (*models.QualityReport, error) {
	if p.Symbol == "" {
		return nil, xhttp.BadRequestError("symbol required")
	}
	if p.From.After(p.To) {
		return nil, xhttp.BadRequestError("from must be <= to")
	}

	bars, err := uc.store.GetBars(ctx, p.Symbol, p.From, p.To, domrepo.TF1m)
	if err != nil {
		return nil, fmt.Errorf("get bars: %w", err)
	}
	rep := quality.Report(bars)
	return &rep, nil
}
