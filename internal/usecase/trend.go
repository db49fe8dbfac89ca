package usecase

import (
	"context"
	"fmt"
	"time"

	"BumpSlide/internal/domain/models"
	domrepo "BumpSlide/internal/domain/repository"
	"BumpSlide/internal/services/trend"
	xhttp "BumpSlide/pkg/http"
)

// TrendUseCase computes monotonic-run statistics over stored close prices.
type TrendUseCase struct {
	store domrepo.BarStore
}

func NewTrendUseCase(store domrepo.BarStore) *TrendUseCase {
	return &TrendUseCase{store: store}
}

type TrendParams struct {
	Symbol      string
	From, To    time.Time
	StartSample int
	EndSample   int
	Direction   trend.Direction
}

type TrendResult struct {
	Symbol    string            `json:"symbol"`
	Rows      int               `json:"rows"`
	Direction string            `json:"direction"`
	Table     []models.TrendRow `json:"table"`
}

func (uc *TrendUseCase) Calculate(ctx context.Context, p TrendParams) (*TrendResult, error) {
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

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	table, err := trend.Calculate(closes, p.StartSample, p.EndSample, p.Direction)
	if err != nil {
		return nil, err
	}

	return &TrendResult{
		Symbol:    p.Symbol,
		Rows:      len(bars),
		Direction: string(p.Direction),
		Table:     table,
	}, nil
}
