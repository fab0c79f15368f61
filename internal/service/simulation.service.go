package service

import (
	"context"
	"fmt"
	"time"

	"themesim/internal"
	"themesim/internal/calculator"
	"themesim/internal/domain"
	"themesim/internal/logger"

	"github.com/shopspring/decimal"
)

// SimulationService runs one end-to-end simulation: validate the request,
// resolve prices through the price service, run the allocation engine, and
// derive the return series and performance metrics.
type SimulationService interface {
	Run(ctx context.Context, req domain.SimulationRequest) (*SimulationResult, error)
}

type SimulationResult struct {
	Positions []domain.PositionResult
	Summary   domain.PortfolioSummary

	// whole-share mode only
	Events       []domain.PurchaseEvent
	InitialCash  *decimal.Decimal
	LeftoverCash *decimal.Decimal

	Series          map[string][]domain.ReturnPoint
	PortfolioSeries []domain.ReturnPoint
	Metrics         *calculator.PerformanceMetrics

	Warnings []string
}

type simulationServiceHandler struct {
	Assets       []domain.AssetDefinition
	MinCapital   decimal.Decimal
	PriceService PriceService

	// injectable clock for tests
	now func() time.Time
}

func NewSimulationService(
	assets []domain.AssetDefinition,
	minCapital decimal.Decimal,
	priceService PriceService,
) SimulationService {
	return &simulationServiceHandler{
		Assets:       assets,
		MinCapital:   minCapital,
		PriceService: priceService,
		now:          time.Now,
	}
}

func (h *simulationServiceHandler) Run(ctx context.Context, req domain.SimulationRequest) (*SimulationResult, error) {
	log := logger.FromContext(ctx)
	profile, endProfile := domain.GetProfile(ctx)
	defer endProfile()

	if err := internal.ValidateRequest(req, h.MinCapital, h.now()); err != nil {
		return nil, err
	}
	if err := internal.ValidateAssets(h.Assets); err != nil {
		return nil, err
	}

	_, endSpan := profile.StartNewSpan("load price cache")
	cache, err := h.PriceService.LoadPriceCache(ctx, domain.Tickers(h.Assets), req.PurchaseDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load price cache: %w", err)
	}
	endSpan()

	result := &SimulationResult{
		Warnings: cache.Warnings(),
	}

	_, endSpan = profile.StartNewSpan("compute allocation")
	var positions []domain.PositionResult
	if req.WholeShares {
		allocation, err := internal.AllocateWholeShares(req, h.Assets, cache.PurchasePrices())
		if err != nil {
			return nil, err
		}
		positions = allocation.Positions
		result.Events = allocation.Events
		initialCash := allocation.InitialCash
		leftoverCash := allocation.LeftoverCash
		result.InitialCash = &initialCash
		result.LeftoverCash = &leftoverCash
	} else {
		positions, err = internal.ComputeAllocation(req, h.Assets, cache.PurchasePrices())
		if err != nil {
			return nil, err
		}
	}

	positions, err = internal.ComputeCurrentValue(positions, cache.CurrentPrices())
	if err != nil {
		return nil, err
	}
	result.Positions = positions

	result.Summary, err = internal.Summarize(positions)
	if err != nil {
		return nil, err
	}
	endSpan()

	_, endSpan = profile.StartNewSpan("build return series")
	result.Series = map[string][]domain.ReturnPoint{}
	for _, p := range positions {
		history, err := cache.History(p.Ticker)
		if err != nil {
			return nil, err
		}
		result.Series[p.Ticker] = internal.BuildReturnTimeSeries(p.SharesHeld, p.AllocatedCapital, history)
	}

	result.PortfolioSeries, err = internal.BuildPortfolioReturnSeries(positions, cache.Histories())
	if err != nil {
		return nil, err
	}

	metrics, err := calculator.CalculateMetrics(result.PortfolioSeries)
	if err != nil {
		// metrics are decoration, not part of the simulation contract
		log.Warnf("skipping performance metrics: %s", err.Error())
		result.Warnings = append(result.Warnings, fmt.Sprintf("performance metrics unavailable: %s", err.Error()))
	} else {
		result.Metrics = metrics
	}
	endSpan()

	return result, nil
}
