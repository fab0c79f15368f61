package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"themesim/internal/domain"
	"themesim/internal/logger"
	"themesim/internal/repository"

	"github.com/shopspring/decimal"
)

/**

behavior - resolve every price a simulation needs up front, so the engine
can stay a pure function over in-memory maps.

purchase prices prefer the snapshot CSV when one is configured, falling back
to yahoo for tickers the snapshot doesn't cover. current prices prefer
alpaca's intraday quote when credentials are configured, falling back to
yahoo's latest close. histories always come from yahoo.

*/

// PriceService loads everything a simulation needs from the price source
// adapters into one immutable cache.
type PriceService interface {
	LoadPriceCache(ctx context.Context, tickers []string, purchaseDate time.Time) (*PriceCache, error)
}

// PriceCache holds resolved prices for one simulation run. It is read-only
// after LoadPriceCache returns.
type PriceCache struct {
	purchase  map[string]decimal.Decimal
	current   map[string]decimal.Decimal
	histories map[string][]domain.AssetPrice
	warnings  []string
}

// NewPriceCache builds a cache from already resolved prices. Exposed for
// callers that supply canned fixtures instead of hitting the adapters.
func NewPriceCache(
	purchase map[string]decimal.Decimal,
	current map[string]decimal.Decimal,
	histories map[string][]domain.AssetPrice,
	warnings []string,
) *PriceCache {
	return &PriceCache{
		purchase:  purchase,
		current:   current,
		histories: histories,
		warnings:  warnings,
	}
}

func (c *PriceCache) PurchasePrices() map[string]decimal.Decimal {
	return c.purchase
}

func (c *PriceCache) CurrentPrices() map[string]decimal.Decimal {
	return c.current
}

func (c *PriceCache) History(ticker string) ([]domain.AssetPrice, error) {
	history, ok := c.histories[ticker]
	if !ok || len(history) == 0 {
		return nil, domain.MissingPriceDataError{Ticker: ticker}
	}
	return history, nil
}

func (c *PriceCache) Histories() map[string][]domain.AssetPrice {
	return c.histories
}

func (c *PriceCache) Warnings() []string {
	return c.warnings
}

type priceServiceHandler struct {
	PriceRepository    repository.PriceRepository
	SnapshotRepository repository.SnapshotRepository
	AlpacaRepository   repository.AlpacaRepository

	SnapshotPath string
}

func NewPriceService(
	priceRepository repository.PriceRepository,
	snapshotRepository repository.SnapshotRepository,
	alpacaRepository repository.AlpacaRepository,
	snapshotPath string,
) PriceService {
	return &priceServiceHandler{
		PriceRepository:    priceRepository,
		SnapshotRepository: snapshotRepository,
		AlpacaRepository:   alpacaRepository,
		SnapshotPath:       snapshotPath,
	}
}

const numFetchWorkers = 4

// tickerData is everything fetched for one ticker; purchasePrice is left
// zero when the snapshot already supplied it.
type tickerData struct {
	ticker        string
	purchasePrice decimal.Decimal
	fromSnapshot  bool
	history       []domain.AssetPrice
	latest        decimal.Decimal
}

func (h *priceServiceHandler) LoadPriceCache(ctx context.Context, tickers []string, purchaseDate time.Time) (*PriceCache, error) {
	log := logger.FromContext(ctx)
	profile, endProfile := domain.GetProfile(ctx)
	defer endProfile()

	warnings := []string{}

	_, endSpan := profile.StartNewSpan("load snapshot prices")
	snapshotPrices := map[string]decimal.Decimal{}
	if h.SnapshotPath != "" && h.SnapshotRepository != nil {
		prices, snapshotWarnings, err := h.SnapshotRepository.LoadPurchasePrices(h.SnapshotPath, tickers)
		if err != nil {
			return nil, fmt.Errorf("failed to load purchase price snapshot: %w", err)
		}
		snapshotPrices = prices
		warnings = append(warnings, snapshotWarnings...)
	}
	endSpan()

	_, endSpan = profile.StartNewSpan("fetch ticker data")
	results, err := h.fetchTickerData(ctx, tickers, snapshotPrices, purchaseDate)
	if err != nil {
		return nil, err
	}
	endSpan()

	_, endSpan = profile.StartNewSpan("overlay latest quotes")
	alpacaPrices := map[string]decimal.Decimal{}
	if h.AlpacaRepository != nil {
		open, err := h.AlpacaRepository.IsMarketOpen()
		if err != nil {
			log.Warnf("failed to check market clock, using yahoo latest: %s", err.Error())
		} else if open {
			alpacaPrices, err = h.AlpacaRepository.GetLatestPrices(ctx, tickers)
			if err != nil {
				log.Warnf("failed to get alpaca quotes, using yahoo latest: %s", err.Error())
				alpacaPrices = map[string]decimal.Decimal{}
			}
		}
	}
	endSpan()

	cache := &PriceCache{
		purchase:  map[string]decimal.Decimal{},
		current:   map[string]decimal.Decimal{},
		histories: map[string][]domain.AssetPrice{},
		warnings:  warnings,
	}
	for _, r := range results {
		cache.purchase[r.ticker] = r.purchasePrice
		cache.histories[r.ticker] = r.history
		if price, ok := alpacaPrices[r.ticker]; ok {
			cache.current[r.ticker] = price
		} else {
			cache.current[r.ticker] = r.latest
		}
		if !r.fromSnapshot && h.SnapshotPath != "" {
			cache.warnings = append(cache.warnings, fmt.Sprintf("purchase price for %s fetched live, not from snapshot", r.ticker))
		}
	}

	return cache, nil
}

// fetchTickerData pulls purchase price, history and latest close for every
// ticker concurrently. Any failure cancels the rest - the engine refuses
// partial data anyway.
func (h *priceServiceHandler) fetchTickerData(
	ctx context.Context,
	tickers []string,
	snapshotPrices map[string]decimal.Decimal,
	purchaseDate time.Time,
) ([]tickerData, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inputCh := make(chan string, len(tickers))
	for _, ticker := range tickers {
		inputCh <- ticker
	}
	close(inputCh)

	var (
		mu      sync.Mutex
		results []tickerData
		loadErr error
	)

	var wg sync.WaitGroup
	for i := 0; i < numFetchWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case ticker, ok := <-inputCh:
					if !ok {
						return
					}
					data, err := h.fetchOneTicker(ctx, ticker, snapshotPrices, purchaseDate)
					mu.Lock()
					if err != nil && loadErr == nil {
						loadErr = err
						cancel()
					} else if err == nil {
						results = append(results, *data)
					}
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	if loadErr != nil {
		return nil, loadErr
	}
	return results, nil
}

func (h *priceServiceHandler) fetchOneTicker(
	ctx context.Context,
	ticker string,
	snapshotPrices map[string]decimal.Decimal,
	purchaseDate time.Time,
) (*tickerData, error) {
	data := &tickerData{ticker: ticker}

	if price, ok := snapshotPrices[ticker]; ok {
		data.purchasePrice = price
		data.fromSnapshot = true
	} else {
		price, err := h.PriceRepository.GetOnDate(ctx, ticker, purchaseDate)
		if err != nil {
			return nil, err
		}
		data.purchasePrice = price
	}

	history, err := h.PriceRepository.GetHistory(ctx, ticker, purchaseDate, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	data.history = history

	latest, err := h.PriceRepository.GetLatest(ctx, ticker)
	if err != nil {
		return nil, err
	}
	data.latest = latest

	return data, nil
}
