package repository

import (
	"context"
	"fmt"
	"time"

	"themesim/internal/domain"
	"themesim/internal/util"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

// PriceRepository is the price source adapter contract: closing prices for a
// ticker on a date, over a range, or right now. All network I/O for the
// simulator lives behind this interface.
type PriceRepository interface {
	GetOnDate(ctx context.Context, ticker string, date time.Time) (decimal.Decimal, error)
	GetHistory(ctx context.Context, ticker string, start, end time.Time) ([]domain.AssetPrice, error)
	GetLatest(ctx context.Context, ticker string) (decimal.Decimal, error)
}

// markets close on weekends and holidays; scan back this many days for the
// most recent trading-day close
const maxBackfillDays = 7

func NewYahooRepository() PriceRepository {
	return yahooRepositoryHandler{}
}

type yahooRepositoryHandler struct{}

func (h yahooRepositoryHandler) GetOnDate(ctx context.Context, ticker string, date time.Time) (decimal.Decimal, error) {
	start := date.AddDate(0, 0, -maxBackfillDays)
	end := date.AddDate(0, 0, 1)

	history, err := h.GetHistory(ctx, ticker, start, end)
	if err != nil {
		return decimal.Zero, err
	}

	// most recent close at or before the requested date
	price := decimal.Zero
	found := false
	for _, point := range history {
		if point.Date.After(date) {
			break
		}
		price = point.Price
		found = true
	}
	if !found {
		return decimal.Zero, domain.MissingPriceDataError{Ticker: ticker, Date: date}
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.InvalidPriceDataError{Ticker: ticker, Price: price}
	}

	return price, nil
}

func (h yahooRepositoryHandler) GetHistory(ctx context.Context, ticker string, start, end time.Time) ([]domain.AssetPrice, error) {
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Symbol:   ticker,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	history := []domain.AssetPrice{}
	for iter.Next() {
		bar := iter.Bar()
		history = append(history, domain.AssetPrice{
			Ticker: ticker,
			Price:  bar.AdjClose,
			Date:   util.TruncateToDay(time.Unix(int64(bar.Timestamp), 0).UTC()),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get prices for %s: %w", ticker, err)
	}

	return history, nil
}

func (h yahooRepositoryHandler) GetLatest(ctx context.Context, ticker string) (decimal.Decimal, error) {
	q, err := quote.Get(ticker)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get quote for %s: %w", ticker, err)
	}
	if q == nil {
		return decimal.Zero, domain.MissingPriceDataError{Ticker: ticker}
	}
	price := decimal.NewFromFloat(q.RegularMarketPrice)
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.InvalidPriceDataError{Ticker: ticker, Price: price}
	}

	return price, nil
}
