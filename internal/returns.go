package internal

import (
	"time"

	"themesim/internal/domain"

	"github.com/shopspring/decimal"
)

// BuildReturnTimeSeries computes the cumulative percent return of one
// position for every price point in its history, relative to the
// purchase-date value (the allocated capital). The history is expected
// ascending by date; days with no price point (weekends, holidays) simply
// produce no entry - nothing is interpolated.
//
// Pure function of its inputs: rebuilding from the same history yields the
// same series.
func BuildReturnTimeSeries(
	sharesHeld decimal.Decimal,
	allocatedCapital decimal.Decimal,
	history []domain.AssetPrice,
) []domain.ReturnPoint {
	series := make([]domain.ReturnPoint, 0, len(history))
	if allocatedCapital.LessThanOrEqual(decimal.Zero) {
		return series
	}
	for _, point := range history {
		if point.Price.LessThanOrEqual(decimal.Zero) {
			continue
		}
		value := sharesHeld.Mul(point.Price)
		pct := value.Sub(allocatedCapital).Div(allocatedCapital).Mul(oneHundred)
		series = append(series, domain.ReturnPoint{
			Date:     point.Date,
			ValuePct: pct.InexactFloat64(),
		})
	}
	return series
}

// BuildPortfolioReturnSeries aggregates per-ticker histories into one
// portfolio-level return series. A date contributes a point only when every
// position has a price on it; partially covered days are dropped rather
// than forward-filled, so a thin history for one ticker never skews the
// aggregate.
func BuildPortfolioReturnSeries(
	positions []domain.PositionResult,
	histories map[string][]domain.AssetPrice,
) ([]domain.ReturnPoint, error) {
	if len(positions) == 0 {
		return []domain.ReturnPoint{}, nil
	}

	totalInvested := decimal.Zero
	for _, p := range positions {
		totalInvested = totalInvested.Add(p.AllocatedCapital)
	}
	if totalInvested.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrZeroInvested
	}

	type dayValue struct {
		date  time.Time
		value decimal.Decimal
		count int
	}
	days := map[string]*dayValue{}
	order := []string{}

	for _, p := range positions {
		history, ok := histories[p.Ticker]
		if !ok || len(history) == 0 {
			return nil, domain.MissingPriceDataError{Ticker: p.Ticker}
		}
		for _, point := range history {
			if point.Price.LessThanOrEqual(decimal.Zero) {
				continue
			}
			key := point.Date.Format(time.DateOnly)
			dv, ok := days[key]
			if !ok {
				dv = &dayValue{date: point.Date, value: decimal.Zero}
				days[key] = dv
				order = append(order, key)
			}
			dv.value = dv.value.Add(p.SharesHeld.Mul(point.Price))
			dv.count++
		}
	}

	// first ticker's history drives the order; it is ascending already, and
	// dates missing from it cannot be complete anyway
	series := []domain.ReturnPoint{}
	for _, key := range order {
		dv := days[key]
		if dv.count != len(positions) {
			continue
		}
		pct := dv.value.Sub(totalInvested).Div(totalInvested).Mul(oneHundred)
		series = append(series, domain.ReturnPoint{
			Date:     dv.date,
			ValuePct: pct.InexactFloat64(),
		})
	}

	return series, nil
}
