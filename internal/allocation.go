package internal

import (
	"themesim/internal/domain"

	"github.com/shopspring/decimal"
)

// how far the weight sum may drift from 1.0 before we treat the portfolio
// configuration as broken rather than silently renormalizing
const weightSumTolerance = 0.001

var oneHundred = decimal.NewFromInt(100)

// ValidateAssets checks the portfolio configuration: non-empty, every weight
// in (0, 1], and the sum within tolerance of 1.0.
func ValidateAssets(assets []domain.AssetDefinition) error {
	if len(assets) == 0 {
		return domain.InvalidConfigurationError{Reason: "no assets configured"}
	}
	sum := decimal.Zero
	for _, a := range assets {
		w := decimal.NewFromFloat(a.Weight)
		if w.LessThanOrEqual(decimal.Zero) || w.GreaterThan(decimal.NewFromInt(1)) {
			return domain.InvalidConfigurationError{
				Ticker: a.Ticker,
				Reason: "weight must be in (0, 1]",
			}
		}
		sum = sum.Add(w)
	}
	drift := sum.Sub(decimal.NewFromInt(1)).Abs()
	if drift.GreaterThan(decimal.NewFromFloat(weightSumTolerance)) {
		return domain.InvalidConfigurationError{
			Reason: "weights sum to " + sum.String() + ", expected 1.0",
		}
	}
	return nil
}

// ComputeAllocation distributes the requested capital across the assets
// proportionally to weight and converts each slice into shares at the
// purchase-date price. Fractional shares are kept at full precision.
//
// The result preserves the order of assets, and the operation is
// all-or-nothing: a missing or non-positive price for any ticker fails the
// whole computation without producing partial positions.
func ComputeAllocation(
	req domain.SimulationRequest,
	assets []domain.AssetDefinition,
	purchasePrices map[string]decimal.Decimal,
) ([]domain.PositionResult, error) {
	if err := ValidateAssets(assets); err != nil {
		return nil, err
	}

	positions := make([]domain.PositionResult, 0, len(assets))
	for _, asset := range assets {
		price, ok := purchasePrices[asset.Ticker]
		if !ok {
			return nil, domain.MissingPriceDataError{Ticker: asset.Ticker, Date: req.PurchaseDate}
		}
		if price.LessThanOrEqual(decimal.Zero) {
			return nil, domain.InvalidPriceDataError{Ticker: asset.Ticker, Price: price}
		}

		allocated := req.Capital.Mul(decimal.NewFromFloat(asset.Weight))
		shares := allocated.Div(price)

		positions = append(positions, domain.PositionResult{
			Ticker:           asset.Ticker,
			Name:             asset.Name,
			Sector:           asset.Sector,
			Weight:           asset.Weight,
			AllocatedCapital: allocated,
			PurchasePrice:    price,
			SharesHeld:       shares,
		})
	}

	return positions, nil
}

// ComputeCurrentValue marks every position to the supplied current prices,
// filling CurrentPrice, CurrentValue, GainLoss and ReturnPct. Like
// ComputeAllocation it is all-or-nothing.
func ComputeCurrentValue(
	positions []domain.PositionResult,
	currentPrices map[string]decimal.Decimal,
) ([]domain.PositionResult, error) {
	out := make([]domain.PositionResult, 0, len(positions))
	for _, p := range positions {
		price, ok := currentPrices[p.Ticker]
		if !ok {
			return nil, domain.MissingPriceDataError{Ticker: p.Ticker}
		}
		if price.LessThanOrEqual(decimal.Zero) {
			return nil, domain.InvalidPriceDataError{Ticker: p.Ticker, Price: price}
		}
		if p.AllocatedCapital.LessThanOrEqual(decimal.Zero) {
			if p.SharesHeld.IsZero() && p.AllocatedCapital.IsZero() {
				// whole-share mode: one share cost more than the slice
				p.CurrentPrice = price
				p.CurrentValue = decimal.Zero
				p.GainLoss = decimal.Zero
				p.ReturnPct = decimal.Zero
				out = append(out, p)
				continue
			}
			// cannot happen when capital > 0 and weights were validated
			return nil, domain.InvalidConfigurationError{
				Ticker: p.Ticker,
				Reason: "allocated capital is not positive",
			}
		}

		p.CurrentPrice = price
		p.CurrentValue = p.SharesHeld.Mul(price)
		p.GainLoss = p.CurrentValue.Sub(p.AllocatedCapital)
		p.ReturnPct = p.GainLoss.Div(p.AllocatedCapital).Mul(oneHundred)
		out = append(out, p)
	}

	return out, nil
}

// Summarize reduces fully populated positions into portfolio totals.
func Summarize(positions []domain.PositionResult) (domain.PortfolioSummary, error) {
	summary := domain.PortfolioSummary{
		TotalInvested:     decimal.Zero,
		TotalCurrentValue: decimal.Zero,
		TotalGainLoss:     decimal.Zero,
		TotalReturnPct:    decimal.Zero,
	}
	for _, p := range positions {
		summary.TotalInvested = summary.TotalInvested.Add(p.AllocatedCapital)
		summary.TotalCurrentValue = summary.TotalCurrentValue.Add(p.CurrentValue)
	}
	summary.TotalGainLoss = summary.TotalCurrentValue.Sub(summary.TotalInvested)

	if summary.TotalInvested.LessThanOrEqual(decimal.Zero) {
		return summary, domain.ErrZeroInvested
	}
	summary.TotalReturnPct = summary.TotalGainLoss.Div(summary.TotalInvested).Mul(oneHundred)

	return summary, nil
}
