package internal

import (
	"themesim/internal/domain"

	"github.com/shopspring/decimal"
)

// WholeShareAllocation is the result of the integer-share allocator:
// positions floored to whole shares, the extra purchases made while
// deploying residual cash, and the cash left over at each stage.
type WholeShareAllocation struct {
	Positions    []domain.PositionResult
	Events       []domain.PurchaseEvent
	InitialCash  decimal.Decimal
	LeftoverCash decimal.Decimal
}

// AllocateWholeShares distributes capital like ComputeAllocation but floors
// every position to an integer share count, then deploys the remaining cash
// one share at a time: each round buys the affordable asset whose invested
// amount lags its weight target by the largest dollar gap, preferring the
// cheaper share on ties. The loop stops when no affordable asset is still
// under target.
//
// AllocatedCapital is set to what was actually spent, so downstream
// valuation and summaries stay consistent with the cash accounting.
func AllocateWholeShares(
	req domain.SimulationRequest,
	assets []domain.AssetDefinition,
	purchasePrices map[string]decimal.Decimal,
) (*WholeShareAllocation, error) {
	exact, err := ComputeAllocation(req, assets, purchasePrices)
	if err != nil {
		return nil, err
	}

	targets := make([]decimal.Decimal, len(exact))
	quantities := make([]decimal.Decimal, len(exact))
	cash := req.Capital
	minPrice := decimal.Zero

	for i, p := range exact {
		targets[i] = p.AllocatedCapital
		quantities[i] = p.SharesHeld.Floor()
		cash = cash.Sub(quantities[i].Mul(p.PurchasePrice))
		if minPrice.IsZero() || p.PurchasePrice.LessThan(minPrice) {
			minPrice = p.PurchasePrice
		}
	}
	initialCash := cash

	events := []domain.PurchaseEvent{}
	for cash.GreaterThanOrEqual(minPrice) {
		best := -1
		var bestGap decimal.Decimal
		for i, p := range exact {
			if p.PurchasePrice.GreaterThan(cash) {
				continue
			}
			gap := targets[i].Sub(quantities[i].Mul(p.PurchasePrice))
			if best == -1 ||
				gap.GreaterThan(bestGap) ||
				(gap.Equal(bestGap) && p.PurchasePrice.LessThan(exact[best].PurchasePrice)) {
				best = i
				bestGap = gap
			}
		}
		if best == -1 || bestGap.LessThanOrEqual(decimal.Zero) {
			break
		}

		price := exact[best].PurchasePrice
		cashBefore := cash
		quantities[best] = quantities[best].Add(decimal.NewFromInt(1))
		cash = cash.Sub(price)

		events = append(events, domain.PurchaseEvent{
			Ticker:        exact[best].Ticker,
			UnitPrice:     price,
			CashBefore:    cashBefore,
			CashAfter:     cash,
			GapBefore:     bestGap,
			GapAfter:      targets[best].Sub(quantities[best].Mul(price)),
			QuantityDelta: 1,
		})
	}

	positions := make([]domain.PositionResult, len(exact))
	for i, p := range exact {
		p.SharesHeld = quantities[i]
		p.AllocatedCapital = quantities[i].Mul(p.PurchasePrice)
		positions[i] = p
	}

	return &WholeShareAllocation{
		Positions:    positions,
		Events:       events,
		InitialCash:  initialCash,
		LeftoverCash: cash,
	}, nil
}
