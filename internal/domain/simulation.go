package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SimulationRequest describes one simulation run: how much to invest and
// when the hypothetical purchase happened. WholeShares switches the
// allocator from exact fractional shares to integer shares plus a greedy
// residual-cash deployment pass.
type SimulationRequest struct {
	Capital      decimal.Decimal
	PurchaseDate time.Time
	WholeShares  bool
}

// PositionResult is the derived record for a single asset. ComputeAllocation
// fills everything through SharesHeld; ComputeCurrentValue fills the rest.
// No rounding is applied here - display rounding is the caller's problem.
type PositionResult struct {
	Ticker string
	Name   string
	Sector string
	Weight float64

	AllocatedCapital decimal.Decimal
	PurchasePrice    decimal.Decimal
	SharesHeld       decimal.Decimal

	CurrentPrice decimal.Decimal
	CurrentValue decimal.Decimal
	GainLoss     decimal.Decimal
	ReturnPct    decimal.Decimal
}

type PortfolioSummary struct {
	TotalInvested     decimal.Decimal
	TotalCurrentValue decimal.Decimal
	TotalGainLoss     decimal.Decimal
	TotalReturnPct    decimal.Decimal
}

// ReturnPoint is one sample of a return-over-time series: the cumulative
// percent return relative to the purchase-date value.
type ReturnPoint struct {
	Date     time.Time
	ValuePct float64
}

// PurchaseEvent records one extra share bought while deploying residual
// cash in whole-share mode.
type PurchaseEvent struct {
	Ticker        string
	UnitPrice     decimal.Decimal
	CashBefore    decimal.Decimal
	CashAfter     decimal.Decimal
	GapBefore     decimal.Decimal
	GapAfter      decimal.Decimal
	QuantityDelta int64
}
