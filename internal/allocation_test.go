package internal

import (
	"errors"
	"testing"
	"time"

	"themesim/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func twoAssetPortfolio() []domain.AssetDefinition {
	return []domain.AssetDefinition{
		{Name: "Asset A", Ticker: "A", Sector: "Tech", Weight: 0.6},
		{Name: "Asset B", Ticker: "B", Sector: "Industrials", Weight: 0.4},
	}
}

func prices(in map[string]float64) map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}
	for ticker, price := range in {
		out[ticker] = decimal.NewFromFloat(price)
	}
	return out
}

func Test_ComputeAllocation(t *testing.T) {
	req := domain.SimulationRequest{
		Capital:      decimal.NewFromInt(10000),
		PurchaseDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	t.Run("allocation conservation", func(t *testing.T) {
		positions, err := ComputeAllocation(req, twoAssetPortfolio(), prices(map[string]float64{"A": 10, "B": 20}))
		require.NoError(t, err)

		total := decimal.Zero
		for _, p := range positions {
			total = total.Add(p.AllocatedCapital)
		}
		require.InDelta(t, 10000, total.InexactFloat64(), 1e-6)
	})

	t.Run("order preserved regardless of map iteration", func(t *testing.T) {
		assets := []domain.AssetDefinition{
			{Ticker: "Z", Weight: 0.25},
			{Ticker: "A", Weight: 0.25},
			{Ticker: "M", Weight: 0.25},
			{Ticker: "B", Weight: 0.25},
		}
		priceMap := prices(map[string]float64{"Z": 1, "A": 2, "M": 3, "B": 4})

		for i := 0; i < 10; i++ {
			positions, err := ComputeAllocation(req, assets, priceMap)
			require.NoError(t, err)

			got := []string{}
			for _, p := range positions {
				got = append(got, p.Ticker)
			}
			require.Equal(t, []string{"Z", "A", "M", "B"}, got)
		}
	})

	t.Run("missing price fails naming the ticker", func(t *testing.T) {
		positions, err := ComputeAllocation(req, twoAssetPortfolio(), prices(map[string]float64{"A": 10}))
		require.Nil(t, positions)

		var missing domain.MissingPriceDataError
		require.ErrorAs(t, err, &missing)
		require.Equal(t, "B", missing.Ticker)
	})

	t.Run("non-positive price rejected", func(t *testing.T) {
		_, err := ComputeAllocation(req, twoAssetPortfolio(), prices(map[string]float64{"A": 10, "B": 0}))

		var invalid domain.InvalidPriceDataError
		require.ErrorAs(t, err, &invalid)
		require.Equal(t, "B", invalid.Ticker)
	})

	t.Run("weights must sum to 1", func(t *testing.T) {
		assets := []domain.AssetDefinition{
			{Ticker: "A", Weight: 0.6},
			{Ticker: "B", Weight: 0.3},
		}
		_, err := ComputeAllocation(req, assets, prices(map[string]float64{"A": 10, "B": 20}))

		var invalid domain.InvalidConfigurationError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("small weight drift tolerated", func(t *testing.T) {
		assets := []domain.AssetDefinition{
			{Ticker: "A", Weight: 0.6},
			{Ticker: "B", Weight: 0.4005},
		}
		_, err := ComputeAllocation(req, assets, prices(map[string]float64{"A": 10, "B": 20}))
		require.NoError(t, err)
	})

	t.Run("non-positive weight rejected", func(t *testing.T) {
		assets := []domain.AssetDefinition{
			{Ticker: "A", Weight: 1.2},
			{Ticker: "B", Weight: -0.2},
		}
		_, err := ComputeAllocation(req, assets, prices(map[string]float64{"A": 10, "B": 20}))

		var invalid domain.InvalidConfigurationError
		require.ErrorAs(t, err, &invalid)
		require.Equal(t, "A", invalid.Ticker)
	})

	t.Run("no assets rejected", func(t *testing.T) {
		_, err := ComputeAllocation(req, nil, prices(map[string]float64{}))

		var invalid domain.InvalidConfigurationError
		require.ErrorAs(t, err, &invalid)
	})
}

func Test_ComputeCurrentValue(t *testing.T) {
	req := domain.SimulationRequest{
		Capital:      decimal.NewFromInt(10000),
		PurchaseDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	t.Run("zero gain when prices unchanged", func(t *testing.T) {
		purchasePrices := prices(map[string]float64{"A": 10, "B": 20})
		positions, err := ComputeAllocation(req, twoAssetPortfolio(), purchasePrices)
		require.NoError(t, err)

		positions, err = ComputeCurrentValue(positions, purchasePrices)
		require.NoError(t, err)

		for _, p := range positions {
			require.True(t, p.GainLoss.IsZero(), "gainLoss for %s should be zero, got %s", p.Ticker, p.GainLoss)
			require.True(t, p.ReturnPct.IsZero())
		}

		summary, err := Summarize(positions)
		require.NoError(t, err)
		require.True(t, summary.TotalReturnPct.IsZero())
	})

	t.Run("gains proportional to weights at equal price ratios", func(t *testing.T) {
		positions, err := ComputeAllocation(req, twoAssetPortfolio(), prices(map[string]float64{"A": 10, "B": 20}))
		require.NoError(t, err)

		// both up 20%
		positions, err = ComputeCurrentValue(positions, prices(map[string]float64{"A": 12, "B": 24}))
		require.NoError(t, err)

		ratio := positions[0].GainLoss.Div(positions[1].GainLoss)
		require.InDelta(t, 0.6/0.4, ratio.InexactFloat64(), 1e-9)
	})

	t.Run("missing current price fails naming the ticker", func(t *testing.T) {
		positions, err := ComputeAllocation(req, twoAssetPortfolio(), prices(map[string]float64{"A": 10, "B": 20}))
		require.NoError(t, err)

		_, err = ComputeCurrentValue(positions, prices(map[string]float64{"A": 12}))

		var missing domain.MissingPriceDataError
		require.ErrorAs(t, err, &missing)
		require.Equal(t, "B", missing.Ticker)
	})

	t.Run("end to end example", func(t *testing.T) {
		positions, err := ComputeAllocation(req, twoAssetPortfolio(), prices(map[string]float64{"A": 10, "B": 20}))
		require.NoError(t, err)

		positions, err = ComputeCurrentValue(positions, prices(map[string]float64{"A": 12, "B": 18}))
		require.NoError(t, err)
		require.Len(t, positions, 2)

		a := positions[0]
		require.Equal(t, "A", a.Ticker)
		require.InDelta(t, 6000, a.AllocatedCapital.InexactFloat64(), 1e-9)
		require.InDelta(t, 600, a.SharesHeld.InexactFloat64(), 1e-9)
		require.InDelta(t, 7200, a.CurrentValue.InexactFloat64(), 1e-9)
		require.InDelta(t, 1200, a.GainLoss.InexactFloat64(), 1e-9)
		require.InDelta(t, 20.0, a.ReturnPct.InexactFloat64(), 1e-9)

		b := positions[1]
		require.Equal(t, "B", b.Ticker)
		require.InDelta(t, 4000, b.AllocatedCapital.InexactFloat64(), 1e-9)
		require.InDelta(t, 200, b.SharesHeld.InexactFloat64(), 1e-9)
		require.InDelta(t, 3600, b.CurrentValue.InexactFloat64(), 1e-9)
		require.InDelta(t, -400, b.GainLoss.InexactFloat64(), 1e-9)
		require.InDelta(t, -10.0, b.ReturnPct.InexactFloat64(), 1e-9)

		summary, err := Summarize(positions)
		require.NoError(t, err)
		require.InDelta(t, 10000, summary.TotalInvested.InexactFloat64(), 1e-9)
		require.InDelta(t, 10800, summary.TotalCurrentValue.InexactFloat64(), 1e-9)
		require.InDelta(t, 800, summary.TotalGainLoss.InexactFloat64(), 1e-9)
		require.InDelta(t, 8.0, summary.TotalReturnPct.InexactFloat64(), 1e-9)
	})
}

func Test_Summarize(t *testing.T) {
	t.Run("zero invested guard", func(t *testing.T) {
		_, err := Summarize([]domain.PositionResult{})
		require.True(t, errors.Is(err, domain.ErrZeroInvested))
	})
}

func Test_ValidateRequest(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	minCapital := decimal.NewFromInt(1000)

	t.Run("valid request", func(t *testing.T) {
		err := ValidateRequest(domain.SimulationRequest{
			Capital:      decimal.NewFromInt(1000),
			PurchaseDate: time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
		}, minCapital, now)
		require.NoError(t, err)
	})

	t.Run("capital below minimum", func(t *testing.T) {
		err := ValidateRequest(domain.SimulationRequest{
			Capital:      decimal.NewFromInt(999),
			PurchaseDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		}, minCapital, now)

		var invalid domain.InvalidRequestError
		require.ErrorAs(t, err, &invalid)
		require.Equal(t, "capital", invalid.Field)
	})

	t.Run("purchase date today rejected", func(t *testing.T) {
		err := ValidateRequest(domain.SimulationRequest{
			Capital:      decimal.NewFromInt(5000),
			PurchaseDate: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		}, minCapital, now)

		var invalid domain.InvalidRequestError
		require.ErrorAs(t, err, &invalid)
		require.Equal(t, "purchaseDate", invalid.Field)
	})

	t.Run("purchase date in the future rejected", func(t *testing.T) {
		err := ValidateRequest(domain.SimulationRequest{
			Capital:      decimal.NewFromInt(5000),
			PurchaseDate: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		}, minCapital, now)

		var invalid domain.InvalidRequestError
		require.ErrorAs(t, err, &invalid)
	})
}
