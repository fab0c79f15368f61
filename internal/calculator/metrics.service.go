package calculator

import (
	"fmt"
	"math"

	"themesim/internal/domain"

	"github.com/montanaflynn/stats"
)

type PerformanceMetrics struct {
	AnnualizedStdev  float64
	AnnualizedReturn float64
	SharpeRatio      float64
	MaxDrawdownPct   float64
}

const tradingDaysPerYear = 252

// CalculateMetrics derives summary statistics from a cumulative return
// series. It assumes the series covers a meaningful span - a handful of
// points produces a technically correct but noisy stdev.
func CalculateMetrics(series []domain.ReturnPoint) (*PerformanceMetrics, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("cannot calculate metrics on < 2 return points")
	}

	returns := dailyReturns(series)

	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate stdev: %w", err)
	}
	annualizedStdev := stdev * math.Sqrt(tradingDaysPerYear)

	startValue := 1 + series[0].ValuePct/100
	endValue := 1 + series[len(series)-1].ValuePct/100
	numHours := series[len(series)-1].Date.Sub(series[0].Date).Hours()
	numYears := numHours / (365 * 24)
	if numYears <= 0 || startValue <= 0 {
		return nil, fmt.Errorf("cannot annualize over %f years", numYears)
	}
	annualizedReturn := math.Pow(endValue/startValue, 1/numYears) - 1

	sharpeRatio := 0.0
	if stdev > 0 {
		sharpeRatio = annualizedReturn / annualizedStdev
	}

	return &PerformanceMetrics{
		AnnualizedStdev:  annualizedStdev,
		AnnualizedReturn: annualizedReturn,
		SharpeRatio:      sharpeRatio,
		MaxDrawdownPct:   maxDrawdown(series),
	}, nil
}

// dailyReturns converts the cumulative series into point-to-point percent
// returns. Each cumulative pct maps back to a value multiple of the
// purchase-date value, so the ratio of consecutive multiples is the day's
// return.
func dailyReturns(series []domain.ReturnPoint) []float64 {
	returns := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		prev := 1 + series[i-1].ValuePct/100
		cur := 1 + series[i].ValuePct/100
		if prev <= 0 {
			continue
		}
		returns = append(returns, (cur/prev-1)*100)
	}
	return returns
}

func maxDrawdown(series []domain.ReturnPoint) float64 {
	peak := 1 + series[0].ValuePct/100
	worst := 0.0
	for _, point := range series {
		value := 1 + point.ValuePct/100
		if value > peak {
			peak = value
		}
		if peak > 0 {
			drawdown := (value - peak) / peak * 100
			if drawdown < worst {
				worst = drawdown
			}
		}
	}
	return worst
}
