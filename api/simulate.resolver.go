package api

import (
	"themesim/internal/domain"
	"themesim/internal/logger"
	"themesim/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type SimulateRequest struct {
	Capital      float64 `json:"capital"`
	PurchaseDate string  `json:"purchaseDate"`
	WholeShares  bool    `json:"wholeShares"`
}

type PositionResponse struct {
	Ticker           string  `json:"ticker"`
	Name             string  `json:"name"`
	Sector           string  `json:"sector"`
	Weight           float64 `json:"weight"`
	AllocatedCapital float64 `json:"allocatedCapital"`
	PurchasePrice    float64 `json:"purchasePrice"`
	SharesHeld       float64 `json:"sharesHeld"`
	CurrentPrice     float64 `json:"currentPrice"`
	CurrentValue     float64 `json:"currentValue"`
	GainLoss         float64 `json:"gainLoss"`
	ReturnPct        float64 `json:"returnPct"`
}

type SummaryResponse struct {
	TotalInvested     float64 `json:"totalInvested"`
	TotalCurrentValue float64 `json:"totalCurrentValue"`
	TotalGainLoss     float64 `json:"totalGainLoss"`
	TotalReturnPct    float64 `json:"totalReturnPct"`
}

type PurchaseEventResponse struct {
	Ticker     string  `json:"ticker"`
	UnitPrice  float64 `json:"unitPrice"`
	CashBefore float64 `json:"cashBefore"`
	CashAfter  float64 `json:"cashAfter"`
	GapBefore  float64 `json:"gapBefore"`
	GapAfter   float64 `json:"gapAfter"`
}

type MetricsResponse struct {
	AnnualizedStdev  float64 `json:"annualizedStdev"`
	AnnualizedReturn float64 `json:"annualizedReturn"`
	SharpeRatio      float64 `json:"sharpeRatio"`
	MaxDrawdownPct   float64 `json:"maxDrawdownPct"`
}

type SimulateResponse struct {
	Positions    []PositionResponse      `json:"positions"`
	Summary      SummaryResponse         `json:"summary"`
	Events       []PurchaseEventResponse `json:"purchaseEvents,omitempty"`
	InitialCash  *float64                `json:"initialCash,omitempty"`
	LeftoverCash *float64                `json:"leftoverCash,omitempty"`
	Metrics      *MetricsResponse        `json:"metrics,omitempty"`
	Warnings     []string                `json:"warnings,omitempty"`
}

func (m *ApiHandler) simulate(c *gin.Context) {
	profile, endProfile := domain.NewProfile()
	ctx := domain.NewCtxWithProfile(c.Request.Context(), profile)
	defer endProfile()

	var requestBody SimulateRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	req, err := m.parseSimulationRequest(requestBody.Capital, requestBody.PurchaseDate, requestBody.WholeShares)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	result, err := m.SimulationService.Run(ctx, req)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	profile.End()
	if profileJson, err := profile.ToJsonBytes(); err == nil {
		logger.FromContext(ctx).Debugw("simulate profile", "profile", string(profileJson))
	}

	c.JSON(200, toSimulateResponse(result))
}

// display rounding happens here, at the presentation boundary; the engine
// keeps full precision
func displayMoney(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func displayShares(d decimal.Decimal) float64 {
	return d.Round(6).InexactFloat64()
}

func toSimulateResponse(result *service.SimulationResult) SimulateResponse {
	response := SimulateResponse{
		Positions: make([]PositionResponse, 0, len(result.Positions)),
		Summary: SummaryResponse{
			TotalInvested:     displayMoney(result.Summary.TotalInvested),
			TotalCurrentValue: displayMoney(result.Summary.TotalCurrentValue),
			TotalGainLoss:     displayMoney(result.Summary.TotalGainLoss),
			TotalReturnPct:    displayMoney(result.Summary.TotalReturnPct),
		},
		Warnings: result.Warnings,
	}

	for _, p := range result.Positions {
		response.Positions = append(response.Positions, PositionResponse{
			Ticker:           p.Ticker,
			Name:             p.Name,
			Sector:           p.Sector,
			Weight:           p.Weight,
			AllocatedCapital: displayMoney(p.AllocatedCapital),
			PurchasePrice:    displayMoney(p.PurchasePrice),
			SharesHeld:       displayShares(p.SharesHeld),
			CurrentPrice:     displayMoney(p.CurrentPrice),
			CurrentValue:     displayMoney(p.CurrentValue),
			GainLoss:         displayMoney(p.GainLoss),
			ReturnPct:        displayMoney(p.ReturnPct),
		})
	}

	for _, e := range result.Events {
		response.Events = append(response.Events, PurchaseEventResponse{
			Ticker:     e.Ticker,
			UnitPrice:  displayMoney(e.UnitPrice),
			CashBefore: displayMoney(e.CashBefore),
			CashAfter:  displayMoney(e.CashAfter),
			GapBefore:  displayMoney(e.GapBefore),
			GapAfter:   displayMoney(e.GapAfter),
		})
	}

	if result.InitialCash != nil {
		v := displayMoney(*result.InitialCash)
		response.InitialCash = &v
	}
	if result.LeftoverCash != nil {
		v := displayMoney(*result.LeftoverCash)
		response.LeftoverCash = &v
	}
	if result.Metrics != nil {
		response.Metrics = &MetricsResponse{
			AnnualizedStdev:  result.Metrics.AnnualizedStdev,
			AnnualizedReturn: result.Metrics.AnnualizedReturn,
			SharpeRatio:      result.Metrics.SharpeRatio,
			MaxDrawdownPct:   result.Metrics.MaxDrawdownPct,
		}
	}

	return response
}
