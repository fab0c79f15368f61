package api

import (
	"fmt"
	"strings"

	"themesim/internal/domain"
	"themesim/internal/service"

	"github.com/gin-gonic/gin"
)

type DescribeSimulationRequest struct {
	Capital      float64 `json:"capital"`
	PurchaseDate string  `json:"purchaseDate"`
	WholeShares  bool    `json:"wholeShares"`
}

type DescribeSimulationResponse struct {
	Description string `json:"description"`
}

func (m *ApiHandler) describeSimulation(c *gin.Context) {
	profile, endProfile := domain.NewProfile()
	ctx := domain.NewCtxWithProfile(c.Request.Context(), profile)
	defer endProfile()

	if m.GptRepository == nil {
		returnErrorJsonCode(fmt.Errorf("describe endpoint requires an openai api key"), c, 503)
		return
	}

	var requestBody DescribeSimulationRequest
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

	description, err := m.GptRepository.DescribeSimulation(ctx, formatResultText(result))
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, DescribeSimulationResponse{Description: description})
}

// formatResultText renders a simulation result as the plain-text summary
// fed to the description model.
func formatResultText(result *service.SimulationResult) string {
	var b strings.Builder
	for _, p := range result.Positions {
		fmt.Fprintf(&b, "%s (%s): allocated $%s, %s shares, now worth $%s, gain/loss $%s (%s%%)\n",
			p.Ticker,
			p.Sector,
			p.AllocatedCapital.Round(2).String(),
			p.SharesHeld.Round(4).String(),
			p.CurrentValue.Round(2).String(),
			p.GainLoss.Round(2).String(),
			p.ReturnPct.Round(2).String(),
		)
	}
	fmt.Fprintf(&b, "total: invested $%s, now worth $%s, gain/loss $%s (%s%%)\n",
		result.Summary.TotalInvested.Round(2).String(),
		result.Summary.TotalCurrentValue.Round(2).String(),
		result.Summary.TotalGainLoss.Round(2).String(),
		result.Summary.TotalReturnPct.Round(2).String(),
	)
	return b.String()
}
