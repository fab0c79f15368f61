package api

import (
	"themesim/internal/domain"

	"github.com/gin-gonic/gin"
)

type ReturnTimeseriesRequest struct {
	Capital      float64 `json:"capital"`
	PurchaseDate string  `json:"purchaseDate"`
	WholeShares  bool    `json:"wholeShares"`

	// restrict to one ticker; empty means all tickers plus the aggregate
	Ticker string `json:"ticker"`
}

type ReturnPointResponse struct {
	Date     string  `json:"date"`
	ValuePct float64 `json:"valuePct"`
}

type ReturnTimeseriesResponse struct {
	Series    map[string][]ReturnPointResponse `json:"series"`
	Portfolio []ReturnPointResponse            `json:"portfolio,omitempty"`
	Warnings  []string                         `json:"warnings,omitempty"`
}

func (m *ApiHandler) returnTimeseries(c *gin.Context) {
	profile, endProfile := domain.NewProfile()
	ctx := domain.NewCtxWithProfile(c.Request.Context(), profile)
	defer endProfile()

	var requestBody ReturnTimeseriesRequest
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

	response := ReturnTimeseriesResponse{
		Series:   map[string][]ReturnPointResponse{},
		Warnings: result.Warnings,
	}

	if requestBody.Ticker != "" {
		series, ok := result.Series[requestBody.Ticker]
		if !ok {
			returnErrorJson(domain.MissingPriceDataError{Ticker: requestBody.Ticker}, c)
			return
		}
		response.Series[requestBody.Ticker] = toReturnPoints(series)
		c.JSON(200, response)
		return
	}

	for ticker, series := range result.Series {
		response.Series[ticker] = toReturnPoints(series)
	}
	response.Portfolio = toReturnPoints(result.PortfolioSeries)

	c.JSON(200, response)
}

func toReturnPoints(series []domain.ReturnPoint) []ReturnPointResponse {
	out := make([]ReturnPointResponse, 0, len(series))
	for _, point := range series {
		out = append(out, ReturnPointResponse{
			Date:     point.Date.Format("2006-01-02"),
			ValuePct: point.ValuePct,
		})
	}
	return out
}
