package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"themesim/internal/config"
	"themesim/internal/domain"
	"themesim/internal/service"
	mock_service "themesim/internal/service/mocks"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testHandler(t *testing.T) (*ApiHandler, *mock_service.MockSimulationService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	simulationService := mock_service.NewMockSimulationService(ctrl)

	handler := &ApiHandler{
		SimulationService: simulationService,
		Config: &config.Config{
			MinCapital:          1000,
			DefaultPurchaseDate: "2024-01-02",
			Assets: []config.AssetConfig{
				{Name: "Asset A", Ticker: "A", Sector: "Tech", Weight: 0.6},
				{Name: "Asset B", Ticker: "B", Sector: "Industrials", Weight: 0.4},
			},
		},
	}
	return handler, simulationService
}

func post(t *testing.T, handler *ApiHandler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.InitializeRouterEngine().ServeHTTP(w, req)
	return w
}

func sampleResult() *service.SimulationResult {
	return &service.SimulationResult{
		Positions: []domain.PositionResult{
			{
				Ticker:           "A",
				Name:             "Asset A",
				Sector:           "Tech",
				Weight:           0.6,
				AllocatedCapital: decimal.NewFromInt(6000),
				PurchasePrice:    decimal.NewFromInt(10),
				SharesHeld:       decimal.NewFromInt(600),
				CurrentPrice:     decimal.NewFromInt(12),
				CurrentValue:     decimal.NewFromInt(7200),
				GainLoss:         decimal.NewFromInt(1200),
				ReturnPct:        decimal.NewFromInt(20),
			},
		},
		Summary: domain.PortfolioSummary{
			TotalInvested:     decimal.NewFromInt(10000),
			TotalCurrentValue: decimal.NewFromInt(10800),
			TotalGainLoss:     decimal.NewFromInt(800),
			TotalReturnPct:    decimal.NewFromInt(8),
		},
		Series: map[string][]domain.ReturnPoint{
			"A": {
				{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), ValuePct: 0},
				{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), ValuePct: 10},
			},
		},
		PortfolioSeries: []domain.ReturnPoint{
			{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), ValuePct: 0},
			{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), ValuePct: 4},
		},
	}
}

func Test_simulate(t *testing.T) {
	t.Run("successful run", func(t *testing.T) {
		handler, simulationService := testHandler(t)
		simulationService.EXPECT().
			Run(gomock.Any(), gomock.Any()).
			Return(sampleResult(), nil)

		w := post(t, handler, "/simulate", SimulateRequest{
			Capital:      10000,
			PurchaseDate: "2024-01-02",
		})
		require.Equal(t, 200, w.Code)
		require.NotEmpty(t, w.Header().Get("X-Request-ID"))

		var response SimulateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

		require.Len(t, response.Positions, 1)
		require.Equal(t, "A", response.Positions[0].Ticker)
		require.Equal(t, 7200.0, response.Positions[0].CurrentValue)
		require.Equal(t, 20.0, response.Positions[0].ReturnPct)
		require.Equal(t, 10800.0, response.Summary.TotalCurrentValue)
		require.Equal(t, 8.0, response.Summary.TotalReturnPct)
	})

	t.Run("omitted purchase date falls back to config default", func(t *testing.T) {
		handler, simulationService := testHandler(t)

		var got domain.SimulationRequest
		simulationService.EXPECT().
			Run(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req domain.SimulationRequest) (*service.SimulationResult, error) {
				got = req
				return sampleResult(), nil
			})

		w := post(t, handler, "/simulate", SimulateRequest{Capital: 10000})
		require.Equal(t, 200, w.Code)
		require.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), got.PurchaseDate)
	})

	t.Run("malformed purchase date is a 400", func(t *testing.T) {
		handler, _ := testHandler(t)
		w := post(t, handler, "/simulate", SimulateRequest{
			Capital:      10000,
			PurchaseDate: "01/02/2024",
		})
		require.Equal(t, 400, w.Code)
		require.Contains(t, w.Body.String(), "expected YYYY-MM-DD")
	})

	t.Run("invalid request from the engine is a 400", func(t *testing.T) {
		handler, simulationService := testHandler(t)
		simulationService.EXPECT().
			Run(gomock.Any(), gomock.Any()).
			Return(nil, domain.InvalidRequestError{Field: "capital", Reason: "below minimum"})

		w := post(t, handler, "/simulate", SimulateRequest{Capital: 1, PurchaseDate: "2024-01-02"})
		require.Equal(t, 400, w.Code)
	})

	t.Run("missing price data is a 422", func(t *testing.T) {
		handler, simulationService := testHandler(t)
		simulationService.EXPECT().
			Run(gomock.Any(), gomock.Any()).
			Return(nil, domain.MissingPriceDataError{Ticker: "A"})

		w := post(t, handler, "/simulate", SimulateRequest{Capital: 10000, PurchaseDate: "2024-01-02"})
		require.Equal(t, 422, w.Code)
	})
}

func Test_returnTimeseries(t *testing.T) {
	t.Run("all tickers plus the aggregate", func(t *testing.T) {
		handler, simulationService := testHandler(t)
		simulationService.EXPECT().
			Run(gomock.Any(), gomock.Any()).
			Return(sampleResult(), nil)

		w := post(t, handler, "/returnTimeseries", ReturnTimeseriesRequest{
			Capital:      10000,
			PurchaseDate: "2024-01-02",
		})
		require.Equal(t, 200, w.Code)

		var response ReturnTimeseriesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

		require.Len(t, response.Series["A"], 2)
		require.Equal(t, "2024-01-03", response.Series["A"][1].Date)
		require.Equal(t, 10.0, response.Series["A"][1].ValuePct)
		require.Len(t, response.Portfolio, 2)
		require.Equal(t, 4.0, response.Portfolio[1].ValuePct)
	})

	t.Run("unknown ticker is a 422", func(t *testing.T) {
		handler, simulationService := testHandler(t)
		simulationService.EXPECT().
			Run(gomock.Any(), gomock.Any()).
			Return(sampleResult(), nil)

		w := post(t, handler, "/returnTimeseries", ReturnTimeseriesRequest{
			Capital:      10000,
			PurchaseDate: "2024-01-02",
			Ticker:       "ZZZ",
		})
		require.Equal(t, 422, w.Code)
	})
}
