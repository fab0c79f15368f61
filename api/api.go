package api

import (
	"errors"
	"fmt"
	"time"

	"themesim/internal/config"
	"themesim/internal/domain"
	"themesim/internal/logger"
	"themesim/internal/repository"
	"themesim/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ApiHandler struct {
	SimulationService service.SimulationService
	GptRepository     repository.GptRepository
	Config            *config.Config
}

func (m *ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.requestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to themesim"})
	})
	router.POST("/simulate", m.simulate)
	router.POST("/returnTimeseries", m.returnTimeseries)
	router.POST("/describeSimulation", m.describeSimulation)

	return router
}

func (m *ApiHandler) StartApi(port int) error {
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

// requestMiddleware tags every request with an id and logs method, route,
// status and duration on the way out.
func (m *ApiHandler) requestMiddleware(ctx *gin.Context) {
	requestID := uuid.NewString()
	ctx.Header("X-Request-ID", requestID)

	log := logger.FromContext(ctx.Request.Context()).With("requestID", requestID)
	ctx.Request = ctx.Request.WithContext(logger.NewCtx(ctx.Request.Context(), log))

	start := time.Now().UTC()
	ctx.Next()

	log.Infow("handled request",
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
		"status", ctx.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
	)
}

// returnErrorJson maps the failure taxonomy onto status codes: caller
// mistakes are 400, data-availability problems are 422, everything else is
// a 500.
func returnErrorJson(err error, c *gin.Context) {
	var (
		invalidRequest domain.InvalidRequestError
		missingPrice   domain.MissingPriceDataError
		invalidPrice   domain.InvalidPriceDataError
	)
	code := 500
	switch {
	case errors.As(err, &invalidRequest):
		code = 400
	case errors.As(err, &missingPrice), errors.As(err, &invalidPrice):
		code = 422
	}
	returnErrorJsonCode(err, c, code)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.FromContext(c.Request.Context()).Error(err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

// parseSimulationRequest converts the shared request body fields into a
// domain request, applying config defaults for omitted values.
func (m *ApiHandler) parseSimulationRequest(capital float64, purchaseDate string, wholeShares bool) (domain.SimulationRequest, error) {
	req := domain.SimulationRequest{
		Capital:     decimal.NewFromFloat(capital),
		WholeShares: wholeShares,
	}
	if purchaseDate == "" {
		req.PurchaseDate = m.Config.PurchaseDate(time.Now().UTC())
		return req, nil
	}
	parsed, err := time.Parse(time.DateOnly, purchaseDate)
	if err != nil {
		return req, domain.InvalidRequestError{
			Field:  "purchaseDate",
			Reason: fmt.Sprintf("expected YYYY-MM-DD, got %q", purchaseDate),
		}
	}
	req.PurchaseDate = parsed
	return req, nil
}
