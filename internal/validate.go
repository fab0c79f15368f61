package internal

import (
	"time"

	"themesim/internal/domain"
	"themesim/internal/util"

	"github.com/shopspring/decimal"
)

// ValidateRequest bounds-checks a simulation request against the configured
// capital minimum and the clock. now is injected so callers can pin it in
// tests.
func ValidateRequest(req domain.SimulationRequest, minCapital decimal.Decimal, now time.Time) error {
	if req.Capital.LessThan(minCapital) {
		return domain.InvalidRequestError{
			Field:  "capital",
			Reason: "must be at least " + minCapital.String(),
		}
	}
	if !util.TruncateToDay(req.PurchaseDate).Before(util.TruncateToDay(now)) {
		return domain.InvalidRequestError{
			Field:  "purchaseDate",
			Reason: "must be strictly before the current date",
		}
	}
	return nil
}
