package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Every failure the engine can produce is a data-availability or
// configuration problem. Nothing here is retryable and nothing is partial:
// an error means no results were produced for the request.

type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Reason)
}

type InvalidConfigurationError struct {
	Ticker string
	Reason string
}

func (e InvalidConfigurationError) Error() string {
	if e.Ticker == "" {
		return fmt.Sprintf("invalid configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid configuration for %s: %s", e.Ticker, e.Reason)
}

type MissingPriceDataError struct {
	Ticker string
	Date   time.Time
}

func (e MissingPriceDataError) Error() string {
	if e.Date.IsZero() {
		return fmt.Sprintf("missing price data for %s", e.Ticker)
	}
	return fmt.Sprintf("missing price data for %s on %s", e.Ticker, e.Date.Format(time.DateOnly))
}

type InvalidPriceDataError struct {
	Ticker string
	Price  decimal.Decimal
}

func (e InvalidPriceDataError) Error() string {
	return fmt.Sprintf("invalid price %s for %s", e.Price.String(), e.Ticker)
}

// ErrZeroInvested guards the total-return division. It should be unreachable
// while the capital minimum and positive-weight checks hold.
var ErrZeroInvested = errors.New("total invested capital is zero")
