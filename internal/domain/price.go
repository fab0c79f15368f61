package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AssetPrice struct {
	Ticker string
	Price  decimal.Decimal
	Date   time.Time
}
