package repository

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// SnapshotRepository loads the purchase-date price snapshot CSV. A snapshot
// lets a simulation reproduce the exact entry prices of a historical run
// without re-fetching them; tickers missing from the file simply fall back
// to the live price source.
type SnapshotRepository interface {
	LoadPurchasePrices(path string, tickers []string) (map[string]decimal.Decimal, []string, error)
}

type snapshotRow struct {
	Ticker string  `csv:"ticker"`
	Price  float64 `csv:"price"`
}

func NewSnapshotRepository() SnapshotRepository {
	return snapshotRepositoryHandler{}
}

type snapshotRepositoryHandler struct{}

// LoadPurchasePrices returns the prices found for the requested tickers and
// a warning per ticker absent from the snapshot.
func (h snapshotRepositoryHandler) LoadPurchasePrices(path string, tickers []string) (map[string]decimal.Decimal, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open snapshot %s: %w", path, err)
	}
	defer f.Close()

	rows := []snapshotRow{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}

	bySymbol := map[string]decimal.Decimal{}
	for _, row := range rows {
		bySymbol[row.Ticker] = decimal.NewFromFloat(row.Price)
	}

	prices := map[string]decimal.Decimal{}
	warnings := []string{}
	for _, ticker := range tickers {
		price, ok := bySymbol[ticker]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("ticker %s not in snapshot %s", ticker, path))
			continue
		}
		prices[ticker] = price
	}

	return prices, warnings, nil
}
