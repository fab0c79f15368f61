package domain

// AssetDefinition is one entry of the thematic portfolio: a ticker the price
// provider understands, a display name, an informational sector label, and
// the fraction of total capital assigned to it. Weights for a portfolio are
// fixed at configuration time and are expected to sum to 1.0.
type AssetDefinition struct {
	Name   string
	Ticker string
	Sector string
	Weight float64
}

func Tickers(assets []AssetDefinition) []string {
	tickers := make([]string, 0, len(assets))
	for _, a := range assets {
		tickers = append(tickers, a.Ticker)
	}
	return tickers
}
