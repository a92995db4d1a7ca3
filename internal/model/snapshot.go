package model

import "time"

// Well-known series names used across loader, scoring and the HTTP API.
const (
	SeriesRealYield     = "real_yield"
	SeriesCurrencyIndex = "currency_index"
	SeriesCopper        = "copper"
	SeriesGold          = "gold"
	SeriesHKD           = "hkd"
	SeriesCreditSpread  = "credit_spread"
	SeriesMomentumRatio = "momentum_ratio"
	SeriesMomentumMA    = "momentum_ma200"
)

// MarketSnapshot bundles every series the dashboard consumes, fetched
// in one pass and recomputed from scratch on each cache expiry.
type MarketSnapshot struct {
	RealYield     Series `json:"real_yield"`
	CurrencyIndex Series `json:"currency_index"`
	Copper        Series `json:"copper"`
	Gold          Series `json:"gold"`
	HKD           Series `json:"hkd"`
	CreditSpread  Series `json:"credit_spread"`

	// MomentumRatio is copper/gold aligned by date; MomentumMA is its
	// trailing 200-observation moving average. MomentumMA may be empty
	// when history is insufficient.
	MomentumRatio Series `json:"momentum_ratio"`
	MomentumMA    Series `json:"momentum_ma200"`

	// EquityIndices holds the optional configured index series, keyed
	// by ticker.
	EquityIndices map[string]Series `json:"equity_indices,omitempty"`

	FetchedAt time.Time `json:"fetched_at"`
}

// ByName returns a named series from the snapshot for charting.
func (m *MarketSnapshot) ByName(name string) (Series, bool) {
	switch name {
	case SeriesRealYield:
		return m.RealYield, true
	case SeriesCurrencyIndex:
		return m.CurrencyIndex, true
	case SeriesCopper:
		return m.Copper, true
	case SeriesGold:
		return m.Gold, true
	case SeriesHKD:
		return m.HKD, true
	case SeriesCreditSpread:
		return m.CreditSpread, true
	case SeriesMomentumRatio:
		return m.MomentumRatio, true
	case SeriesMomentumMA:
		return m.MomentumMA, true
	}
	s, ok := m.EquityIndices[name]
	return s, ok
}
