// Package scoring implements the GSMI composite: five scalar
// indicators mapped to points via fixed thresholds and summed into a
// 0-100 score. Thresholds are constants, never derived from data.
package scoring

import (
	"fmt"

	"SmartMoneyIndex/internal/model"
)

// Fixed scoring thresholds.
const (
	realYieldSweet  = 1.0 // below: sweet spot
	realYieldDanger = 2.0 // above: danger zone

	dxyBreakout = 100.0
	dxyDanger   = 105.0

	cashContrarian = 5.0 // above: contrarian bullish
	cashNeutral    = 4.0 // below: contrarian warning

	spreadSafe   = 350.0 // bps
	spreadDanger = 500.0 // bps
)

// Evaluate computes the composite score card from the snapshot plus the
// manually entered survey cash level. Any required series that is empty
// halts scoring with an error naming it; the engine never invents
// values. An empty momentum MA only degrades the momentum bonus to 0.
func Evaluate(snap *model.MarketSnapshot, cashLevel float64) (*model.ScoreCard, error) {
	realYield, ok := snap.RealYield.Last()
	if !ok {
		return nil, fmt.Errorf("series %s is empty, cannot score", model.SeriesRealYield)
	}
	dxy, ok := snap.CurrencyIndex.Last()
	if !ok {
		return nil, fmt.Errorf("series %s is empty, cannot score", model.SeriesCurrencyIndex)
	}
	spread, ok := snap.CreditSpread.Last()
	if !ok {
		return nil, fmt.Errorf("series %s is empty, cannot score", model.SeriesCreditSpread)
	}
	ratio, ok := snap.MomentumRatio.Last()
	if !ok {
		return nil, fmt.Errorf("series %s is empty, cannot score", model.SeriesMomentumRatio)
	}

	components := []model.ComponentScore{
		scoreRealYield(realYield),
		scoreCurrencyIndex(dxy),
		scoreCashLevel(cashLevel),
		scoreCreditSpread(spread),
		scoreMomentum(ratio, snap.MomentumMA),
	}

	total := 0
	for _, c := range components {
		total += c.Points
	}

	return &model.ScoreCard{
		Components: components,
		Total:      total,
		Band:       model.BandFor(total),
	}, nil
}

// scoreRealYield: liquidity leg, 20 points max.
func scoreRealYield(v float64) model.ComponentScore {
	var pts int
	switch {
	case v < realYieldSweet:
		pts = 20
	case v <= realYieldDanger:
		pts = 10
	default:
		pts = 0
	}
	return model.ComponentScore{
		Name:       "实际利率",
		Value:      v,
		Points:     pts,
		MaxPoints:  20,
		Commentary: fmt.Sprintf("10Y TIPS %.2f%% (<1%% 甜点区 | >2%% 危险区)", v),
	}
}

// scoreCurrencyIndex: liquidity leg, 20 points max.
func scoreCurrencyIndex(v float64) model.ComponentScore {
	var pts int
	switch {
	case v < dxyBreakout:
		pts = 20
	case v <= dxyDanger:
		pts = 10
	default:
		pts = 0
	}
	return model.ComponentScore{
		Name:       "美元指数",
		Value:      v,
		Points:     pts,
		MaxPoints:  20,
		Commentary: fmt.Sprintf("DXY %.2f (<100 爆发区 | >105 危险区)", v),
	}
}

// scoreCashLevel: institutional sentiment leg, 30 points max,
// contrarian: high cash is bullish.
func scoreCashLevel(v float64) model.ComponentScore {
	var pts int
	switch {
	case v > cashContrarian:
		pts = 30
	case v >= cashNeutral:
		pts = 15
	default:
		pts = 0
	}
	return model.ComponentScore{
		Name:       "机构现金水平",
		Value:      v,
		Points:     pts,
		MaxPoints:  30,
		Commentary: fmt.Sprintf("FMS 现金 %.1f%% (>5%% 反向看多 | <4%% 反向警告)", v),
	}
}

// scoreCreditSpread: economic reality leg, 20 points max.
func scoreCreditSpread(v float64) model.ComponentScore {
	var pts int
	switch {
	case v < spreadSafe:
		pts = 20
	case v <= spreadDanger:
		pts = 10
	default:
		pts = 0
	}
	return model.ComponentScore{
		Name:       "信用利差",
		Value:      v,
		Points:     pts,
		MaxPoints:  20,
		Commentary: fmt.Sprintf("高收益债利差 %.0f bps (<350 安全 | >500 危险)", v),
	}
}

// scoreMomentum: copper/gold ratio vs its trailing 200-observation MA,
// 10 points max. Insufficient MA history gives no bonus rather than
// failing.
func scoreMomentum(ratio float64, ma model.Series) model.ComponentScore {
	maVal, ok := ma.Last()
	if !ok {
		return model.ComponentScore{
			Name:       "铜金比动量",
			Value:      ratio,
			Points:     0,
			MaxPoints:  10,
			Commentary: "均线历史不足，不计动量分",
		}
	}
	pts := 0
	state := "萎缩期"
	if ratio > maVal {
		pts = 10
		state = "扩张期"
	}
	return model.ComponentScore{
		Name:       "铜金比动量",
		Value:      ratio,
		Points:     pts,
		MaxPoints:  10,
		Commentary: fmt.Sprintf("铜金比 %.4f vs MA200 %.4f (%s)", ratio, maVal, state),
	}
}
