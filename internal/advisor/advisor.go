// Package advisor maps the composite score, the manually entered
// survey readings and a few live levels to a fixed set of textual
// advisories. It is a decision table, not a state machine: no state is
// kept between calls.
package advisor

import (
	"fmt"

	"SmartMoneyIndex/internal/model"
)

// Fixed decision thresholds.
const (
	entryScore = 60 // composite score needed for entry-timing calls

	// HKD pegged band: 7.75 strong side, 7.85 weak side.
	hkdWeakWarn = 7.84
	hkdOutflow  = 7.83
	hkdInflow   = 7.78

	cashContrarian = 5.0
	cashWarning    = 4.0

	dxyHeadwind = 105.0

	// Days-to-cover above this reads as squeeze-chase risk.
	shortInterestSqueeze = 8.0
)

// lightFor maps the watched sector's crowding status to a warning light.
func lightFor(status model.CrowdingStatus) model.StatusLight {
	switch status {
	case model.CrowdingLow:
		return model.LightGreen
	case model.CrowdingExtreme:
		return model.LightRed
	default:
		return model.LightYellow
	}
}

// Advise runs the decision table. The snapshot supplies the live HKD
// and currency-index levels; empty series simply skip their rules.
func Advise(snap *model.MarketSnapshot, card *model.ScoreCard, in model.SurveyInput) model.Advice {
	adv := model.Advice{Light: lightFor(in.SectorCrowding)}
	add := func(s string) { adv.Advisories = append(adv.Advisories, s) }

	// Band summary always leads.
	add(fmt.Sprintf("GSMI 总分 %d，当前环境：%s（指引：0-40 防御 | 40-60 观察 | 60-80 乐观 | 80-100 全面看多）",
		card.Total, card.Band))

	if in.NorthFlow == model.FlowHeavyIn && card.Total > entryScore {
		add("✅ 宏观与北向资金流共振，入场时机成熟")
	}

	if hkd, ok := snap.HKD.Last(); ok {
		switch {
		case hkd > hkdWeakWarn:
			add(fmt.Sprintf("⚠️ 港元汇率 %.4f 触及弱方，警惕港股失血风险", hkd))
		case hkd > hkdOutflow:
			add(fmt.Sprintf("港元汇率 %.4f 偏弱，资金流出迹象", hkd))
		case hkd < hkdInflow:
			add(fmt.Sprintf("港元汇率 %.4f 偏强，资金流入迹象", hkd))
		}
	}

	switch {
	case in.CashLevel > cashContrarian:
		add(fmt.Sprintf("机构现金水平 %.1f%% 偏高，反向看多信号", in.CashLevel))
	case in.CashLevel < cashWarning:
		add(fmt.Sprintf("机构现金水平 %.1f%% 过低，反向警告", in.CashLevel))
	}

	if in.MomentumGap < 0 && card.Total >= entryScore {
		add("动量缺口为负，宏观分数虽高，建议等待执行层确认")
	}

	if in.ShortInterestRatio > shortInterestSqueeze && card.Total >= entryScore {
		add(fmt.Sprintf("空头回补比率 %.1f 偏高，谨防轧空行情追高", in.ShortInterestRatio))
	}

	if dxy, ok := snap.CurrencyIndex.Last(); ok && dxy > dxyHeadwind {
		add(fmt.Sprintf("美元指数 %.2f 高于 105，流动性逆风", dxy))
	}

	if in.CrowdedTrade != "" {
		add(fmt.Sprintf("FMS 最拥挤交易：%s，大资金正在寻找下一站", in.CrowdedTrade))
	}

	if in.SectorCrowding == model.CrowdingExtreme {
		add("关注板块极其拥挤，警惕踩踏风险")
	}

	return adv
}
