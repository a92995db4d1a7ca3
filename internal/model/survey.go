package model

import "time"

// FlowTrend is the manually confirmed 5-day cross-border flow reading.
type FlowTrend string

const (
	FlowHeavyOut FlowTrend = "大幅流出"
	FlowLightOut FlowTrend = "小幅流出"
	FlowFlat     FlowTrend = "持平"
	FlowLightIn  FlowTrend = "小幅流入"
	FlowHeavyIn  FlowTrend = "大幅流入"
)

// CrowdingStatus describes how crowded the watched sector currently is.
type CrowdingStatus string

const (
	CrowdingLow     CrowdingStatus = "冷清/低配"
	CrowdingNeutral CrowdingStatus = "标配"
	CrowdingExtreme CrowdingStatus = "极其拥挤"
)

// SurveyInput carries the manually entered qualitative readings that
// parameterize the decision layer. Ephemeral per request; never
// persisted across runs.
type SurveyInput struct {
	SurveyDate     time.Time      `json:"survey_date"`
	CashLevel      float64        `json:"cash_level" validate:"gte=0,lte=100"`
	CrowdedTrade   string         `json:"crowded_trade"`
	SectorCrowding CrowdingStatus `json:"sector_crowding" validate:"omitempty,oneof=冷清/低配 标配 极其拥挤"`
	NorthFlow      FlowTrend      `json:"north_flow" validate:"omitempty,oneof=大幅流出 小幅流出 持平 小幅流入 大幅流入"`
	SouthFlow      FlowTrend      `json:"south_flow" validate:"omitempty,oneof=大幅流出 小幅流出 持平 小幅流入 大幅流入"`

	// MomentumGap is the manually entered gap between spot momentum and
	// its confirmation level; ShortInterestRatio the manually entered
	// days-to-cover reading.
	MomentumGap        float64 `json:"momentum_gap"`
	ShortInterestRatio float64 `json:"short_interest_ratio" validate:"gte=0"`
}

// StatusLight is the tactical warning light shown next to the gauge.
type StatusLight string

const (
	LightGreen  StatusLight = "🟢 低位安全"
	LightYellow StatusLight = "🟡 中性观望"
	LightRed    StatusLight = "🔴 极度拥挤/警惕踩踏"
)

// Advice is the advisor's output: a status light plus the fired
// textual advisories, in firing order.
type Advice struct {
	Light      StatusLight `json:"light"`
	Advisories []string    `json:"advisories"`
}
