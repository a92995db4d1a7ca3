package recorder

import "SmartMoneyIndex/internal/model"

// ScoreSnapshot holds all data for one scheduled scoring record.
type ScoreSnapshot struct {
	RealYield     float64
	CurrencyIndex float64
	CreditSpread  float64
	MomentumRatio float64
	MomentumMA    float64
	HKD           float64
	CashLevel     float64
	Card          *model.ScoreCard
}

// EmptySeriesEvent records a refresh that came back with an empty
// series, i.e. a provider failure the operator should know about.
type EmptySeriesEvent struct {
	Series string
	Note   string
}

// Recorder persists historical scoring data for analysis.
type Recorder interface {
	RecordScore(snap *ScoreSnapshot) error
	RecordEmptySeries(evt *EmptySeriesEvent) error
	Close() error
}
