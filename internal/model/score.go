package model

// ComponentScore represents a single indicator's contribution to the
// composite score.
type ComponentScore struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Points     int     `json:"points"`
	MaxPoints  int     `json:"max_points"`
	Commentary string  `json:"commentary"`
}

// ScoreCard is the final output of the score engine: five component
// scores summing into a 0-100 composite plus its guidance band.
type ScoreCard struct {
	Components []ComponentScore `json:"components"`
	Total      int              `json:"total"`
	Band       string           `json:"band"`
}

// Guidance bands for the composite total, from the dashboard footer:
// 0-40 defensive, 40-60 watch, 60-80 optimistic, 80-100 full bull.
const (
	BandDefensive  = "防御"
	BandWatch      = "观察"
	BandOptimistic = "乐观"
	BandFullBull   = "全面看多"
)

// BandFor maps a composite total to its guidance band.
func BandFor(total int) string {
	switch {
	case total < 40:
		return BandDefensive
	case total < 60:
		return BandWatch
	case total < 80:
		return BandOptimistic
	default:
		return BandFullBull
	}
}
