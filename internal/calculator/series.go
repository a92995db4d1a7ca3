package calculator

import (
	"errors"
	"math"
	"sort"
	"time"

	"SmartMoneyIndex/internal/model"
)

// CalculateSMA computes the simple moving average of the given values
// over the specified period.
func CalculateSMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}

// RollingMA returns a series of trailing moving averages of s. The
// result starts at the first observation with a full window, so it is
// empty when s has fewer than period points.
func RollingMA(s model.Series, period int, name string) model.Series {
	out := model.Series{Name: name, FetchedAt: s.FetchedAt}
	if period <= 0 || s.Len() < period {
		return out
	}
	sum := 0.0
	for i, p := range s.Points {
		sum += p.Value
		if i >= period {
			sum -= s.Points[i-period].Value
		}
		if i >= period-1 {
			out.Points = append(out.Points, model.Point{
				Time:  p.Time,
				Value: sum / float64(period),
			})
		}
	}
	return out
}

// dayKey collapses a timestamp to its calendar date.
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Normalize sorts points chronologically, keeps the last observation
// per calendar date, and drops non-finite values.
func Normalize(s model.Series) model.Series {
	byDay := make(map[string]model.Point, s.Len())
	for _, p := range s.Points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			continue
		}
		k := dayKey(p.Time)
		if prev, ok := byDay[k]; !ok || p.Time.After(prev.Time) {
			byDay[k] = p
		}
	}
	out := model.Series{Name: s.Name, FetchedAt: s.FetchedAt}
	out.Points = make([]model.Point, 0, len(byDay))
	for _, p := range byDay {
		out.Points = append(out.Points, p)
	}
	sort.Slice(out.Points, func(i, j int) bool {
		return out.Points[i].Time.Before(out.Points[j].Time)
	})
	return out
}

// ForwardFill fills absent calendar dates with the previous
// observation, one point per missing day. Observed values pass through
// unchanged; zero is a legitimate reading (real yields cross zero), not
// a gap marker. Expects chronologically sorted input (see Normalize).
func ForwardFill(s model.Series) model.Series {
	out := model.Series{Name: s.Name, FetchedAt: s.FetchedAt}
	if s.Len() == 0 {
		return out
	}
	out.Points = make([]model.Point, 0, s.Len())
	out.Points = append(out.Points, s.Points[0])
	for i := 1; i < len(s.Points); i++ {
		prev := s.Points[i-1]
		cur := s.Points[i]
		for d := prev.Time.AddDate(0, 0, 1); dayKey(d) < dayKey(cur.Time); d = d.AddDate(0, 0, 1) {
			out.Points = append(out.Points, model.Point{Time: d, Value: prev.Value})
		}
		out.Points = append(out.Points, cur)
	}
	return out
}

// Ratio divides a by b element-wise, aligned by calendar date. Dates
// missing from either side are skipped; zero denominators are skipped.
func Ratio(a, b model.Series, name string) model.Series {
	out := model.Series{Name: name, FetchedAt: a.FetchedAt}
	denom := make(map[string]float64, b.Len())
	for _, p := range b.Points {
		denom[dayKey(p.Time)] = p.Value
	}
	for _, p := range a.Points {
		d, ok := denom[dayKey(p.Time)]
		if !ok || d == 0 {
			continue
		}
		out.Points = append(out.Points, model.Point{Time: p.Time, Value: p.Value / d})
	}
	return out
}
