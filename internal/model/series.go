package model

import "time"

// Point is a single dated observation.
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// Series holds an ordered, date-deduplicated sequence of observations
// for one indicator. Gaps are forward-filled by the loader.
type Series struct {
	Name      string    `json:"name"`
	Points    []Point   `json:"points"`
	FetchedAt time.Time `json:"fetched_at"`
}

// IsEmpty reports whether the series carries no observations.
func (s Series) IsEmpty() bool { return len(s.Points) == 0 }

// Len returns the number of observations.
func (s Series) Len() int { return len(s.Points) }

// Last returns the most recent value, or 0 and false when empty.
func (s Series) Last() (float64, bool) {
	if len(s.Points) == 0 {
		return 0, false
	}
	return s.Points[len(s.Points)-1].Value, true
}

// Ago returns the value n observations before the latest one.
// Ago(0) is the latest value.
func (s Series) Ago(n int) (float64, bool) {
	idx := len(s.Points) - 1 - n
	if idx < 0 {
		return 0, false
	}
	return s.Points[idx].Value, true
}

// Tail returns the most recent n points (all points when fewer exist).
func (s Series) Tail(n int) []Point {
	if n <= 0 || len(s.Points) <= n {
		return s.Points
	}
	return s.Points[len(s.Points)-n:]
}

// Delta returns latest minus the value n observations back, or 0 when
// the series is too short. Mirrors the 5-observation deltas shown on
// the dashboard metric cards.
func (s Series) Delta(n int) float64 {
	cur, ok1 := s.Last()
	prev, ok2 := s.Ago(n)
	if !ok1 || !ok2 {
		return 0
	}
	return cur - prev
}
