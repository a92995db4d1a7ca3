package provider

import (
	"context"
	"time"

	"SmartMoneyIndex/internal/model"
)

// MockMacroProvider returns controllable fixed data for development
// and testing.
type MockMacroProvider struct {
	Series map[string]model.Series
	Err    error
}

func (m *MockMacroProvider) Name() string { return "mock" }

func (m *MockMacroProvider) FetchSeries(_ context.Context, seriesID string, _, _ time.Time) (model.Series, error) {
	if m.Err != nil {
		return model.Series{}, m.Err
	}
	if s, ok := m.Series[seriesID]; ok {
		return s, nil
	}
	return GenerateMockSeries(seriesID, 1.5, 260), nil
}

// MockQuoteProvider returns controllable fixed data for development
// and testing.
type MockQuoteProvider struct {
	Series map[string]model.Series
	Err    error
}

func (m *MockQuoteProvider) Name() string { return "mock" }

func (m *MockQuoteProvider) FetchDailyCloses(_ context.Context, ticker string, days int) (model.Series, error) {
	if m.Err != nil {
		return model.Series{}, m.Err
	}
	if s, ok := m.Series[ticker]; ok {
		return s, nil
	}
	return GenerateMockSeries(ticker, 100, days), nil
}

// GenerateMockSeries builds a gently drifting daily series around the
// given base value.
func GenerateMockSeries(name string, base float64, count int) model.Series {
	s := model.Series{Name: name, FetchedAt: time.Now()}
	for i := 0; i < count; i++ {
		v := base * (1 + float64(i-count/2)*0.0005)
		s.Points = append(s.Points, model.Point{
			Time:  time.Now().AddDate(0, 0, -(count - i)),
			Value: v,
		})
	}
	return s
}
