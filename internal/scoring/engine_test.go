package scoring

import (
	"strings"
	"testing"
	"time"

	"SmartMoneyIndex/internal/model"
)

func singlePoint(name string, v float64) model.Series {
	return model.Series{Name: name, Points: []model.Point{
		{Time: time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), Value: v},
	}}
}

// testSnapshot builds a snapshot with one observation per series.
func testSnapshot(realYield, dxy, spread, ratio, ratioMA float64) *model.MarketSnapshot {
	return &model.MarketSnapshot{
		RealYield:     singlePoint(model.SeriesRealYield, realYield),
		CurrencyIndex: singlePoint(model.SeriesCurrencyIndex, dxy),
		CreditSpread:  singlePoint(model.SeriesCreditSpread, spread),
		MomentumRatio: singlePoint(model.SeriesMomentumRatio, ratio),
		MomentumMA:    singlePoint(model.SeriesMomentumMA, ratioMA),
	}
}

func componentPoints(t *testing.T, card *model.ScoreCard, name string) int {
	t.Helper()
	for _, c := range card.Components {
		if c.Name == name {
			return c.Points
		}
	}
	t.Fatalf("component %q not found", name)
	return 0
}

func TestEvaluate_DocumentedProperties(t *testing.T) {
	// real yield 0.8 → 20, dxy 102 → 10, cash 5.5 → 30, spread 420 → 10,
	// momentum above MA → 10.
	card, err := Evaluate(testSnapshot(0.8, 102, 420, 0.005, 0.004), 5.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := componentPoints(t, card, "实际利率"); got != 20 {
		t.Errorf("real yield 0.8: expected 20, got %d", got)
	}
	if got := componentPoints(t, card, "美元指数"); got != 10 {
		t.Errorf("currency index 102: expected 10, got %d", got)
	}
	if got := componentPoints(t, card, "机构现金水平"); got != 30 {
		t.Errorf("cash 5.5: expected 30, got %d", got)
	}
	if got := componentPoints(t, card, "信用利差"); got != 10 {
		t.Errorf("spread 420: expected 10, got %d", got)
	}
	if got := componentPoints(t, card, "铜金比动量"); got != 10 {
		t.Errorf("momentum above MA: expected 10, got %d", got)
	}
	if card.Total != 80 {
		t.Errorf("expected total 80, got %d", card.Total)
	}
	if card.Band != model.BandFullBull {
		t.Errorf("expected band %q for total 80, got %q", model.BandFullBull, card.Band)
	}
}

func TestEvaluate_FullyHealthy(t *testing.T) {
	card, err := Evaluate(testSnapshot(0.8, 98, 300, 0.005, 0.004), 5.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.Total != 100 {
		t.Errorf("expected fully healthy total 100, got %d", card.Total)
	}
}

func TestEvaluate_FullyUnhealthy(t *testing.T) {
	card, err := Evaluate(testSnapshot(2.5, 107, 550, 0.004, 0.005), 3.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.Total != 0 {
		t.Errorf("expected fully unhealthy total 0, got %d", card.Total)
	}
	if card.Band != model.BandDefensive {
		t.Errorf("expected defensive band, got %q", card.Band)
	}
}

func TestEvaluate_Boundaries(t *testing.T) {
	tests := []struct {
		name      string
		component string
		snap      *model.MarketSnapshot
		cash      float64
		want      int
	}{
		{"real yield exactly 1.0", "实际利率", testSnapshot(1.0, 98, 300, 1, 0.5), 5.5, 10},
		{"real yield exactly 2.0", "实际利率", testSnapshot(2.0, 98, 300, 1, 0.5), 5.5, 10},
		{"currency index exactly 100", "美元指数", testSnapshot(0.8, 100, 300, 1, 0.5), 5.5, 10},
		{"currency index exactly 105", "美元指数", testSnapshot(0.8, 105, 300, 1, 0.5), 5.5, 10},
		{"cash exactly 5.0", "机构现金水平", testSnapshot(0.8, 98, 300, 1, 0.5), 5.0, 15},
		{"cash exactly 4.0", "机构现金水平", testSnapshot(0.8, 98, 300, 1, 0.5), 4.0, 15},
		{"spread exactly 350", "信用利差", testSnapshot(0.8, 98, 350, 1, 0.5), 5.5, 10},
		{"spread exactly 500", "信用利差", testSnapshot(0.8, 98, 500, 1, 0.5), 5.5, 10},
		{"momentum exactly at MA", "铜金比动量", testSnapshot(0.8, 98, 300, 0.005, 0.005), 5.5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, err := Evaluate(tt.snap, tt.cash)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := componentPoints(t, card, tt.component); got != tt.want {
				t.Errorf("expected %d points, got %d", tt.want, got)
			}
		})
	}
}

func TestEvaluate_EmptyMomentumMADegrades(t *testing.T) {
	snap := testSnapshot(0.8, 98, 300, 0.005, 0)
	snap.MomentumMA = model.Series{Name: model.SeriesMomentumMA}

	card, err := Evaluate(snap, 5.5)
	if err != nil {
		t.Fatalf("empty MA must degrade, not fail: %v", err)
	}
	if got := componentPoints(t, card, "铜金比动量"); got != 0 {
		t.Errorf("expected 0 momentum points on thin history, got %d", got)
	}
	if card.Total != 90 {
		t.Errorf("expected total 90, got %d", card.Total)
	}
}

func TestEvaluate_EmptySeriesHaltsScoring(t *testing.T) {
	tests := []struct {
		name  string
		wreck func(*model.MarketSnapshot)
	}{
		{model.SeriesRealYield, func(s *model.MarketSnapshot) { s.RealYield.Points = nil }},
		{model.SeriesCurrencyIndex, func(s *model.MarketSnapshot) { s.CurrencyIndex.Points = nil }},
		{model.SeriesCreditSpread, func(s *model.MarketSnapshot) { s.CreditSpread.Points = nil }},
		{model.SeriesMomentumRatio, func(s *model.MarketSnapshot) { s.MomentumRatio.Points = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := testSnapshot(0.8, 98, 300, 0.005, 0.004)
			tt.wreck(snap)
			_, err := Evaluate(snap, 5.5)
			if err == nil {
				t.Fatal("expected scoring to halt on empty series")
			}
			if !strings.Contains(err.Error(), tt.name) {
				t.Errorf("error should name the empty series: %v", err)
			}
		})
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{0, model.BandDefensive},
		{39, model.BandDefensive},
		{40, model.BandWatch},
		{59, model.BandWatch},
		{60, model.BandOptimistic},
		{79, model.BandOptimistic},
		{80, model.BandFullBull},
		{100, model.BandFullBull},
	}
	for _, tt := range tests {
		if got := model.BandFor(tt.total); got != tt.want {
			t.Errorf("BandFor(%d): expected %q, got %q", tt.total, tt.want, got)
		}
	}
}
