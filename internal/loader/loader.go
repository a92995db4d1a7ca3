// Package loader orchestrates the two upstream providers into a single
// MarketSnapshot, memoized through a TTL cache. A failed fetch is
// substituted with an empty series; downstream consumers must tolerate
// that and surface it to the operator instead of inventing values.
package loader

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"SmartMoneyIndex/internal/cache"
	"SmartMoneyIndex/internal/calculator"
	"SmartMoneyIndex/internal/metrics"
	"SmartMoneyIndex/internal/model"
	"SmartMoneyIndex/internal/provider"
)

// Upstream identifiers for the fixed series set.
const (
	FredRealYield    = "DFII10"
	FredCreditSpread = "BAMLH0A0HYM2"

	TickerDollarIndex = "DX-Y.NYB"
	TickerCopper      = "HG=F"
	TickerGold        = "GC=F"
	TickerHKD         = "HKD=X"
)

const (
	snapshotKey = "gsmi:snapshot"

	// One year of history so the 200-observation MA of the momentum
	// ratio is computable.
	historyDays = 365
	maPeriod    = 200
)

// Loader fetches, derives and caches the full market snapshot.
type Loader struct {
	Macro  provider.MacroProvider
	Quotes provider.QuoteProvider
	Cache  cache.Store
	TTL    time.Duration

	// EquityTickers are the optionally configured index symbols.
	EquityTickers []string

	Metrics *metrics.Recorder
}

// New creates a Loader with the given providers and cache.
func New(macro provider.MacroProvider, quotes provider.QuoteProvider, store cache.Store, ttl time.Duration, equityTickers []string, rec *metrics.Recorder) *Loader {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Loader{
		Macro:         macro,
		Quotes:        quotes,
		Cache:         store,
		TTL:           ttl,
		EquityTickers: equityTickers,
		Metrics:       rec,
	}
}

// Load returns the cached snapshot, refreshing it when expired.
func (l *Loader) Load(ctx context.Context) (*model.MarketSnapshot, error) {
	var snap model.MarketSnapshot
	err := l.Cache.Get(ctx, snapshotKey, &snap)
	if err == nil {
		if l.Metrics != nil {
			l.Metrics.RecordCacheHit()
		}
		return &snap, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Warn().Err(err).Msg("snapshot cache read failed, refetching")
	}
	if l.Metrics != nil {
		l.Metrics.RecordCacheMiss()
	}
	return l.Refresh(ctx)
}

// Refresh recomputes the snapshot from scratch and stores it.
func (l *Loader) Refresh(ctx context.Context) (*model.MarketSnapshot, error) {
	start := time.Now()
	snap := l.collect(ctx)
	if l.Metrics != nil {
		l.Metrics.RecordRefreshDuration(time.Since(start).Seconds())
	}
	if err := l.Cache.Set(ctx, snapshotKey, snap, l.TTL); err != nil {
		log.Warn().Err(err).Msg("snapshot cache write failed")
	}
	return snap, nil
}

func (l *Loader) collect(ctx context.Context) *model.MarketSnapshot {
	end := time.Now()
	start := end.AddDate(0, 0, -historyDays)

	snap := &model.MarketSnapshot{FetchedAt: end}

	snap.RealYield = l.macroSeries(ctx, FredRealYield, model.SeriesRealYield, start, end)
	snap.CreditSpread = l.macroSeries(ctx, FredCreditSpread, model.SeriesCreditSpread, start, end)

	snap.CurrencyIndex = l.quoteSeries(ctx, TickerDollarIndex, model.SeriesCurrencyIndex)
	snap.Copper = l.quoteSeries(ctx, TickerCopper, model.SeriesCopper)
	snap.Gold = l.quoteSeries(ctx, TickerGold, model.SeriesGold)
	snap.HKD = l.quoteSeries(ctx, TickerHKD, model.SeriesHKD)

	if len(l.EquityTickers) > 0 {
		snap.EquityIndices = make(map[string]model.Series, len(l.EquityTickers))
		for _, t := range l.EquityTickers {
			snap.EquityIndices[t] = l.quoteSeries(ctx, t, t)
		}
	}

	// Copper/gold momentum ratio and its trailing MA. The MA series is
	// allowed to come out empty on thin history; scoring degrades to no
	// bonus point in that case.
	snap.MomentumRatio = calculator.Ratio(snap.Copper, snap.Gold, model.SeriesMomentumRatio)
	snap.MomentumMA = calculator.RollingMA(snap.MomentumRatio, maPeriod, model.SeriesMomentumMA)

	return snap
}

// macroSeries fetches one macro series, substituting an empty series on
// failure.
func (l *Loader) macroSeries(ctx context.Context, seriesID, name string, start, end time.Time) model.Series {
	s, err := l.Macro.FetchSeries(ctx, seriesID, start, end)
	if err != nil {
		log.Error().Err(err).Str("provider", l.Macro.Name()).Str("series", seriesID).Msg("macro fetch failed")
		if l.Metrics != nil {
			l.Metrics.RecordFetchError(l.Macro.Name(), seriesID)
		}
		return model.Series{Name: name, FetchedAt: end}
	}
	s.Name = name
	return calculator.ForwardFill(calculator.Normalize(s))
}

// quoteSeries fetches one quote series, substituting an empty series on
// failure.
func (l *Loader) quoteSeries(ctx context.Context, ticker, name string) model.Series {
	s, err := l.Quotes.FetchDailyCloses(ctx, ticker, historyDays)
	if err != nil {
		log.Error().Err(err).Str("provider", l.Quotes.Name()).Str("series", ticker).Msg("quote fetch failed")
		if l.Metrics != nil {
			l.Metrics.RecordFetchError(l.Quotes.Name(), ticker)
		}
		return model.Series{Name: name, FetchedAt: time.Now()}
	}
	s.Name = name
	return calculator.ForwardFill(calculator.Normalize(s))
}
