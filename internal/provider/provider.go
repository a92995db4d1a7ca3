package provider

import (
	"context"
	"errors"
	"time"

	"SmartMoneyIndex/internal/model"
)

// ErrNoData is returned when a provider answers successfully but
// carries no usable observations.
var ErrNoData = errors.New("provider: no data returned")

// MacroProvider fetches macroeconomic time series keyed by series
// identifiers (real yield, credit spread).
type MacroProvider interface {
	FetchSeries(ctx context.Context, seriesID string, start, end time.Time) (model.Series, error)
	Name() string
}

// QuoteProvider fetches market quotes keyed by ticker symbols.
type QuoteProvider interface {
	FetchDailyCloses(ctx context.Context, ticker string, days int) (model.Series, error)
	Name() string
}
