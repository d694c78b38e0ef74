package contracts

import (
	"context"
	"time"
)

// PriceProvider fetches a trailing window of daily bars for a listed
// symbol. A zero-bar series with a nil error means the venue has no data
// for the symbol (the listing resolver's fallback trigger); hard failures
// wrap ErrProvider.
type PriceProvider interface {
	FetchDailyBars(ctx context.Context, symbol ListedSymbol, days int) (PriceSeries, error)
}

// FlowProvider fetches per-day, per-category institutional buy/sell
// volumes for a bare symbol. Degraded outcomes (missing credential,
// transport failure) wrap ErrUnavailable.
type FlowProvider interface {
	FetchInstitutionalFlow(ctx context.Context, symbol string, from, to time.Time) ([]InstitutionalFlowRecord, error)
}

// NewsProvider fetches recent headlines for a listed symbol. Failures
// wrap ErrUnavailable and never affect the diagnostic.
type NewsProvider interface {
	FetchNews(ctx context.Context, symbol ListedSymbol, limit int) ([]NewsItem, error)
}
