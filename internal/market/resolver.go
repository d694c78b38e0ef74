package market

import (
	"context"
	"fmt"

	"github.com/ycwu/twquant/internal/contracts"
	"github.com/ycwu/twquant/pkg/logger"
)

// FetchFunc fetches a trailing window of daily bars for a candidate
// listing. The resolver is handed the engine's cache-checked fetch so
// resolution never duplicates an external call.
type FetchFunc func(ctx context.Context, symbol contracts.ListedSymbol, days int) (contracts.PriceSeries, error)

// Resolver determines which venue a bare symbol trades on by probing
// TWSE first, then TPEx. Stateless apart from the injected fetch.
// ⭐ SSOT: 代號解析只在這裡
type Resolver struct {
	fetch  FetchFunc
	logger *logger.Logger
}

// New creates a resolver over the given fetch
func New(fetch FetchFunc, log *logger.Logger) *Resolver {
	return &Resolver{
		fetch:  fetch,
		logger: log,
	}
}

// Resolve returns the first listing with a non-empty price series along
// with that series. Both venues empty means contracts.ErrNotFound. A
// provider failure propagates immediately: transient errors are not a
// venue-fallback trigger.
func (r *Resolver) Resolve(ctx context.Context, symbol string, days int) (contracts.ListedSymbol, contracts.PriceSeries, error) {
	for _, venue := range []contracts.Venue{contracts.VenueTWSE, contracts.VenueTPEx} {
		listed := contracts.ListedSymbol{Symbol: symbol, Venue: venue}

		series, err := r.fetch(ctx, listed, days)
		if err != nil {
			return contracts.ListedSymbol{}, nil, fmt.Errorf("resolve %s: %w", listed.Ticker(), err)
		}

		if len(series) > 0 {
			r.logger.WithFields(map[string]interface{}{
				"symbol": symbol,
				"venue":  venue,
				"bars":   len(series),
			}).Debug("Resolved listing")
			return listed, series, nil
		}
	}

	return contracts.ListedSymbol{}, nil, fmt.Errorf("%w: %s", contracts.ErrNotFound, symbol)
}
