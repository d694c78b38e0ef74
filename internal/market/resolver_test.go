package market

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ycwu/twquant/internal/contracts"
	"github.com/ycwu/twquant/pkg/logger"
)

func bars(n int) contracts.PriceSeries {
	series := make(contracts.PriceSeries, n)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range series {
		series[i] = contracts.PriceBar{Date: base.AddDate(0, 0, i), Close: 100, Volume: 1000}
	}
	return series
}

func testLog() *logger.Logger {
	return logger.NewForWriter(io.Discard, "error")
}

func TestResolvePrimaryVenue(t *testing.T) {
	fetch := func(_ context.Context, s contracts.ListedSymbol, _ int) (contracts.PriceSeries, error) {
		if s.Venue == contracts.VenueTWSE {
			return bars(40), nil
		}
		t.Fatalf("TPEx must not be probed when TWSE has data")
		return nil, nil
	}

	r := New(fetch, testLog())
	listed, series, err := r.Resolve(context.Background(), "2330", 120)
	require.NoError(t, err)
	assert.Equal(t, contracts.VenueTWSE, listed.Venue)
	assert.Len(t, series, 40)
}

func TestResolveFallsBackToSecondaryVenue(t *testing.T) {
	fetch := func(_ context.Context, s contracts.ListedSymbol, _ int) (contracts.PriceSeries, error) {
		if s.Venue == contracts.VenueTWSE {
			return contracts.PriceSeries{}, nil // empty: not listed here
		}
		return bars(40), nil
	}

	r := New(fetch, testLog())
	listed, series, err := r.Resolve(context.Background(), "5483", 120)
	require.NoError(t, err)
	assert.Equal(t, contracts.VenueTPEx, listed.Venue)
	assert.Equal(t, "5483.TWO", listed.Ticker())
	assert.Len(t, series, 40)
}

func TestResolveBothVenuesEmptyIsNotFound(t *testing.T) {
	fetch := func(_ context.Context, _ contracts.ListedSymbol, _ int) (contracts.PriceSeries, error) {
		return contracts.PriceSeries{}, nil
	}

	r := New(fetch, testLog())
	_, _, err := r.Resolve(context.Background(), "9999", 120)
	assert.ErrorIs(t, err, contracts.ErrNotFound)
}

func TestResolveProviderErrorIsNotRetriedOnOtherVenue(t *testing.T) {
	calls := 0
	fetch := func(_ context.Context, _ contracts.ListedSymbol, _ int) (contracts.PriceSeries, error) {
		calls++
		return nil, contracts.ErrProvider
	}

	r := New(fetch, testLog())
	_, _, err := r.Resolve(context.Background(), "2330", 120)
	assert.ErrorIs(t, err, contracts.ErrProvider)
	assert.NotErrorIs(t, err, contracts.ErrNotFound)
	assert.Equal(t, 1, calls, "a transient failure must not trigger the venue fallback")
}

func TestResolveError(t *testing.T) {
	wrapped := errors.New("dial tcp: timeout")
	fetch := func(_ context.Context, _ contracts.ListedSymbol, _ int) (contracts.PriceSeries, error) {
		return nil, wrapped
	}

	r := New(fetch, testLog())
	_, _, err := r.Resolve(context.Background(), "2330", 120)
	assert.ErrorIs(t, err, wrapped)
}
