package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ycwu/twquant/internal/cache"
	"github.com/ycwu/twquant/internal/contracts"
	"github.com/ycwu/twquant/internal/flow"
	"github.com/ycwu/twquant/internal/indicator"
	"github.com/ycwu/twquant/internal/market"
	"github.com/ycwu/twquant/internal/score"
	"github.com/ycwu/twquant/pkg/logger"
)

// DefaultNewsLimit is how many headlines a news lookup returns when
// the caller does not ask for a count.
const DefaultNewsLimit = 5

// Config holds the engine's run parameters
type Config struct {
	PriceWindowDays int           // trailing calendar days of price history
	FlowWindowDays  int           // trailing calendar days of flow history
	FetchTimeout    time.Duration // per external call
	PriceTTL        time.Duration
	FlowTTL         time.Duration
	NewsTTL         time.Duration
}

// DefaultConfig returns the canonical run parameters: enough price
// history for MA20 with margin, a flow window wide enough to tolerate
// non-trading days.
func DefaultConfig() Config {
	return Config{
		PriceWindowDays: 120,
		FlowWindowDays:  12,
		FetchTimeout:    15 * time.Second,
		PriceTTL:        time.Hour,
		FlowTTL:         time.Hour,
		NewsTTL:         15 * time.Minute,
	}
}

// Engine runs one diagnostic per invocation: resolve the listing,
// fetch and cache the inputs, derive indicators and flow, score.
// ⭐ SSOT: 診斷流程的調度只在這裡
type Engine struct {
	prices contracts.PriceProvider
	flows  contracts.FlowProvider
	news   contracts.NewsProvider

	cache      *cache.Cache
	resolver   *market.Resolver
	indicators *indicator.Calculator
	aggregator *flow.Aggregator
	scorer     *score.Scorer

	cfg    Config
	logger *logger.Logger
	now    func() time.Time
}

// New creates an engine over the given providers and cache
func New(prices contracts.PriceProvider, flows contracts.FlowProvider, news contracts.NewsProvider, c *cache.Cache, cfg Config, log *logger.Logger) *Engine {
	e := &Engine{
		prices:     prices,
		flows:      flows,
		news:       news,
		cache:      c,
		indicators: indicator.NewCalculator(log),
		aggregator: flow.NewAggregator(log),
		scorer:     score.NewScorer(log),
		cfg:        cfg,
		logger:     log,
		now:        time.Now,
	}
	// The resolver probes through the cached fetch, so a venue probe is
	// never repeated within a TTL.
	e.resolver = market.New(e.cachedPriceFetch, log)
	return e
}

// Diagnose runs the full pipeline for one bare symbol. Price-layer
// failures abort the run; flow failures degrade the flow summary and
// the institutional criterion instead.
func (e *Engine) Diagnose(ctx context.Context, symbol string) (*contracts.DiagnosticResult, error) {
	start := e.now()

	listed, series, err := e.resolver.Resolve(ctx, symbol, e.cfg.PriceWindowDays)
	if err != nil {
		return nil, err
	}

	indicators, err := e.indicators.Compute(series)
	if err != nil {
		return nil, fmt.Errorf("diagnose %s: %w", listed.Ticker(), err)
	}

	summary := e.flowSummary(ctx, symbol)

	total, criteria, verdict := e.scorer.Score(indicators, summary)

	result := &contracts.DiagnosticResult{
		Symbol:      listed,
		GeneratedAt: e.now(),
		Indicators:  indicators,
		Flow:        summary,
		Score:       total,
		MaxScore:    score.MaxScore,
		Verdict:     verdict,
		Criteria:    criteria,
		Overheated:  indicators.HasMA20 && indicators.BiasPercent > 10,
		VolumeSurge: indicators.VolumeRatio > 1.5,
	}

	e.logger.WithFields(map[string]interface{}{
		"ticker":   listed.Ticker(),
		"score":    total,
		"verdict":  verdict,
		"duration": e.now().Sub(start),
	}).Info("Diagnostic complete")

	return result, nil
}

// News fetches recent headlines for a symbol. Resolution failures and
// provider failures wrap contracts.ErrUnavailable or ErrNotFound; a
// diagnostic never depends on this call.
func (e *Engine) News(ctx context.Context, symbol string, limit int) ([]contracts.NewsItem, error) {
	listed, _, err := e.resolver.Resolve(ctx, symbol, e.cfg.PriceWindowDays)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s:%d", listed.Ticker(), limit)

	var items []contracts.NewsItem
	err = e.cache.GetOrFill(ctx, cache.KindNews, key, &items, e.cfg.NewsTTL, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(ctx, e.cfg.FetchTimeout)
		defer cancel()
		return e.news.FetchNews(fetchCtx, listed, limit)
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// cachedPriceFetch is the cache-checked price fetch handed to the
// resolver. Empty series are cached too: a venue known to lack the
// symbol is not re-probed within the TTL.
func (e *Engine) cachedPriceFetch(ctx context.Context, symbol contracts.ListedSymbol, days int) (contracts.PriceSeries, error) {
	var series contracts.PriceSeries
	err := e.cache.GetOrFill(ctx, cache.KindPrice, symbol.Ticker(), &series, e.cfg.PriceTTL, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(ctx, e.cfg.FetchTimeout)
		defer cancel()
		return e.prices.FetchDailyBars(fetchCtx, symbol, days)
	})
	if err != nil {
		return nil, err
	}
	return series, nil
}

// flowSummary fetches and aggregates institutional flow, degrading to
// the unavailable summary on any failure.
func (e *Engine) flowSummary(ctx context.Context, symbol string) contracts.FlowSummary {
	to := e.now()
	from := to.AddDate(0, 0, -e.cfg.FlowWindowDays)

	var records []contracts.InstitutionalFlowRecord
	err := e.cache.GetOrFill(ctx, cache.KindFlow, symbol, &records, e.cfg.FlowTTL, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(ctx, e.cfg.FetchTimeout)
		defer cancel()
		return e.flows.FetchInstitutionalFlow(fetchCtx, symbol, from, to)
	})
	if err != nil {
		if !errors.Is(err, contracts.ErrUnavailable) {
			e.logger.WithError(err).WithField("symbol", symbol).Warn("Institutional flow fetch failed")
		}
		return contracts.FlowSummary{Available: false}
	}

	return e.aggregator.Summarize(records)
}
