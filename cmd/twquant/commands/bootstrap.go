package commands

import (
	"fmt"

	"github.com/ycwu/twquant/internal/cache"
	"github.com/ycwu/twquant/internal/engine"
	"github.com/ycwu/twquant/internal/external/finmind"
	"github.com/ycwu/twquant/internal/external/twse"
	"github.com/ycwu/twquant/internal/external/yahoonews"
	"github.com/ycwu/twquant/pkg/config"
	"github.com/ycwu/twquant/pkg/httputil"
	"github.com/ycwu/twquant/pkg/logger"
	"github.com/ycwu/twquant/pkg/redis"
)

// runtime bundles everything a command needs after wiring
type runtime struct {
	cfg      *config.Config
	log      *logger.Logger
	engine   *engine.Engine
	memStore *cache.MemoryStore // nil when Redis backs the cache
	cleanup  func()
}

// bootstrap wires config, logger, providers, cache and engine.
// Every command goes through here so the wiring stays in one place.
// ⭐ SSOT: 元件組裝只在這個函式
func bootstrap() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	httpClient := httputil.New(cfg, log)

	prices := twse.NewClient(httpClient, cfg.Yahoo.ChartBaseURL, log)
	flows := finmind.NewClient(httpClient, cfg.FinMind.BaseURL, cfg.FinMind.Token, log)
	news := yahoonews.NewClient(httpClient, cfg.Yahoo.NewsBaseURL, log)

	// Redis shares cache entries across processes; without it each
	// process keeps its own in-memory store.
	var store cache.Store
	var memStore *cache.MemoryStore
	cleanup := func() {}

	if cfg.Redis.Enabled {
		redisClient, err := redis.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		store = cache.NewRedisStore(redisClient)
		cleanup = func() { redisClient.Close() }
		log.Info("Using Redis-backed result cache")
	} else {
		memStore = cache.NewMemoryStore()
		store = memStore
		log.Info("Using in-memory result cache")
	}

	engCfg := engine.DefaultConfig()
	engCfg.PriceTTL = cfg.Cache.PriceTTL
	engCfg.FlowTTL = cfg.Cache.FlowTTL
	engCfg.NewsTTL = cfg.Cache.NewsTTL

	eng := engine.New(prices, flows, news, cache.New(store), engCfg, log)

	return &runtime{
		cfg:      cfg,
		log:      log,
		engine:   eng,
		memStore: memStore,
		cleanup:  cleanup,
	}, nil
}
