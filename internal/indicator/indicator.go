package indicator

import (
	"fmt"

	"github.com/ycwu/twquant/internal/contracts"
	"github.com/ycwu/twquant/pkg/logger"
)

// Windows for the fixed indicator set
const (
	WindowShort  = 5  // MA5 / 5-session volume average
	WindowMedium = 10 // MA10
	WindowLong   = 20 // MA20 (月線)
)

// Calculator derives the technical indicator set from a price series.
// Pure computation, no provider access.
// ⭐ SSOT: 技術指標計算只在這裡
type Calculator struct {
	logger *logger.Logger
}

// NewCalculator creates a new indicator calculator
func NewCalculator(log *logger.Logger) *Calculator {
	return &Calculator{
		logger: log,
	}
}

// MovingAverage returns the arithmetic mean of the last n values.
// Fewer than n values is contracts.ErrInsufficientHistory, never a
// silently short average.
func MovingAverage(values []float64, n int) (float64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: window %d", contracts.ErrInsufficientHistory, n)
	}
	if len(values) < n {
		return 0, fmt.Errorf("%w: have %d values, need %d", contracts.ErrInsufficientHistory, len(values), n)
	}

	var sum float64
	for _, v := range values[len(values)-n:] {
		sum += v
	}
	return sum / float64(n), nil
}

// VolumeMovingAverage is MovingAverage over raw volume
func VolumeMovingAverage(volumes []int64, n int) (float64, error) {
	values := make([]float64, len(volumes))
	for i, v := range volumes {
		values[i] = float64(v)
	}
	return MovingAverage(values, n)
}

// Compute derives the full indicator set. The series must cover MA5 and
// MA10 (the trend core); a series too short for MA20 degrades the
// MA20-dependent fields instead of failing.
func (c *Calculator) Compute(series contracts.PriceSeries) (contracts.IndicatorSet, error) {
	var set contracts.IndicatorSet

	if len(series) < WindowMedium {
		return set, fmt.Errorf("%w: have %d bars, need %d", contracts.ErrInsufficientHistory, len(series), WindowMedium)
	}

	closes := series.Closes()
	volumes := series.Volumes()
	latest := series.Latest()
	prior := series[len(series)-2]

	set.Close = latest.Close
	set.PrevClose = prior.Close
	set.Change = latest.Close - prior.Close
	if prior.Close != 0 {
		set.ChangePercent = set.Change / prior.Close * 100
	}
	set.Volume = latest.Volume
	set.VolumeLots = float64(latest.Volume) / 1000

	// MA5/MA10 are guaranteed by the length check above
	set.MA5, _ = MovingAverage(closes, WindowShort)
	set.MA10, _ = MovingAverage(closes, WindowMedium)
	set.VolumeMA5, _ = VolumeMovingAverage(volumes, WindowShort)

	if ma20, err := MovingAverage(closes, WindowLong); err == nil && ma20 != 0 {
		set.MA20 = ma20
		set.HasMA20 = true
		set.BiasPercent = (latest.Close - ma20) / ma20 * 100
	}

	// A zero volume average reads as "normal" participation
	if set.VolumeMA5 == 0 {
		set.VolumeRatio = 1.0
	} else {
		set.VolumeRatio = float64(latest.Volume) / set.VolumeMA5
	}

	set.Trend = classifyTrend(latest.Close, set.MA5, set.MA10)

	c.logger.WithFields(map[string]interface{}{
		"close": set.Close,
		"ma5":   set.MA5,
		"ma10":  set.MA10,
		"ma20":  set.MA20,
		"trend": set.Trend,
	}).Debug("Computed indicators")

	return set, nil
}

// classifyTrend applies the three-way classification. Equality at any
// comparison point is Choppy, never Bullish or Bearish.
func classifyTrend(close, ma5, ma10 float64) contracts.Trend {
	switch {
	case close > ma5 && ma5 > ma10:
		return contracts.TrendBullish
	case close < ma5 && ma5 < ma10:
		return contracts.TrendBearish
	default:
		return contracts.TrendChoppy
	}
}
