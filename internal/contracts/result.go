package contracts

import "time"

// Trend is the three-way trend classification over the price series
type Trend string

const (
	TrendBullish Trend = "bullish" // price > MA5 > MA10, strictly
	TrendBearish Trend = "bearish" // price < MA5 < MA10, strictly
	TrendChoppy  Trend = "choppy"  // neither strict ordering holds
)

// IndicatorSet holds the derived technical indicators for one symbol.
// MA20-dependent fields are only meaningful when HasMA20 is true.
type IndicatorSet struct {
	Close         float64 `json:"close"`
	PrevClose     float64 `json:"prev_close"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`      // raw shares
	VolumeLots    float64 `json:"volume_lots"` // 張 (thousand-share lots)

	MA5       float64 `json:"ma5"`
	MA10      float64 `json:"ma10"`
	MA20      float64 `json:"ma20"`
	VolumeMA5 float64 `json:"volume_ma5"`
	HasMA20   bool    `json:"has_ma20"`

	BiasPercent float64 `json:"bias_percent"` // (close-MA20)/MA20*100, valid iff HasMA20
	VolumeRatio float64 `json:"volume_ratio"` // latest volume / VolumeMA5
	Trend       Trend   `json:"trend"`
}

// FlowSummary is the smart-money flow aggregation over the trailing
// 3 data-bearing sessions. The zero value is the degraded/empty summary.
type FlowSummary struct {
	Available      bool    `json:"available"`        // false when the provider degraded
	TotalNet3D     int64   `json:"total_net_3d"`     // raw shares
	TotalNet3DLots float64 `json:"total_net_3d_lots"` // 張
	ConsecutiveBuy bool    `json:"consecutive_buy"`  // 3 data-bearing dates, all net > 0
	SessionCount   int     `json:"session_count"`    // data-bearing dates used (<= 3)
}

// Criterion is one row of the per-criterion diagnostic breakdown
type Criterion struct {
	Label     string `json:"label"`
	Passed    bool   `json:"passed"`
	Rationale string `json:"rationale"`
}

// Verdict is the composite verdict derived from the score
type Verdict string

const (
	VerdictPositive Verdict = "positive" // score >= threshold
	VerdictNeutral  Verdict = "neutral"
)

// DiagnosticResult is the engine's sole output for one symbol
type DiagnosticResult struct {
	Symbol      ListedSymbol `json:"symbol"`
	GeneratedAt time.Time    `json:"generated_at"`

	Indicators IndicatorSet `json:"indicators"`
	Flow       FlowSummary  `json:"flow"`

	Score    int         `json:"score"`
	MaxScore int         `json:"max_score"`
	Verdict  Verdict     `json:"verdict"`
	Criteria []Criterion `json:"criteria"`

	Overheated  bool `json:"overheated"`   // bias > +10%
	VolumeSurge bool `json:"volume_surge"` // volume ratio > 1.5
}
