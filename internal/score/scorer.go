package score

import (
	"fmt"

	"github.com/ycwu/twquant/internal/contracts"
	"github.com/ycwu/twquant/pkg/logger"
)

// One consistent scheme: four independent criteria worth one point
// each, positive verdict at three points or more.
const (
	MaxScore          = 4
	positiveThreshold = 3
)

// Scorer combines the indicator set and flow summary into the composite
// score and per-criterion breakdown. Pure function of its inputs: no
// clock, no randomness.
// ⭐ SSOT: 綜合評分只在這裡
type Scorer struct {
	logger *logger.Logger
}

// NewScorer creates a new scorer
func NewScorer(log *logger.Logger) *Scorer {
	return &Scorer{
		logger: log,
	}
}

// Score evaluates the four criteria. A degraded flow summary scores the
// institutional criterion as failed, never as an error.
func (s *Scorer) Score(ind contracts.IndicatorSet, fs contracts.FlowSummary) (int, []contracts.Criterion, contracts.Verdict) {
	criteria := []contracts.Criterion{
		longTermTrend(ind),
		momentum(ind),
		participation(ind),
		institutionalSupport(fs),
	}

	total := 0
	for _, c := range criteria {
		if c.Passed {
			total++
		}
	}

	verdict := contracts.VerdictNeutral
	if total >= positiveThreshold {
		verdict = contracts.VerdictPositive
	}

	s.logger.WithFields(map[string]interface{}{
		"score":   total,
		"verdict": verdict,
	}).Debug("Scored diagnostic")

	return total, criteria, verdict
}

// longTermTrend: price above the 20-session average (站上月線)
func longTermTrend(ind contracts.IndicatorSet) contracts.Criterion {
	c := contracts.Criterion{Label: "技術趨勢"}

	if !ind.HasMA20 {
		c.Rationale = "月線資料不足，無法判定"
		return c
	}

	if ind.Close > ind.MA20 {
		c.Passed = true
		c.Rationale = fmt.Sprintf("站上月線 (%.2f > %.2f)", ind.Close, ind.MA20)
	} else {
		c.Rationale = fmt.Sprintf("月線之下 (%.2f ≤ %.2f)", ind.Close, ind.MA20)
	}
	return c
}

// momentum: the 5-session average above the 10-session average
func momentum(ind contracts.IndicatorSet) contracts.Criterion {
	c := contracts.Criterion{Label: "技術動能"}

	if ind.MA5 > ind.MA10 {
		c.Passed = true
		c.Rationale = fmt.Sprintf("5MA > 10MA (%.2f > %.2f)", ind.MA5, ind.MA10)
	} else {
		c.Rationale = fmt.Sprintf("5MA ≤ 10MA (%.2f ≤ %.2f)", ind.MA5, ind.MA10)
	}
	return c
}

// participation: latest volume above the 5-session volume average
func participation(ind contracts.IndicatorSet) contracts.Criterion {
	c := contracts.Criterion{Label: "成交量能"}

	if float64(ind.Volume) > ind.VolumeMA5 {
		c.Passed = true
		c.Rationale = fmt.Sprintf("今日帶量發動 (%.1fx 均量)", ind.VolumeRatio)
	} else {
		c.Rationale = fmt.Sprintf("量能縮減 (%.1fx 均量)", ind.VolumeRatio)
	}
	return c
}

// institutionalSupport: positive smart-money net over the trailing
// 3 data-bearing sessions
func institutionalSupport(fs contracts.FlowSummary) contracts.Criterion {
	c := contracts.Criterion{Label: "籌碼力道"}

	if !fs.Available {
		c.Rationale = "法人資料不可用"
		return c
	}

	switch {
	case fs.ConsecutiveBuy:
		c.Passed = true
		c.Rationale = fmt.Sprintf("法人連續 3 日買超 (+%.0f 張)", fs.TotalNet3DLots)
	case fs.TotalNet3D > 0:
		c.Passed = true
		c.Rationale = fmt.Sprintf("法人買超 (+%.0f 張)", fs.TotalNet3DLots)
	default:
		c.Rationale = fmt.Sprintf("法人賣出 (%.0f 張)", fs.TotalNet3DLots)
	}
	return c
}
