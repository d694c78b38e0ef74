package flow

import (
	"sort"

	"github.com/ycwu/twquant/internal/contracts"
	"github.com/ycwu/twquant/pkg/logger"
)

// trailingSessions is the analysis window: the last N dates that
// actually have records, not the last N calendar days.
const trailingSessions = 3

// Aggregator condenses raw institutional flow records into the
// smart-money summary. Pure computation, no provider access.
// ⭐ SSOT: 籌碼彙總只在這裡
type Aggregator struct {
	logger *logger.Logger
}

// NewAggregator creates a new flow aggregator
func NewAggregator(log *logger.Logger) *Aggregator {
	return &Aggregator{
		logger: log,
	}
}

// Summarize groups records by date, nets the smart-money categories and
// reduces the trailing data-bearing sessions. Zero records yield the
// zero-valued summary, not an error.
func (a *Aggregator) Summarize(records []contracts.InstitutionalFlowRecord) contracts.FlowSummary {
	summary := contracts.FlowSummary{Available: true}

	if len(records) == 0 {
		return summary
	}

	// Net per data-bearing date, smart-money categories only. Dealer
	// activity is deliberately excluded from the signal.
	netByDate := make(map[string]int64)
	for _, r := range records {
		if !r.Category.SmartMoney() {
			continue
		}
		netByDate[r.Date.Format("2006-01-02")] += r.Net()
	}

	if len(netByDate) == 0 {
		return summary
	}

	dates := make([]string, 0, len(netByDate))
	for d := range netByDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	// Non-trading days produce no record and are skipped, not
	// zero-filled.
	if len(dates) > trailingSessions {
		dates = dates[len(dates)-trailingSessions:]
	}

	allPositive := true
	for _, d := range dates {
		net := netByDate[d]
		summary.TotalNet3D += net
		if net <= 0 {
			allPositive = false
		}
	}

	summary.SessionCount = len(dates)
	summary.TotalNet3DLots = float64(summary.TotalNet3D) / 1000
	summary.ConsecutiveBuy = len(dates) >= trailingSessions && allPositive

	a.logger.WithFields(map[string]interface{}{
		"sessions":        summary.SessionCount,
		"total_net_3d":    summary.TotalNet3D,
		"consecutive_buy": summary.ConsecutiveBuy,
	}).Debug("Summarized institutional flow")

	return summary
}
