package contracts

import "time"

// Venue identifies the market listing a symbol trades on.
// 台股代號相同時以後綴區分上市/上櫃。
type Venue string

const (
	VenueTWSE Venue = ".TW"  // Taiwan Stock Exchange (上市)
	VenueTPEx Venue = ".TWO" // Taipei Exchange (上櫃)
)

// ListedSymbol is a bare symbol resolved to a concrete venue.
// It is only ever constructed from a fetch that returned data.
type ListedSymbol struct {
	Symbol string `json:"symbol"`
	Venue  Venue  `json:"venue"`
}

// Ticker returns the provider-facing ticker, e.g. "2330.TW"
func (s ListedSymbol) Ticker() string {
	return s.Symbol + string(s.Venue)
}

// PriceBar is one trading session of OHLCV data
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"` // raw share units
}

// PriceSeries is an ordered sequence of bars, ascending by date.
// Sessions may be missing for holidays; no fixed calendar density.
type PriceSeries []PriceBar

// Latest returns the most recent bar. Callers must check Len first.
func (s PriceSeries) Latest() PriceBar {
	return s[len(s)-1]
}

// Closes returns the close column, ascending by date
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}

// Volumes returns the volume column, ascending by date
func (s PriceSeries) Volumes() []int64 {
	out := make([]int64, len(s))
	for i, b := range s {
		out[i] = b.Volume
	}
	return out
}

// FlowCategory is an institutional investor category as reported by the
// flow provider.
type FlowCategory string

const (
	CategoryForeign         FlowCategory = "Foreign_Investor"
	CategoryInvestmentTrust FlowCategory = "Investment_Trust"
	CategoryDealerSelf      FlowCategory = "Dealer_self"
	CategoryDealerHedging   FlowCategory = "Dealer_Hedging"
)

// SmartMoney reports whether the category counts toward the smart-money
// net flow (foreign institutional + domestic investment trust, dealers
// excluded).
func (c FlowCategory) SmartMoney() bool {
	return c == CategoryForeign || c == CategoryInvestmentTrust
}

// InstitutionalFlowRecord is one (date, category) row of buy/sell volume.
// Multiple records share a date, one per category.
type InstitutionalFlowRecord struct {
	Date     time.Time    `json:"date"`
	Category FlowCategory `json:"category"`
	Buy      int64        `json:"buy"`  // >= 0
	Sell     int64        `json:"sell"` // >= 0
}

// Net returns buy minus sell; may be negative
func (r InstitutionalFlowRecord) Net() int64 {
	return r.Buy - r.Sell
}

// NewsItem is one headline for a symbol
type NewsItem struct {
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	Link        string    `json:"link"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}
