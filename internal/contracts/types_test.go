package contracts

import (
	"testing"
	"time"
)

func TestListedSymbolTicker(t *testing.T) {
	tests := []struct {
		symbol ListedSymbol
		want   string
	}{
		{ListedSymbol{Symbol: "2330", Venue: VenueTWSE}, "2330.TW"},
		{ListedSymbol{Symbol: "5483", Venue: VenueTPEx}, "5483.TWO"},
	}

	for _, tt := range tests {
		if got := tt.symbol.Ticker(); got != tt.want {
			t.Errorf("Ticker() = %s, want %s", got, tt.want)
		}
	}
}

func TestFlowCategorySmartMoney(t *testing.T) {
	tests := []struct {
		category FlowCategory
		want     bool
	}{
		{CategoryForeign, true},
		{CategoryInvestmentTrust, true},
		{CategoryDealerSelf, false},
		{CategoryDealerHedging, false},
		{FlowCategory("Unknown"), false},
	}

	for _, tt := range tests {
		if got := tt.category.SmartMoney(); got != tt.want {
			t.Errorf("SmartMoney(%s) = %v, want %v", tt.category, got, tt.want)
		}
	}
}

func TestFlowRecordNet(t *testing.T) {
	r := InstitutionalFlowRecord{
		Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Category: CategoryForeign,
		Buy:      1000,
		Sell:     1500,
	}

	if got := r.Net(); got != -500 {
		t.Errorf("Net() = %d, want -500", got)
	}
}

func TestPriceSeriesColumns(t *testing.T) {
	s := PriceSeries{
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Close: 100, Volume: 1000},
		{Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Close: 102, Volume: 2000},
	}

	closes := s.Closes()
	if len(closes) != 2 || closes[1] != 102 {
		t.Errorf("Closes() = %v, want [100 102]", closes)
	}

	vols := s.Volumes()
	if len(vols) != 2 || vols[0] != 1000 {
		t.Errorf("Volumes() = %v, want [1000 2000]", vols)
	}

	if s.Latest().Close != 102 {
		t.Errorf("Latest().Close = %v, want 102", s.Latest().Close)
	}
}
