package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ycwu/twquant/internal/cache"
	"github.com/ycwu/twquant/internal/contracts"
	"github.com/ycwu/twquant/internal/engine"
	"github.com/ycwu/twquant/pkg/logger"
)

type stubPrices struct {
	series map[string]contracts.PriceSeries
	err    error
}

func (s *stubPrices) FetchDailyBars(_ context.Context, symbol contracts.ListedSymbol, _ int) (contracts.PriceSeries, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.series[symbol.Ticker()], nil
}

type stubFlows struct {
	records []contracts.InstitutionalFlowRecord
	err     error
}

func (s *stubFlows) FetchInstitutionalFlow(_ context.Context, _ string, _, _ time.Time) ([]contracts.InstitutionalFlowRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

type stubNews struct {
	items []contracts.NewsItem
	err   error
}

func (s *stubNews) FetchNews(_ context.Context, _ contracts.ListedSymbol, _ int) ([]contracts.NewsItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func testSeries(n int) contracts.PriceSeries {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	series := make(contracts.PriceSeries, n)
	for i := range series {
		price := 100 + float64(i)
		series[i] = contracts.PriceBar{
			Date:   base.AddDate(0, 0, i),
			Open:   price,
			High:   price,
			Low:    price,
			Close:  price,
			Volume: 1_000_000,
		}
	}
	return series
}

func newTestHandler(prices *stubPrices, flows *stubFlows, news *stubNews) *StockHandler {
	log := logger.NewForWriter(io.Discard, "error")
	eng := engine.New(prices, flows, news, cache.New(cache.NewMemoryStore()), engine.DefaultConfig(), log)
	return NewStockHandler(eng, log)
}

func serveDiagnosis(h *StockHandler, symbol string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/stocks/{symbol}/diagnosis", h.GetDiagnosis).Methods("GET")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/stocks/"+symbol+"/diagnosis", nil))
	return rec
}

func serveNews(h *StockHandler, symbol, query string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/stocks/{symbol}/news", h.GetNews).Methods("GET")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/stocks/"+symbol+"/news"+query, nil))
	return rec
}

func TestGetDiagnosisOK(t *testing.T) {
	prices := &stubPrices{series: map[string]contracts.PriceSeries{"2330.TW": testSeries(30)}}
	h := newTestHandler(prices, &stubFlows{}, &stubNews{})

	rec := serveDiagnosis(h, "2330")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result contracts.DiagnosticResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "2330.TW", result.Symbol.Ticker())
	assert.Equal(t, 4, result.MaxScore)
	assert.Len(t, result.Criteria, 4)
}

func TestGetDiagnosisUnknownSymbol(t *testing.T) {
	h := newTestHandler(&stubPrices{series: map[string]contracts.PriceSeries{}}, &stubFlows{}, &stubNews{})

	rec := serveDiagnosis(h, "9999")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "9999")
}

func TestGetDiagnosisProviderFailure(t *testing.T) {
	h := newTestHandler(&stubPrices{err: contracts.ErrProvider}, &stubFlows{}, &stubNews{})

	rec := serveDiagnosis(h, "2330")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGetDiagnosisShortHistory(t *testing.T) {
	prices := &stubPrices{series: map[string]contracts.PriceSeries{"2330.TW": testSeries(4)}}
	h := newTestHandler(prices, &stubFlows{}, &stubNews{})

	rec := serveDiagnosis(h, "2330")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetNewsOK(t *testing.T) {
	prices := &stubPrices{series: map[string]contracts.PriceSeries{"2330.TW": testSeries(30)}}
	news := &stubNews{items: []contracts.NewsItem{
		{Title: "台積電法說會", Link: "https://tw.stock.yahoo.com/news/1", Source: "中央社"},
	}}
	h := newTestHandler(prices, &stubFlows{}, news)

	rec := serveNews(h, "2330", "?limit=3")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp NewsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2330", resp.Symbol)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "台積電法說會", resp.Items[0].Title)
}

func TestGetNewsSourceUnavailable(t *testing.T) {
	prices := &stubPrices{series: map[string]contracts.PriceSeries{"2330.TW": testSeries(30)}}
	h := newTestHandler(prices, &stubFlows{}, &stubNews{err: contracts.ErrUnavailable})

	rec := serveNews(h, "2330", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp NewsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}
