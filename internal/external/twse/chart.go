package twse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/ycwu/twquant/internal/contracts"
)

// chartResponse is the Yahoo Finance v8 chart API payload
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDailyBars fetches a trailing window of daily OHLCV bars.
// A series with zero bars and a nil error is a valid outcome: the symbol
// is not listed on that venue. Transport and parse failures wrap
// contracts.ErrProvider.
func (c *Client) FetchDailyBars(ctx context.Context, symbol contracts.ListedSymbol, days int) (contracts.PriceSeries, error) {
	fullURL := fmt.Sprintf("%s/%s?interval=1d&range=%s",
		c.baseURL, url.PathEscape(symbol.Ticker()), rangeForDays(days))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", contracts.ErrProvider, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrProvider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", contracts.ErrProvider, err)
	}

	// Yahoo answers 404 with a "Not Found" chart error for symbols the
	// venue does not carry. That is the resolver's fallback trigger, not
	// a provider failure.
	if resp.StatusCode == http.StatusNotFound {
		return contracts.PriceSeries{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d", contracts.ErrProvider, resp.StatusCode)
	}

	series, err := c.parseChart(body, days)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": symbol.Ticker(),
		"count":  len(series),
	}).Debug("Fetched daily bars")
	return series, nil
}

// parseChart decodes the chart payload into an ascending PriceSeries
func (c *Client) parseChart(body []byte, days int) (contracts.PriceSeries, error) {
	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("%w: decode chart: %v", contracts.ErrProvider, err)
	}

	if chart.Chart.Error != nil {
		if chart.Chart.Error.Code == "Not Found" {
			return contracts.PriceSeries{}, nil
		}
		return nil, fmt.Errorf("%w: chart api: %s", contracts.ErrProvider, chart.Chart.Error.Description)
	}

	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return contracts.PriceSeries{}, nil
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return contracts.PriceSeries{}, nil
	}
	quote := result.Indicators.Quote[0]

	series := make(contracts.PriceSeries, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		o := toFloat(at(quote.Open, i))
		h := toFloat(at(quote.High, i))
		l := toFloat(at(quote.Low, i))
		cl := toFloat(at(quote.Close, i))
		if o == 0 && h == 0 && l == 0 && cl == 0 {
			continue // null bars (holidays etc.)
		}
		series = append(series, contracts.PriceBar{
			Date:   time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  cl,
			Volume: int64(toFloat(at(quote.Volume, i))),
		})
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })

	// Trim to the requested trailing window
	if len(series) > days {
		series = series[len(series)-days:]
	}
	return series, nil
}

// rangeForDays maps a trailing day count onto a chart API range token
func rangeForDays(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 365:
		return "1y"
	default:
		return "2y"
	}
}

func at(xs []interface{}, i int) interface{} {
	if i < len(xs) {
		return xs[i]
	}
	return nil
}

// toFloat converts the chart API's loosely typed numbers
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}
