package finmind

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

const institutionalDataset = "TaiwanStockInstitutionalInvestorsBuySell"

// flowResponse is the FinMind v4 data API payload
type flowResponse struct {
	Msg    string    `json:"msg"`
	Status int       `json:"status"`
	Data   []flowRow `json:"data"`
}

type flowRow struct {
	Date    string `json:"date"` // YYYY-MM-DD
	StockID string `json:"stock_id"`
	Buy     int64  `json:"buy"`
	Sell    int64  `json:"sell"`
	Name    string `json:"name"` // investor category
}

// FetchInstitutionalFlow fetches per-day, per-category buy/sell volumes.
// Every degraded outcome (missing/rejected credential, transport or
// parse failure) wraps contracts.ErrUnavailable: institutional data is
// supplementary and must never abort a diagnostic.
func (c *Client) FetchInstitutionalFlow(ctx context.Context, symbol string, from, to time.Time) ([]contracts.InstitutionalFlowRecord, error) {
	if !c.available() {
		return nil, contracts.ErrUnavailable
	}

	params := url.Values{}
	params.Set("dataset", institutionalDataset)
	params.Set("data_id", symbol)
	params.Set("start_date", from.Format("2006-01-02"))
	params.Set("end_date", to.Format("2006-01-02"))

	fullURL := fmt.Sprintf("%s/data?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", contracts.ErrUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusPaymentRequired {
		c.markCredentialBad()
		return nil, fmt.Errorf("%w: credential rejected (%d)", contracts.ErrUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d", contracts.ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", contracts.ErrUnavailable, err)
	}

	records, err := parseFlowResponse(body)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  len(records),
	}).Debug("Fetched institutional flow")
	return records, nil
}

// parseFlowResponse decodes the data API payload into flow records,
// ascending by date. Rows with unparseable dates are dropped.
func parseFlowResponse(body []byte) ([]contracts.InstitutionalFlowRecord, error) {
	var payload flowResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", contracts.ErrUnavailable, err)
	}

	if payload.Status != 200 {
		return nil, fmt.Errorf("%w: api status %d: %s", contracts.ErrUnavailable, payload.Status, payload.Msg)
	}

	records := make([]contracts.InstitutionalFlowRecord, 0, len(payload.Data))
	for _, row := range payload.Data {
		date, err := time.Parse("2006-01-02", row.Date)
		if err != nil {
			continue
		}
		records = append(records, contracts.InstitutionalFlowRecord{
			Date:     date,
			Category: contracts.FlowCategory(row.Name),
			Buy:      row.Buy,
			Sell:     row.Sell,
		})
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	return records, nil
}
