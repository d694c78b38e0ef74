package twse

import (
	"github.com/ycwu/twquant/pkg/httputil"
	"github.com/ycwu/twquant/pkg/logger"
)

// Client fetches Taiwan equity price history through the Yahoo Finance
// chart API, which carries both TWSE (.TW) and TPEx (.TWO) listings.
// ⭐ SSOT: 行情 API 呼叫只在這個 client
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new price client
func NewClient(httpClient *httputil.Client, baseURL string, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	}
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}
