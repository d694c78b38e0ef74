package finmind

import (
	"sync"

	"github.com/ycwu/twquant/pkg/httputil"
	"github.com/ycwu/twquant/pkg/logger"
)

// Client talks to the FinMind open data API. Datasets behind it are
// token-gated; a missing or rejected token puts the client into degraded
// mode permanently instead of re-authenticating per call.
// ⭐ SSOT: FinMind API 呼叫只在這個 client
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	token      string

	mu            sync.Mutex
	credentialBad bool
}

// NewClient creates a new FinMind client. An empty token is allowed and
// marks the client degraded from the start.
func NewClient(httpClient *httputil.Client, baseURL, token string, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://api.finmindtrade.com/api/v4"
	}
	c := &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
		token:      token,
	}
	if token == "" {
		c.credentialBad = true
		log.Warn("FinMind token missing, institutional flow disabled")
	}
	return c
}

// available reports whether the credential is still considered valid
func (c *Client) available() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.credentialBad
}

// markCredentialBad permanently degrades the client
func (c *Client) markCredentialBad() {
	c.mu.Lock()
	c.credentialBad = true
	c.mu.Unlock()
	c.logger.Warn("FinMind credential rejected, institutional flow disabled")
}
