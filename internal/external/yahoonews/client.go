package yahoonews

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ycwu/twquant/internal/contracts"
	"github.com/ycwu/twquant/pkg/httputil"
	"github.com/ycwu/twquant/pkg/logger"
)

// Client scrapes per-symbol headlines from the Yahoo Finance Taiwan news
// page. News is purely supplementary: every failure wraps
// contracts.ErrUnavailable and never affects a diagnostic.
// ⭐ SSOT: 新聞抓取只在這個 client
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new news client
func NewClient(httpClient *httputil.Client, baseURL string, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://tw.stock.yahoo.com"
	}
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// FetchNews fetches up to limit recent headlines for a listed symbol
func (c *Client) FetchNews(ctx context.Context, symbol contracts.ListedSymbol, limit int) ([]contracts.NewsItem, error) {
	if limit <= 0 {
		limit = 5
	}

	fullURL := fmt.Sprintf("%s/quote/%s/news", c.baseURL, symbol.Ticker())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", contracts.ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d", contracts.ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", contracts.ErrUnavailable, err)
	}

	items, err := c.parseNewsHTML(string(body), limit)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": symbol.Ticker(),
		"count":  len(items),
	}).Debug("Fetched news")
	return items, nil
}

// parseNewsHTML extracts headline items from the news page. Each story
// is an <li> holding an <h3><a> title link and a publisher <span>.
func (c *Client) parseNewsHTML(html string, limit int) ([]contracts.NewsItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", contracts.ErrUnavailable, err)
	}

	var items []contracts.NewsItem
	doc.Find("li").EachWithBreak(func(i int, story *goquery.Selection) bool {
		anchor := story.Find("h3 a").First()
		title := strings.TrimSpace(anchor.Text())
		if title == "" {
			return true
		}

		link, _ := anchor.Attr("href")
		if strings.HasPrefix(link, "/") {
			link = c.baseURL + link
		}

		source := strings.TrimSpace(story.Find("span").First().Text())

		items = append(items, contracts.NewsItem{
			Title:  title,
			Source: source,
			Link:   link,
		})
		return len(items) < limit
	})

	return items, nil
}
