// Package scrapfly fetches pages through the ScrapFly scrape API, which
// handles proxying and anti-bot evasion on its side.
package scrapfly

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"igfollowers/pkg/config"
	errs "igfollowers/pkg/errors"
	"igfollowers/pkg/instagram"
	"igfollowers/pkg/logger"
)

// MissingKeyMessage is reported when no API key is configured
const MissingKeyMessage = "ScrapFly API Key is required for this method."

// scrapeResponse is the subset of the scrape API reply we use
type scrapeResponse struct {
	Result struct {
		StatusCode int    `json:"status_code"`
		Content    string `json:"content"`
		Success    bool   `json:"success"`
		URL        string `json:"url"`
		Error      *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"result"`
}

// apiError is the body ScrapFly returns when the scrape itself is refused
type apiError struct {
	Message  string `json:"message"`
	Code     string `json:"code"`
	HTTPCode int    `json:"http_code"`
}

// Client calls the ScrapFly scrape endpoint. It implements
// instagram.Transport.
type Client struct {
	httpClient *http.Client
	cfg        config.ScrapFlyConfig
	logger     logger.Logger
}

var _ instagram.Transport = (*Client)(nil)

// New creates a ScrapFly client. A missing API key is an invalid input.
func New(cfg config.ScrapFlyConfig, timeout time.Duration, log logger.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errs.InvalidInput(MissingKeyMessage)
	}
	if log == nil {
		log = logger.GetLogger()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.scrapfly.io"
	}

	return &Client{
		// ScrapFly runs the browser and proxy round trip on its side,
		// which takes noticeably longer than a direct call.
		httpClient: &http.Client{Timeout: 3 * timeout},
		cfg:        cfg,
		logger:     log,
	}, nil
}

// ScrapeURL builds the scrape API URL for target with the given headers
func (c *Client) ScrapeURL(target string, headers map[string]string) string {
	params := url.Values{}
	params.Set("key", c.cfg.APIKey)
	params.Set("url", target)
	if c.cfg.ASP {
		params.Set("asp", "true")
	}
	if c.cfg.Country != "" {
		params.Set("country", c.cfg.Country)
	}
	if c.cfg.ProxyPool != "" {
		params.Set("proxy_pool", c.cfg.ProxyPool)
	}
	for name, value := range headers {
		params.Set(fmt.Sprintf("headers[%s]", strings.ToLower(name)), value)
	}

	return fmt.Sprintf("%s/scrape?%s", strings.TrimSuffix(c.cfg.BaseURL, "/"), params.Encode())
}

// Do scrapes r.URL and returns the target's status and body
func (c *Client) Do(ctx context.Context, r *instagram.Request) (*instagram.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ScrapeURL(r.URL, r.Headers), nil)
	if err != nil {
		return nil, errs.Wrap(err, errs.KindInvalidInput, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &errs.Error{
			Kind:    errs.KindUpstreamUnavailable,
			Message: fmt.Sprintf("scrapfly network error: %v", err),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.Error{
			Kind:    errs.KindUpstreamUnavailable,
			Message: "failed to read scrapfly response",
			Code:    resp.StatusCode,
			Err:     err,
		}
	}

	// the key travels in the query string, keep it out of the logs
	logger.LogRequest(c.logger, req.Method, r.URL, resp.StatusCode, time.Since(start))

	var decoded scrapeResponse
	if jsonErr := json.Unmarshal(body, &decoded); jsonErr == nil && decoded.Result.StatusCode != 0 {
		if decoded.Result.Error != nil {
			c.logger.DebugWithFields("ScrapFly reported a scrape error", map[string]interface{}{
				"code":    decoded.Result.Error.Code,
				"message": decoded.Result.Error.Message,
			})
		}
		return &instagram.Response{
			StatusCode: decoded.Result.StatusCode,
			Body:       []byte(decoded.Result.Content),
			FinalURL:   decoded.Result.URL,
		}, nil
	}

	return nil, c.apiFailure(resp.StatusCode, body)
}

// apiFailure maps a reply without a scrape result onto the error taxonomy
func (c *Client) apiFailure(status int, body []byte) error {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err != nil && status == http.StatusOK {
		return &errs.Error{
			Kind:    errs.KindMalformedResponse,
			Message: "failed to parse scrapfly response",
			Code:    status,
			Err:     err,
		}
	}

	msg := apiErr.Message
	if msg == "" {
		msg = fmt.Sprintf("ScrapFly returned status %d", status)
	}

	c.logger.WarnWithFields("ScrapFly request failed", map[string]interface{}{
		"status": status,
		"code":   apiErr.Code,
	})

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errs.New(errs.KindInvalidInput, status, msg)
	case status == http.StatusTooManyRequests || status >= 500:
		return errs.New(errs.KindUpstreamUnavailable, status, msg)
	case status == http.StatusOK:
		return errs.New(errs.KindMalformedResponse, status, "scrapfly response has no result")
	default:
		return errs.New(errs.KindUpstreamUnavailable, status, msg)
	}
}
