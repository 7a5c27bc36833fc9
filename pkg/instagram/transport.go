package instagram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"igfollowers/pkg/config"
	errs "igfollowers/pkg/errors"
	"igfollowers/pkg/logger"
)

// Request is a single upstream GET
type Request struct {
	URL     string
	Headers map[string]string
}

// Response is what a Transport hands back. StatusCode is the status of the
// Instagram response, even when the request went through a proxy service.
type Response struct {
	StatusCode int
	Body       []byte
	// FinalURL is the URL after redirects, when the transport knows it
	FinalURL string
}

// Transport fetches a URL with a given header set
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// TransportFunc adapts a function to the Transport interface
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

// Do calls f(ctx, req)
func (f TransportFunc) Do(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// HTTPTransport talks to Instagram directly with browser-like headers
type HTTPTransport struct {
	httpClient *http.Client
	headers    map[string]string
	cookies    []*http.Cookie
	logger     logger.Logger
	mu         sync.RWMutex
}

// NewHTTPTransport creates a direct transport
func NewHTTPTransport(cfg config.InstagramConfig, log logger.Logger) *HTTPTransport {
	if log == nil {
		log = logger.GetLogger()
	}

	t := &HTTPTransport{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		headers: map[string]string{
			"User-Agent":       cfg.UserAgent,
			"Accept":           "*/*",
			"Accept-Language":  "en-US,en;q=0.9",
			"X-Requested-With": "XMLHttpRequest",
			"Referer":          strings.TrimSuffix(cfg.BaseURL, "/") + "/",
			"Sec-Fetch-Dest":   "empty",
			"Sec-Fetch-Mode":   "cors",
			"Sec-Fetch-Site":   "same-origin",
		},
		logger: log,
	}

	if cfg.SessionID != "" {
		t.SetSession(cfg.SessionID, cfg.CSRFToken)
	}
	return t
}

// SetSession injects a session credential into every following request
func (t *HTTPTransport) SetSession(sessionID, csrfToken string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cookies = []*http.Cookie{{Name: "sessionid", Value: sessionID}}
	delete(t.headers, "X-CSRFToken")
	if csrfToken != "" {
		t.cookies = append(t.cookies, &http.Cookie{Name: "csrftoken", Value: csrfToken})
		t.headers["X-CSRFToken"] = csrfToken
	}
}

// Do performs the request
func (t *HTTPTransport) Do(ctx context.Context, r *Request) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return nil, errs.Wrap(err, errs.KindInvalidInput, "failed to create request")
	}

	t.mu.RLock()
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}
	for _, c := range t.cookies {
		req.AddCookie(c)
	}
	t.mu.RUnlock()

	for key, value := range r.Headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.LogRequest(t.logger, req.Method, r.URL, 0, time.Since(start))
		return nil, &errs.Error{
			Kind:    errs.KindUpstreamUnavailable,
			Message: fmt.Sprintf("network error: %v", err),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.Error{
			Kind:    errs.KindUpstreamUnavailable,
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Code:    resp.StatusCode,
		}
	}

	logger.LogRequest(t.logger, req.Method, r.URL, resp.StatusCode, time.Since(start))

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
		FinalURL:   resp.Request.URL.String(),
	}, nil
}
