package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"igfollowers/pkg/config"
	errs "igfollowers/pkg/errors"
	"igfollowers/pkg/logger"
	"igfollowers/pkg/ratelimit"
	"igfollowers/pkg/retry"
)

// Client resolves profiles, followers and posts over a Transport
type Client struct {
	transport Transport
	baseURL   string
	appID     string
	limiter   ratelimit.Limiter
	retry     *retry.Config
	logger    logger.Logger
}

// NewClient creates a new Instagram API client over transport
func NewClient(transport Transport, cfg *config.Config, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Client{
		transport: transport,
		baseURL:   trimBase(cfg.Instagram.BaseURL),
		appID:     cfg.Instagram.AppID,
		limiter:   ratelimit.PerMinute(cfg.RateLimit.RequestsPerMinute),
		retry:     retry.FromConfig(cfg.Retry, log),
		logger:    log,
	}
}

// SetLimiter replaces the request pacer, letting several clients share one
func (c *Client) SetLimiter(l ratelimit.Limiter) {
	c.limiter = l
}

// getJSON fetches url and decodes the reply into target
func (c *Client) getJSON(ctx context.Context, url string, target interface{}) error {
	return retry.Do(ctx, c.retry, func(ctx context.Context) error {
		if wait := c.limiter.Delay(); wait > 0 {
			logger.LogRateLimit(c.logger, url, wait)
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		resp, err := c.transport.Do(ctx, &Request{
			URL:     url,
			Headers: map[string]string{"X-IG-App-ID": c.appID},
		})
		if err != nil {
			return err
		}

		if err := c.checkResponse(url, resp); err != nil {
			return err
		}

		if err := json.Unmarshal(resp.Body, target); err != nil {
			bodyPreview := string(resp.Body)
			if len(bodyPreview) > 200 {
				bodyPreview = bodyPreview[:200] + "..."
			}
			c.logger.WarnWithFields("Failed to parse JSON response", map[string]interface{}{
				"url":          url,
				"status":       resp.StatusCode,
				"error":        err.Error(),
				"body_preview": bodyPreview,
			})
			return &errs.Error{
				Kind:    errs.KindMalformedResponse,
				Message: "failed to parse JSON",
				Code:    resp.StatusCode,
				Err:     err,
			}
		}
		return nil
	})
}

// checkResponse maps an upstream reply onto the error taxonomy
func (c *Client) checkResponse(url string, resp *Response) error {
	if strings.Contains(resp.FinalURL, "/accounts/login") {
		return errs.AuthRequired(resp.StatusCode)
	}

	var status apiStatus
	_ = json.Unmarshal(resp.Body, &status)
	if status.loginWall() {
		return errs.AuthRequired(resp.StatusCode)
	}

	fields := map[string]interface{}{
		"status": resp.StatusCode,
		"url":    url,
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		if status.Status == "fail" {
			msg := status.Message
			if msg == "" {
				msg = "request failed"
			}
			if errs.MentionsLogin(msg) {
				c.logger.WarnWithFields("Login required", fields)
				return errs.New(errs.KindAuthRequired, resp.StatusCode, msg)
			}
			return errs.New(errs.KindUpstreamUnavailable, resp.StatusCode, msg)
		}
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.logger.WarnWithFields("Authentication error", fields)
		return errs.AuthRequired(resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		c.logger.WarnWithFields("Resource not found", fields)
		return errs.New(errs.KindInvalidInput, resp.StatusCode, "resource not found")
	case resp.StatusCode == http.StatusTooManyRequests:
		c.logger.WarnWithFields("Rate limit exceeded", fields)
		return errs.New(errs.KindUpstreamUnavailable, resp.StatusCode, "rate limit exceeded")
	case resp.StatusCode >= 500:
		c.logger.WarnWithFields("Server error", fields)
		return errs.New(errs.KindUpstreamUnavailable, resp.StatusCode, "server error")
	case resp.StatusCode >= 400:
		return errs.New(errs.KindUpstreamUnavailable, resp.StatusCode,
			fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
	default:
		return nil
	}
}

// FetchUserProfile resolves username to its profile
func (c *Client) FetchUserProfile(ctx context.Context, username string) (*ProfileUser, error) {
	if !IsValidUsername(username) {
		return nil, errs.InvalidInput(fmt.Sprintf("invalid username: %q", username))
	}

	url := GetProfileURL(c.baseURL, username)
	c.logger.DebugWithFields("Fetching user profile", map[string]interface{}{
		"username": username,
	})

	var response ProfileResponse
	if err := c.getJSON(ctx, url, &response); err != nil {
		return nil, err
	}

	if response.Data.User == nil {
		return nil, errs.New(errs.KindMalformedResponse, http.StatusOK, "No user data found in response")
	}

	return response.Data.User, nil
}

// FetchFollowers fetches one page of userID's followers. maxID is the cursor
// from the previous page, empty for the first.
func (c *Client) FetchFollowers(ctx context.Context, userID, maxID string, count int) (*FollowersPage, error) {
	url := GetFollowersURL(c.baseURL, userID, count, maxID)
	c.logger.DebugWithFields("Fetching followers page", map[string]interface{}{
		"user_id": userID,
		"max_id":  maxID,
		"count":   count,
	})

	var page FollowersPage
	if err := c.getJSON(ctx, url, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// FetchUserMedia fetches one page of userID's timeline after the cursor
func (c *Client) FetchUserMedia(ctx context.Context, userID, after string, first int) (*TimelineMedia, error) {
	url := GetMediaURL(c.baseURL, userID, after, first)
	c.logger.DebugWithFields("Fetching user media", map[string]interface{}{
		"user_id": userID,
		"after":   after,
	})

	var response TimelineResponse
	if err := c.getJSON(ctx, url, &response); err != nil {
		return nil, err
	}

	if response.Data.User == nil {
		return nil, errs.New(errs.KindMalformedResponse, http.StatusOK, "No media data found in response")
	}

	return &response.Data.User.EdgeOwnerToTimelineMedia, nil
}
