package scrapfly

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"igfollowers/pkg/config"
	errs "igfollowers/pkg/errors"
	"igfollowers/pkg/instagram"
	"igfollowers/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.DefaultConfig().ScrapFly
	cfg.APIKey = "scp-test"
	cfg.BaseURL = server.URL

	client, err := New(cfg, time.Second, logger.NewNopLogger())
	require.NoError(t, err)
	return client
}

func scrapeResult(status int, content string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"result": map[string]interface{}{
			"status_code": status,
			"content":     content,
			"success":     status == 200,
			"url":         "https://i.instagram.com/api/v1/users/web_profile_info/?username=x",
		},
	})
	return string(body)
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(config.ScrapFlyConfig{APIKey: "  "}, time.Second, nil)
	require.Error(t, err)
	assert.Equal(t, errs.KindInvalidInput, errs.KindOf(err))
	assert.EqualError(t, err, MissingKeyMessage)
}

func TestDoSendsScrapeParameters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/scrape", r.URL.Path)
		assert.Equal(t, "scp-test", q.Get("key"))
		assert.Equal(t, "https://www.instagram.com/api/v1/users/web_profile_info/?username=nasa", q.Get("url"))
		assert.Equal(t, "true", q.Get("asp"))
		assert.Equal(t, "US", q.Get("country"))
		assert.Equal(t, "public_residential_pool", q.Get("proxy_pool"))
		assert.Equal(t, "936619743392459", q.Get("headers[x-ig-app-id]"))
		fmt.Fprint(w, scrapeResult(200, `{"data":{"user":{"id":"1"}}}`))
	})

	resp, err := client.Do(context.Background(), &instagram.Request{
		URL:     "https://www.instagram.com/api/v1/users/web_profile_info/?username=nasa",
		Headers: map[string]string{"X-IG-App-ID": "936619743392459"},
	})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, `{"data":{"user":{"id":"1"}}}`, string(resp.Body))
}

func TestDoPassesTargetStatusThrough(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, scrapeResult(404, `{}`))
	})

	resp, err := client.Do(context.Background(), &instagram.Request{URL: "https://www.instagram.com/x"})
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestDoAPIFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   errs.Kind
		msg    string
	}{
		{"bad key", http.StatusUnauthorized, `{"message":"Invalid API key","code":"ERR::AUTH","http_code":401}`, errs.KindInvalidInput, "Invalid API key"},
		{"throttled", http.StatusTooManyRequests, `{"message":"Too many concurrent requests"}`, errs.KindUpstreamUnavailable, "Too many concurrent requests"},
		{"outage", http.StatusBadGateway, `<html>`, errs.KindUpstreamUnavailable, "ScrapFly returned status 502"},
		{"garbage", http.StatusOK, `not json`, errs.KindMalformedResponse, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			_, err := client.Do(context.Background(), &instagram.Request{URL: "https://www.instagram.com/x"})
			require.Error(t, err)
			assert.Equal(t, tt.kind, errs.KindOf(err))
			if tt.msg != "" {
				assert.EqualError(t, err, tt.msg)
			}
		})
	}
}

func TestInstagramClientOverScrapFly(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, scrapeResult(200, `{"data":{"user":{"id":"528817151","username":"nasa","edge_followed_by":{"count":97000000}}},"status":"ok"}`))
	})

	cfg := config.DefaultConfig()
	cfg.RateLimit.RequestsPerMinute = 0
	ig := instagram.NewClient(client, cfg, logger.NewNopLogger())

	profile, err := ig.FetchUserProfile(context.Background(), "nasa")
	require.NoError(t, err)
	assert.Equal(t, "528817151", profile.ID)
	assert.Equal(t, 97000000, profile.EdgeFollowedBy.Count)
}

func TestInstagramLoginWallOverScrapFly(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, scrapeResult(401, `{"message":"login_required","require_login":true,"status":"fail"}`))
	})

	cfg := config.DefaultConfig()
	cfg.RateLimit.RequestsPerMinute = 0
	ig := instagram.NewClient(client, cfg, logger.NewNopLogger())

	_, err := ig.FetchUserProfile(context.Background(), "nasa")
	assert.True(t, errs.RequiresLogin(err))
}
