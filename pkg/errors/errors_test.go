package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"typed auth", AuthRequired(401), KindAuthRequired},
		{"typed malformed", New(KindMalformedResponse, 200, "bad json"), KindMalformedResponse},
		{"wrapped typed", fmt.Errorf("fetch: %w", InvalidInput("bad username")), KindInvalidInput},
		{"untyped login phrase", errors.New("JSON Query to graphql/query: Login required"), KindAuthRequired},
		{"untyped lower case phrase", errors.New("login required to view"), KindAuthRequired},
		{"untyped other", errors.New("connection reset by peer"), KindUpstreamUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestRequiresLogin(t *testing.T) {
	assert.True(t, RequiresLogin(errors.New("Login required")))
	assert.False(t, RequiresLogin(errors.New("profile does not exist")))
	assert.False(t, RequiresLogin(nil))
}

func TestMentionsLogin(t *testing.T) {
	assert.True(t, MentionsLogin("Login required to see this account"))
	assert.True(t, MentionsLogin("LOGIN REQUIRED"))
	assert.False(t, MentionsLogin("login_required"))
	assert.False(t, MentionsLogin(""))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "Login required", Message(AuthRequired(403)))

	wrapped := Wrap(errors.New("unexpected EOF"), KindMalformedResponse, "failed to parse JSON")
	assert.Equal(t, "failed to parse JSON: unexpected EOF", Message(wrapped))
	assert.Equal(t, "plain", Message(errors.New("plain")))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, KindInvalidInput, "ignored"))
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := Wrap(inner, KindUpstreamUnavailable, "outer")
	assert.ErrorIs(t, err, inner)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(New(KindUpstreamUnavailable, 0, "network")))
	assert.True(t, IsRetryable(New(KindUpstreamUnavailable, 429, "rate limited")))
	assert.True(t, IsRetryable(New(KindUpstreamUnavailable, 503, "unavailable")))
	assert.False(t, IsRetryable(New(KindUpstreamUnavailable, 400, "bad request")))
	assert.False(t, IsRetryable(AuthRequired(401)))
	assert.False(t, IsRetryable(New(KindMalformedResponse, 200, "bad json")))
	assert.False(t, IsRetryable(errors.New("untyped")))
	assert.False(t, IsRetryable(context.Canceled))
	assert.False(t, IsRetryable(nil))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, 404, StatusCode(New(KindInvalidInput, 404, "not found")))
	assert.Equal(t, 0, StatusCode(errors.New("x")))
}
