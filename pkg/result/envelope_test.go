package result

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	errs "igfollowers/pkg/errors"
)

func decode(t *testing.T, raw []byte) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestSuccessAlwaysHasFollowers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Success("method2", nil).Write(&buf))

	m := decode(t, buf.Bytes())
	assert.Equal(t, true, m["success"])
	assert.Equal(t, []interface{}{}, m["followers"])
	assert.NotContains(t, m, "error")
	assert.NotContains(t, m, "requires_login")
	assert.NotContains(t, m, "is_private")
}

func TestWriteIsSingleLine(t *testing.T) {
	var buf bytes.Buffer
	env := Success("method5", []Row{PostRow(Post{Shortcode: "a", Caption: "line one\nline two <b>&</b>"})})
	require.NoError(t, env.Write(&buf))

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Contains(t, out, "<b>&</b>")
}

func TestFailureLoginRequired(t *testing.T) {
	env := Failure("method2", errors.New("JSON Query to graphql/query: Login required"))

	m := decode(t, mustMarshal(t, env))
	assert.Equal(t, false, m["success"])
	assert.Equal(t, true, m["requires_login"])
	assert.Equal(t, "auth_required", m["error_kind"])
	assert.NotContains(t, m, "followers")
}

func TestFailureWithoutLoginPhrase(t *testing.T) {
	env := Failure("method2", errors.New("Profile nobody does not exist."))

	m := decode(t, mustMarshal(t, env))
	assert.Equal(t, false, m["success"])
	assert.Equal(t, "Profile nobody does not exist.", m["error"])
	assert.NotContains(t, m, "requires_login")
}

func TestFailureTypedKind(t *testing.T) {
	env := Failure("method5", errs.InvalidInput("ScrapFly API Key is required for this method."))
	assert.Equal(t, errs.KindInvalidInput, env.ErrorKind)
	assert.Equal(t, "ScrapFly API Key is required for this method.", env.Error)
	assert.False(t, env.RequiresLogin)
}

func TestWithPrivateAndInfo(t *testing.T) {
	env := Success("method6", nil).WithPrivate(false).WithInfo("note")

	m := decode(t, mustMarshal(t, env))
	assert.Equal(t, false, m["is_private"])
	assert.Equal(t, "note", m["info"])
}

func TestRowOmitsAbsentFields(t *testing.T) {
	m := decode(t, mustMarshal(t, Follower("alice", "", "1")))
	assert.Equal(t, map[string]interface{}{
		"kind":     "follower",
		"username": "alice",
		"id":       "1",
	}, m)
}

func TestRoundTrip(t *testing.T) {
	envelopes := []Envelope{
		Success("method5", []Row{
			ProfileSummary("nasa", "NASA", "528817151", "Explore the universe", 97000000, true, false),
			InfoField("Posts", "4000"),
			RelatedAccount("spacex", "SpaceX", "1", true),
			PostRow(Post{Shortcode: "C0", IsVideo: true, LikeCount: 10, CommentCount: 2, TakenAt: 1700000000}),
		}).WithInfo("advisory").WithPrivate(false),
		Success("method2", nil),
		Failure("method6", errs.AuthRequired(401)),
		Failure("method4", errors.New("boom")),
	}

	for _, env := range envelopes {
		raw := mustMarshal(t, env)

		var back Envelope
		require.NoError(t, json.Unmarshal(raw, &back))
		assert.Equal(t, env, back)
	}
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestSuccessFieldOrder(t *testing.T) {
	env := Success("method2", []Row{Follower("alice", "", "1")}).WithPrivate(true)
	assert.Equal(t,
		`{"success":true,"method":"method2","followers":[{"kind":"follower","username":"alice","id":"1"}],"is_private":true}`,
		string(mustMarshal(t, env)))
}
