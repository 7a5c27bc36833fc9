package instagram

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfileURL(t *testing.T) {
	assert.Equal(t,
		"https://www.instagram.com/api/v1/users/web_profile_info/?username=test.user",
		GetProfileURL("", "test.user"))
	assert.Equal(t,
		"https://i.instagram.com/api/v1/users/web_profile_info/?username=a_b",
		GetProfileURL("https://i.instagram.com/", "a_b"))
}

func TestGetFollowersURL(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		maxID    string
		expected string
	}{
		{"first page", 50, "", "https://www.instagram.com/api/v1/friendships/123/followers/?count=50"},
		{"with cursor", 20, "QVFE", "https://www.instagram.com/api/v1/friendships/123/followers/?count=20&max_id=QVFE"},
		{"count clamped", 500, "", "https://www.instagram.com/api/v1/friendships/123/followers/?count=50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetFollowersURL(DefaultBaseURL, "123", tt.count, tt.maxID))
		})
	}
}

func TestGetMediaURL(t *testing.T) {
	decode := func(t *testing.T, raw string) map[string]interface{} {
		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, MediaQueryHash, u.Query().Get("query_hash"))

		var vars map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(u.Query().Get("variables")), &vars))
		return vars
	}

	t.Run("first page has no cursor", func(t *testing.T) {
		vars := decode(t, GetMediaURL(DefaultBaseURL, "42", "", 0))
		assert.Equal(t, "42", vars["id"])
		assert.Equal(t, float64(DefaultMediaLimit), vars["first"])
		assert.NotContains(t, vars, "after")
	})

	t.Run("cursor and clamp", func(t *testing.T) {
		vars := decode(t, GetMediaURL(DefaultBaseURL, "42", "CURSOR", 1000))
		assert.Equal(t, "CURSOR", vars["after"])
		assert.Equal(t, float64(MaxMediaLimit), vars["first"])
	})
}

func TestIsValidUsername(t *testing.T) {
	assert.True(t, IsValidUsername("valid_user.name1"))
	assert.False(t, IsValidUsername(""))
	assert.False(t, IsValidUsername("has space"))
	assert.False(t, IsValidUsername("dash-name"))
	assert.False(t, IsValidUsername("abcdefghijklmnopqrstuvwxyz012345"))
}

func TestSanitizeUsername(t *testing.T) {
	tests := map[string]string{
		"@someone":                           "someone",
		"someone/":                           "someone",
		"  someone  ":                        "someone",
		"https://www.instagram.com/someone/": "someone",
		"instagram.com/someone":              "someone",
		"":                                   "",
	}

	for in, want := range tests {
		assert.Equal(t, want, SanitizeUsername(in), "input %q", in)
	}
}

func TestFollowerUserID(t *testing.T) {
	var users []FollowerUser
	require.NoError(t, json.Unmarshal([]byte(`[
		{"pk": 12345, "username": "a"},
		{"pk": "678", "username": "b"},
		{"pk": 1, "pk_id": "999", "username": "c"}
	]`), &users))

	assert.Equal(t, "12345", users[0].ID())
	assert.Equal(t, "678", users[1].ID())
	assert.Equal(t, "999", users[2].ID())
}

func TestMediaNodeHelpers(t *testing.T) {
	var node MediaNode
	require.NoError(t, json.Unmarshal([]byte(`{
		"shortcode": "abc",
		"edge_media_to_caption": {"edges": [{"node": {"text": "hello"}}]},
		"edge_media_preview_like": {"count": 7}
	}`), &node))

	assert.Equal(t, "hello", node.Caption())
	assert.Equal(t, 7, node.Likes())
	assert.Equal(t, "", MediaNode{}.Caption())
}
