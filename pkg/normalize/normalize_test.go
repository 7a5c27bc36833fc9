package normalize

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"igfollowers/pkg/instagram"
	"igfollowers/pkg/result"
)

func makeFollowers(n int) []instagram.FollowerUser {
	users := make([]instagram.FollowerUser, n)
	for i := range users {
		users[i] = instagram.FollowerUser{
			PK:       json.Number(fmt.Sprint(1000 + i)),
			Username: fmt.Sprintf("user%03d", i),
			FullName: fmt.Sprintf("User %d", i),
		}
	}
	return users
}

func TestFollowersCapKeepsOrder(t *testing.T) {
	rows := Followers(makeFollowers(120), 50)

	require.Len(t, rows, 50)
	for i, row := range rows {
		assert.Equal(t, result.KindFollower, row.Kind)
		assert.Equal(t, fmt.Sprintf("user%03d", i), row.Username)
		assert.Equal(t, fmt.Sprint(1000+i), row.ID)
	}
}

func TestFollowersUnderCap(t *testing.T) {
	assert.Len(t, Followers(makeFollowers(3), 50), 3)
	assert.Len(t, Followers(makeFollowers(70), 0), 70)
	assert.Empty(t, Followers(nil, 50))
	assert.NotNil(t, Followers(nil, 50))
}

func TestEnrichedFollowers(t *testing.T) {
	users := []instagram.EnrichedFollower{
		{
			FollowerUser: instagram.FollowerUser{PK: "1", Username: "with_profile"},
			Profile: &instagram.ProfileUser{
				FullName:       "Has Profile",
				Biography:      "Bookings: Hello.World+pr@Example.com or dm",
				IsVerified:     true,
				EdgeFollowedBy: instagram.Count{Count: 1234},
			},
		},
		{
			FollowerUser: instagram.FollowerUser{PK: "2", Username: "bare", FullName: "Bare", IsPrivate: true},
		},
	}

	rows := EnrichedFollowers(users, 50)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "Has Profile", first.FullName)
	assert.Equal(t, "Hello.World+pr@Example.com", first.Email)
	require.NotNil(t, first.FollowerCount)
	assert.Equal(t, 1234, *first.FollowerCount)
	assert.True(t, *first.IsVerified)

	second := rows[1]
	assert.Nil(t, second.FollowerCount)
	assert.Empty(t, second.Biography)
	assert.Empty(t, second.Email)
	assert.True(t, *second.IsPrivate)
}

func TestExtractEmailFirstMatch(t *testing.T) {
	assert.Equal(t, "a@b.io", ExtractEmail("first a@b.io then c@d.com"))
	assert.Equal(t, "", ExtractEmail("no contact here"))
}

func TestProfile(t *testing.T) {
	var user instagram.ProfileUser
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "528817151",
		"username": "nasa",
		"full_name": "NASA",
		"biography": "Exploring the universe",
		"external_url": "https://nasa.gov",
		"is_verified": true,
		"edge_followed_by": {"count": 97000000},
		"edge_follow": {"count": 80},
		"edge_owner_to_timeline_media": {"count": 4000},
		"edge_related_profiles": {"edges": [{"node": {"id": "9", "username": "spacex", "full_name": "SpaceX", "is_verified": true}}]}
	}`), &user))

	rows := Profile(&user)
	require.Len(t, rows, 5)

	assert.Equal(t, result.KindProfileSummary, rows[0].Kind)
	assert.Equal(t, 97000000, *rows[0].FollowerCount)

	assert.Equal(t, result.Info{Label: "Posts", Value: "4000"}, *rows[1].Info)
	assert.Equal(t, result.Info{Label: "Following", Value: "80"}, *rows[2].Info)
	assert.Equal(t, result.Info{Label: "External URL", Value: "https://nasa.gov"}, *rows[3].Info)

	assert.Equal(t, result.KindRelatedAccount, rows[4].Kind)
	assert.Equal(t, "spacex", rows[4].Username)
}

func TestProfileMissingFields(t *testing.T) {
	var user instagram.ProfileUser
	require.NoError(t, json.Unmarshal([]byte(`{"username": "minimal"}`), &user))

	rows := Profile(&user)
	require.Len(t, rows, 1)
	assert.Equal(t, "minimal", rows[0].Username)
	assert.Empty(t, rows[0].Biography)
	assert.Equal(t, 0, *rows[0].FollowerCount)

	assert.Empty(t, Profile(nil))
}

func TestPostsConcatenatesPages(t *testing.T) {
	page := func(codes ...string) instagram.TimelineMedia {
		var m instagram.TimelineMedia
		for _, c := range codes {
			m.Edges = append(m.Edges, instagram.MediaEdge{Node: instagram.MediaNode{Shortcode: c}})
		}
		return m
	}

	pages := []instagram.TimelineMedia{page("a", "b"), page("c"), page("d", "e")}

	rows := Posts(pages, 0)
	require.Len(t, rows, 5)
	for i, code := range []string{"a", "b", "c", "d", "e"} {
		assert.Equal(t, result.KindPost, rows[i].Kind)
		assert.Equal(t, code, rows[i].Post.Shortcode)
	}

	assert.Len(t, Posts(pages, 4), 4)
	assert.Empty(t, Posts(nil, 0))
}
