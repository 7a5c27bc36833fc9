package instagram

import "encoding/json"

// apiStatus holds the fields every Instagram JSON reply may carry
type apiStatus struct {
	Status          string `json:"status"`
	Message         string `json:"message"`
	RequireLogin    bool   `json:"require_login"`
	RequiresToLogin bool   `json:"requires_to_login"`
}

func (s apiStatus) loginWall() bool {
	return s.RequireLogin || s.RequiresToLogin || s.Message == "login_required"
}

// ProfileResponse is the reply of the web_profile_info endpoint
type ProfileResponse struct {
	Data struct {
		User *ProfileUser `json:"user"`
	} `json:"data"`
	Status string `json:"status"`
}

// ProfileUser represents an Instagram user profile
type ProfileUser struct {
	ID                       string          `json:"id"`
	Username                 string          `json:"username"`
	FullName                 string          `json:"full_name"`
	Biography                string          `json:"biography"`
	ExternalURL              string          `json:"external_url"`
	CategoryName             string          `json:"category_name"`
	IsPrivate                bool            `json:"is_private"`
	IsVerified               bool            `json:"is_verified"`
	IsBusinessAccount        bool            `json:"is_business_account"`
	EdgeFollowedBy           Count           `json:"edge_followed_by"`
	EdgeFollow               Count           `json:"edge_follow"`
	EdgeOwnerToTimelineMedia TimelineMedia   `json:"edge_owner_to_timeline_media"`
	EdgeRelatedProfiles      RelatedProfiles `json:"edge_related_profiles"`
}

// Count wraps the {"count": n} objects Instagram uses for totals
type Count struct {
	Count int `json:"count"`
}

// RelatedProfiles lists accounts Instagram suggests next to a profile
type RelatedProfiles struct {
	Edges []struct {
		Node RelatedNode `json:"node"`
	} `json:"edges"`
}

// RelatedNode is one suggested account
type RelatedNode struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	IsPrivate  bool   `json:"is_private"`
	IsVerified bool   `json:"is_verified"`
}

// TimelineResponse is the reply of the timeline media query
type TimelineResponse struct {
	Data struct {
		User *struct {
			EdgeOwnerToTimelineMedia TimelineMedia `json:"edge_owner_to_timeline_media"`
		} `json:"user"`
	} `json:"data"`
	Status string `json:"status"`
}

// TimelineMedia is one page of a user's posts
type TimelineMedia struct {
	Count    int         `json:"count"`
	PageInfo PageInfo    `json:"page_info"`
	Edges    []MediaEdge `json:"edges"`
}

// PageInfo contains pagination information
type PageInfo struct {
	HasNextPage bool   `json:"has_next_page"`
	EndCursor   string `json:"end_cursor"`
}

// MediaEdge wraps a single media node
type MediaEdge struct {
	Node MediaNode `json:"node"`
}

// MediaNode represents a single post
type MediaNode struct {
	ID                 string `json:"id"`
	Shortcode          string `json:"shortcode"`
	DisplayURL         string `json:"display_url"`
	IsVideo            bool   `json:"is_video"`
	TakenAtTimestamp   int64  `json:"taken_at_timestamp"`
	EdgeMediaToCaption struct {
		Edges []struct {
			Node struct {
				Text string `json:"text"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"edge_media_to_caption"`
	EdgeLikedBy          Count `json:"edge_liked_by"`
	EdgeMediaPreviewLike Count `json:"edge_media_preview_like"`
	EdgeMediaToComment   Count `json:"edge_media_to_comment"`
}

// Caption returns the first caption text, if any
func (n MediaNode) Caption() string {
	if len(n.EdgeMediaToCaption.Edges) == 0 {
		return ""
	}
	return n.EdgeMediaToCaption.Edges[0].Node.Text
}

// Likes returns the like count from whichever edge is populated
func (n MediaNode) Likes() int {
	if n.EdgeLikedBy.Count > 0 {
		return n.EdgeLikedBy.Count
	}
	return n.EdgeMediaPreviewLike.Count
}

// FollowersPage is one page of the friendships followers endpoint
type FollowersPage struct {
	Users     []FollowerUser `json:"users"`
	NextMaxID string         `json:"next_max_id"`
	BigList   bool           `json:"big_list"`
	Status    string         `json:"status"`
}

// FollowerUser is one entry of a followers page
type FollowerUser struct {
	PK            json.Number `json:"pk"`
	PKID          string      `json:"pk_id"`
	Username      string      `json:"username"`
	FullName      string      `json:"full_name"`
	IsPrivate     bool        `json:"is_private"`
	IsVerified    bool        `json:"is_verified"`
	ProfilePicURL string      `json:"profile_pic_url"`
}

// ID returns the user's numeric id as a string
func (u FollowerUser) ID() string {
	if u.PKID != "" {
		return u.PKID
	}
	return u.PK.String()
}

// EnrichedFollower pairs a follower with its resolved profile. Profile is
// nil when the lookup failed or enrichment is off.
type EnrichedFollower struct {
	FollowerUser
	Profile *ProfileUser
}
