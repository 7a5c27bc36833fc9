package result

// Kind tags what a Row describes
type Kind string

const (
	KindFollower       Kind = "follower"
	KindProfileSummary Kind = "profile_summary"
	KindInfoField      Kind = "info_field"
	KindRelatedAccount Kind = "related_account"
	KindPost           Kind = "post"
)

// Row is one normalized output record. Only the fields meaningful for Kind
// are set; absent fields are omitted from JSON.
type Row struct {
	Kind          Kind   `json:"kind"`
	Username      string `json:"username,omitempty"`
	FullName      string `json:"full_name,omitempty"`
	ID            string `json:"id,omitempty"`
	Biography     string `json:"biography,omitempty"`
	FollowerCount *int   `json:"follower_count,omitempty"`
	IsVerified    *bool  `json:"is_verified,omitempty"`
	IsPrivate     *bool  `json:"is_private,omitempty"`
	Email         string `json:"email,omitempty"`

	Info *Info `json:"info,omitempty"`
	Post *Post `json:"post,omitempty"`
}

// Info is the payload of an info_field row
type Info struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Post is the payload of a post row
type Post struct {
	Shortcode    string `json:"shortcode"`
	Caption      string `json:"caption,omitempty"`
	DisplayURL   string `json:"display_url,omitempty"`
	IsVideo      bool   `json:"is_video"`
	LikeCount    int    `json:"like_count"`
	CommentCount int    `json:"comment_count"`
	TakenAt      int64  `json:"taken_at,omitempty"`
}

// Follower builds a follower row
func Follower(username, fullName, id string) Row {
	return Row{Kind: KindFollower, Username: username, FullName: fullName, ID: id}
}

// ProfileSummary builds the row describing the target profile itself
func ProfileSummary(username, fullName, id, biography string, followers int, verified, private bool) Row {
	return Row{
		Kind:          KindProfileSummary,
		Username:      username,
		FullName:      fullName,
		ID:            id,
		Biography:     biography,
		FollowerCount: Int(followers),
		IsVerified:    Bool(verified),
		IsPrivate:     Bool(private),
	}
}

// InfoField builds a label/value row
func InfoField(label, value string) Row {
	return Row{Kind: KindInfoField, Info: &Info{Label: label, Value: value}}
}

// RelatedAccount builds a row for an account suggested next to the profile
func RelatedAccount(username, fullName, id string, verified bool) Row {
	return Row{
		Kind:       KindRelatedAccount,
		Username:   username,
		FullName:   fullName,
		ID:         id,
		IsVerified: Bool(verified),
	}
}

// PostRow builds a post row
func PostRow(p Post) Row {
	return Row{Kind: KindPost, Post: &p}
}

// Int returns a pointer to v
func Int(v int) *int { return &v }

// Bool returns a pointer to v
func Bool(v bool) *bool { return &v }
