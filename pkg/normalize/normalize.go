// Package normalize flattens typed Instagram responses into ordered result
// rows. It performs no I/O, and missing nested objects yield empty output.
package normalize

import (
	"regexp"
	"strconv"

	"igfollowers/pkg/instagram"
	"igfollowers/pkg/result"
)

var emailPattern = regexp.MustCompile(`(?i)[a-z0-9.\-+_]+@[a-z0-9.\-+_]+\.[a-z]+`)

// ExtractEmail returns the first email address in text, or ""
func ExtractEmail(text string) string {
	return emailPattern.FindString(text)
}

// Followers maps follower users to rows in source order, keeping at most
// limit of them. A limit of zero or less keeps all.
func Followers(users []instagram.FollowerUser, limit int) []result.Row {
	users = capSlice(users, limit)
	rows := make([]result.Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, result.Follower(u.Username, u.FullName, u.ID()))
	}
	return rows
}

// EnrichedFollowers maps followers together with their resolved profiles.
// A follower without a profile keeps only its list fields.
func EnrichedFollowers(users []instagram.EnrichedFollower, limit int) []result.Row {
	users = capSlice(users, limit)
	rows := make([]result.Row, 0, len(users))
	for _, u := range users {
		row := result.Follower(u.Username, u.FullName, u.ID())
		row.IsVerified = result.Bool(u.IsVerified)
		row.IsPrivate = result.Bool(u.IsPrivate)

		if p := u.Profile; p != nil {
			row.Biography = p.Biography
			row.FollowerCount = result.Int(p.EdgeFollowedBy.Count)
			row.IsVerified = result.Bool(p.IsVerified)
			row.IsPrivate = result.Bool(p.IsPrivate)
			row.Email = ExtractEmail(p.Biography)
			if row.FullName == "" {
				row.FullName = p.FullName
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Profile describes a profile as a summary row, info rows for every value
// present and one row per related account
func Profile(user *instagram.ProfileUser) []result.Row {
	if user == nil {
		return []result.Row{}
	}

	rows := []result.Row{
		result.ProfileSummary(user.Username, user.FullName, user.ID, user.Biography,
			user.EdgeFollowedBy.Count, user.IsVerified, user.IsPrivate),
	}

	if n := user.EdgeOwnerToTimelineMedia.Count; n > 0 {
		rows = append(rows, result.InfoField("Posts", strconv.Itoa(n)))
	}
	if n := user.EdgeFollow.Count; n > 0 {
		rows = append(rows, result.InfoField("Following", strconv.Itoa(n)))
	}
	if user.ExternalURL != "" {
		rows = append(rows, result.InfoField("External URL", user.ExternalURL))
	}
	if user.CategoryName != "" {
		rows = append(rows, result.InfoField("Category", user.CategoryName))
	}
	if user.IsBusinessAccount {
		rows = append(rows, result.InfoField("Business account", "true"))
	}
	if email := ExtractEmail(user.Biography); email != "" {
		rows = append(rows, result.InfoField("Email", email))
	}

	for _, edge := range user.EdgeRelatedProfiles.Edges {
		n := edge.Node
		rows = append(rows, result.RelatedAccount(n.Username, n.FullName, n.ID, n.IsVerified))
	}

	return rows
}

// Posts concatenates the posts of every page in order, keeping at most limit
func Posts(pages []instagram.TimelineMedia, limit int) []result.Row {
	rows := []result.Row{}
	for _, page := range pages {
		for _, edge := range page.Edges {
			if limit > 0 && len(rows) >= limit {
				return rows
			}
			n := edge.Node
			rows = append(rows, result.PostRow(result.Post{
				Shortcode:    n.Shortcode,
				Caption:      n.Caption(),
				DisplayURL:   n.DisplayURL,
				IsVideo:      n.IsVideo,
				LikeCount:    n.Likes(),
				CommentCount: n.EdgeMediaToComment.Count,
				TakenAt:      n.TakenAtTimestamp,
			}))
		}
	}
	return rows
}

func capSlice[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
