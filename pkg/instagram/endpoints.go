package instagram

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultBaseURL is the base URL for Instagram
	DefaultBaseURL = "https://www.instagram.com"

	// ProfileEndpoint resolves a username to a profile
	ProfileEndpoint = "/api/v1/users/web_profile_info/"

	// FollowersEndpoint lists a user's followers, %s is the numeric user id
	FollowersEndpoint = "/api/v1/friendships/%s/followers/"

	// MediaEndpoint is the GraphQL endpoint used for timeline media
	MediaEndpoint = "/graphql/query/"

	// MediaQueryHash is the query hash for fetching user media
	MediaQueryHash = "e769aa130647d2354c40ea6a439bfc08"

	// DefaultMediaLimit is the default number of media items per page
	DefaultMediaLimit = 12

	// MaxMediaLimit is the maximum number of media items per page
	MaxMediaLimit = 50

	// MaxFollowersPerPage is the largest page the followers endpoint serves
	MaxFollowersPerPage = 50
)

// GetProfileURL constructs the URL for fetching a user's profile
func GetProfileURL(baseURL, username string) string {
	params := url.Values{}
	params.Set("username", username)

	return fmt.Sprintf("%s%s?%s", trimBase(baseURL), ProfileEndpoint, params.Encode())
}

// GetFollowersURL constructs the URL for one page of followers
func GetFollowersURL(baseURL, userID string, count int, maxID string) string {
	if count <= 0 || count > MaxFollowersPerPage {
		count = MaxFollowersPerPage
	}

	params := url.Values{}
	params.Set("count", strconv.Itoa(count))
	if maxID != "" {
		params.Set("max_id", maxID)
	}

	path := fmt.Sprintf(FollowersEndpoint, url.PathEscape(userID))
	return fmt.Sprintf("%s%s?%s", trimBase(baseURL), path, params.Encode())
}

// GetMediaURL constructs the URL for one page of a user's timeline
func GetMediaURL(baseURL, userID, after string, limit int) string {
	if limit <= 0 {
		limit = DefaultMediaLimit
	} else if limit > MaxMediaLimit {
		limit = MaxMediaLimit
	}

	variables := map[string]interface{}{
		"id":    userID,
		"first": limit,
	}
	if after != "" {
		variables["after"] = after
	}
	encoded, _ := json.Marshal(variables)

	params := url.Values{}
	params.Set("query_hash", MediaQueryHash)
	params.Set("variables", string(encoded))

	return fmt.Sprintf("%s%s?%s", trimBase(baseURL), MediaEndpoint, params.Encode())
}

func trimBase(baseURL string) string {
	if baseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimSuffix(baseURL, "/")
}

// IsValidUsername checks if a username is valid according to Instagram rules
func IsValidUsername(username string) bool {
	if username == "" || len(username) > 30 {
		return false
	}

	for _, char := range username {
		if !((char >= 'a' && char <= 'z') ||
			(char >= 'A' && char <= 'Z') ||
			(char >= '0' && char <= '9') ||
			char == '.' || char == '_') {
			return false
		}
	}

	return true
}

// SanitizeUsername strips a leading @, a profile URL prefix and trailing
// slashes or spaces
func SanitizeUsername(username string) string {
	username = strings.TrimSpace(username)
	for _, prefix := range []string{"https://www.instagram.com/", "https://instagram.com/", "instagram.com/"} {
		username = strings.TrimPrefix(username, prefix)
	}
	username = strings.TrimPrefix(username, "@")
	return strings.TrimRight(username, "/ ")
}
