package method

import (
	"context"

	"igfollowers/pkg/instagram"
)

//go:generate go run go.uber.org/mock/mockgen -source=api.go -destination=mocks/mock.go

// Method is one independent way of fetching a target's data
type Method interface {
	Name() string
	Run(ctx context.Context, in Input) (*Output, error)
}

// InstagramAPI is the part of the Instagram client the methods use
type InstagramAPI interface {
	FetchUserProfile(ctx context.Context, username string) (*instagram.ProfileUser, error)
	FetchFollowers(ctx context.Context, userID, maxID string, count int) (*instagram.FollowersPage, error)
	FetchUserMedia(ctx context.Context, userID, after string, first int) (*instagram.TimelineMedia, error)
}

// ClientFactory builds an InstagramAPI per run, for the direct web API with
// an optional session or for ScrapFly with an API key
type ClientFactory interface {
	Direct(sessionID string) (InstagramAPI, error)
	ScrapFly(apiKey string) (InstagramAPI, error)
}
