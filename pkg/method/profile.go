package method

import (
	"context"

	"igfollowers/pkg/config"
	errs "igfollowers/pkg/errors"
	"igfollowers/pkg/logger"
	"igfollowers/pkg/normalize"
	"igfollowers/pkg/result"
)

// ProfileInfo is the advisory note on every method5 envelope
const ProfileInfo = "ScrapFly method primarily fetches profile metadata. Full follower list requires additional credits/complex GraphQL."

// ProfileMethod fetches profile metadata and recent posts through ScrapFly
type ProfileMethod struct {
	factory ClientFactory
	limits  config.LimitsConfig
	logger  logger.Logger
}

// NewMethod5 creates the ScrapFly profile method
func NewMethod5(factory ClientFactory, limits config.LimitsConfig, log logger.Logger) *ProfileMethod {
	return &ProfileMethod{factory: factory, limits: limits, logger: log}
}

func (m *ProfileMethod) Name() string { return "method5" }

func (m *ProfileMethod) Run(ctx context.Context, in Input) (*Output, error) {
	if err := validateUsername(in.Username); err != nil {
		return nil, err
	}

	api, err := m.factory.ScrapFly(in.APIKey)
	if err != nil {
		return nil, err
	}

	profile, err := api.FetchUserProfile(ctx, in.Username)
	if err != nil {
		return nil, err
	}

	out := &Output{
		Rows:      normalize.Profile(profile),
		Info:      ProfileInfo,
		IsPrivate: result.Bool(profile.IsPrivate),
	}
	if profile.IsPrivate {
		return out, nil
	}

	pages, err := collectPosts(ctx, api, profile.ID, m.limits.PageCap, m.limits.PostsPerPage)
	out.Rows = append(out.Rows, normalize.Posts(pages, 0)...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		m.logger.WithError(err).WarnWithFields("Could not fetch posts", map[string]interface{}{
			"pages": len(pages),
		})
		out.Info += " Posts could not be fetched: " + errs.Message(err)
	}

	return out, nil
}
