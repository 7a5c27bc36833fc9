package method

import (
	"context"

	"igfollowers/pkg/config"
	"igfollowers/pkg/instagram"
	"igfollowers/pkg/logger"
	"igfollowers/pkg/normalize"
	"igfollowers/pkg/result"
)

// EnrichedMethod lists followers and resolves each one's profile for
// biography, counts and a contact email
type EnrichedMethod struct {
	factory ClientFactory
	limits  config.LimitsConfig
	logger  logger.Logger
}

// NewMethod4 creates the enriched followers method
func NewMethod4(factory ClientFactory, limits config.LimitsConfig, log logger.Logger) *EnrichedMethod {
	return &EnrichedMethod{factory: factory, limits: limits, logger: log}
}

func (m *EnrichedMethod) Name() string { return "method4" }

func (m *EnrichedMethod) Run(ctx context.Context, in Input) (*Output, error) {
	if err := validateUsername(in.Username); err != nil {
		return nil, err
	}

	api, err := m.factory.Direct(in.SessionID)
	if err != nil {
		return nil, err
	}

	profile, err := api.FetchUserProfile(ctx, in.Username)
	if err != nil {
		return nil, err
	}

	users, err := collectFollowers(ctx, api, profile.ID, m.limits.FollowerCap)
	if err != nil {
		return nil, err
	}
	if len(users) > m.limits.FollowerCap {
		users = users[:m.limits.FollowerCap]
	}

	enriched := make([]instagram.EnrichedFollower, 0, len(users))
	for _, u := range users {
		ef := instagram.EnrichedFollower{FollowerUser: u}
		if m.limits.EnrichProfiles {
			p, err := api.FetchUserProfile(ctx, u.Username)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				m.logger.WithError(err).WarnWithFields("Could not resolve follower profile", map[string]interface{}{
					"follower": u.Username,
				})
			} else {
				ef.Profile = p
			}
		}
		enriched = append(enriched, ef)
	}

	return &Output{
		Rows:      normalize.EnrichedFollowers(enriched, m.limits.FollowerCap),
		IsPrivate: result.Bool(profile.IsPrivate),
	}, nil
}
