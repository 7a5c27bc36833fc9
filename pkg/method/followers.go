package method

import (
	"context"

	"igfollowers/pkg/config"
	errs "igfollowers/pkg/errors"
	"igfollowers/pkg/logger"
	"igfollowers/pkg/normalize"
	"igfollowers/pkg/result"
)

// method2AuthMessage replaces the bare login error of method2
const method2AuthMessage = "Login required by Instagram to fetch followers."

// FollowersMethod lists a target's followers through the direct web API
type FollowersMethod struct {
	name           string
	requireSession bool
	factory        ClientFactory
	limits         config.LimitsConfig
	logger         logger.Logger
}

// NewMethod2 lists followers with an optional session
func NewMethod2(factory ClientFactory, limits config.LimitsConfig, log logger.Logger) *FollowersMethod {
	return &FollowersMethod{name: "method2", factory: factory, limits: limits, logger: log}
}

// NewMethod6 lists followers and refuses to run without a session
func NewMethod6(factory ClientFactory, limits config.LimitsConfig, log logger.Logger) *FollowersMethod {
	return &FollowersMethod{name: "method6", requireSession: true, factory: factory, limits: limits, logger: log}
}

func (m *FollowersMethod) Name() string { return m.name }

func (m *FollowersMethod) Run(ctx context.Context, in Input) (*Output, error) {
	if err := validateUsername(in.Username); err != nil {
		return nil, err
	}
	if m.requireSession && in.SessionID == "" {
		return nil, errs.InvalidInput("Session ID is required for " + m.name)
	}

	rows, private, err := m.fetch(ctx, in)
	if err != nil {
		if !m.requireSession && errs.RequiresLogin(err) {
			return nil, &errs.Error{Kind: errs.KindAuthRequired, Message: method2AuthMessage, Code: errs.StatusCode(err)}
		}
		return nil, err
	}

	return &Output{Rows: rows, IsPrivate: result.Bool(private)}, nil
}

func (m *FollowersMethod) fetch(ctx context.Context, in Input) ([]result.Row, bool, error) {
	api, err := m.factory.Direct(in.SessionID)
	if err != nil {
		return nil, false, err
	}

	profile, err := api.FetchUserProfile(ctx, in.Username)
	if err != nil {
		return nil, false, err
	}
	if profile.IsPrivate && in.SessionID == "" {
		return nil, true, errs.AuthRequired(0)
	}

	m.logger.DebugWithFields("Resolved profile", map[string]interface{}{
		"user_id":   profile.ID,
		"followers": profile.EdgeFollowedBy.Count,
	})

	users, err := collectFollowers(ctx, api, profile.ID, m.limits.FollowerCap)
	if err != nil {
		return nil, profile.IsPrivate, err
	}

	return normalize.Followers(users, m.limits.FollowerCap), profile.IsPrivate, nil
}
