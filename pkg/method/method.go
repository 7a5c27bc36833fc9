package method

import (
	"context"
	"fmt"
	"strings"
	"time"

	"igfollowers/pkg/config"
	errs "igfollowers/pkg/errors"
	"igfollowers/pkg/instagram"
	"igfollowers/pkg/logger"
	"igfollowers/pkg/result"
)

// Input is what a method run receives from the command line
type Input struct {
	Username  string
	SessionID string
	APIKey    string
}

// Output is a successful method run before it is wrapped in an envelope
type Output struct {
	Rows      []result.Row
	Info      string
	IsPrivate *bool
	// Method overrides the reported method name, set by the fallback chain
	Method string
}

// Names lists the methods New accepts
var Names = []string{"method2", "method4", "method5", "method6", "auto"}

// New builds the named method
func New(name string, factory ClientFactory, cfg *config.Config, log logger.Logger) (Method, error) {
	log = log.WithField("method", name)
	switch name {
	case "method2":
		return NewMethod2(factory, cfg.Limits, log), nil
	case "method4":
		return NewMethod4(factory, cfg.Limits, log), nil
	case "method5":
		return NewMethod5(factory, cfg.Limits, log), nil
	case "method6":
		return NewMethod6(factory, cfg.Limits, log), nil
	case "auto":
		return NewAuto(factory, cfg, log), nil
	default:
		return nil, errs.InvalidInput(fmt.Sprintf("unknown method %q", name))
	}
}

// Execute runs m and converts the outcome into an envelope. It never fails:
// every error ends up in the envelope.
func Execute(ctx context.Context, m Method, in Input, log logger.Logger) result.Envelope {
	if log == nil {
		log = logger.NewNopLogger()
	}
	in.Username = instagram.SanitizeUsername(in.Username)
	in.SessionID = ParseSessionID(in.SessionID)
	in.APIKey = strings.TrimSpace(in.APIKey)

	log = log.WithFields(map[string]interface{}{
		"method":   m.Name(),
		"username": in.Username,
	})

	start := time.Now()
	out, err := m.Run(ctx, in)
	if err != nil {
		log.WithError(err).WarnWithFields("Method failed", map[string]interface{}{
			"kind":     string(errs.KindOf(err)),
			"duration": time.Since(start),
		})
		return result.Failure(m.Name(), err)
	}

	name := m.Name()
	if out.Method != "" {
		name = out.Method
	}

	env := result.Success(name, out.Rows).WithInfo(out.Info)
	if out.IsPrivate != nil {
		env = env.WithPrivate(*out.IsPrivate)
	}

	log.InfoWithFields("Method succeeded", map[string]interface{}{
		"rows":     len(out.Rows),
		"duration": time.Since(start),
	})
	return env
}

// ParseSessionID accepts a bare session id or a cookie string containing
// sessionid=...
func ParseSessionID(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "sessionid=") {
		return raw
	}
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if v, ok := strings.CutPrefix(part, "sessionid="); ok {
			return v
		}
	}
	return raw
}

// validateUsername rejects usernames the web API would never accept
func validateUsername(username string) error {
	if username == "" {
		return errs.InvalidInput("No username provided")
	}
	if !instagram.IsValidUsername(username) {
		return errs.InvalidInput(fmt.Sprintf("invalid username: %q", username))
	}
	return nil
}

// collectFollowers pages through userID's followers until limit users are
// collected or the upstream runs out
func collectFollowers(ctx context.Context, api InstagramAPI, userID string, limit int) ([]instagram.FollowerUser, error) {
	var users []instagram.FollowerUser
	maxID := ""

	for len(users) < limit {
		count := limit - len(users)
		if count > instagram.MaxFollowersPerPage {
			count = instagram.MaxFollowersPerPage
		}

		page, err := api.FetchFollowers(ctx, userID, maxID, count)
		if err != nil {
			return nil, err
		}

		users = append(users, page.Users...)
		if page.NextMaxID == "" || len(page.Users) == 0 {
			break
		}
		maxID = page.NextMaxID
	}

	return users, nil
}

// collectPosts fetches at most pageCap timeline pages, stopping early when
// the upstream reports no next page. Pages fetched before an error are kept.
func collectPosts(ctx context.Context, api InstagramAPI, userID string, pageCap, perPage int) ([]instagram.TimelineMedia, error) {
	var pages []instagram.TimelineMedia
	cursor := ""

	for i := 0; i < pageCap; i++ {
		page, err := api.FetchUserMedia(ctx, userID, cursor, perPage)
		if err != nil {
			return pages, err
		}
		pages = append(pages, *page)

		if !page.PageInfo.HasNextPage || page.PageInfo.EndCursor == "" {
			break
		}
		cursor = page.PageInfo.EndCursor
	}

	return pages, nil
}
