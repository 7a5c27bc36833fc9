// Package reporting forwards unexpected method failures to Sentry.
//
// Reporting is off unless a DSN is configured. Failures the user can act on
// (a login wall or a bad argument) are never reported; only upstream and
// response-format failures are.
package reporting

import (
	"errors"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"igfollowers/pkg/config"
	errs "igfollowers/pkg/errors"
	"igfollowers/pkg/logger"
	"igfollowers/pkg/result"
)

// DefaultFlushTimeout bounds how long Flush waits for queued events
const DefaultFlushTimeout = 2 * time.Second

// Reporter sends failures to a Sentry hub
type Reporter struct {
	hub *sentry.Hub
	log logger.Logger
}

// New creates a reporter for cfg. With no DSN the reporter is disabled and
// every call is a no-op.
func New(cfg config.ReportingConfig, release string, log logger.Logger) (*Reporter, error) {
	if cfg.SentryDSN == "" {
		return &Reporter{log: log}, nil
	}

	return NewWithOptions(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.Environment,
		Release:     release,
		SampleRate:  1.0,
	}, log)
}

// NewWithOptions creates an enabled reporter from explicit client options
func NewWithOptions(opts sentry.ClientOptions, log logger.Logger) (*Reporter, error) {
	client, err := sentry.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to init sentry: %w", err)
	}

	return &Reporter{
		hub: sentry.NewHub(client, sentry.NewScope()),
		log: log,
	}, nil
}

// Enabled reports whether events are sent anywhere
func (r *Reporter) Enabled() bool {
	return r != nil && r.hub != nil
}

// Reportable reports whether a failure of kind is worth an event
func Reportable(kind errs.Kind) bool {
	return kind == errs.KindUpstreamUnavailable || kind == errs.KindMalformedResponse
}

// CaptureEnvelope reports a failed envelope for username. Successful and
// non-reportable envelopes are ignored.
func (r *Reporter) CaptureEnvelope(username string, env result.Envelope) bool {
	if !r.Enabled() || env.Success || !Reportable(env.ErrorKind) {
		return false
	}

	var eventID *sentry.EventID
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("method", env.Method)
		scope.SetTag("error_kind", string(env.ErrorKind))
		scope.SetTag("username", username)
		eventID = r.hub.CaptureException(errors.New(env.Error))
	})

	if eventID != nil && r.log != nil {
		r.log.DebugWithFields("Reported failure", map[string]interface{}{
			"event_id": string(*eventID),
			"method":   env.Method,
		})
	}
	return eventID != nil
}

// Flush waits up to timeout for queued events to be delivered
func (r *Reporter) Flush(timeout time.Duration) bool {
	if !r.Enabled() {
		return true
	}
	return r.hub.Flush(timeout)
}
