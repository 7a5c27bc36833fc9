package method

import (
	"context"
	"fmt"
	"strings"

	"igfollowers/pkg/config"
	errs "igfollowers/pkg/errors"
	"igfollowers/pkg/logger"
)

// Step is one entry of a fallback chain. Enabled may skip the step for a
// given input; nil means always run.
type Step struct {
	Method  Method
	Enabled func(in Input) bool
}

// Chain tries its steps in order and returns the first success
type Chain struct {
	name   string
	steps  []Step
	logger logger.Logger
}

// NewChain creates a fallback chain
func NewChain(name string, log logger.Logger, steps ...Step) *Chain {
	return &Chain{name: name, steps: steps, logger: log}
}

// NewAuto tries ScrapFly when a key is available, then method2
func NewAuto(factory ClientFactory, cfg *config.Config, log logger.Logger) *Chain {
	configuredKey := cfg.ScrapFly.APIKey
	return NewChain("auto", log,
		Step{
			Method:  NewMethod5(factory, cfg.Limits, log.WithField("step", "method5")),
			Enabled: func(in Input) bool { return in.APIKey != "" || configuredKey != "" },
		},
		Step{Method: NewMethod2(factory, cfg.Limits, log.WithField("step", "method2"))},
	)
}

func (c *Chain) Name() string { return c.name }

func (c *Chain) Run(ctx context.Context, in Input) (*Output, error) {
	var details []string
	var lastErr error
	loginWall := false

	for _, step := range c.steps {
		if step.Enabled != nil && !step.Enabled(in) {
			continue
		}

		c.logger.InfoWithFields("Attempting method", map[string]interface{}{
			"step": step.Method.Name(),
		})

		out, err := step.Method.Run(ctx, in)
		if err == nil {
			out.Method = step.Method.Name()
			return out, nil
		}

		c.logger.WithError(err).WarnWithFields("Method failed, trying next", map[string]interface{}{
			"step": step.Method.Name(),
		})
		details = append(details, fmt.Sprintf("%s: %s", step.Method.Name(), errs.Message(err)))
		lastErr = err
		loginWall = loginWall || errs.RequiresLogin(err)

		if ctx.Err() != nil {
			break
		}
	}

	if lastErr == nil {
		return nil, errs.InvalidInput("no method available")
	}

	kind := errs.KindOf(lastErr)
	if loginWall {
		kind = errs.KindAuthRequired
	}
	return nil, &errs.Error{
		Kind:    kind,
		Message: "All methods failed. Details: " + strings.Join(details, " | "),
		Code:    errs.StatusCode(lastErr),
	}
}
