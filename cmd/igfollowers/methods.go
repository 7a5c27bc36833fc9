package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"igfollowers/pkg/auth"
	"igfollowers/pkg/config"
	errs "igfollowers/pkg/errors"
	"igfollowers/pkg/instagram"
	"igfollowers/pkg/logger"
	"igfollowers/pkg/method"
	"igfollowers/pkg/reporting"
	"igfollowers/pkg/result"
	"igfollowers/pkg/storage"
)

type secondArg int

const (
	argSessionID secondArg = iota
	argAPIKey
)

// methodCommand describes the positional surface of one method
type methodCommand struct {
	name    string
	use     string
	short   string
	missing string
	second  secondArg
}

var methodCommands = []methodCommand{
	{
		name:    "method2",
		use:     "method2 <username> [session_id]",
		short:   "List followers through the web API",
		missing: "No username provided",
		second:  argSessionID,
	},
	{
		name:    "method4",
		use:     "method4 <username> [session_id]",
		short:   "List followers with biography, counts and email",
		missing: "Usage: <username> [session_id]",
		second:  argSessionID,
	},
	{
		name:    "method5",
		use:     "method5 <username> [api_key]",
		short:   "Fetch profile metadata and recent posts through ScrapFly",
		missing: "Usage: <username> [api_key]",
		second:  argAPIKey,
	},
	{
		name:    "method6",
		use:     "method6 <username> <session_id>",
		short:   "List followers with a mandatory session",
		missing: "Username required",
		second:  argSessionID,
	},
	{
		name:    "auto",
		use:     "auto <username> [session_id]",
		short:   "Try ScrapFly when a key is configured, then method2",
		missing: "No username provided",
		second:  argSessionID,
	},
}

func (a *app) newMethodCmds() []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(methodCommands))
	for _, mc := range methodCommands {
		mc := mc
		cmds = append(cmds, &cobra.Command{
			Use:   mc.use,
			Short: mc.short,
			Args:  cobra.ArbitraryArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runMethod(cmd.Context(), mc, args)
			},
		})
	}
	return cmds
}

// runMethod prints exactly one envelope. Only missing arguments and a
// broken configuration end with a non-zero exit.
func (a *app) runMethod(ctx context.Context, mc methodCommand, args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		a.emit(result.Failure(mc.name, errs.InvalidInput(mc.missing)))
		return &exitError{code: 1}
	}

	in := method.Input{Username: args[0]}
	if len(args) > 1 {
		switch mc.second {
		case argAPIKey:
			in.APIKey = args[1]
		default:
			in.SessionID = args[1]
		}
	}

	cfg, err := a.loadConfig(nil)
	if err != nil {
		a.emit(result.Failure(mc.name, errs.Wrap(err, errs.KindInvalidInput, "invalid configuration")))
		return &exitError{code: 1}
	}
	log := a.newLogger(cfg)

	if in.SessionID == "" {
		in.SessionID = a.resolveSession(cfg, log)
	}

	m, err := method.New(mc.name, method.NewClientFactory(cfg, log), cfg, log)
	if err != nil {
		a.emit(result.Failure(mc.name, err))
		return &exitError{code: 1}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	env := method.Execute(ctx, m, in, log)
	a.emit(env)

	username := instagram.SanitizeUsername(in.Username)
	a.persist(cfg, username, env, log)
	a.report(cfg, username, env, log)
	return nil
}

// resolveSession picks the saved --account session, then the configured one
func (a *app) resolveSession(cfg *config.Config, log logger.Logger) string {
	if a.account == "" {
		return cfg.Instagram.SessionID
	}

	manager, err := a.sessionManager()
	if err == nil {
		var s *auth.Session
		if s, err = manager.Load(a.account); err == nil {
			if s.CSRFToken != "" {
				cfg.Instagram.CSRFToken = s.CSRFToken
			}
			return s.SessionID
		}
	}

	log.WithError(err).WarnWithFields("Saved session unavailable, using configured session", map[string]interface{}{
		"account": a.account,
	})
	return cfg.Instagram.SessionID
}

func (a *app) sessionManager() (*auth.Manager, error) {
	if a.sessionDir != "" {
		return auth.NewManager(a.sessionDir, false)
	}
	return auth.NewManager("", true)
}

func (a *app) emit(env result.Envelope) {
	// stdout is the only channel the caller reads, nothing to report to
	_ = env.Write(a.stdout)
}

func (a *app) persist(cfg *config.Config, username string, env result.Envelope, log logger.Logger) {
	if cfg.Output.Directory == "" {
		return
	}

	manager, err := storage.NewManager(cfg.Output.Directory)
	if err != nil {
		log.WithError(err).Warn("Could not prepare output directory")
		return
	}

	path, err := manager.SaveEnvelope(username, env)
	if err != nil {
		log.WithError(err).Warn("Could not save envelope")
		return
	}
	log.WithField("path", path).Info("Saved envelope")
}

func (a *app) report(cfg *config.Config, username string, env result.Envelope, log logger.Logger) {
	reporter, err := reporting.New(cfg.Reporting, version, log)
	if err != nil {
		log.WithError(err).Warn("Error reporting disabled")
		return
	}
	reporter.CaptureEnvelope(username, env)
	reporter.Flush(reporting.DefaultFlushTimeout)
}
