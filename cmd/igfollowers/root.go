package main

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"igfollowers/pkg/config"
	"igfollowers/pkg/logger"
	"igfollowers/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// exitError carries a process exit code out of a command
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// app holds the global flags and the process streams for one invocation
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configFile string
	logLevel   string
	account    string
	outputDir  string
	timeout    time.Duration

	followerCap int
	pageCap     int
	maxAttempts int
	enrich      bool
	// enrichSet records whether --enrich was given, false is a real value
	enrichSet bool

	// sessionDir overrides where saved sessions live, keyring stays off when set
	sessionDir string
}

// run executes the CLI and returns the process exit code
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	return a.execute(args)
}

func (a *app) execute(args []string) int {
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stderr)
	root.SetErr(a.stderr)

	if err := root.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			return exit.code
		}
		ui.NewPrinter(a.stderr).Error("Error", err)
		return 1
	}
	return 0
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "igfollowers",
		Short: "Fetch Instagram followers, profile metadata and posts as JSON",
		Long: `igfollowers fetches a target Instagram account's followers, profile
metadata and recent posts through one of several independent methods and
prints exactly one JSON envelope on standard output.

Methods:
  method2   followers through the web API, session optional
  method4   followers enriched with their profile details
  method5   profile metadata and recent posts through ScrapFly
  method6   followers through the web API, session required
  auto      ScrapFly when a key is configured, then method2

Logs and interactive messages go to standard error.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "config file (default is ./.igfollowers.yaml or ~/.config/igfollowers/config.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error, disabled)")
	flags.StringVar(&a.account, "account", "", "saved session to use when no session id is given")
	flags.StringVar(&a.outputDir, "output-dir", "", "also write each envelope to <dir>/<username>_<method>.json")
	flags.DurationVar(&a.timeout, "timeout", 0, "overall time limit for a method run (0 for none)")
	flags.IntVar(&a.followerCap, "follower-cap", 0, "maximum followers per run (default from config)")
	flags.IntVar(&a.pageCap, "page-cap", 0, "maximum timeline pages for method5 (default from config)")
	flags.IntVar(&a.maxAttempts, "max-attempts", 0, "attempts per upstream request, 1 disables retrying (default from config)")
	flags.BoolVar(&a.enrich, "enrich", true, "fetch each follower's profile in method4")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		a.enrichSet = cmd.Flags().Changed("enrich")
	}

	root.SetVersionTemplate(`igfollowers {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)
	root.CompletionOptions.DisableDefaultCmd = true

	for _, cmd := range a.newMethodCmds() {
		root.AddCommand(cmd)
	}
	root.AddCommand(a.newSessionCmd())
	root.AddCommand(a.newConfigCmd())

	return root
}

// loadConfig merges file, environment and global flags
func (a *app) loadConfig(extra map[string]interface{}) (*config.Config, error) {
	flags := map[string]interface{}{
		"log-level":    a.logLevel,
		"output-dir":   a.outputDir,
		"follower-cap": a.followerCap,
		"page-cap":     a.pageCap,
		"max-attempts": a.maxAttempts,
	}
	if a.enrichSet {
		flags["enrich"] = a.enrich
	}
	for k, v := range extra {
		flags[k] = v
	}
	return config.Load(a.configFile, flags)
}

// newLogger builds the stderr logger for cfg
func (a *app) newLogger(cfg *config.Config) logger.Logger {
	log, err := logger.NewWithWriter(&cfg.Logging, a.stderr)
	if err != nil {
		return logger.NewNopLogger()
	}
	return log
}
