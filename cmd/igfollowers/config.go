package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"igfollowers/pkg/config"
	"igfollowers/pkg/ui"
)

const defaultConfigPath = ".igfollowers.yaml"

const configHeader = `# igfollowers configuration
#
# Precedence: command line flags > environment > this file > defaults.
# Every value can also be set through the environment, for example
# IGFOLLOWERS_SESSION_ID, SCRAPFLY_KEY or IGFOLLOWERS_FOLLOWER_CAP.
# Run 'igfollowers config show --env' for the full list.

`

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration files",
		Long: `Manage igfollowers configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables and .env files
  - Configuration file
  - Default values (lowest priority)`,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigInit(force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	var showEnv bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigShow(showEnv)
		},
	}
	show.Flags().BoolVar(&showEnv, "env", false, "list the supported environment variables instead")

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration for invalid values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigValidate()
		},
	}

	cmd.AddCommand(initCmd, show, validate)
	return cmd
}

func (a *app) runConfigInit(force bool) error {
	p := ui.NewPrinter(a.stderr)

	path := a.configFile
	if path == "" {
		path = defaultConfigPath
	}

	if _, err := os.Stat(path); err == nil && !force {
		p.Error("Configuration file already exists", fmt.Errorf("%s", path))
		p.Dim("Use --force to overwrite it")
		return &exitError{code: 1}
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		p.Error("Failed to render configuration", err)
		return &exitError{code: 1}
	}

	if err := os.WriteFile(path, append([]byte(configHeader), data...), 0600); err != nil {
		p.Error("Failed to write configuration", err)
		return &exitError{code: 1}
	}

	p.Success("Configuration written to " + path)
	return nil
}

func (a *app) runConfigShow(showEnv bool) error {
	if showEnv {
		fmt.Fprint(a.stdout, config.EnvDescription())
		return nil
	}

	cfg, err := a.loadConfig(nil)
	if err != nil {
		ui.NewPrinter(a.stderr).Error("Failed to load configuration", err)
		return &exitError{code: 1}
	}

	data, err := yaml.Marshal(cfg.Sanitized())
	if err != nil {
		ui.NewPrinter(a.stderr).Error("Failed to render configuration", err)
		return &exitError{code: 1}
	}

	_, err = a.stdout.Write(data)
	return err
}

func (a *app) runConfigValidate() error {
	p := ui.NewPrinter(a.stderr)

	cfg, err := a.loadConfig(nil)
	if err != nil {
		p.Error("Configuration is invalid", err)
		return &exitError{code: 1}
	}

	p.Success("Configuration is valid")
	p.Info("Follower cap", fmt.Sprint(cfg.Limits.FollowerCap))
	p.Info("Page cap", fmt.Sprint(cfg.Limits.PageCap))
	p.Info("ScrapFly key", present(cfg.ScrapFly.APIKey))
	p.Info("Session", present(cfg.Instagram.SessionID))
	return nil
}

func present(s string) string {
	if s == "" {
		return "not set"
	}
	return "set"
}
