// Package cli provides the command-line interface for detox-adapter.
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/detox-adapter/pkg/config"
)

// Version is set at build time.
var Version = "dev"

func init() {
	// The library's default version flag is --version/-v, which collides
	// with --verbose's -v alias and panics at startup.
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}
}

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to detox-adapter.yaml",
		EnvVars: []string{"DETOX_ADAPTER_CONFIG"},
	},
	&cli.StringFlag{
		Name:    "profile",
		Usage:   "Backend profile to use (defaults to the config's defaultProfile)",
		EnvVars: []string{"DETOX_ADAPTER_PROFILE"},
	},
	&cli.StringFlag{
		Name:    "server",
		Usage:   "Automation server URL, overrides the profile (e.g. ws://localhost:8099)",
		EnvVars: []string{"DETOX_ADAPTER_SERVER"},
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Enable verbose logging",
		EnvVars: []string{"DETOX_ADAPTER_VERBOSE"},
	},
}

// Execute runs the CLI.
func Execute() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "detox-adapter",
		Usage:   "Grey-box mobile test runner for Detox-instrumented apps",
		Version: Version,
		Description: `detox-adapter runs scenario files against an app instrumented with
the Detox automation server, on iOS simulators and Android emulators.

Examples:
  detox-adapter run login.yaml
  detox-adapter run scenarios/ -e USER=test
  detox-adapter doctor`,
		Flags: GlobalFlags,
		Commands: []*cli.Command{
			runCommand,
			doctorCommand,
		},
	}
}

// newLogger builds the process logger from the verbose flag and the
// config's logLevel, the flag winning.
func newLogger(c *cli.Context, cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.InfoLevel)

	if cfg.LogLevel != "" {
		if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
			log.SetLevel(level)
		}
	}
	if c.Bool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// loadConfig reads the config named by --config, or searches the
// working directory.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadFromDir(".")
}

// resolveProfile applies CLI overrides on top of the configured
// profile. A --server override works without any config file.
func resolveProfile(c *cli.Context, cfg *config.Config) (config.Profile, error) {
	profile, err := cfg.Profile(c.String("profile"))
	if err != nil {
		if c.String("server") == "" {
			return config.Profile{}, err
		}
		profile = config.Profile{}
	}
	if server := c.String("server"); server != "" {
		profile.Server = server
	}
	if profile.SessionID == "" {
		profile.SessionID = "default"
	}
	return profile, nil
}
