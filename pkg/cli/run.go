package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/detox-adapter/pkg/adapter"
	"github.com/devicelab-dev/detox-adapter/pkg/backend/detox"
	"github.com/devicelab-dev/detox-adapter/pkg/backend/mock"
	"github.com/devicelab-dev/detox-adapter/pkg/config"
	"github.com/devicelab-dev/detox-adapter/pkg/core"
	"github.com/devicelab-dev/detox-adapter/pkg/locator"
	"github.com/devicelab-dev/detox-adapter/pkg/recorder"
	"github.com/devicelab-dev/detox-adapter/pkg/scenario"
)

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "Run scenario files against the automation server",
	ArgsUsage: "<scenario-file-or-glob>...",
	Description: `Run one or more scenario YAML files on the connected app.

Examples:
  detox-adapter run login.yaml
  detox-adapter run "scenarios/*.yaml"
  detox-adapter run scenarios/smoke.yaml -e USER=test -e PASS=secret
  detox-adapter --profile android.emu run scenarios/`,
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "env",
			Aliases: []string{"e"},
			Usage:   "Scenario variables (KEY=VALUE)",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Execute against an in-memory backend instead of a device",
		},
	},
	Action: runScenarios,
}

func runScenarios(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("no scenario files given")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(c, cfg)

	scenarios, err := collectScenarios(c.Args().Slice())
	if err != nil {
		return err
	}
	env, err := parseEnv(c.StringSlice("env"))
	if err != nil {
		return err
	}

	backend, err := buildBackend(c, cfg, log)
	if err != nil {
		return err
	}

	rec := recorder.New(log)
	defer rec.Stop()

	a := adapter.New(adapter.Options{
		Backend:  backend,
		Recorder: rec,
		Config:   cfg,
		Logger:   log,
	})

	if err := a.BeforeSuite(); err != nil {
		return fmt.Errorf("suite setup: %w", err)
	}
	defer func() {
		if err := a.AfterSuite(); err != nil {
			log.Warnf("suite teardown: %v", err)
		}
	}()

	runner := scenario.NewRunner(a, log)
	var results []*scenario.Result
	for _, s := range scenarios {
		for k, v := range env {
			if s.Env == nil {
				s.Env = map[string]string{}
			}
			if _, set := s.Env[k]; !set {
				s.Env[k] = v
			}
		}

		info := core.TestInfo{Title: s.Name, FullTitle: s.Name, Status: "running"}
		if err := a.BeforeTest(info); err != nil {
			return fmt.Errorf("%s: before-test hook: %w", s.Name, err)
		}

		result := runner.Run(s)
		results = append(results, result)

		hook := a.TestPassed
		if !result.Passed() && !result.Skipped {
			hook = a.TestFailed
		}
		if err := hook(info); err != nil {
			log.Warnf("%s: after-test hook: %v", s.Name, err)
		}
	}

	return printSummary(c, results)
}

// buildBackend creates the backend for this run. A dry run records
// into memory and never touches a device.
func buildBackend(c *cli.Context, cfg *config.Config, log *logrus.Logger) (core.Backend, error) {
	if c.Bool("dry-run") {
		platform := locator.PlatformIOS
		if p, err := resolveProfile(c, cfg); err == nil && p.Platform != "" {
			platform = locator.Platform(p.Platform)
		}
		return mock.New(mock.Config{Platform: platform}), nil
	}

	profile, err := resolveProfile(c, cfg)
	if err != nil {
		return nil, err
	}
	if profile.Server == "" {
		return nil, fmt.Errorf("no automation server configured; set --server or a profile in detox-adapter.yaml")
	}
	return detox.NewClient(detox.Config{
		Server:    profile.Server,
		SessionID: profile.SessionID,
		Platform:  locator.Platform(profile.Platform),
		Logger:    log,
	}), nil
}

// collectScenarios expands each argument and parses every match,
// preserving argument order. A directory argument means every scenario
// file directly inside it; anything else is a file path or glob.
func collectScenarios(args []string) ([]*scenario.Scenario, error) {
	var all []*scenario.Scenario
	for _, arg := range args {
		var parsed []*scenario.Scenario
		var err error
		if info, statErr := os.Stat(arg); statErr == nil && info.IsDir() {
			parsed, err = scenario.ParseDir(arg)
		} else {
			parsed, err = scenario.ParseGlob(arg)
		}
		if err != nil {
			return nil, err
		}
		all = append(all, parsed...)
	}
	return all, nil
}

// parseEnv parses KEY=VALUE pairs from the --env flag.
func parseEnv(pairs []string) (map[string]string, error) {
	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid env pair %q, expected KEY=VALUE", pair)
		}
		env[key] = value
	}
	return env, nil
}

func printSummary(c *cli.Context, results []*scenario.Result) error {
	var passed, failed, skipped int
	for _, r := range results {
		switch {
		case r.Skipped:
			skipped++
			fmt.Fprintf(c.App.Writer, "  SKIP  %s\n", r.Name)
		case r.Passed():
			passed++
			fmt.Fprintf(c.App.Writer, "  PASS  %s (%d steps)\n", r.Name, r.StepsTotal)
		default:
			failed++
			fmt.Fprintf(c.App.Writer, "  FAIL  %s (step %d of %d): %v\n",
				r.Name, r.StepsPassed+1, r.StepsTotal, r.Err)
		}
	}
	fmt.Fprintf(c.App.Writer, "\n%d passed, %d failed, %d skipped\n", passed, failed, skipped)

	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(results))
	}
	return nil
}
