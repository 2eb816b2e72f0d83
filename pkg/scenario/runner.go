package scenario

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/devicelab-dev/detox-adapter/pkg/adapter"
	"github.com/devicelab-dev/detox-adapter/pkg/core"
	"github.com/devicelab-dev/detox-adapter/pkg/expr"
	"github.com/devicelab-dev/detox-adapter/pkg/locator"
)

// Result contains the outcome of a single scenario run.
type Result struct {
	RunID       string
	Name        string
	Skipped     bool
	StepsTotal  int
	StepsPassed int
	Err         error
}

// Passed reports whether the scenario ran to completion.
func (r *Result) Passed() bool {
	return !r.Skipped && r.Err == nil
}

// Runner executes scenarios against an adapter. Execution is
// sequential; the first failing step stops the scenario.
type Runner struct {
	adapter *adapter.Adapter
	log     logrus.FieldLogger
}

// NewRunner creates a Runner.
func NewRunner(a *adapter.Adapter, log logrus.FieldLogger) *Runner {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runner{adapter: a, log: log}
}

// Run executes one scenario. A scenario with a platform header not
// matching the live device is skipped, not failed.
func (r *Runner) Run(s *Scenario) *Result {
	result := &Result{
		RunID:      uuid.NewString(),
		Name:       s.Name,
		StepsTotal: len(s.Steps),
	}

	platform := r.adapter.Platform()
	if s.Platform != "" && s.Platform != string(platform) {
		r.log.Infof("skipping %s: wants %s, device is %s", s.Name, s.Platform, platform)
		result.Skipped = true
		return result
	}

	engine := expr.New()
	engine.SetPlatform(string(platform))
	engine.SetVariables(s.Env)

	log := r.log.WithField("scenario", s.Name)
	log.Infof("running %d steps", len(s.Steps))

	for i, step := range s.Steps {
		if err := r.execute(step, engine); err != nil {
			result.Err = fmt.Errorf("step %d (%s): %w", i+1, step.Describe(), err)
			log.WithError(err).Errorf("step %d failed: %s", i+1, step.Describe())
			return result
		}
		result.StepsPassed++
		log.Debugf("step %d passed: %s", i+1, step.Describe())
	}

	return result
}

func (r *Runner) execute(step Step, engine *expr.Engine) error {
	expand := engine.Expand
	target := step.Target.Transform(expand)
	ctx := contextArgs(step.Context, expand)

	switch step.Type {
	case StepTap:
		return r.adapter.Tap(target, ctx...)
	case StepMultiTap:
		return r.adapter.MultiTap(target, step.Times, ctx...)
	case StepLongPress:
		return r.adapter.LongPress(target, ctx...)
	case StepTapByLabel:
		return r.adapter.TapByLabel(expand(step.Text), ctx...)
	case StepFillField:
		return r.adapter.FillField(target, expand(step.Value))
	case StepAppendField:
		return r.adapter.AppendField(target, expand(step.Value))
	case StepClearField:
		return r.adapter.ClearField(target)

	case StepSee:
		return r.adapter.See(expand(step.Text), ctx...)
	case StepDontSee:
		return r.adapter.DontSee(expand(step.Text), ctx...)
	case StepSeeElement:
		return r.adapter.SeeElement(target, ctx...)
	case StepDontSeeElement:
		return r.adapter.DontSeeElement(target, ctx...)
	case StepSeeElementExists:
		return r.adapter.SeeElementExists(target, ctx...)
	case StepDontSeeElementExists:
		return r.adapter.DontSeeElementExists(target, ctx...)

	case StepWaitForElement:
		return r.adapter.WaitForElement(target, step.Seconds)
	case StepWaitForElementVisible:
		return r.adapter.WaitForElementVisible(target, step.Seconds)
	case StepWaitToHide:
		return r.adapter.WaitToHide(target, step.Seconds)

	case StepSwipe:
		speed := core.Speed(step.Speed)
		if speed == "" {
			speed = core.SpeedFast
		}
		return r.adapter.Swipe(target, core.Direction(step.Direction), speed)
	case StepScrollToEdge:
		return r.adapter.ScrollToEdge(target, core.Edge(step.Edge))
	case StepWait:
		return r.adapter.Wait(step.Seconds)

	case StepLaunchApp:
		return r.adapter.LaunchApp()
	case StepRelaunchApp:
		return r.adapter.RelaunchApp()
	case StepTerminateApp:
		return r.adapter.TerminateApp()
	case StepInstallApp:
		return r.adapter.InstallApp()
	case StepRemoveApp:
		return r.adapter.RemoveApp()
	case StepShake:
		return r.adapter.ShakeDevice()
	case StepBack:
		return r.adapter.GoBack()
	case StepSetOrientation:
		if step.Orientation == string(core.OrientationLandscape) {
			return r.adapter.SetLandscapeOrientation()
		}
		return r.adapter.SetPortraitOrientation()

	case StepOnPlatform:
		return r.adapter.RunOnPlatform(locator.Platform(step.Platform), func() error {
			for _, nested := range step.Steps {
				if err := r.execute(nested, engine); err != nil {
					return err
				}
			}
			return nil
		})

	default:
		return fmt.Errorf("unknown step type %q", step.Type)
	}
}

func contextArgs(ctx locator.Description, expand func(string) string) []locator.Description {
	if ctx.IsZero() {
		return nil
	}
	return []locator.Description{ctx.Transform(expand)}
}
