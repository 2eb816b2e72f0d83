// Package adapter exposes the action/assertion vocabulary of the test
// API and forwards it onto the automation backend. Each method resolves
// its locator, optionally composes a context scope, and issues exactly
// one backend call; failures propagate unchanged, with no retries.
package adapter

import (
	"github.com/sirupsen/logrus"

	"github.com/devicelab-dev/detox-adapter/pkg/config"
	"github.com/devicelab-dev/detox-adapter/pkg/core"
	"github.com/devicelab-dev/detox-adapter/pkg/locator"
	"github.com/devicelab-dev/detox-adapter/pkg/recorder"
)

// Options configures an Adapter. Backend and Recorder are required; all
// collaborators are explicit, there is no ambient global state.
type Options struct {
	Backend  core.Backend
	Recorder *recorder.Recorder
	Config   *config.Config
	Logger   logrus.FieldLogger
}

// Adapter is the public action/assertion surface. It holds no mutable
// test state; the platform is queried from the live backend on every
// resolution.
type Adapter struct {
	backend  core.Backend
	recorder *recorder.Recorder
	resolver locator.Resolver
	cfg      config.Config
	log      logrus.FieldLogger
}

// New creates an Adapter.
func New(opts Options) *Adapter {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	cfg := config.Config{}
	if opts.Config != nil {
		cfg = *opts.Config
	}
	return &Adapter{
		backend:  opts.Backend,
		recorder: opts.Recorder,
		cfg:      cfg,
		log:      log,
	}
}

// resolve produces the concrete selector for a target under mode,
// scoped to at most one optional context description. The platform is
// freshly queried per call.
func (a *Adapter) resolve(target locator.Description, mode locator.Mode, ctx []locator.Description) locator.Selector {
	platform := a.backend.CurrentPlatform()
	if len(ctx) > 0 && !ctx[0].IsZero() {
		return a.resolver.ResolveScoped(target, mode, ctx[0], platform)
	}
	return a.resolver.Resolve(target, mode, platform)
}

// scope applies an optional context to an already-built selector.
func (a *Adapter) scope(sel locator.Selector, ctx []locator.Description) locator.Selector {
	if len(ctx) == 0 || ctx[0].IsZero() {
		return sel
	}
	platform := a.backend.CurrentPlatform()
	return sel.DescendantOf(a.resolver.Resolve(ctx[0], locator.ModeType, platform))
}

// step records a named step and waits for it to run.
func (a *Adapter) step(name string, fn func() error) error {
	err := a.recorder.Record(name, fn).Wait()
	if err != nil {
		a.log.WithError(err).Debugf("step failed: %s", name)
	}
	return err
}

// Platform reports the platform of the live device connection.
func (a *Adapter) Platform() locator.Platform {
	return a.backend.CurrentPlatform()
}

// Drained returns a handle resolving when all queued work has run.
func (a *Adapter) Drained() *recorder.Pending {
	return a.recorder.Drained()
}
