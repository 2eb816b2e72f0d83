package adapter

import (
	"github.com/devicelab-dev/detox-adapter/pkg/locator"
)

// Session names used for platform-scoped blocks.
const (
	iosSessionName     = "iOS-only actions"
	androidSessionName = "Android-only actions"
)

// RunOnPlatform executes block only when the live device reports the
// target platform; otherwise it returns immediately without invoking
// the block or touching any session.
//
// On a match the block runs inside a named action session on the shared
// recorder: its façade calls are recorded into that session, and the
// previously active session is restored afterwards. Restoration is
// guaranteed even when the block returns an error or panics. The call
// returns once all queued work, old and new, has drained.
//
// Blocks must not be started concurrently from independent goroutines;
// the model is single-threaded sequential test execution.
func (a *Adapter) RunOnPlatform(target locator.Platform, block func() error) error {
	if a.backend.CurrentPlatform() != target {
		return nil
	}

	name := androidSessionName
	if target == locator.PlatformIOS {
		name = iosSessionName
	}

	a.recorder.StartSession(name)
	defer a.recorder.RestoreSession()

	a.log.Debugf("entering %s", name)
	if err := block(); err != nil {
		return err
	}
	return a.recorder.Drained().Wait()
}

// RunOnIOS executes block only when the device platform is iOS.
func (a *Adapter) RunOnIOS(block func() error) error {
	return a.RunOnPlatform(locator.PlatformIOS, block)
}

// RunOnAndroid executes block only when the device platform is Android.
func (a *Adapter) RunOnAndroid(block func() error) error {
	return a.RunOnPlatform(locator.PlatformAndroid, block)
}
