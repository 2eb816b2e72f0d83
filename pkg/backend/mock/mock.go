// Package mock provides a mock backend for testing without a real
// device or automation server.
package mock

import (
	"sync"
	"time"

	"github.com/devicelab-dev/detox-adapter/pkg/core"
	"github.com/devicelab-dev/detox-adapter/pkg/locator"
)

// Call records one backend invocation.
type Call struct {
	Op       string
	Selector locator.Selector
	Args     map[string]interface{}
}

// Config configures mock backend behavior.
type Config struct {
	// Platform to report. Defaults to ios.
	Platform locator.Platform
	// DeviceID to report.
	DeviceID string
	// FailOn makes the named op return the given error.
	FailOn map[string]error
	// CallDelay adds artificial delay per call.
	CallDelay time.Duration
}

// Backend is a mock implementation of core.Backend for testing. It
// records every call with its resolved selector.
type Backend struct {
	Config Config

	mu    sync.Mutex
	calls []Call
}

var _ core.Backend = (*Backend)(nil)

// New creates a new mock backend.
func New(cfg Config) *Backend {
	if cfg.Platform == "" {
		cfg.Platform = locator.PlatformIOS
	}
	if cfg.DeviceID == "" {
		cfg.DeviceID = "mock-device"
	}
	return &Backend{Config: cfg}
}

// Calls returns a copy of all recorded calls in order.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Call, len(b.calls))
	copy(out, b.calls)
	return out
}

// Ops returns just the op names of all recorded calls, in order.
func (b *Backend) Ops() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.calls))
	for i, c := range b.calls {
		out[i] = c.Op
	}
	return out
}

// Reset clears the recorded calls.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = nil
}

func (b *Backend) record(op string, sel locator.Selector, args map[string]interface{}) error {
	if b.Config.CallDelay > 0 {
		time.Sleep(b.Config.CallDelay)
	}
	b.mu.Lock()
	b.calls = append(b.calls, Call{Op: op, Selector: sel, Args: args})
	b.mu.Unlock()
	return b.Config.FailOn[op]
}

// CurrentPlatform reports the configured platform.
func (b *Backend) CurrentPlatform() locator.Platform {
	return b.Config.Platform
}

// PlatformInfo returns synthetic device details.
func (b *Backend) PlatformInfo() *core.PlatformInfo {
	return &core.PlatformInfo{
		Platform:    b.Config.Platform,
		DeviceID:    b.Config.DeviceID,
		DeviceName:  "Mock Device",
		IsSimulator: true,
	}
}

// Element actions

func (b *Backend) Tap(sel locator.Selector) error {
	return b.record("tap", sel, nil)
}

func (b *Backend) MultiTap(sel locator.Selector, times int) error {
	return b.record("multiTap", sel, map[string]interface{}{"times": times})
}

func (b *Backend) LongPress(sel locator.Selector) error {
	return b.record("longPress", sel, nil)
}

func (b *Backend) TypeText(sel locator.Selector, text string) error {
	return b.record("typeText", sel, map[string]interface{}{"text": text})
}

func (b *Backend) ReplaceText(sel locator.Selector, text string) error {
	return b.record("replaceText", sel, map[string]interface{}{"text": text})
}

func (b *Backend) ClearText(sel locator.Selector) error {
	return b.record("clearText", sel, nil)
}

func (b *Backend) SwipeElement(sel locator.Selector, dir core.Direction, speed core.Speed) error {
	return b.record("swipe", sel, map[string]interface{}{"direction": dir, "speed": speed})
}

func (b *Backend) ScrollToEdge(sel locator.Selector, edge core.Edge) error {
	return b.record("scrollToEdge", sel, map[string]interface{}{"edge": edge})
}

func (b *Backend) TapAtPoint(x, y int) error {
	return b.record("tapAtPoint", locator.Selector{}, map[string]interface{}{"x": x, "y": y})
}

// Assertions

func (b *Backend) AssertVisible(sel locator.Selector) error {
	return b.record("assertVisible", sel, nil)
}

func (b *Backend) AssertNotVisible(sel locator.Selector) error {
	return b.record("assertNotVisible", sel, nil)
}

func (b *Backend) AssertExists(sel locator.Selector) error {
	return b.record("assertExists", sel, nil)
}

func (b *Backend) AssertNotExists(sel locator.Selector) error {
	return b.record("assertNotExists", sel, nil)
}

// Waits

func (b *Backend) WaitFor(sel locator.Selector, cond core.WaitCondition, timeoutMs int) error {
	return b.record("waitFor", sel, map[string]interface{}{"condition": cond, "timeoutMs": timeoutMs})
}

// App lifecycle

func (b *Backend) LaunchApp(newInstance bool) error {
	return b.record("launchApp", locator.Selector{}, map[string]interface{}{"newInstance": newInstance})
}

func (b *Backend) TerminateApp() error {
	return b.record("terminateApp", locator.Selector{}, nil)
}

func (b *Backend) InstallApp() error {
	return b.record("installApp", locator.Selector{}, nil)
}

func (b *Backend) RemoveApp() error {
	return b.record("removeApp", locator.Selector{}, nil)
}

func (b *Backend) Reload() error {
	return b.record("reload", locator.Selector{}, nil)
}

// Device control

func (b *Backend) Shake() error {
	return b.record("shake", locator.Selector{}, nil)
}

func (b *Backend) Back() error {
	return b.record("back", locator.Selector{}, nil)
}

func (b *Backend) SetOrientation(o core.Orientation) error {
	return b.record("setOrientation", locator.Selector{}, map[string]interface{}{"orientation": o})
}

// Suite lifecycle

func (b *Backend) Init() error {
	return b.record("init", locator.Selector{}, nil)
}

func (b *Backend) Cleanup() error {
	return b.record("cleanup", locator.Selector{}, nil)
}

func (b *Backend) BeforeTest(info core.TestInfo) error {
	return b.record("beforeTest", locator.Selector{}, map[string]interface{}{"title": info.Title, "status": info.Status})
}

func (b *Backend) AfterTest(info core.TestInfo) error {
	return b.record("afterTest", locator.Selector{}, map[string]interface{}{"title": info.Title, "status": info.Status})
}
