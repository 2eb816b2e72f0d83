package adapter

import (
	"errors"
	"testing"

	"github.com/devicelab-dev/detox-adapter/pkg/backend/mock"
	"github.com/devicelab-dev/detox-adapter/pkg/config"
	"github.com/devicelab-dev/detox-adapter/pkg/core"
	"github.com/devicelab-dev/detox-adapter/pkg/locator"
	"github.com/devicelab-dev/detox-adapter/pkg/recorder"
)

func newTestAdapter(t *testing.T, cfg mock.Config, adapterCfg *config.Config) (*Adapter, *mock.Backend) {
	t.Helper()
	b := mock.New(cfg)
	r := recorder.New(nil)
	t.Cleanup(r.Stop)
	return New(Options{Backend: b, Recorder: r, Config: adapterCfg}), b
}

func lastCall(t *testing.T, b *mock.Backend) mock.Call {
	t.Helper()
	calls := b.Calls()
	if len(calls) == 0 {
		t.Fatal("no backend calls recorded")
	}
	return calls[len(calls)-1]
}

func TestTap_ResolvesLocator(t *testing.T) {
	tests := []struct {
		name     string
		target   locator.Description
		expected locator.Selector
	}{
		{
			name:     "identifier sigil",
			target:   locator.FromString("#save"),
			expected: locator.ID("save"),
		},
		{
			name:     "label sigil",
			target:   locator.FromString("~nav-1"),
			expected: locator.Label("nav-1"),
		},
		{
			name:     "plain string taps by text",
			target:   locator.FromString("Save"),
			expected: locator.Text("Save"),
		},
		{
			name:     "structured id beats label",
			target:   locator.FromStruct(locator.Structured{ID: "x", Label: "y"}),
			expected: locator.ID("x"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := newTestAdapter(t, mock.Config{}, nil)
			if err := a.Tap(tt.target); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			call := lastCall(t, b)
			if call.Op != "tap" {
				t.Fatalf("op = %q", call.Op)
			}
			if call.Selector.Strategy != tt.expected.Strategy || call.Selector.Value != tt.expected.Value {
				t.Errorf("selector = %v, want %v", call.Selector, tt.expected)
			}
		})
	}
}

func TestClickAtPoint_SkipsResolution(t *testing.T) {
	a, b := newTestAdapter(t, mock.Config{}, nil)
	if err := a.ClickAtPoint(120, 300); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call := lastCall(t, b)
	if call.Op != "tapAtPoint" {
		t.Fatalf("op = %q", call.Op)
	}
	if call.Args["x"] != 120 || call.Args["y"] != 300 {
		t.Errorf("args = %v", call.Args)
	}
}

func TestTap_PlatformVaryingLocator(t *testing.T) {
	desc := locator.PerPlatform("Save", "SAVE")

	a, b := newTestAdapter(t, mock.Config{Platform: locator.PlatformIOS}, nil)
	a.Tap(desc)
	if got := lastCall(t, b).Selector; got.Value != "Save" {
		t.Errorf("ios device: got %v", got)
	}

	a, b = newTestAdapter(t, mock.Config{Platform: locator.PlatformAndroid}, nil)
	a.Tap(desc)
	if got := lastCall(t, b).Selector; got.Value != "SAVE" {
		t.Errorf("android device: got %v", got)
	}
}

func TestTap_ContextComposition(t *testing.T) {
	a, b := newTestAdapter(t, mock.Config{}, nil)
	if err := a.Tap(locator.FromString("#save"), locator.FromString("#toolbar")); err != nil {
		t.Fatal(err)
	}
	sel := lastCall(t, b).Selector
	if sel.Strategy != locator.ByID || sel.Value != "save" {
		t.Fatalf("primary = %v", sel)
	}
	if sel.Within == nil || sel.Within.Value != "toolbar" {
		t.Fatalf("context missing: %v", sel)
	}
}

func TestSee_ContextResolvedAsType(t *testing.T) {
	// Context defaults to element-kind addressing even for text
	// assertions.
	a, b := newTestAdapter(t, mock.Config{}, nil)
	if err := a.See("Welcome", locator.FromString("Toolbar")); err != nil {
		t.Fatal(err)
	}
	sel := lastCall(t, b).Selector
	if sel.Strategy != locator.ByText || sel.Value != "Welcome" {
		t.Fatalf("primary = %v", sel)
	}
	if sel.Within == nil || sel.Within.Strategy != locator.ByType {
		t.Fatalf("context = %v, want type strategy", sel.Within)
	}
}

func TestSeeElement_TypeMode(t *testing.T) {
	a, b := newTestAdapter(t, mock.Config{}, nil)
	a.SeeElement(locator.FromString("UIButton"))
	sel := lastCall(t, b).Selector
	if sel.Strategy != locator.ByType || sel.Value != "UIButton" {
		t.Errorf("got %v", sel)
	}
	if lastCall(t, b).Op != "assertVisible" {
		t.Errorf("op = %q", lastCall(t, b).Op)
	}
}

func TestAssertions_MapToBackendOps(t *testing.T) {
	target := locator.FromString("#el")
	tests := []struct {
		name string
		call func(a *Adapter) error
		op   string
	}{
		{"dontSee", func(a *Adapter) error { return a.DontSee("gone") }, "assertNotVisible"},
		{"dontSeeElement", func(a *Adapter) error { return a.DontSeeElement(target) }, "assertNotVisible"},
		{"seeElementExists", func(a *Adapter) error { return a.SeeElementExists(target) }, "assertExists"},
		{"dontSeeElementExists", func(a *Adapter) error { return a.DontSeeElementExists(target) }, "assertNotExists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := newTestAdapter(t, mock.Config{}, nil)
			if err := tt.call(a); err != nil {
				t.Fatal(err)
			}
			if got := lastCall(t, b).Op; got != tt.op {
				t.Errorf("op = %q, want %q", got, tt.op)
			}
		})
	}
}

func TestWaits_TimeoutInMilliseconds(t *testing.T) {
	a, b := newTestAdapter(t, mock.Config{}, nil)
	if err := a.WaitForElementVisible(locator.FromString("#spinner"), 5); err != nil {
		t.Fatal(err)
	}
	call := lastCall(t, b)
	if call.Op != "waitFor" {
		t.Fatalf("op = %q", call.Op)
	}
	if call.Args["timeoutMs"] != 5000 {
		t.Errorf("timeoutMs = %v", call.Args["timeoutMs"])
	}
	if call.Args["condition"] != core.WaitVisible {
		t.Errorf("condition = %v", call.Args["condition"])
	}
}

func TestFillField_ReplacesText(t *testing.T) {
	a, b := newTestAdapter(t, mock.Config{}, nil)
	if err := a.FillField(locator.FromString("#email"), "a@b.c"); err != nil {
		t.Fatal(err)
	}
	call := lastCall(t, b)
	if call.Op != "replaceText" || call.Args["text"] != "a@b.c" {
		t.Errorf("got %v %v", call.Op, call.Args)
	}
}

func TestErrorsPropagateUnchanged(t *testing.T) {
	failure := core.ErrElementNotFound.WithMessage("no #save on screen")
	a, _ := newTestAdapter(t, mock.Config{FailOn: map[string]error{"tap": failure}}, nil)

	err := a.Tap(locator.FromString("#save"))
	if !errors.Is(err, failure) {
		t.Errorf("error was wrapped or replaced: %v", err)
	}
}

func TestHooks_RelaunchVsReload(t *testing.T) {
	info := core.TestInfo{Title: "logs in", FullTitle: "auth > logs in"}

	t.Run("reload by default", func(t *testing.T) {
		a, b := newTestAdapter(t, mock.Config{}, &config.Config{})
		if err := a.BeforeTest(info); err != nil {
			t.Fatal(err)
		}
		ops := b.Ops()
		if ops[len(ops)-1] != "reload" {
			t.Errorf("ops = %v", ops)
		}
	})

	t.Run("relaunch when configured", func(t *testing.T) {
		a, b := newTestAdapter(t, mock.Config{}, &config.Config{RelaunchBeforeEach: true})
		if err := a.BeforeTest(info); err != nil {
			t.Fatal(err)
		}
		call := lastCall(t, b)
		if call.Op != "launchApp" || call.Args["newInstance"] != true {
			t.Errorf("got %v %v", call.Op, call.Args)
		}
	})
}

func TestHooks_SessionReuseSkipsCleanup(t *testing.T) {
	a, b := newTestAdapter(t, mock.Config{}, &config.Config{ReuseSession: true})
	if err := a.AfterSuite(); err != nil {
		t.Fatal(err)
	}
	if len(b.Calls()) != 0 {
		t.Errorf("cleanup was called: %v", b.Ops())
	}

	a, b = newTestAdapter(t, mock.Config{}, &config.Config{})
	if err := a.AfterSuite(); err != nil {
		t.Fatal(err)
	}
	if got := lastCall(t, b).Op; got != "cleanup" {
		t.Errorf("op = %q", got)
	}
}

func TestHooks_TestStatusForwarded(t *testing.T) {
	a, b := newTestAdapter(t, mock.Config{}, nil)
	a.TestFailed(core.TestInfo{Title: "logs in"})
	if got := lastCall(t, b).Args["status"]; got != "failed" {
		t.Errorf("status = %v", got)
	}
	a.TestPassed(core.TestInfo{Title: "logs in"})
	if got := lastCall(t, b).Args["status"]; got != "passed" {
		t.Errorf("status = %v", got)
	}
}
