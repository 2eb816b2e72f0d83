package scenario

import (
	"errors"
	"testing"

	"github.com/devicelab-dev/detox-adapter/pkg/adapter"
	"github.com/devicelab-dev/detox-adapter/pkg/backend/mock"
	"github.com/devicelab-dev/detox-adapter/pkg/locator"
	"github.com/devicelab-dev/detox-adapter/pkg/recorder"
)

func newTestRunner(t *testing.T, platform locator.Platform, failOn map[string]error) (*Runner, *mock.Backend) {
	t.Helper()
	b := mock.New(mock.Config{Platform: platform, FailOn: failOn})
	r := recorder.New(nil)
	t.Cleanup(r.Stop)
	a := adapter.New(adapter.Options{Backend: b, Recorder: r})
	return NewRunner(a, nil), b
}

func mustParse(t *testing.T, input string) *Scenario {
	t.Helper()
	s, err := Parse([]byte(input), "test.yaml")
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRunner_ExecutesSteps(t *testing.T) {
	runner, b := newTestRunner(t, locator.PlatformIOS, nil)
	s := mustParse(t, `
- launchApp
- tap: "#save"
- see: Welcome
`)

	result := runner.Run(s)
	if !result.Passed() {
		t.Fatalf("result = %+v", result)
	}
	if result.StepsPassed != 3 {
		t.Errorf("StepsPassed = %d", result.StepsPassed)
	}

	want := []string{"launchApp", "tap", "assertVisible"}
	got := b.Ops()
	if len(got) != len(want) {
		t.Fatalf("ops = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ops = %v, want %v", got, want)
		}
	}
}

func TestRunner_ExpandsVariables(t *testing.T) {
	runner, b := newTestRunner(t, locator.PlatformIOS, nil)
	s := mustParse(t, `
env:
  USER: alice
---
- fillField:
    field: "#email"
    value: "${USER}@example.com"
`)

	if result := runner.Run(s); !result.Passed() {
		t.Fatalf("result = %+v", result)
	}
	calls := b.Calls()
	if calls[0].Args["text"] != "alice@example.com" {
		t.Errorf("typed %v", calls[0].Args)
	}
}

func TestRunner_ExpandsPlatformExpressionInLocator(t *testing.T) {
	runner, b := newTestRunner(t, locator.PlatformAndroid, nil)
	s := mustParse(t, `
- tap: '${platform === "android" ? "SAVE" : "Save"}'
`)

	if result := runner.Run(s); !result.Passed() {
		t.Fatalf("result = %+v", result)
	}
	if sel := b.Calls()[0].Selector; sel.Value != "SAVE" {
		t.Errorf("selector = %v", sel)
	}
}

func TestRunner_PlatformHeaderSkips(t *testing.T) {
	runner, b := newTestRunner(t, locator.PlatformAndroid, nil)
	s := mustParse(t, `
platform: ios
---
- launchApp
`)

	result := runner.Run(s)
	if !result.Skipped {
		t.Error("scenario was not skipped")
	}
	if len(b.Calls()) != 0 {
		t.Errorf("backend called on skipped scenario: %v", b.Ops())
	}
}

func TestRunner_OnPlatformBlock(t *testing.T) {
	s := mustParse(t, `
- tap: "#always"
- onPlatform:
    platform: android
    steps:
      - back
- tap: "#also-always"
`)

	t.Run("matching device runs nested steps", func(t *testing.T) {
		runner, b := newTestRunner(t, locator.PlatformAndroid, nil)
		if result := runner.Run(s); !result.Passed() {
			t.Fatalf("result = %+v", result)
		}
		want := []string{"tap", "back", "tap"}
		got := b.Ops()
		if len(got) != len(want) {
			t.Fatalf("ops = %v", got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("ops = %v, want %v", got, want)
			}
		}
	})

	t.Run("other device skips nested steps", func(t *testing.T) {
		runner, b := newTestRunner(t, locator.PlatformIOS, nil)
		if result := runner.Run(s); !result.Passed() {
			t.Fatalf("result = %+v", result)
		}
		for _, op := range b.Ops() {
			if op == "back" {
				t.Error("nested step ran on the wrong platform")
			}
		}
	})
}

func TestRunner_StopsOnFirstFailure(t *testing.T) {
	boom := errors.New("element not found")
	runner, b := newTestRunner(t, locator.PlatformIOS, map[string]error{"tap": boom})
	s := mustParse(t, `
- launchApp
- tap: "#save"
- see: Welcome
`)

	result := runner.Run(s)
	if result.Passed() {
		t.Fatal("expected failure")
	}
	if !errors.Is(result.Err, boom) {
		t.Errorf("Err = %v", result.Err)
	}
	if result.StepsPassed != 1 {
		t.Errorf("StepsPassed = %d", result.StepsPassed)
	}
	// The assertion after the failing tap never ran.
	for _, op := range b.Ops() {
		if op == "assertVisible" {
			t.Error("steps continued after failure")
		}
	}
}
