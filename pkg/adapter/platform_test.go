package adapter

import (
	"errors"
	"testing"

	"github.com/devicelab-dev/detox-adapter/pkg/backend/mock"
	"github.com/devicelab-dev/detox-adapter/pkg/locator"
	"github.com/devicelab-dev/detox-adapter/pkg/recorder"
)

func TestRunOnPlatform_NoopOnMismatch(t *testing.T) {
	b := mock.New(mock.Config{Platform: locator.PlatformAndroid})
	r := recorder.New(nil)
	defer r.Stop()
	a := New(Options{Backend: b, Recorder: r})

	invoked := false
	err := a.RunOnIOS(func() error {
		invoked = true
		return a.Tap(locator.FromString("#ios-only"))
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invoked {
		t.Error("block was invoked on the wrong platform")
	}
	if len(b.Calls()) != 0 {
		t.Errorf("backend was called: %v", b.Ops())
	}
	if len(r.Journal()) != 0 {
		t.Errorf("session events recorded: %v", r.Journal())
	}
}

func TestRunOnPlatform_MatchRunsBlockInSession(t *testing.T) {
	b := mock.New(mock.Config{Platform: locator.PlatformIOS})
	r := recorder.New(nil)
	defer r.Stop()
	a := New(Options{Backend: b, Recorder: r})

	a.Tap(locator.FromString("#before"))
	err := a.RunOnIOS(func() error {
		return a.Tap(locator.FromString("#inside"))
	})
	if err != nil {
		t.Fatal(err)
	}
	a.Tap(locator.FromString("#after"))

	// FIFO across the session boundary: before, inside, after.
	var taps []string
	for _, c := range b.Calls() {
		if c.Op == "tap" {
			taps = append(taps, c.Selector.Value)
		}
	}
	want := []string{"before", "inside", "after"}
	if len(taps) != len(want) {
		t.Fatalf("taps = %v", taps)
	}
	for i := range want {
		if taps[i] != want[i] {
			t.Fatalf("taps out of order: %v", taps)
		}
	}

	// The inside step was recorded into the named session, and the
	// session was restored before the after step.
	var sawStart, sawRestore bool
	for _, ev := range r.Journal() {
		switch {
		case ev.Kind == recorder.EventSessionStart && ev.Name == "iOS-only actions":
			sawStart = true
		case ev.Kind == recorder.EventStep && ev.Name == "tap #inside":
			if ev.Session != "iOS-only actions" {
				t.Errorf("inside step recorded into %q", ev.Session)
			}
		case ev.Kind == recorder.EventStep && ev.Name == "tap #after":
			if !sawRestore {
				t.Error("after step ran before session restore")
			}
			if ev.Session != recorder.DefaultSession {
				t.Errorf("after step recorded into %q", ev.Session)
			}
		case ev.Kind == recorder.EventSessionRestore:
			sawRestore = true
		}
	}
	if !sawStart || !sawRestore {
		t.Errorf("missing session events: %v", r.Journal())
	}
}

func TestRunOnPlatform_RunOnAndroid(t *testing.T) {
	b := mock.New(mock.Config{Platform: locator.PlatformAndroid})
	r := recorder.New(nil)
	defer r.Stop()
	a := New(Options{Backend: b, Recorder: r})

	invoked := false
	if err := a.RunOnAndroid(func() error { invoked = true; return nil }); err != nil {
		t.Fatal(err)
	}
	if !invoked {
		t.Error("block not invoked on matching platform")
	}
	if ev := r.Journal()[0]; ev.Name != "Android-only actions" {
		t.Errorf("session name %q", ev.Name)
	}
}

func TestRunOnPlatform_RestoresSessionOnBlockError(t *testing.T) {
	b := mock.New(mock.Config{Platform: locator.PlatformIOS})
	r := recorder.New(nil)
	defer r.Stop()
	a := New(Options{Backend: b, Recorder: r})

	boom := errors.New("boom")
	if err := a.RunOnIOS(func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
	if got := r.ActiveSession(); got != recorder.DefaultSession {
		t.Errorf("session leaked: active = %q", got)
	}
}

func TestRunOnPlatform_RestoresSessionOnPanic(t *testing.T) {
	b := mock.New(mock.Config{Platform: locator.PlatformIOS})
	r := recorder.New(nil)
	defer r.Stop()
	a := New(Options{Backend: b, Recorder: r})

	func() {
		defer func() { recover() }() //nolint:errcheck // the panic itself is under test
		a.RunOnIOS(func() error { panic("bad block") })
	}()

	if got := r.ActiveSession(); got != recorder.DefaultSession {
		t.Errorf("session leaked after panic: active = %q", got)
	}
}

func TestRunOnPlatform_BlockErrorPropagates(t *testing.T) {
	b := mock.New(mock.Config{Platform: locator.PlatformIOS})
	r := recorder.New(nil)
	defer r.Stop()
	a := New(Options{Backend: b, Recorder: r})

	boom := errors.New("assertion failed")
	err := a.RunOnIOS(func() error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("got %v, want the block's own error", err)
	}
}
