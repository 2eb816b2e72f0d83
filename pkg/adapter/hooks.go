package adapter

import (
	"github.com/devicelab-dev/detox-adapter/pkg/core"
)

// Suite and test lifecycle hooks. These forward test metadata to the
// backend; the only branching is the configuration-driven choice of
// relaunch vs reload before each test.

// BeforeSuite initializes the backend connection.
func (a *Adapter) BeforeSuite() error {
	return a.step("init backend", func() error {
		return a.backend.Init()
	})
}

// AfterSuite tears the backend down unless session reuse is configured.
func (a *Adapter) AfterSuite() error {
	if a.cfg.ReuseSession {
		a.log.Debug("session reuse enabled, skipping backend cleanup")
		return nil
	}
	return a.step("cleanup backend", func() error {
		return a.backend.Cleanup()
	})
}

// BeforeTest reports the upcoming test to the backend, then either
// relaunches the app or reloads its bundle in place, per configuration.
func (a *Adapter) BeforeTest(info core.TestInfo) error {
	info.Status = "running"
	if err := a.step("beforeTest "+info.Title, func() error {
		return a.backend.BeforeTest(info)
	}); err != nil {
		return err
	}

	if a.cfg.RelaunchBeforeEach {
		return a.RelaunchApp()
	}
	return a.step("reload app", func() error {
		return a.backend.Reload()
	})
}

// AfterTest reports the finished test to the backend.
func (a *Adapter) AfterTest(info core.TestInfo) error {
	return a.step("afterTest "+info.Title, func() error {
		return a.backend.AfterTest(info)
	})
}

// TestPassed reports a passing test.
func (a *Adapter) TestPassed(info core.TestInfo) error {
	info.Status = "passed"
	return a.AfterTest(info)
}

// TestFailed reports a failing test.
func (a *Adapter) TestFailed(info core.TestInfo) error {
	info.Status = "failed"
	return a.AfterTest(info)
}
