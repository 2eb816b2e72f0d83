package adapter

import (
	"fmt"

	"github.com/devicelab-dev/detox-adapter/pkg/core"
	"github.com/devicelab-dev/detox-adapter/pkg/locator"
)

// Assertions are evaluated eagerly by the backend; a failed expectation
// comes back as an error, unchanged.

// See asserts that the given text is visible on screen.
func (a *Adapter) See(text string, ctx ...locator.Description) error {
	sel := a.scope(locator.Text(text), ctx)
	return a.step("see "+sel.Describe(), func() error {
		return a.backend.AssertVisible(sel)
	})
}

// DontSee asserts that the given text is not visible on screen.
func (a *Adapter) DontSee(text string, ctx ...locator.Description) error {
	sel := a.scope(locator.Text(text), ctx)
	return a.step("dontSee "+sel.Describe(), func() error {
		return a.backend.AssertNotVisible(sel)
	})
}

// SeeElement asserts that an element is visible.
func (a *Adapter) SeeElement(target locator.Description, ctx ...locator.Description) error {
	sel := a.resolve(target, locator.ModeType, ctx)
	return a.step("seeElement "+sel.Describe(), func() error {
		return a.backend.AssertVisible(sel)
	})
}

// DontSeeElement asserts that an element is not visible.
func (a *Adapter) DontSeeElement(target locator.Description, ctx ...locator.Description) error {
	sel := a.resolve(target, locator.ModeType, ctx)
	return a.step("dontSeeElement "+sel.Describe(), func() error {
		return a.backend.AssertNotVisible(sel)
	})
}

// SeeElementExists asserts that an element exists in the hierarchy,
// visible or not.
func (a *Adapter) SeeElementExists(target locator.Description, ctx ...locator.Description) error {
	sel := a.resolve(target, locator.ModeType, ctx)
	return a.step("seeElementExists "+sel.Describe(), func() error {
		return a.backend.AssertExists(sel)
	})
}

// DontSeeElementExists asserts that no matching element exists in the
// hierarchy.
func (a *Adapter) DontSeeElementExists(target locator.Description, ctx ...locator.Description) error {
	sel := a.resolve(target, locator.ModeType, ctx)
	return a.step("dontSeeElementExists "+sel.Describe(), func() error {
		return a.backend.AssertNotExists(sel)
	})
}

// Waits delegate all waiting semantics, polling and timeout enforcement
// to the backend; the timeout travels as plain milliseconds.

// WaitForElement waits until an element exists in the hierarchy.
func (a *Adapter) WaitForElement(target locator.Description, seconds int) error {
	sel := a.resolve(target, locator.ModeType, nil)
	return a.step(fmt.Sprintf("waitForElement %s (%ds)", sel.Describe(), seconds), func() error {
		return a.backend.WaitFor(sel, core.WaitExists, seconds*1000)
	})
}

// WaitForElementVisible waits until an element is visible.
func (a *Adapter) WaitForElementVisible(target locator.Description, seconds int) error {
	sel := a.resolve(target, locator.ModeType, nil)
	return a.step(fmt.Sprintf("waitForElementVisible %s (%ds)", sel.Describe(), seconds), func() error {
		return a.backend.WaitFor(sel, core.WaitVisible, seconds*1000)
	})
}

// WaitToHide waits until an element is no longer visible.
func (a *Adapter) WaitToHide(target locator.Description, seconds int) error {
	sel := a.resolve(target, locator.ModeType, nil)
	return a.step(fmt.Sprintf("waitToHide %s (%ds)", sel.Describe(), seconds), func() error {
		return a.backend.WaitFor(sel, core.WaitNotVisible, seconds*1000)
	})
}
