package adapter

import (
	"fmt"
	"time"

	"github.com/devicelab-dev/detox-adapter/pkg/core"
	"github.com/devicelab-dev/detox-adapter/pkg/locator"
)

// Tap taps an element. Plain strings without a sigil match by visible
// text; an optional context restricts matching to its descendants.
func (a *Adapter) Tap(target locator.Description, ctx ...locator.Description) error {
	sel := a.resolve(target, locator.ModeText, ctx)
	return a.step("tap "+sel.Describe(), func() error {
		return a.backend.Tap(sel)
	})
}

// Click is an alias for Tap.
func (a *Adapter) Click(target locator.Description, ctx ...locator.Description) error {
	return a.Tap(target, ctx...)
}

// ClickAtPoint taps absolute screen coordinates without matching an
// element.
func (a *Adapter) ClickAtPoint(x, y int) error {
	return a.step(fmt.Sprintf("tap at (%d,%d)", x, y), func() error {
		return a.backend.TapAtPoint(x, y)
	})
}

// MultiTap taps an element the given number of times.
func (a *Adapter) MultiTap(target locator.Description, times int, ctx ...locator.Description) error {
	sel := a.resolve(target, locator.ModeText, ctx)
	return a.step(fmt.Sprintf("multiTap(%d) %s", times, sel.Describe()), func() error {
		return a.backend.MultiTap(sel, times)
	})
}

// LongPress performs a long press on an element.
func (a *Adapter) LongPress(target locator.Description, ctx ...locator.Description) error {
	sel := a.resolve(target, locator.ModeText, ctx)
	return a.step("longPress "+sel.Describe(), func() error {
		return a.backend.LongPress(sel)
	})
}

// TapByLabel taps an element matched by its accessibility label.
func (a *Adapter) TapByLabel(label string, ctx ...locator.Description) error {
	sel := a.scope(locator.Label(label), ctx)
	return a.step("tap "+sel.Describe(), func() error {
		return a.backend.Tap(sel)
	})
}

// FillField replaces the text of a field.
func (a *Adapter) FillField(field locator.Description, value string) error {
	sel := a.resolve(field, locator.ModeText, nil)
	return a.step("fillField "+sel.Describe(), func() error {
		return a.backend.ReplaceText(sel, value)
	})
}

// AppendField types text at the end of a field's current value.
func (a *Adapter) AppendField(field locator.Description, value string) error {
	sel := a.resolve(field, locator.ModeText, nil)
	return a.step("appendField "+sel.Describe(), func() error {
		return a.backend.TypeText(sel, value)
	})
}

// ClearField clears a field.
func (a *Adapter) ClearField(field locator.Description) error {
	sel := a.resolve(field, locator.ModeText, nil)
	return a.step("clearField "+sel.Describe(), func() error {
		return a.backend.ClearText(sel)
	})
}

// Swipe swipes across an element in the given direction.
func (a *Adapter) Swipe(target locator.Description, dir core.Direction, speed core.Speed) error {
	sel := a.resolve(target, locator.ModeType, nil)
	return a.step(fmt.Sprintf("swipe %s %s", dir, sel.Describe()), func() error {
		return a.backend.SwipeElement(sel, dir, speed)
	})
}

// SwipeUp swipes up across an element.
func (a *Adapter) SwipeUp(target locator.Description) error {
	return a.Swipe(target, core.DirectionUp, core.SpeedFast)
}

// SwipeDown swipes down across an element.
func (a *Adapter) SwipeDown(target locator.Description) error {
	return a.Swipe(target, core.DirectionDown, core.SpeedFast)
}

// SwipeLeft swipes left across an element.
func (a *Adapter) SwipeLeft(target locator.Description) error {
	return a.Swipe(target, core.DirectionLeft, core.SpeedFast)
}

// SwipeRight swipes right across an element.
func (a *Adapter) SwipeRight(target locator.Description) error {
	return a.Swipe(target, core.DirectionRight, core.SpeedFast)
}

// ScrollToEdge scrolls a container to one of its edges.
func (a *Adapter) ScrollToEdge(target locator.Description, edge core.Edge) error {
	sel := a.resolve(target, locator.ModeType, nil)
	return a.step(fmt.Sprintf("scroll to %s %s", edge, sel.Describe()), func() error {
		return a.backend.ScrollToEdge(sel, edge)
	})
}

// ScrollUp scrolls a container to its top edge.
func (a *Adapter) ScrollUp(target locator.Description) error {
	return a.ScrollToEdge(target, core.EdgeTop)
}

// ScrollDown scrolls a container to its bottom edge.
func (a *Adapter) ScrollDown(target locator.Description) error {
	return a.ScrollToEdge(target, core.EdgeBottom)
}

// ScrollLeft scrolls a container to its left edge.
func (a *Adapter) ScrollLeft(target locator.Description) error {
	return a.ScrollToEdge(target, core.EdgeLeft)
}

// ScrollRight scrolls a container to its right edge.
func (a *Adapter) ScrollRight(target locator.Description) error {
	return a.ScrollToEdge(target, core.EdgeRight)
}

// Wait pauses the queue for the given number of seconds.
func (a *Adapter) Wait(seconds int) error {
	return a.step(fmt.Sprintf("wait %ds", seconds), func() error {
		time.Sleep(time.Duration(seconds) * time.Second)
		return nil
	})
}

// App lifecycle

// LaunchApp launches the app under test.
func (a *Adapter) LaunchApp() error {
	return a.step("launchApp", func() error {
		return a.backend.LaunchApp(false)
	})
}

// RelaunchApp terminates and relaunches the app under test.
func (a *Adapter) RelaunchApp() error {
	return a.step("relaunchApp", func() error {
		return a.backend.LaunchApp(true)
	})
}

// TerminateApp stops the app under test.
func (a *Adapter) TerminateApp() error {
	return a.step("terminateApp", func() error {
		return a.backend.TerminateApp()
	})
}

// InstallApp installs the app binary on the device.
func (a *Adapter) InstallApp() error {
	return a.step("installApp", func() error {
		return a.backend.InstallApp()
	})
}

// RemoveApp removes the app from the device.
func (a *Adapter) RemoveApp() error {
	return a.step("removeApp", func() error {
		return a.backend.RemoveApp()
	})
}

// Device control

// ShakeDevice shakes the device.
func (a *Adapter) ShakeDevice() error {
	return a.step("shake", func() error {
		return a.backend.Shake()
	})
}

// GoBack performs back navigation (hardware back on Android).
func (a *Adapter) GoBack() error {
	return a.step("back", func() error {
		return a.backend.Back()
	})
}

// SetLandscapeOrientation rotates the device to landscape.
func (a *Adapter) SetLandscapeOrientation() error {
	return a.step("orientation landscape", func() error {
		return a.backend.SetOrientation(core.OrientationLandscape)
	})
}

// SetPortraitOrientation rotates the device to portrait.
func (a *Adapter) SetPortraitOrientation() error {
	return a.step("orientation portrait", func() error {
		return a.backend.SetOrientation(core.OrientationPortrait)
	})
}
