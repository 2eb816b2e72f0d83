package detox

import (
	"errors"

	"github.com/devicelab-dev/detox-adapter/pkg/core"
	"github.com/devicelab-dev/detox-adapter/pkg/locator"
)

// predicate encodes a selector as the server's matcher JSON. Descendant
// scoping wraps the inner predicate with its ancestor; pass-through
// selectors travel unmodified.
func predicate(sel locator.Selector) map[string]interface{} {
	var p map[string]interface{}
	switch sel.Strategy {
	case locator.ByTraits:
		p = map[string]interface{}{"type": "traits", "value": sel.Traits}
	case locator.ByRaw:
		if raw, ok := sel.Raw.(map[string]interface{}); ok {
			p = raw
		} else {
			p = map[string]interface{}{"type": "raw", "value": sel.Raw}
		}
	default:
		p = map[string]interface{}{"type": string(sel.Strategy), "value": sel.Value}
	}

	if sel.Within != nil {
		p = map[string]interface{}{
			"type":       "descendant",
			"ancestor":   predicate(*sel.Within),
			"descendant": p,
		}
	}
	return p
}

// invokeElement performs an element action.
func (c *Client) invokeElement(sel locator.Selector, method string, args ...interface{}) error {
	_, err := c.send("invoke", map[string]interface{}{
		"target":    "element",
		"predicate": predicate(sel),
		"method":    method,
		"args":      args,
	})
	return err
}

// invokeExpect performs an eager assertion.
func (c *Client) invokeExpect(sel locator.Selector, method string) error {
	_, err := c.send("invoke", map[string]interface{}{
		"target":    "expect",
		"predicate": predicate(sel),
		"method":    method,
	})
	return err
}

// invokeDevice performs a device-level action.
func (c *Client) invokeDevice(method string, args ...interface{}) error {
	_, err := c.send("invoke", map[string]interface{}{
		"target": "device",
		"method": method,
		"args":   args,
	})
	return err
}

// Element actions

func (c *Client) Tap(sel locator.Selector) error {
	return c.invokeElement(sel, "tap")
}

func (c *Client) MultiTap(sel locator.Selector, times int) error {
	return c.invokeElement(sel, "multiTap", times)
}

func (c *Client) LongPress(sel locator.Selector) error {
	return c.invokeElement(sel, "longPress")
}

func (c *Client) TypeText(sel locator.Selector, text string) error {
	return c.invokeElement(sel, "typeText", text)
}

func (c *Client) ReplaceText(sel locator.Selector, text string) error {
	return c.invokeElement(sel, "replaceText", text)
}

func (c *Client) ClearText(sel locator.Selector) error {
	return c.invokeElement(sel, "clearText")
}

func (c *Client) SwipeElement(sel locator.Selector, dir core.Direction, speed core.Speed) error {
	return c.invokeElement(sel, "swipe", string(dir), string(speed))
}

func (c *Client) ScrollToEdge(sel locator.Selector, edge core.Edge) error {
	return c.invokeElement(sel, "scrollTo", string(edge))
}

func (c *Client) TapAtPoint(x, y int) error {
	return c.invokeDevice("tap", map[string]interface{}{"x": x, "y": y})
}

// Assertions

func (c *Client) AssertVisible(sel locator.Selector) error {
	return c.invokeExpect(sel, "toBeVisible")
}

func (c *Client) AssertNotVisible(sel locator.Selector) error {
	return c.invokeExpect(sel, "toBeNotVisible")
}

func (c *Client) AssertExists(sel locator.Selector) error {
	return c.invokeExpect(sel, "toExist")
}

func (c *Client) AssertNotExists(sel locator.Selector) error {
	return c.invokeExpect(sel, "toNotExist")
}

// Waits

func (c *Client) WaitFor(sel locator.Selector, cond core.WaitCondition, timeoutMs int) error {
	_, err := c.send("invoke", map[string]interface{}{
		"target":    "waitFor",
		"predicate": predicate(sel),
		"condition": string(cond),
		"timeout":   timeoutMs,
	})
	var execErr *core.ExecutionError
	if errors.As(err, &execErr) && execErr.Category == core.ErrCategoryAssertion {
		return core.ErrWaitTimeout.WithCause(err)
	}
	return err
}

// App lifecycle

func (c *Client) LaunchApp(newInstance bool) error {
	return c.invokeDevice("launchApp", map[string]interface{}{"newInstance": newInstance})
}

func (c *Client) TerminateApp() error {
	return c.invokeDevice("terminateApp")
}

func (c *Client) InstallApp() error {
	return c.invokeDevice("installApp")
}

func (c *Client) RemoveApp() error {
	return c.invokeDevice("uninstallApp")
}

func (c *Client) Reload() error {
	return c.invokeDevice("reloadReactNative")
}

// Device control

func (c *Client) Shake() error {
	return c.invokeDevice("shake")
}

func (c *Client) Back() error {
	return c.invokeDevice("pressBack")
}

func (c *Client) SetOrientation(o core.Orientation) error {
	return c.invokeDevice("setOrientation", string(o))
}

// Suite lifecycle

// Init connects to the server and waits for the app to be ready.
func (c *Client) Init() error {
	if err := c.Connect(); err != nil {
		return err
	}
	_, err := c.send("isReady", nil)
	return err
}

// Cleanup tears the server session down and closes the connection.
func (c *Client) Cleanup() error {
	if !c.Connected() {
		return nil
	}
	_, err := c.send("cleanup", nil)
	if closeErr := c.Close(); err == nil {
		err = closeErr
	}
	return err
}

func (c *Client) BeforeTest(info core.TestInfo) error {
	return c.lifecycleEvent("beforeEach", info)
}

func (c *Client) AfterTest(info core.TestInfo) error {
	return c.lifecycleEvent("afterEach", info)
}

func (c *Client) lifecycleEvent(typ string, info core.TestInfo) error {
	_, err := c.send(typ, map[string]interface{}{
		"title":    info.Title,
		"fullName": info.FullTitle,
		"status":   info.Status,
	})
	return err
}
