// Package core defines the boundary to the grey-box automation backend.
package core

import (
	"github.com/devicelab-dev/detox-adapter/pkg/locator"
)

// Direction of a swipe gesture.
type Direction string

// Direction values.
const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Speed of a swipe gesture.
type Speed string

// Speed values.
const (
	SpeedFast Speed = "fast"
	SpeedSlow Speed = "slow"
)

// Edge of a scrollable container.
type Edge string

// Edge values.
const (
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
)

// Orientation of the device.
type Orientation string

// Orientation values.
const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// WaitCondition is the state a wait operation blocks on. Waiting
// semantics, polling and timeout enforcement all belong to the backend.
type WaitCondition string

// WaitCondition values.
const (
	WaitExists     WaitCondition = "exists"
	WaitVisible    WaitCondition = "visible"
	WaitNotVisible WaitCondition = "not_visible"
)

// TestInfo carries test-lifecycle metadata forwarded to the backend.
type TestInfo struct {
	Title     string
	FullTitle string
	Status    string // running, passed, failed
}

// Backend defines the interface to the mobile-automation backend.
// Implementations: Detox WebSocket server, mock.
// The adapter resolves locators and forwards; Backend drives the device.
type Backend interface {
	// CurrentPlatform reports the platform of the live device
	// connection. Callers must query it per call, never cache it.
	CurrentPlatform() locator.Platform

	// PlatformInfo returns device/platform details for reports.
	PlatformInfo() *PlatformInfo

	// Element actions
	Tap(sel locator.Selector) error
	MultiTap(sel locator.Selector, times int) error
	LongPress(sel locator.Selector) error
	TypeText(sel locator.Selector, text string) error
	ReplaceText(sel locator.Selector, text string) error
	ClearText(sel locator.Selector) error
	SwipeElement(sel locator.Selector, dir Direction, speed Speed) error
	ScrollToEdge(sel locator.Selector, edge Edge) error

	// TapAtPoint taps absolute screen coordinates, no element matching.
	TapAtPoint(x, y int) error

	// Assertions, evaluated eagerly; a failed expectation is an error
	AssertVisible(sel locator.Selector) error
	AssertNotVisible(sel locator.Selector) error
	AssertExists(sel locator.Selector) error
	AssertNotExists(sel locator.Selector) error

	// WaitFor blocks until the condition holds or timeoutMs elapses.
	WaitFor(sel locator.Selector, cond WaitCondition, timeoutMs int) error

	// App lifecycle
	LaunchApp(newInstance bool) error
	TerminateApp() error
	InstallApp() error
	RemoveApp() error
	// Reload reloads the app bundle in place without relaunching the
	// process (React Native style reload).
	Reload() error

	// Device control
	Shake() error
	Back() error
	SetOrientation(o Orientation) error

	// Suite lifecycle
	Init() error
	Cleanup() error
	BeforeTest(info TestInfo) error
	AfterTest(info TestInfo) error
}

// PlatformInfo contains device and platform details.
type PlatformInfo struct {
	Platform    locator.Platform `json:"platform"`              // ios, android
	OSVersion   string           `json:"osVersion"`             // e.g., "17.0", "14"
	DeviceName  string           `json:"deviceName"`            // e.g., "iPhone 15 Pro", "Pixel 8"
	DeviceID    string           `json:"deviceId"`              // Unique device identifier
	IsSimulator bool             `json:"isSimulator"`           // Simulator/emulator vs real device
	AppID       string           `json:"appId,omitempty"`       // Bundle ID / Package name
	AppVersion  string           `json:"appVersion,omitempty"`  // App version
}
