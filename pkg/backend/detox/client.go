// Package detox implements core.Backend against a Detox-style
// automation server speaking JSON over WebSocket.
package detox

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/devicelab-dev/detox-adapter/pkg/core"
	"github.com/devicelab-dev/detox-adapter/pkg/locator"
)

const defaultTimeout = 60 * time.Second

// Config configures a Client.
type Config struct {
	// Server is the WebSocket URL, e.g. ws://localhost:8099.
	Server string
	// SessionID identifies the server session to join.
	SessionID string
	// Platform of the device the server drives.
	Platform locator.Platform
	// Timeout bounds each request/response round trip.
	Timeout time.Duration
	// Logger for wire-level debug output.
	Logger logrus.FieldLogger
}

// message is the wire envelope in both directions.
type message struct {
	Type      string                 `json:"type"`
	MessageID int64                  `json:"messageId"`
	Params    map[string]interface{} `json:"params,omitempty"`
}

// Client is a WebSocket client for a Detox-style automation server.
// Requests are strictly request/response; the adapter's single-worker
// recorder guarantees one in flight at a time.
type Client struct {
	cfg  Config
	log  logrus.FieldLogger
	info *core.PlatformInfo

	mu        sync.Mutex
	conn      *websocket.Conn
	messageID int64
}

var _ core.Backend = (*Client)(nil)

// NewClient creates a new client. Connect must be called before use;
// the Init lifecycle hook does so.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{cfg: cfg, log: log}
}

// Connect dials the server and performs the login handshake.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}

	conn, _, err := websocket.DefaultDialer.Dial(c.cfg.Server, nil)
	if err != nil {
		return core.ErrServerUnreachable.WithCause(err)
	}
	c.conn = conn

	reply, err := c.roundTrip(message{
		Type: "login",
		Params: map[string]interface{}{
			"sessionId": c.cfg.SessionID,
			"role":      "tester",
		},
	})
	if err != nil {
		conn.Close()
		c.conn = nil
		return err
	}

	c.info = &core.PlatformInfo{
		Platform: c.cfg.Platform,
		AppID:    stringParam(reply, "appId"),
	}
	if p := stringParam(reply, "platform"); p != "" {
		c.info.Platform = locator.Platform(p)
	}
	c.info.DeviceName = stringParam(reply, "deviceName")
	c.info.DeviceID = stringParam(reply, "deviceId")

	c.log.Debugf("connected to %s (session %s)", c.cfg.Server, c.cfg.SessionID)
	return nil
}

// Close closes the connection without server-side cleanup.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Connected reports whether the client holds a live connection.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// CurrentPlatform reports the platform of the live device connection.
func (c *Client) CurrentPlatform() locator.Platform {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.info != nil {
		return c.info.Platform
	}
	return c.cfg.Platform
}

// PlatformInfo returns device details learned during the handshake.
func (c *Client) PlatformInfo() *core.PlatformInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.info == nil {
		return &core.PlatformInfo{Platform: c.cfg.Platform}
	}
	info := *c.info
	return &info
}

// send performs one request/response round trip.
func (c *Client) send(typ string, params map[string]interface{}) (message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return message{}, core.ErrDeviceDisconnected.WithMessage("not connected to automation server")
	}
	return c.roundTrip(message{Type: typ, Params: params})
}

// roundTrip writes a message and reads the reply. Callers hold c.mu.
func (c *Client) roundTrip(msg message) (message, error) {
	c.messageID++
	msg.MessageID = c.messageID

	deadline := time.Now().Add(c.cfg.Timeout)
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return message{}, core.ErrDeviceDisconnected.WithCause(err)
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		return message{}, core.ErrDeviceDisconnected.WithCause(err)
	}

	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return message{}, core.ErrDeviceDisconnected.WithCause(err)
	}
	var reply message
	if err := c.conn.ReadJSON(&reply); err != nil {
		return message{}, core.ErrDeviceDisconnected.WithCause(err)
	}

	return reply, c.replyError(msg, reply)
}

// replyError maps failure replies onto the adapter's error taxonomy.
func (c *Client) replyError(req, reply message) error {
	switch reply.Type {
	case "testFailed":
		details := stringParam(reply, "details")
		return core.ErrElementNotFound.
			WithMessage(fmt.Sprintf("%s failed: %s", req.Type, details)).
			WithDetails(map[string]interface{}{"request": req.Params})
	case "error":
		return core.NewExecutionError(core.ErrCategoryConnection, "server_error",
			fmt.Sprintf("%s rejected: %s", req.Type, stringParam(reply, "error")))
	default:
		return nil
	}
}

func stringParam(msg message, key string) string {
	if v, ok := msg.Params[key].(string); ok {
		return v
	}
	return ""
}
