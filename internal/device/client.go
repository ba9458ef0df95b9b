package device

import (
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ProfessorBadTrip/patchdeck/internal/logging"
)

const (
	// DefaultPort is the WebSocket port patch devices listen on
	DefaultPort = 8765

	// DefaultPath is the WebSocket endpoint path
	DefaultPath = "/ws"

	// DefaultDialTimeout bounds the WebSocket handshake
	DefaultDialTimeout = 10 * time.Second

	// descriptionWait bounds how long we wait for the device to announce
	// its parameter list after the handshake
	descriptionWait = 10 * time.Second

	// writeWait is the time allowed to write a message to the device
	writeWait = 10 * time.Second

	// pongWait is the time allowed to read the next pong from the device
	pongWait = 60 * time.Second

	// pingPeriod is how often we ping the device (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10
)

// Client is a WebSocket connection to one patch device. It implements Conn.
//
// The zero value is not usable; construct with Dial.
type Client struct {
	// Addr is the host:port the client dialed
	Addr string

	conn *websocket.Conn

	// Immutable after Dial
	name   string
	params []Parameter

	// writeMu serializes writes to the WebSocket (gorilla allows at most
	// one concurrent writer)
	writeMu sync.Mutex

	// mu guards values and subs
	mu      sync.RWMutex
	values  map[string]float64
	subs    map[int]func(Change)
	nextSub int

	closeOnce sync.Once
	done      chan struct{}
}

// Dial connects to a patch device at addr (host or host:port), waits for
// its description message, and starts the receive loop. The returned client
// is ready for Subscribe and Set.
func Dial(addr string) (*Client, error) {
	u := url.URL{Scheme: "ws", Host: addr, Path: DefaultPath}

	dialer := websocket.Dialer{HandshakeTimeout: DefaultDialTimeout}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to device at %s: %w", addr, err)
	}

	c := &Client{
		Addr:   addr,
		conn:   conn,
		values: make(map[string]float64),
		subs:   make(map[int]func(Change)),
		done:   make(chan struct{}),
	}

	if err := c.readDescription(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	logging.LogConnection(addr, "websocket_connected")
	logging.Info("Device description received",
		zap.String("device", c.name),
		zap.Int("param_count", len(c.params)),
	)

	go c.readPump()
	go c.pingLoop()

	return c, nil
}

// readDescription consumes the first message, which must be the device's
// parameter description.
func (c *Client) readDescription() error {
	if err := c.conn.SetReadDeadline(time.Now().Add(descriptionWait)); err != nil {
		return fmt.Errorf("failed to set read deadline: %w", err)
	}

	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoDescription, err)
	}

	msg, err := ParseMessage(data)
	if err != nil {
		return err
	}
	if msg.Type != MsgDescription {
		return fmt.Errorf("%w: got %q before description", ErrBadMessage, msg.Type)
	}

	c.name = msg.Device
	c.params = msg.Params
	for _, p := range msg.Params {
		c.values[p.ID] = p.Value
	}
	return nil
}

// Name returns the device's self-reported name.
func (c *Client) Name() string {
	return c.name
}

// Parameters returns the device's parameter list in announcement order.
// The slice is owned by the client; callers copy before reordering.
func (c *Client) Parameters() []Parameter {
	return c.params
}

// Value returns the last known value for a parameter. It reflects both
// local writes and device-originated change events.
func (c *Client) Value(id string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[id]
	return v, ok
}

// Set writes a parameter value to the device. Fire-and-forget: failures are
// logged, not returned, per the command-channel contract.
func (c *Client) Set(id string, value float64) {
	data, err := EncodeSet(id, value)
	if err != nil {
		logging.Warn("Failed to encode set command",
			zap.String("param_id", id),
			zap.Error(err),
		)
		return
	}

	c.mu.Lock()
	c.values[id] = value
	c.mu.Unlock()

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		logging.Warn("Failed to write set command",
			zap.String("param_id", id),
			zap.Error(err),
		)
		return
	}

	logging.LogParameterWrite(id, value)
}

// Subscribe registers a handler for device-originated change events.
// The handler runs on the client's read goroutine; events arrive in order.
// The returned func cancels the subscription.
func (c *Client) Subscribe(fn func(Change)) (cancel func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Done is closed when the connection has terminated.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close tears down the connection. Safe to call more than once.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.conn.Close()
	})
	return err
}

// readPump is the single receive loop. It updates the last-known value map
// and fans each change event out to subscribers, in arrival order.
func (c *Client) readPump() {
	defer func() {
		close(c.done)
		_ = c.Close()
		logging.LogConnection(c.Addr, "websocket_closed")
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Warn("Device connection lost",
					zap.String("remote_addr", c.Addr),
					zap.Error(err),
				)
			}
			return
		}

		msg, err := ParseMessage(data)
		if err != nil {
			// Tolerate unknown traffic from newer firmware
			logging.Debug("Ignoring unparseable message",
				zap.String("remote_addr", c.Addr),
				zap.Error(err),
			)
			continue
		}

		if msg.Type != MsgParamChange {
			continue
		}

		logging.LogParameterChange(msg.ID, msg.Value)

		c.mu.Lock()
		c.values[msg.ID] = msg.Value
		handlers := make([]func(Change), 0, len(c.subs))
		for _, fn := range c.subs {
			handlers = append(handlers, fn)
		}
		c.mu.Unlock()

		change := Change{ID: msg.ID, Value: msg.Value}
		for _, fn := range handlers {
			fn(change)
		}
	}
}

// pingLoop keeps the connection alive and lets the read deadline detect a
// dead peer.
func (c *Client) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.writeMu.Lock()
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.conn.WriteMessage(websocket.PingMessage, nil)
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
