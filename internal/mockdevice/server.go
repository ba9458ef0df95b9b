package mockdevice

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ProfessorBadTrip/patchdeck/internal/device"
	"github.com/ProfessorBadTrip/patchdeck/internal/logging"
)

const (
	// writeWait is the time allowed to write a message to a peer
	writeWait = 10 * time.Second

	// pongWait is the time allowed to read the next pong from a peer
	pongWait = 60 * time.Second

	// maxMessageSize bounds incoming control messages
	maxMessageSize = 8192
)

// Config holds the mock device configuration.
type Config struct {
	Host       string
	Port       int
	DeviceName string
	LogLevel   string

	// DriftParam, when non-empty, names a parameter the mock slowly
	// modulates on its own, so clients have remote traffic to react to.
	DriftParam  string
	DriftPeriod time.Duration
}

// Server is a mock patch device. It serves the same WebSocket protocol a
// real device does: a description on connect, param_change broadcasts, and
// set_param handling with range clamping.
type Server struct {
	config *Config
	params []device.Parameter

	httpServer *http.Server
	upgrader   websocket.Upgrader

	wg sync.WaitGroup

	// mu guards values and conns
	mu     sync.Mutex
	values map[string]float64
	conns  map[*client]struct{}

	stop     chan struct{}
	stopOnce sync.Once
}

// client is one connected control surface. writeMu serializes frames to it.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// New creates a mock device serving the given parameters. If params is nil
// the built-in demo patch is used.
func New(config *Config, params []device.Parameter) (*Server, error) {
	if err := logging.Initialize(config.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	if config.DeviceName == "" {
		config.DeviceName = "mock-patch"
	}
	if config.Port == 0 {
		config.Port = device.DefaultPort
	}
	if params == nil {
		params = DemoPatch()
	}

	s := &Server{
		config: config,
		params: params,
		values: make(map[string]float64),
		conns:  make(map[*client]struct{}),
		stop:   make(chan struct{}),
	}
	for _, p := range params {
		s.values[p.ID] = p.Value
	}

	return s, nil
}

// Start starts the mock device and blocks until shutdown.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	logging.Info("Starting mock patch device",
		zap.String("addr", addr),
		zap.String("device", s.config.DeviceName),
		zap.Int("param_count", len(s.params)),
		zap.String("log_level", s.config.LogLevel),
	)

	mux := http.NewServeMux()
	mux.HandleFunc(device.DefaultPath, s.handleUpgrade)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.httpServer = &http.Server{Handler: mux}

	if s.config.DriftParam != "" {
		s.wg.Add(1)
		go s.driftLoop()
	}

	logging.Info("Mock device listening for connections",
		zap.String("addr", listener.Addr().String()),
	)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.Serve(listener)
	}()

	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping mock device...")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// Shutdown gracefully shuts down the mock device.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down mock device...")

	s.stopOnce.Do(func() { close(s.stop) })

	if s.httpServer != nil {
		if err := s.httpServer.Close(); err != nil {
			logging.Error("Error closing HTTP server", zap.Error(err))
		}
	}

	s.mu.Lock()
	for c := range s.conns {
		_ = c.conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("All connections closed gracefully")
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	case <-time.After(10 * time.Second):
		logging.Warn("Shutdown timeout after 10 seconds, forcing close")
	}

	logging.Sync()
	return nil
}

// handleUpgrade upgrades an HTTP request and hands the socket to a client
// session goroutine.
func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	remoteAddr := r.RemoteAddr

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("WebSocket upgrade failed",
			zap.String("remote_addr", remoteAddr),
			zap.Error(err),
		)
		return
	}

	logging.LogConnection(remoteAddr, "websocket_upgraded")

	c := &client{conn: conn}
	s.mu.Lock()
	s.conns[c] = struct{}{}
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.serveClient(c, remoteAddr)
	}()
}

// serveClient runs one client session: description first, then a set_param
// receive loop until the peer goes away.
func (s *Server) serveClient(c *client, remoteAddr string) {
	defer func() {
		s.mu.Lock()
		delete(s.conns, c)
		s.mu.Unlock()
		_ = c.conn.Close()
		logging.LogConnection(remoteAddr, "websocket_closed")
	}()

	if err := s.sendDescription(c); err != nil {
		logging.Error("Failed to send description",
			zap.String("remote_addr", remoteAddr),
			zap.Error(err),
		)
		return
	}

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	c.conn.SetPingHandler(func(data string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		c.writeMu.Lock()
		defer c.writeMu.Unlock()
		return c.conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(writeWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Info("Connection closed or error reading message",
					zap.String("remote_addr", remoteAddr),
					zap.Error(err),
				)
			}
			return
		}

		msg, err := device.ParseMessage(data)
		if err != nil {
			logging.Warn("Ignoring malformed message",
				zap.String("remote_addr", remoteAddr),
				zap.Error(err),
			)
			continue
		}

		if msg.Type != device.MsgSetParam {
			logging.Debug("Ignoring unexpected message type",
				zap.String("remote_addr", remoteAddr),
				zap.String("type", msg.Type),
			)
			continue
		}

		s.applySet(msg.ID, msg.Value, remoteAddr)
	}
}

// sendDescription announces the parameter list with current values.
func (s *Server) sendDescription(c *client) error {
	s.mu.Lock()
	params := make([]device.Parameter, len(s.params))
	copy(params, s.params)
	for i := range params {
		params[i].Value = s.values[params[i].ID]
	}
	s.mu.Unlock()

	data, err := device.EncodeDescription(s.config.DeviceName, params)
	if err != nil {
		return err
	}
	return c.write(data)
}

// applySet clamps a commanded value to the parameter's range, stores it and
// broadcasts the resulting change to every connected surface, including the
// one that sent the command.
func (s *Server) applySet(id string, value float64, remoteAddr string) {
	p, ok := s.findParam(id)
	if !ok {
		logging.Warn("Set for unknown parameter",
			zap.String("remote_addr", remoteAddr),
			zap.String("param_id", id),
		)
		return
	}

	clamped := math.Min(math.Max(value, p.Min), p.Max)

	s.mu.Lock()
	s.values[id] = clamped
	s.mu.Unlock()

	logging.LogParameterChange(id, clamped)
	s.broadcast(id, clamped)
}

// SetValue drives a parameter from the host process, as if the patch itself
// changed it. Used by the drift loop and by tests.
func (s *Server) SetValue(id string, value float64) {
	s.applySet(id, value, "internal")
}

// Value returns the current value of a parameter.
func (s *Server) Value(id string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[id]
	return v, ok
}

// ActiveConnections returns the number of connected surfaces.
func (s *Server) ActiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

func (s *Server) findParam(id string) (device.Parameter, bool) {
	for _, p := range s.params {
		if p.ID == id {
			return p, true
		}
	}
	return device.Parameter{}, false
}

// broadcast fans a param_change out to every connected client.
func (s *Server) broadcast(id string, value float64) {
	data, err := device.EncodeChange(id, value)
	if err != nil {
		logging.Error("Failed to encode change", zap.Error(err))
		return
	}

	s.mu.Lock()
	clients := make([]*client, 0, len(s.conns))
	for c := range s.conns {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		if err := c.write(data); err != nil {
			logging.Debug("Dropping client after failed write", zap.Error(err))
			_ = c.conn.Close()
		}
	}
}

func (c *client) write(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// driftLoop slowly sweeps the configured parameter across its range with a
// sine shape, broadcasting each step.
func (s *Server) driftLoop() {
	defer s.wg.Done()

	p, ok := s.findParam(s.config.DriftParam)
	if !ok {
		logging.Warn("Drift parameter not in patch",
			zap.String("param_id", s.config.DriftParam),
		)
		return
	}

	period := s.config.DriftPeriod
	if period <= 0 {
		period = 30 * time.Second
	}

	ticker := time.NewTicker(period / 60)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ticker.C:
			phase := time.Since(start).Seconds() / period.Seconds()
			norm := (math.Sin(2*math.Pi*phase) + 1) / 2
			s.SetValue(p.ID, p.Min+norm*(p.Max-p.Min))
		case <-s.stop:
			return
		}
	}
}
