package subscriber

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"sync"
	"time"
)

// Event names with dedicated handling. The connect, disconnect and status
// events are emitted locally by the connection itself; queue.metrics and
// error.report arrive from the peer and are additionally folded into the
// connection's retained collections before re-emission.
const (
	EventConnect      = "connect"
	EventDisconnect   = "disconnect"
	EventStatus       = "status"
	EventQueueMetrics = "queue.metrics"
	EventErrorReport  = "error.report"
)

const (
	defaultBaseDelay = 1 * time.Second
	defaultMaxDelay  = 30 * time.Second
	defaultJitterMax = 250 * time.Millisecond

	errorHistoryCap = 50
)

// Envelope is the wire-level wrapper of every inbound message.
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// DisconnectInfo is the payload of a disconnect event.
type DisconnectInfo struct {
	Code     int
	Reason   string
	WasClean bool
}

// Status is the payload of a status event.
type Status struct {
	State                State
	Attempts             int
	LastDisconnectReason string
}

// ErrorReport is one retained upstream error report.
type ErrorReport struct {
	Source     string    `json:"source"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurredAt"`
	Details    any       `json:"details,omitempty"`
}

// Handler receives the decoded payload of one event.
type Handler func(payload any)

// Config configures a Connection. Zero values fall back to defaults; only
// BaseURL is required.
type Config struct {
	// BaseURL is the configured base API URL, e.g. https://api.example.com/api/v1.
	// The websocket endpoint is derived from it.
	BaseURL string

	// BaseDelay is the first reconnect delay. Defaults to 1s.
	BaseDelay time.Duration

	// MaxDelay caps the exponential backoff. Defaults to 30s.
	MaxDelay time.Duration

	// JitterMax bounds the random jitter added to every delay. Defaults to 250ms.
	JitterMax time.Duration

	// Transport overrides the websocket transport. Used by tests.
	Transport Transport

	Logger *slog.Logger
}

// Connection is a self-healing subscription to the realtime endpoint.
// All state transitions and listener invocations happen on the internal run
// goroutine; Reconnect and Close are fire-and-forget control signals.
type Connection struct {
	endpoint  string
	transport Transport
	logger    *slog.Logger

	baseDelay time.Duration
	maxDelay  time.Duration
	jitterMax time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	reconnectNow chan struct{}

	mu             sync.Mutex
	state          State
	attempts       int
	lastDisconnect string
	conn           Conn
	listeners      map[string]map[int]Handler
	nextListenerID int
	metrics        []QueueMetric
	errorHistory   []ErrorReport
}

// NewConnection derives the realtime endpoint from cfg.BaseURL and starts
// connecting immediately.
func NewConnection(cfg Config) (*Connection, error) {
	endpoint, err := DeriveEndpoint(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = defaultBaseDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = defaultMaxDelay
	}
	if cfg.JitterMax < 0 {
		cfg.JitterMax = defaultJitterMax
	}
	if cfg.Transport == nil {
		cfg.Transport = NewWebsocketTransport()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Connection{
		endpoint:     endpoint,
		transport:    cfg.Transport,
		logger:       cfg.Logger.With("component", "subscriber"),
		baseDelay:    cfg.BaseDelay,
		maxDelay:     cfg.MaxDelay,
		jitterMax:    cfg.JitterMax,
		ctx:          ctx,
		cancel:       cancel,
		reconnectNow: make(chan struct{}, 1),
		state:        StateConnecting,
		listeners:    make(map[string]map[int]Handler),
	}

	go c.run()
	return c, nil
}

// On registers a listener for the named event. Many listeners may share one
// event. The returned function deregisters the listener.
func (c *Connection) On(event string, fn Handler) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.listeners[event] == nil {
		c.listeners[event] = make(map[int]Handler)
	}
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[event][id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners[event], id)
	}
}

// Reconnect resets the attempt counter and forces an immediate reconnect
// cycle regardless of backoff state. No-op once closed.
func (c *Connection) Reconnect() {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	c.attempts = 0
	conn := c.conn
	c.mu.Unlock()

	select {
	case c.reconnectNow <- struct{}{}:
	default:
	}
	if conn != nil {
		_ = conn.Close()
	}
}

// Close marks the connection as intentionally closed, cancels any pending
// reconnect timer and tears down the transport. Terminal: no timer fires and
// no dial happens afterwards.
func (c *Connection) Close() {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	c.state = StateClosed
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	c.cancel()
	if conn != nil {
		_ = conn.Close()
	}
	c.emitStatus()
}

// State returns the current lifecycle state.
func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Attempts returns the reconnect attempt counter.
func (c *Connection) Attempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

// LastDisconnectReason returns the reason of the most recent disconnect,
// empty after a successful connect.
func (c *Connection) LastDisconnectReason() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastDisconnect
}

// Metrics returns the merged queue metric snapshots, most recent first.
func (c *Connection) Metrics() []QueueMetric {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]QueueMetric, len(c.metrics))
	copy(out, c.metrics)
	return out
}

// ErrorHistory returns the retained upstream error reports, most recent first.
func (c *Connection) ErrorHistory() []ErrorReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ErrorReport, len(c.errorHistory))
	copy(out, c.errorHistory)
	return out
}

// run drives the connect/read/disconnect/backoff cycle until Close.
func (c *Connection) run() {
	for {
		if c.ctx.Err() != nil {
			return
		}

		conn, err := c.transport.Dial(c.ctx, c.endpoint)
		if err != nil {
			if c.ctx.Err() != nil {
				return
			}
			c.handleDisconnect(DisconnectInfo{Reason: err.Error()})
			if !c.waitBackoff() {
				return
			}
			c.transition(StateConnecting)
			continue
		}

		c.onConnected(conn)
		readErr := c.readLoop(conn)
		_ = conn.Close()
		if c.ctx.Err() != nil {
			return
		}

		code, reason, clean := closeDetails(readErr)
		c.handleDisconnect(DisconnectInfo{Code: code, Reason: reason, WasClean: clean})
		if !c.waitBackoff() {
			return
		}
		c.transition(StateConnecting)
	}
}

func (c *Connection) onConnected(conn Conn) {
	c.mu.Lock()
	if !canTransition(c.state, StateConnected) {
		c.mu.Unlock()
		_ = conn.Close()
		return
	}
	c.state = StateConnected
	c.attempts = 0
	c.lastDisconnect = ""
	c.conn = conn
	c.mu.Unlock()

	c.logger.Info("realtime connection established", "endpoint", c.endpoint)
	c.emit(EventConnect, nil)
	c.emitStatus()
}

func (c *Connection) handleDisconnect(info DisconnectInfo) {
	c.mu.Lock()
	if !canTransition(c.state, StateDisconnected) {
		c.mu.Unlock()
		return
	}
	c.state = StateDisconnected
	c.lastDisconnect = info.Reason
	c.conn = nil
	c.mu.Unlock()

	c.logger.Warn("realtime connection lost", "code", info.Code, "reason", info.Reason, "was_clean", info.WasClean)
	c.emit(EventDisconnect, info)
	c.emitStatus()
}

// waitBackoff sleeps for the next backoff delay. Returns false when the
// connection was closed, true when the cycle should continue. A Reconnect
// signal preempts the timer.
func (c *Connection) waitBackoff() bool {
	timer := time.NewTimer(c.nextDelay())
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-c.reconnectNow:
		return true
	case <-c.ctx.Done():
		return false
	}
}

// nextDelay computes min(base << attempts, max) plus bounded random jitter
// and advances the attempt counter. The jitter avoids synchronized reconnect
// storms across many clients.
func (c *Connection) nextDelay() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	delay := c.baseDelay << uint(c.attempts)
	if delay <= 0 || delay > c.maxDelay {
		delay = c.maxDelay
	}
	if c.jitterMax > 0 {
		delay += time.Duration(rand.Int63n(int64(c.jitterMax)))
	}
	c.attempts++
	return delay
}

func (c *Connection) transition(to State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if canTransition(c.state, to) {
		c.state = to
	}
}

func (c *Connection) readLoop(conn Conn) error {
	for {
		data, err := conn.ReadMessage(c.ctx)
		if err != nil {
			return err
		}
		c.handleMessage(data)
	}
}

// handleMessage parses one inbound envelope and re-emits it to listeners of
// its named event. Malformed envelopes are logged and dropped; they never
// crash the connection.
func (c *Connection) handleMessage(data []byte) {
	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		c.logger.Warn("dropping malformed envelope", "error", err)
		return
	}
	if envelope.Event == "" {
		c.logger.Warn("dropping envelope without event name")
		return
	}

	switch envelope.Event {
	case EventQueueMetrics:
		metric, err := parseQueueMetric(envelope.Payload)
		if err != nil {
			c.logger.Warn("dropping malformed queue metric", "error", err)
			return
		}
		c.mu.Lock()
		c.metrics = mergeQueueMetric(c.metrics, metric)
		c.mu.Unlock()

	case EventErrorReport:
		var report ErrorReport
		if err := json.Unmarshal(envelope.Payload, &report); err != nil {
			c.logger.Warn("dropping malformed error report", "error", err)
			return
		}
		c.mu.Lock()
		c.errorHistory = append([]ErrorReport{report}, c.errorHistory...)
		if len(c.errorHistory) > errorHistoryCap {
			c.errorHistory = c.errorHistory[:errorHistoryCap]
		}
		c.mu.Unlock()
	}

	var payload any
	if len(envelope.Payload) > 0 {
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
			c.logger.Warn("dropping malformed envelope payload", "event", envelope.Event, "error", err)
			return
		}
	}
	c.emit(envelope.Event, payload)
}

func (c *Connection) emit(event string, payload any) {
	c.mu.Lock()
	handlers := make([]Handler, 0, len(c.listeners[event]))
	for _, fn := range c.listeners[event] {
		handlers = append(handlers, fn)
	}
	c.mu.Unlock()

	for _, fn := range handlers {
		fn(payload)
	}
}

func (c *Connection) emitStatus() {
	c.mu.Lock()
	status := Status{
		State:                c.state,
		Attempts:             c.attempts,
		LastDisconnectReason: c.lastDisconnect,
	}
	c.mu.Unlock()

	c.emit(EventStatus, status)
}
