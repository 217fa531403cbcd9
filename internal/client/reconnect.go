package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/gumallc/loanspa-ssp-v2/internal/domain"
	"github.com/jonboulle/clockwork"
)

// State is the connection lifecycle state of the manager.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// DefaultReconnectDelay is the fixed wait between reconnect attempts.
// No exponential backoff, no retry cap: the manager retries for as long
// as it is running.
const DefaultReconnectDelay = 3 * time.Second

// Manager owns a single push channel and reconnects it on close with a
// fixed delay. Inbound messages update the local unread counter and the
// currently displayed tip.
type Manager struct {
	url    string
	header http.Header
	dialer *websocket.Dialer
	clock  clockwork.Clock
	delay  time.Duration

	onInvalidate func(*domain.Notification)
	onState      func(State)

	mu     sync.Mutex
	state  State
	unread int
	tip    *domain.Tip
	conn   *websocket.Conn

	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// Option configures a Manager.
type Option func(*Manager)

// WithReconnectDelay overrides the fixed reconnect delay.
func WithReconnectDelay(d time.Duration) Option {
	return func(m *Manager) { m.delay = d }
}

// WithClock substitutes the clock, for tests.
func WithClock(clock clockwork.Clock) Option {
	return func(m *Manager) { m.clock = clock }
}

// WithDialer substitutes the WebSocket dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(m *Manager) { m.dialer = d }
}

// WithHeader sets the handshake request header, typically the session cookie.
func WithHeader(h http.Header) Option {
	return func(m *Manager) { m.header = h }
}

// WithInvalidateFunc registers a callback fired for each NEW_NOTIFICATION,
// so the owner can refetch the authoritative notification list.
func WithInvalidateFunc(fn func(*domain.Notification)) Option {
	return func(m *Manager) { m.onInvalidate = fn }
}

// WithStateFunc registers a callback fired on every state transition.
func WithStateFunc(fn func(State)) Option {
	return func(m *Manager) { m.onState = fn }
}

// NewManager creates a manager for the given ws:// or wss:// URL.
// It does not connect until Start is called.
func NewManager(url string, opts ...Option) *Manager {
	m := &Manager{
		url:    url,
		dialer: websocket.DefaultDialer,
		clock:  clockwork.NewRealClock(),
		delay:  DefaultReconnectDelay,
		state:  StateDisconnected,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start begins the connect/reconnect loop. Cancelling ctx stops the
// manager the same way Stop does.
func (m *Manager) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	m.mu.Lock()
	m.cancel = cancel
	m.mu.Unlock()
	go m.run(runCtx)
}

// Stop closes the channel and cancels any pending reconnect timer.
// Blocks until the run loop has exited.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		m.mu.Lock()
		cancel := m.cancel
		conn := m.conn
		m.mu.Unlock()

		if cancel == nil {
			// Never started.
			return
		}
		cancel()
		if conn != nil {
			_ = conn.Close()
		}
		<-m.done
	})
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// UnreadCount returns the locally tracked unread notification count.
func (m *Manager) UnreadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unread
}

// CurrentTip returns the currently displayed tip, or nil.
func (m *Manager) CurrentTip() *domain.Tip {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tip == nil {
		return nil
	}
	copied := *m.tip
	return &copied
}

// DismissTip clears the current tip locally. Nothing is sent to the
// server: tips are not acknowledged entities.
func (m *Manager) DismissTip() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tip = nil
}

func (m *Manager) run(ctx context.Context) {
	defer close(m.done)
	defer m.setState(StateDisconnected)

	for {
		m.setState(StateConnecting)

		conn, resp, err := m.dialer.DialContext(ctx, m.url, m.header)
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		if err != nil {
			m.setState(StateDisconnected)
			if ctx.Err() != nil {
				return
			}
			slog.Debug("Push channel dial failed, will retry", "error", err, "delay", m.delay)
			if !m.waitForRetry(ctx) {
				return
			}
			continue
		}

		m.mu.Lock()
		m.conn = conn
		m.mu.Unlock()
		m.setState(StateConnected)

		m.readLoop(conn)
		_ = conn.Close()

		m.mu.Lock()
		m.conn = nil
		m.mu.Unlock()
		m.setState(StateDisconnected)

		if ctx.Err() != nil {
			return
		}
		slog.Debug("Push channel closed, reconnecting", "delay", m.delay)
		if !m.waitForRetry(ctx) {
			return
		}
	}
}

// waitForRetry sleeps for the fixed delay. Returns false if the context
// was cancelled while waiting.
func (m *Manager) waitForRetry(ctx context.Context) bool {
	timer := m.clock.NewTimer(m.delay)
	defer timer.Stop()

	select {
	case <-timer.Chan():
		return true
	case <-ctx.Done():
		return false
	}
}

func (m *Manager) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		m.dispatch(data)
	}
}

// dispatch routes one inbound message by its type field. Malformed
// payloads and unknown types are logged and ignored; they never close
// the connection.
func (m *Manager) dispatch(data []byte) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		slog.Debug("Ignoring malformed push message", "error", err)
		return
	}

	switch envelope.Type {
	case domain.MessageTypeNotificationCount:
		var msg domain.CountMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Debug("Ignoring malformed count message", "error", err)
			return
		}
		m.mu.Lock()
		m.unread = msg.Count
		m.mu.Unlock()

	case domain.MessageTypeNewNotification:
		var msg domain.NotificationMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Debug("Ignoring malformed notification message", "error", err)
			return
		}
		m.mu.Lock()
		m.unread++
		fn := m.onInvalidate
		m.mu.Unlock()
		if fn != nil {
			fn(msg.Notification)
		}

	case domain.MessageTypeFinancialTip:
		var msg domain.TipMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Debug("Ignoring malformed tip message", "error", err)
			return
		}
		if !msg.Tip.Icon.Valid() {
			msg.Tip.Icon = domain.IconPiggyBank
		}
		m.mu.Lock()
		m.tip = &msg.Tip
		m.mu.Unlock()

	default:
		slog.Debug("Ignoring unknown push message type", "type", envelope.Type)
	}
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	if m.state == s {
		m.mu.Unlock()
		return
	}
	m.state = s
	fn := m.onState
	m.mu.Unlock()

	if fn != nil {
		fn(s)
	}
}
