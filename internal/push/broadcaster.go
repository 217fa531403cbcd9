package push

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/gumallc/loanspa-ssp-v2/internal/domain"
	"github.com/gumallc/loanspa-ssp-v2/internal/metrics"
	"github.com/jonboulle/clockwork"
)

const (
	commandTimeout = 5 * time.Second
	storeTimeout   = 2 * time.Second
	stopTimeout    = 10 * time.Second
)

// broadcasterCmd is the command interface for the Broadcaster actor.
type broadcasterCmd interface{ isBroadcasterCmd() }

type baseBroadcasterCmd struct{}

func (baseBroadcasterCmd) isBroadcasterCmd() {}

type registerCmd struct {
	baseBroadcasterCmd
	userID       int64
	connection   *websocket.Conn
	errorChannel chan error
}

type unregisterCmd struct {
	baseBroadcasterCmd
	userID     int64
	connection *websocket.Conn
}

type clientCountCmd struct {
	baseBroadcasterCmd
	userID       int64
	replyChannel chan int
}

type usersCmd struct {
	baseBroadcasterCmd
	replyChannel chan []int64
}

type pushCountCmd struct {
	baseBroadcasterCmd
	userID int64
}

type pushNotificationCmd struct {
	baseBroadcasterCmd
	userID       int64
	notification *domain.Notification
}

type pushTipCmd struct {
	baseBroadcasterCmd
	userID int64
	tip    domain.Tip
}

type stopCmd struct {
	baseBroadcasterCmd
}

// unreadCounter is the slice of the notification store the broadcaster needs.
type unreadCounter interface {
	GetUnreadCount(ctx context.Context, userID int64) (int, error)
}

// Broadcaster owns the channel registry and fans typed push messages out
// to a user's open connections. All registry access happens on the actor
// goroutine, so the registry itself needs no locking.
type Broadcaster struct {
	cmdCh             chan broadcasterCmd
	clock             clockwork.Clock
	registry          *registry
	store             unreadCounter
	done              chan struct{}
	maxClientsPerUser int
}

// NewBroadcaster creates a broadcaster and starts its actor goroutine.
// store supplies current unread counts for the initial sync and for
// PushUnreadCount. maxClientsPerUser limits connections per user.
func NewBroadcaster(store unreadCounter, clock clockwork.Clock, maxClientsPerUser int) *Broadcaster {
	b := &Broadcaster{
		cmdCh:             make(chan broadcasterCmd, 256),
		clock:             clock,
		registry:          newRegistry(),
		store:             store,
		done:              make(chan struct{}),
		maxClientsPerUser: maxClientsPerUser,
	}
	go b.run()
	return b
}

// Register adds a connection under the given user and immediately pushes the
// user's current unread count to it. Returns an error if the per-user
// connection limit is reached.
func (b *Broadcaster) Register(userID int64, conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	b.cmdCh <- registerCmd{userID: userID, connection: conn, errorChannel: errCh}

	timer := b.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case err := <-errCh:
		return err
	case <-timer.Chan():
		return fmt.Errorf("register command timed out after %v", commandTimeout)
	}
}

// Unregister removes a connection. Safe to call for connections that were
// never registered or were already removed.
func (b *Broadcaster) Unregister(userID int64, conn *websocket.Conn) {
	b.cmdCh <- unregisterCmd{userID: userID, connection: conn}
}

// ClientCount returns the number of open channels for a user.
// Returns -1 if the command times out.
func (b *Broadcaster) ClientCount(userID int64) int {
	replyCh := make(chan int, 1)
	b.cmdCh <- clientCountCmd{userID: userID, replyChannel: replyCh}

	timer := b.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case count := <-replyCh:
		return count
	case <-timer.Chan():
		slog.Warn("ClientCount timed out", "timeout", commandTimeout)
		return -1
	}
}

// Users returns the ids of all users with at least one open channel.
// Returns nil if the command times out.
func (b *Broadcaster) Users() []int64 {
	replyCh := make(chan []int64, 1)
	b.cmdCh <- usersCmd{replyChannel: replyCh}

	timer := b.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case users := <-replyCh:
		return users
	case <-timer.Chan():
		slog.Warn("Users timed out", "timeout", commandTimeout)
		return nil
	}
}

// PushUnreadCount reads the user's current unread count from the store and
// sends a NOTIFICATION_COUNT message to every open channel.
func (b *Broadcaster) PushUnreadCount(userID int64) {
	b.cmdCh <- pushCountCmd{userID: userID}
}

// PushNewNotification sends a NEW_NOTIFICATION message to every open channel
// for the user. With zero channels this is a no-op, never an error.
func (b *Broadcaster) PushNewNotification(userID int64, notification *domain.Notification) {
	b.cmdCh <- pushNotificationCmd{userID: userID, notification: notification}
}

// PushTip sends a FINANCIAL_TIP message to every open channel for the user.
func (b *Broadcaster) PushTip(userID int64, tip domain.Tip) {
	b.cmdCh <- pushTipCmd{userID: userID, tip: tip}
}

// Stop shuts down the broadcaster, closing all client connections.
// Blocks until the actor goroutine has exited or the timeout is reached.
func (b *Broadcaster) Stop() {
	b.cmdCh <- stopCmd{}

	timeout := b.clock.NewTimer(stopTimeout)
	defer timeout.Stop()

	select {
	case <-b.done:
		slog.Info("Broadcaster stopped gracefully")
	case <-timeout.Chan():
		slog.Warn("Broadcaster stop timeout exceeded, forcing exit", "timeout", stopTimeout)
		metrics.BroadcasterStopTimeoutsTotal.Inc()
	}
}

func (b *Broadcaster) run() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Broadcaster panic recovered", "panic", r)
			metrics.BroadcasterPanicsTotal.Inc()
			b.closeAllClients("broadcaster panic")
		}
	}()
	defer close(b.done)

	for cmd := range b.cmdCh {
		switch c := cmd.(type) {
		case registerCmd:
			b.handleRegister(c)
		case unregisterCmd:
			b.handleUnregister(c.userID, c.connection)
		case clientCountCmd:
			c.replyChannel <- b.registry.clientCount(c.userID)
		case usersCmd:
			c.replyChannel <- b.registry.users()
		case pushCountCmd:
			b.handlePushCount(c.userID)
		case pushNotificationCmd:
			b.handlePushNotification(c)
		case pushTipCmd:
			b.handlePushTip(c)
		case stopCmd:
			b.handleStop()
			return
		default:
			slog.Warn("Broadcaster received unknown command type", "command_type", fmt.Sprintf("%T", cmd))
		}
	}
}

func (b *Broadcaster) handleRegister(c registerCmd) {
	if b.registry.clientCount(c.userID) >= b.maxClientsPerUser {
		slog.Warn("Rejecting client: max clients reached", "user_id", c.userID, "max_clients", b.maxClientsPerUser)
		c.connection.Close()
		c.errorChannel <- fmt.Errorf("max clients per user (%d) reached", b.maxClientsPerUser)
		return
	}

	ch := &channel{
		id:     uuid.New(),
		conn:   c.connection,
		writer: newClientWriter(c.connection, b.clock),
	}
	b.registry.register(c.userID, ch)

	metrics.BroadcasterActiveUsers.Set(float64(b.registry.userCount()))
	metrics.BroadcasterConnectedClients.Inc()

	slog.Debug("Client registered", "user_id", c.userID, "channel_id", ch.id.String(), "total_clients", b.registry.clientCount(c.userID))
	c.errorChannel <- nil

	// Initial sync: the new channel gets the current unread count right away.
	b.sendUnreadCount(c.userID, []*channel{ch})
}

func (b *Broadcaster) handleUnregister(userID int64, conn *websocket.Conn) {
	ch := b.registry.unregister(userID, conn)
	if ch == nil {
		return
	}

	ch.writer.stop()
	metrics.BroadcasterConnectedClients.Dec()
	metrics.BroadcasterActiveUsers.Set(float64(b.registry.userCount()))

	if remaining := b.registry.clientCount(userID); remaining == 0 {
		slog.Info("Last client disconnected", "user_id", userID)
	} else {
		slog.Debug("Client unregistered", "user_id", userID, "remaining_clients", remaining)
	}
}

func (b *Broadcaster) handlePushCount(userID int64) {
	b.sendUnreadCount(userID, b.registry.channelsFor(userID))
}

func (b *Broadcaster) sendUnreadCount(userID int64, channels []*channel) {
	if len(channels) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	count, err := b.store.GetUnreadCount(ctx, userID)
	cancel()
	if err != nil {
		slog.Error("GetUnreadCount failed", "user_id", userID, "error", err)
		return
	}

	msg := domain.CountMessage{Type: domain.MessageTypeNotificationCount, Count: count}
	b.fanOut(userID, channels, msg, domain.MessageTypeNotificationCount)
}

func (b *Broadcaster) handlePushNotification(c pushNotificationCmd) {
	msg := domain.NotificationMessage{Type: domain.MessageTypeNewNotification, Notification: c.notification}
	b.fanOut(c.userID, b.registry.channelsFor(c.userID), msg, domain.MessageTypeNewNotification)
}

func (b *Broadcaster) handlePushTip(c pushTipCmd) {
	msg := domain.TipMessage{Type: domain.MessageTypeFinancialTip, Tip: c.tip}
	b.fanOut(c.userID, b.registry.channelsFor(c.userID), msg, domain.MessageTypeFinancialTip)
}

// fanOut delivers one marshaled message to every channel in the snapshot.
// Sends are non-blocking: a client whose buffer is full is evicted after
// the loop, so one slow channel never blocks or aborts its siblings.
func (b *Broadcaster) fanOut(userID int64, channels []*channel, msg any, msgType string) {
	if len(channels) == 0 {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("Failed to marshal push message", "type", msgType, "error", err)
		return
	}

	var slow []*channel
	for _, ch := range channels {
		select {
		case ch.writer.sendChannel <- data:
			metrics.BroadcasterMessagesSent.WithLabelValues(msgType).Inc()
		default:
			slow = append(slow, ch)
		}
	}

	for _, ch := range slow {
		slog.Warn("Disconnecting slow client", "user_id", userID, "channel_id", ch.id.String())
		metrics.BroadcasterSlowClientsEvicted.Inc()
		b.handleUnregister(userID, ch.conn)
	}
}

func (b *Broadcaster) handleStop() {
	totalClients := 0
	for _, userID := range b.registry.users() {
		totalClients += b.registry.clientCount(userID)
	}

	slog.Info("Broadcaster shutting down", "users", b.registry.userCount(), "total_clients", totalClients)
	b.closeAllClients("Server shutting down")
	slog.Info("Broadcaster shutdown complete", "disconnected_clients", totalClients)
}

// closeAllClients closes every connection with the given reason.
// Used during panic recovery and graceful shutdown.
func (b *Broadcaster) closeAllClients(reason string) {
	for _, userID := range b.registry.users() {
		for _, ch := range b.registry.channelsFor(userID) {
			ch.writer.stopGraceful(reason)
			b.registry.unregister(userID, ch.conn)
			metrics.BroadcasterConnectedClients.Dec()
		}
	}
	metrics.BroadcasterActiveUsers.Set(0)
}
