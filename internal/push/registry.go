package push

import (
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// channel is one open push connection, owned by the registry for its lifetime.
type channel struct {
	id     uuid.UUID
	conn   *websocket.Conn
	writer *clientWriter
}

type userChannels map[*websocket.Conn]*channel

// registry maps user ids to their open channels. It is not safe for
// concurrent use on its own; the Broadcaster goroutine owns it and
// serializes all access.
type registry struct {
	byUser map[int64]userChannels
}

func newRegistry() *registry {
	return &registry{byUser: make(map[int64]userChannels)}
}

// register inserts the channel into the user's collection.
func (r *registry) register(userID int64, ch *channel) {
	channels, exists := r.byUser[userID]
	if !exists {
		channels = make(userChannels)
		r.byUser[userID] = channels
	}
	channels[ch.conn] = ch
}

// unregister removes the channel for conn if present and returns it.
// Returns nil if the connection was never registered; calling it twice
// is a no-op.
func (r *registry) unregister(userID int64, conn *websocket.Conn) *channel {
	channels, exists := r.byUser[userID]
	if !exists {
		return nil
	}

	ch, exists := channels[conn]
	if !exists {
		return nil
	}

	delete(channels, conn)
	if len(channels) == 0 {
		delete(r.byUser, userID)
	}
	return ch
}

// channelsFor returns a snapshot of the user's channels. Callers iterate
// the snapshot, never the live map, so an eviction mid-broadcast cannot
// invalidate the iteration.
func (r *registry) channelsFor(userID int64) []*channel {
	channels := r.byUser[userID]
	snapshot := make([]*channel, 0, len(channels))
	for _, ch := range channels {
		snapshot = append(snapshot, ch)
	}
	return snapshot
}

// users returns the ids of all users with at least one open channel.
func (r *registry) users() []int64 {
	ids := make([]int64, 0, len(r.byUser))
	for id := range r.byUser {
		ids = append(ids, id)
	}
	return ids
}

func (r *registry) clientCount(userID int64) int {
	return len(r.byUser[userID])
}

func (r *registry) userCount() int {
	return len(r.byUser)
}
