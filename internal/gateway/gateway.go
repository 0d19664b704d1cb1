// Package gateway is the realtime core: it owns live connections, fans
// domain events out to rooms, relays WebRTC signaling between peers, and
// answers presence queries. Persistence, HTTP routing, and credential
// issuance live outside; they reach the gateway only through its exported
// methods.
package gateway

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/wardpulse/realtime-gateway/internal/models"
	"github.com/wardpulse/realtime-gateway/internal/outbox"
	"github.com/wardpulse/realtime-gateway/internal/redis"
	"github.com/wardpulse/realtime-gateway/internal/rooms"
)

// Gateway coordinates the room registry, connected clients, event fanout
// and the signaling relay.
type Gateway struct {
	registry *rooms.Registry
	sink     outbox.Sink
	mirror   *redis.Mirror

	mu      sync.RWMutex
	clients map[string]*Client
}

// New returns a Gateway. sink may be outbox.Nop{}; mirror may be nil.
func New(sink outbox.Sink, mirror *redis.Mirror) *Gateway {
	if sink == nil {
		sink = outbox.Nop{}
	}
	return &Gateway{
		registry: rooms.NewRegistry(),
		sink:     sink,
		mirror:   mirror,
		clients:  make(map[string]*Client),
	}
}

// Registry exposes room membership for read-side consumers.
func (g *Gateway) Registry() *rooms.Registry {
	return g.registry
}

// Register creates a Client for an authenticated connection and joins it to
// its standing rooms. The joins are visible to MembersOf before Register
// returns, so a client may rely on receiving room events immediately.
func (g *Gateway) Register(identity models.Identity, conn *websocket.Conn) *Client {
	c := newClient(g, identity, conn)

	g.mu.Lock()
	g.clients[c.ID] = c
	g.mu.Unlock()

	g.registry.Join(c.ID, rooms.Role(identity.Role))
	g.registry.Join(c.ID, rooms.Department(identity.Department))
	g.registry.Join(c.ID, rooms.User(identity.UserID))

	log.WithFields(log.Fields{
		"connection": c.ID,
		"user":       identity.UserID,
		"role":       identity.Role,
		"department": identity.Department,
	}).Info("connection established")

	return c
}

// Serve starts the read and write pumps for a network-backed client.
func (g *Gateway) Serve(c *Client) {
	go c.writePump()
	go c.readPump()
}

// Disconnect removes the client from every room and notifies signaling
// peers. Safe to call multiple times; cleanup runs once.
func (g *Gateway) Disconnect(c *Client) {
	c.closeOnce.Do(func() {
		// Peers in signaling rooms must learn the departure before the
		// membership disappears.
		for _, room := range g.registry.RoomsOf(c.ID) {
			if rooms.IsSignaling(room) {
				g.leaveSignalingRoom(c, rooms.SignalingID(room))
			}
		}
		g.registry.LeaveAll(c.ID)

		g.mu.Lock()
		delete(g.clients, c.ID)
		g.mu.Unlock()

		log.WithFields(log.Fields{
			"connection": c.ID,
			"user":       c.Identity.UserID,
		}).Info("connection closed")
	})
}

// client returns the live client for a connection id.
func (g *Gateway) client(connID string) (*Client, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	c, ok := g.clients[connID]
	return c, ok
}

// sendTo queues env for one connection.
func (g *Gateway) sendTo(connID string, env models.OutEnvelope) bool {
	c, ok := g.client(connID)
	if !ok {
		return false
	}
	return c.queue(env)
}

// publish fans env out to every connection in the target rooms, deduplicated
// across rooms, excluding excludeConnID (empty string excludes no one).
// Returns the number of connections the event was queued for; zero
// recipients is a no-op, not an error.
func (g *Gateway) publish(targetRooms []string, env models.OutEnvelope, excludeConnID string) int {
	seen := make(map[string]struct{})
	delivered := 0
	for _, room := range targetRooms {
		for _, connID := range g.registry.MembersOf(room) {
			if connID == excludeConnID {
				continue
			}
			if _, dup := seen[connID]; dup {
				continue
			}
			seen[connID] = struct{}{}
			if g.sendTo(connID, env) {
				delivered++
			}
		}
	}
	return delivered
}

// publishAll queues env for every connected client.
func (g *Gateway) publishAll(env models.OutEnvelope, excludeConnID string) int {
	g.mu.RLock()
	targets := make([]*Client, 0, len(g.clients))
	for _, c := range g.clients {
		if c.ID != excludeConnID {
			targets = append(targets, c)
		}
	}
	g.mu.RUnlock()

	delivered := 0
	for _, c := range targets {
		if c.queue(env) {
			delivered++
		}
	}
	return delivered
}

// record hands a published event to the outbox sink. Failures never
// propagate to the fanout path.
func (g *Gateway) record(rec outbox.Record) {
	if err := g.sink.Publish(context.Background(), rec); err != nil {
		log.WithFields(log.Fields{"event": rec.Event, "error": err}).Warn("outbox publish failed")
	}
}
