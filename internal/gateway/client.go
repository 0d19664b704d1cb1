package gateway

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/wardpulse/realtime-gateway/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 64 * 1024
	sendBuffer     = 256
)

// Client is one live, authenticated connection. Its identity is fixed for
// the connection's lifetime.
type Client struct {
	ID          string
	Identity    models.Identity
	ConnectedAt time.Time

	conn *websocket.Conn
	send chan []byte
	gw   *Gateway

	// guards teardown so cleanup runs exactly once even under concurrent
	// disconnect signals
	closeOnce sync.Once
}

func newClient(gw *Gateway, identity models.Identity, conn *websocket.Conn) *Client {
	return &Client{
		ID:          uuid.New().String(),
		Identity:    identity,
		ConnectedAt: time.Now(),
		conn:        conn,
		send:        make(chan []byte, sendBuffer),
		gw:          gw,
	}
}

// queue marshals env onto the client's send channel. Slow consumers drop
// messages rather than block the publisher; the realtime channel is
// best-effort. Reports whether the message was queued.
func (c *Client) queue(env models.OutEnvelope) bool {
	data, err := json.Marshal(env)
	if err != nil {
		log.WithFields(log.Fields{"event": env.Event, "error": err}).Error("failed to marshal outbound event")
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		log.WithFields(log.Fields{"connection": c.ID, "event": env.Event}).Warn("send buffer full, dropping message")
		return false
	}
}

// readPump reads inbound messages and dispatches them until the connection
// drops, then runs teardown.
func (c *Client) readPump() {
	defer func() {
		c.gw.Disconnect(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithFields(log.Fields{"connection": c.ID, "error": err}).Warn("websocket read error")
			}
			break
		}

		var env models.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			log.WithFields(log.Fields{"connection": c.ID, "error": err}).Warn("dropping malformed message")
			continue
		}
		c.gw.dispatch(c, env)
	}
}

// writePump drains the send channel to the websocket and keeps the
// connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.WithFields(log.Fields{"connection": c.ID, "error": err}).Warn("websocket write error")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
