package gateway

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/wardpulse/realtime-gateway/internal/models"
	"github.com/wardpulse/realtime-gateway/internal/rooms"
)

// ErrNotAMember is returned when a relay names a sender or target that is
// not currently in the signaling room. The message is dropped; the room is
// unaffected.
var ErrNotAMember = errors.New("relay error: not a member of signaling room")

// JoinSignalingRoom adds the connection to an ad hoc camera-sharing room,
// creating the room on first join, and tells existing members about the new
// peer so they can initiate an offer. Returns the current participant
// count.
func (g *Gateway) JoinSignalingRoom(c *Client, roomID string) int {
	room := rooms.Signaling(roomID)

	created := g.registry.MemberCount(room) == 0
	g.registry.Join(c.ID, room)
	count := g.registry.MemberCount(room)

	if created {
		log.WithField("room", roomID).Info("signaling room created")
	}
	log.WithFields(log.Fields{
		"room":         roomID,
		"connection":   c.ID,
		"user":         c.Identity.UserID,
		"participants": count,
	}).Info("peer joined signaling room")

	g.mirror.AddPeer(context.Background(), roomID, c.ID)

	g.publish([]string{room}, models.OutEnvelope{
		Event: models.EventWebRTCUserJoined,
		Data: models.PeerJoined{
			SocketID: c.ID,
			UserID:   c.Identity.UserID,
			UserRole: c.Identity.Role,
		},
	}, c.ID)

	return count
}

// LeaveSignalingRoom removes the connection from the room, notifies the
// remaining peers, and discards the room when the last member leaves.
// Leaving a room the connection is not in is a no-op.
func (g *Gateway) LeaveSignalingRoom(c *Client, roomID string) {
	g.leaveSignalingRoom(c, roomID)
}

func (g *Gateway) leaveSignalingRoom(c *Client, roomID string) {
	room := rooms.Signaling(roomID)
	if !g.registry.IsMember(c.ID, room) {
		return
	}

	g.registry.Leave(c.ID, room)
	g.mirror.RemovePeer(context.Background(), roomID, c.ID)

	g.publish([]string{room}, models.OutEnvelope{
		Event: models.EventWebRTCUserLeft,
		Data:  models.PeerLeft{SocketID: c.ID},
	}, c.ID)

	log.WithFields(log.Fields{"room": roomID, "connection": c.ID}).Info("peer left signaling room")

	if g.registry.MemberCount(room) == 0 {
		g.mirror.DropRoom(context.Background(), roomID)
		log.WithField("room", roomID).Info("signaling room discarded")
	}
}

// RelaySignal forwards an offer, answer, or ICE candidate verbatim to the
// target connection, tagged with the sender. Both sender and target must be
// current members of the room; anything else is dropped with a diagnostic
// back to the sender only. The server never inspects the negotiation
// payload.
func (g *Gateway) RelaySignal(c *Client, event string, sig models.SignalPayload) error {
	room := rooms.Signaling(sig.RoomID)

	if !g.registry.IsMember(c.ID, room) || !g.registry.IsMember(sig.Target, room) {
		log.WithFields(log.Fields{
			"room":       sig.RoomID,
			"connection": c.ID,
			"target":     sig.Target,
			"event":      event,
		}).Warn("dropping relay between non-members")
		c.queue(models.OutEnvelope{
			Event: models.EventError,
			Data:  models.ErrorPayload{Message: "not a member of signaling room " + sig.RoomID},
		})
		return ErrNotAMember
	}

	g.sendTo(sig.Target, models.OutEnvelope{
		Event: event,
		Data: models.SignalRelay{
			RoomID:    sig.RoomID,
			From:      c.ID,
			Offer:     sig.Offer,
			Answer:    sig.Answer,
			Candidate: sig.Candidate,
		},
	})
	return nil
}
