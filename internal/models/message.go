package models

import "encoding/json"

// WebRTC signaling message names. The offer/answer/candidate payloads are
// opaque to the server and relayed verbatim.
const (
	MsgJoinWebRTCRoom  = "join-webrtc-room"
	MsgLeaveWebRTCRoom = "leave-webrtc-room"
	MsgWebRTCOffer     = "webrtc-offer"
	MsgWebRTCAnswer    = "webrtc-answer"
	MsgWebRTCCandidate = "webrtc-ice-candidate"

	EventWebRTCUserJoined = "webrtc-user-joined"
	EventWebRTCUserLeft   = "webrtc-user-left"
	EventError            = "error"
)

// Envelope is the framing for every message on the websocket: an event name
// plus an event-specific data object.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// OutEnvelope is the outbound counterpart of Envelope; Data is marshalled
// at send time.
type OutEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// SignalPayload carries an inbound signaling message. Target addresses a
// specific connection id within the room.
type SignalPayload struct {
	RoomID    string          `json:"roomId"`
	Target    string          `json:"target,omitempty"`
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

// SignalRelay is the forwarded form of offer/answer/candidate as seen by
// the target peer, tagged with the sender's connection id.
type SignalRelay struct {
	RoomID    string          `json:"roomId"`
	From      string          `json:"from"`
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

// JoinRoomAck acknowledges a join-webrtc-room request.
type JoinRoomAck struct {
	Success          bool   `json:"success"`
	RoomID           string `json:"roomId"`
	ParticipantCount int    `json:"participantCount"`
}

// PeerJoined tells existing room members about a new peer so they can
// initiate an offer.
type PeerJoined struct {
	SocketID string `json:"socketId"`
	UserID   string `json:"userId"`
	UserRole string `json:"userRole"`
}

// PeerLeft tells remaining members to discard peer state for a connection.
type PeerLeft struct {
	SocketID string `json:"socketId"`
}

// ErrorPayload is a diagnostic sent back to the offending sender only.
type ErrorPayload struct {
	Message string `json:"message"`
}
