package models

import "time"

// SignalingRoomInfo is the externally visible state of a signaling room,
// mirrored to Redis for cross-instance observability.
type SignalingRoomInfo struct {
	ID               string    `json:"id"`
	CreatedAt        time.Time `json:"createdAt"`
	ParticipantCount int       `json:"participantCount"`
}

// PresenceReport is returned by the presence HTTP endpoints.
type PresenceReport struct {
	Online      int            `json:"online"`
	Roles       map[string]int `json:"roles,omitempty"`
	Departments map[string]int `json:"departments,omitempty"`
}
