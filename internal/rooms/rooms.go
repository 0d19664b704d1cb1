// Package rooms tracks which connections belong to which named broadcast
// groups. Room existence is derived from membership: a room with zero
// members is not retained.
package rooms

import "strings"

// Room name prefixes. Kind is encoded in the name, so names never collide
// across kinds.
const (
	prefixRole       = "role:"
	prefixDepartment = "department:"
	prefixUser       = "user:"
	prefixPatient    = "entity:patient:"
	prefixAlert      = "entity:alert:"
	prefixSignaling  = "signaling:"
)

// Role returns the standing room for a staff role.
func Role(role string) string { return prefixRole + role }

// Department returns the standing room for a department.
func Department(dept string) string { return prefixDepartment + dept }

// User returns the personal room for direct notifications. Every
// simultaneous connection of the same user joins the same room.
func User(userID string) string { return prefixUser + userID }

// Patient returns the room for a specific patient.
func Patient(patientID string) string { return prefixPatient + patientID }

// Alert returns the room for a specific alert.
func Alert(alertID string) string { return prefixAlert + alertID }

// Signaling returns the ad hoc room for a camera-sharing session.
func Signaling(roomID string) string { return prefixSignaling + roomID }

// IsSignaling reports whether name is a signaling room.
func IsSignaling(name string) bool { return strings.HasPrefix(name, prefixSignaling) }

// SignalingID recovers the caller-supplied room id from a signaling room
// name.
func SignalingID(name string) string { return strings.TrimPrefix(name, prefixSignaling) }
