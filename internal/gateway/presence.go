package gateway

import (
	"github.com/wardpulse/realtime-gateway/internal/models"
	"github.com/wardpulse/realtime-gateway/internal/rooms"
)

// Presence is derived entirely from room membership of the standing rooms;
// there are no separate counters to keep consistent.

// Count returns the number of live connections.
func (g *Gateway) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.clients)
}

// CountByRole returns the number of connections held by users with role.
func (g *Gateway) CountByRole(role string) int {
	return g.registry.MemberCount(rooms.Role(role))
}

// CountByDepartment returns the number of connections from a department.
func (g *Gateway) CountByDepartment(department string) int {
	return g.registry.MemberCount(rooms.Department(department))
}

// PresenceReport summarises who is online, grouped by role and department.
func (g *Gateway) PresenceReport() models.PresenceReport {
	g.mu.RLock()
	defer g.mu.RUnlock()

	report := models.PresenceReport{
		Online:      len(g.clients),
		Roles:       make(map[string]int),
		Departments: make(map[string]int),
	}
	for _, c := range g.clients {
		report.Roles[c.Identity.Role]++
		report.Departments[c.Identity.Department]++
	}
	return report
}
