package gateway

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/wardpulse/realtime-gateway/internal/models"
	"github.com/wardpulse/realtime-gateway/internal/outbox"
	"github.com/wardpulse/realtime-gateway/internal/rooms"
)

// The targeting table. Each domain event kind maps to a fixed set of rooms;
// the policy is not configurable per call. Delivery is fire-and-forget and
// the returned count reports how many connections the event was queued for.

// Publish fans a domain event out to targetRooms and records it with the
// outbox sink. excludeConnID suppresses echo to the originating connection
// for client-originated events.
func (g *Gateway) Publish(event string, targetRooms []string, payload any, excludeConnID string) int {
	env := models.OutEnvelope{Event: event, Data: payload}

	var delivered int
	if targetRooms == nil {
		delivered = g.publishAll(env, excludeConnID)
	} else {
		delivered = g.publish(targetRooms, env, excludeConnID)
	}

	log.WithFields(log.Fields{
		"event":     event,
		"rooms":     targetRooms,
		"delivered": delivered,
	}).Debug("event published")

	g.record(outbox.Record{
		Event:     event,
		Rooms:     targetRooms,
		Payload:   payload,
		Delivered: delivered,
		Timestamp: time.Now(),
	})
	return delivered
}

// alertRooms targets the alert's own room plus the patient room when the
// alert references a patient.
func alertRooms(alert models.Alert) []string {
	target := []string{rooms.Alert(alert.ID)}
	if alert.PatientID != "" {
		target = append(target, rooms.Patient(alert.PatientID))
	}
	return target
}

// OnAlertCreated notifies all doctors and nurses, plus anyone watching the
// referenced patient.
func (g *Gateway) OnAlertCreated(alert models.Alert) int {
	target := []string{rooms.Role(models.RoleDoctor), rooms.Role(models.RoleNurse)}
	if alert.PatientID != "" {
		target = append(target, rooms.Patient(alert.PatientID))
	}
	return g.Publish(models.EventNewAlert, target, alert, "")
}

// OnAlertUpdated notifies watchers of the alert and its patient.
func (g *Gateway) OnAlertUpdated(alert models.Alert) int {
	return g.Publish(models.EventAlertUpdated, alertRooms(alert), alert, "")
}

// OnAlertAcknowledged notifies watchers of the alert and its patient.
func (g *Gateway) OnAlertAcknowledged(alert models.Alert) int {
	return g.Publish(models.EventAlertAcknowledged, alertRooms(alert), alert, "")
}

// OnAlertResolved notifies watchers of the alert and its patient.
func (g *Gateway) OnAlertResolved(alert models.Alert) int {
	return g.Publish(models.EventAlertResolved, alertRooms(alert), alert, "")
}

// OnAlertEscalated notifies watchers of the alert and its patient.
func (g *Gateway) OnAlertEscalated(alert models.Alert) int {
	return g.Publish(models.EventAlertEscalated, alertRooms(alert), alert, "")
}

// OnAlertAssigned notifies watchers of the alert and its patient.
func (g *Gateway) OnAlertAssigned(alert models.Alert) int {
	return g.Publish(models.EventAlertAssigned, alertRooms(alert), alert, "")
}

// OnPatientUpdated notifies watchers of the patient, and separately sends
// assignedPatientUpdated to the personal room of each assigned staff
// member.
func (g *Gateway) OnPatientUpdated(patient models.Patient) int {
	delivered := g.Publish(models.EventPatientUpdated, []string{rooms.Patient(patient.ID)}, patient, "")
	for _, staffID := range patient.AssignedStaff {
		delivered += g.Publish(models.EventAssignedPatientUpdated, []string{rooms.User(staffID)}, patient, "")
	}
	return delivered
}

// PublishVitalSigns sends a vital signs reading to the patient's room.
func (g *Gateway) PublishVitalSigns(update models.VitalSignsUpdate) int {
	return g.publishVitalSigns(update, "")
}

func (g *Gateway) publishVitalSigns(update models.VitalSignsUpdate, exclude string) int {
	update.Timestamp = stamp(update.Timestamp)
	return g.Publish(models.EventVitalSignsUpdated, []string{rooms.Patient(update.PatientID)}, update, exclude)
}

// PublishEmergency broadcasts to all doctors and nurses, hospital-wide.
// Emergencies deliberately ignore department boundaries.
func (g *Gateway) PublishEmergency(e models.EmergencyAlert) int {
	return g.publishEmergency(e, "")
}

func (g *Gateway) publishEmergency(e models.EmergencyAlert, exclude string) int {
	e.Timestamp = stamp(e.Timestamp)
	target := []string{rooms.Role(models.RoleDoctor), rooms.Role(models.RoleNurse)}
	return g.Publish(models.EventEmergencyAlert, target, e, exclude)
}

// SystemNotification reaches every connected client.
func (g *Gateway) SystemNotification(n models.Notification) int {
	n.Timestamp = stamp(n.Timestamp)
	return g.Publish(models.EventSystemNotification, nil, n, "")
}

// DepartmentNotification reaches every connection in a department.
func (g *Gateway) DepartmentNotification(department string, n models.Notification) int {
	n.Timestamp = stamp(n.Timestamp)
	return g.Publish(models.EventDepartmentNotification, []string{rooms.Department(department)}, n, "")
}

// RoleNotification reaches every connection holding a role.
func (g *Gateway) RoleNotification(role string, n models.Notification) int {
	n.Timestamp = stamp(n.Timestamp)
	return g.Publish(models.EventRoleNotification, []string{rooms.Role(role)}, n, "")
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
