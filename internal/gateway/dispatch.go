package gateway

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"github.com/wardpulse/realtime-gateway/internal/models"
	"github.com/wardpulse/realtime-gateway/internal/rooms"
)

// dispatch routes one inbound message to the right component. A malformed
// message is dropped with a warning; it never costs the client its
// connection.
func (g *Gateway) dispatch(c *Client, env models.Envelope) {
	switch env.Event {
	case models.MsgJoinPatientRoom:
		if id, ok := decodeID(env.Data, "patientId"); ok {
			g.registry.Join(c.ID, rooms.Patient(id))
			log.WithFields(log.Fields{"connection": c.ID, "patient": id}).Debug("joined patient room")
		} else {
			g.warnMalformed(c, env)
		}

	case models.MsgLeavePatientRoom:
		if id, ok := decodeID(env.Data, "patientId"); ok {
			g.registry.Leave(c.ID, rooms.Patient(id))
		} else {
			g.warnMalformed(c, env)
		}

	case models.MsgJoinAlertRoom:
		if id, ok := decodeID(env.Data, "alertId"); ok {
			g.registry.Join(c.ID, rooms.Alert(id))
			log.WithFields(log.Fields{"connection": c.ID, "alert": id}).Debug("joined alert room")
		} else {
			g.warnMalformed(c, env)
		}

	case models.MsgLeaveAlertRoom:
		if id, ok := decodeID(env.Data, "alertId"); ok {
			g.registry.Leave(c.ID, rooms.Alert(id))
		} else {
			g.warnMalformed(c, env)
		}

	case models.MsgVitalSignsUpdate:
		var update models.VitalSignsUpdate
		if err := json.Unmarshal(env.Data, &update); err != nil || update.PatientID == "" {
			g.warnMalformed(c, env)
			return
		}
		update.UpdatedBy = c.Identity.UserID
		g.publishVitalSigns(update, c.ID)

	case models.MsgAcknowledgeAlert:
		var ack models.AlertAcknowledgement
		if err := json.Unmarshal(env.Data, &ack); err != nil || ack.AlertID == "" {
			g.warnMalformed(c, env)
			return
		}
		ack.AcknowledgedBy = c.Identity.UserID
		ack.Timestamp = stamp(ack.Timestamp)
		g.Publish(models.EventAlertAcknowledged, []string{rooms.Alert(ack.AlertID)}, ack, c.ID)

	case models.MsgResolveAlert:
		var res models.AlertResolution
		if err := json.Unmarshal(env.Data, &res); err != nil || res.AlertID == "" {
			g.warnMalformed(c, env)
			return
		}
		res.ResolvedBy = c.Identity.UserID
		res.Timestamp = stamp(res.Timestamp)
		g.Publish(models.EventAlertResolved, []string{rooms.Alert(res.AlertID)}, res, c.ID)

	case models.MsgPatientStatusUpdate:
		var status models.PatientStatusUpdate
		if err := json.Unmarshal(env.Data, &status); err != nil || status.PatientID == "" {
			g.warnMalformed(c, env)
			return
		}
		if status.UpdatedBy == "" {
			status.UpdatedBy = c.Identity.UserID
		}
		status.Timestamp = stamp(status.Timestamp)
		g.Publish(models.EventPatientStatusChanged, []string{rooms.Patient(status.PatientID)}, status, c.ID)

	case models.MsgStaffAssignmentUpdate:
		var assignment models.StaffAssignmentUpdate
		if err := json.Unmarshal(env.Data, &assignment); err != nil || assignment.PatientID == "" {
			g.warnMalformed(c, env)
			return
		}
		assignment.UpdatedBy = c.Identity.UserID
		assignment.Timestamp = stamp(assignment.Timestamp)
		g.Publish(models.EventStaffAssignmentChanged, []string{rooms.Patient(assignment.PatientID)}, assignment, c.ID)

	case models.MsgEmergencyAlert:
		var emergency models.EmergencyAlert
		if err := json.Unmarshal(env.Data, &emergency); err != nil || emergency.AlertType == "" {
			g.warnMalformed(c, env)
			return
		}
		emergency.TriggeredBy = c.Identity.UserID
		g.publishEmergency(emergency, c.ID)

	case models.MsgJoinWebRTCRoom:
		id, ok := decodeID(env.Data, "roomId")
		if !ok {
			g.warnMalformed(c, env)
			return
		}
		count := g.JoinSignalingRoom(c, id)
		c.queue(models.OutEnvelope{
			Event: models.MsgJoinWebRTCRoom,
			Data:  models.JoinRoomAck{Success: true, RoomID: id, ParticipantCount: count},
		})

	case models.MsgLeaveWebRTCRoom:
		if id, ok := decodeID(env.Data, "roomId"); ok {
			g.LeaveSignalingRoom(c, id)
		} else {
			g.warnMalformed(c, env)
		}

	case models.MsgWebRTCOffer, models.MsgWebRTCAnswer, models.MsgWebRTCCandidate:
		var sig models.SignalPayload
		if err := json.Unmarshal(env.Data, &sig); err != nil || sig.RoomID == "" || sig.Target == "" {
			g.warnMalformed(c, env)
			return
		}
		g.RelaySignal(c, env.Event, sig)

	default:
		log.WithFields(log.Fields{"connection": c.ID, "event": env.Event}).Warn("unknown message type")
	}
}

func (g *Gateway) warnMalformed(c *Client, env models.Envelope) {
	log.WithFields(log.Fields{"connection": c.ID, "event": env.Event}).Warn("dropping malformed message")
}

// decodeID accepts either a bare JSON string or an object carrying the id
// under key; the browser client has used both shapes.
func decodeID(data json.RawMessage, key string) (string, bool) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil && s != "" {
		return s, true
	}
	var obj map[string]string
	if err := json.Unmarshal(data, &obj); err == nil && obj[key] != "" {
		return obj[key], true
	}
	return "", false
}
