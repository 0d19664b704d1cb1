package models

import "time"

// Server-to-client event names. These are the wire contract shared with the
// browser dashboard and must not be renamed.
const (
	EventNewAlert               = "newAlert"
	EventAlertUpdated           = "alertUpdated"
	EventAlertAcknowledged      = "alertAcknowledged"
	EventAlertResolved          = "alertResolved"
	EventAlertEscalated         = "alertEscalated"
	EventAlertAssigned          = "alertAssigned"
	EventVitalSignsUpdated      = "vitalSignsUpdated"
	EventPatientUpdated         = "patientUpdated"
	EventAssignedPatientUpdated = "assignedPatientUpdated"
	EventPatientStatusChanged   = "patientStatusChanged"
	EventStaffAssignmentChanged = "staffAssignmentChanged"
	EventEmergencyAlert         = "emergencyAlert"
	EventSystemNotification     = "systemNotification"
	EventDepartmentNotification = "departmentNotification"
	EventRoleNotification       = "roleNotification"
)

// Client-to-server message names.
const (
	MsgJoinPatientRoom       = "joinPatientRoom"
	MsgLeavePatientRoom      = "leavePatientRoom"
	MsgJoinAlertRoom         = "joinAlertRoom"
	MsgLeaveAlertRoom        = "leaveAlertRoom"
	MsgVitalSignsUpdate      = "vitalSignsUpdate"
	MsgAcknowledgeAlert      = "acknowledgeAlert"
	MsgResolveAlert          = "resolveAlert"
	MsgPatientStatusUpdate   = "patientStatusUpdate"
	MsgStaffAssignmentUpdate = "staffAssignmentUpdate"
	MsgEmergencyAlert        = "emergencyAlert"
)

// Alert is the projection of an alert document that travels over the
// realtime channel. The CRUD layer owns the full schema.
type Alert struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient,omitempty"`
	Type      string    `json:"type"`
	Priority  string    `json:"priority"`
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	CreatedBy string    `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Patient is the projection of a patient document used for fanout.
type Patient struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Status        string   `json:"status,omitempty"`
	Department    string   `json:"department,omitempty"`
	AssignedStaff []string `json:"assignedStaff,omitempty"`
}

// VitalSignsUpdate is a client-originated vital signs reading.
type VitalSignsUpdate struct {
	PatientID  string         `json:"patientId"`
	VitalSigns map[string]any `json:"vitalSigns"`
	UpdatedBy  string         `json:"updatedBy,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

// AlertAcknowledgement is a client-originated acknowledgment.
type AlertAcknowledgement struct {
	AlertID        string    `json:"alertId"`
	Notes          string    `json:"notes,omitempty"`
	AcknowledgedBy string    `json:"acknowledgedBy,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// AlertResolution is a client-originated resolution.
type AlertResolution struct {
	AlertID         string    `json:"alertId"`
	ResolutionNotes string    `json:"resolutionNotes,omitempty"`
	ResolvedBy      string    `json:"resolvedBy,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// PatientStatusUpdate is a client-originated patient status change.
type PatientStatusUpdate struct {
	PatientID string    `json:"patientId"`
	Status    string    `json:"status"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// StaffAssignmentUpdate records a staff member being assigned to or removed
// from a patient. Action is "assigned" or "removed".
type StaffAssignmentUpdate struct {
	PatientID string    `json:"patientId"`
	StaffID   string    `json:"staffId"`
	Action    string    `json:"action"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// EmergencyAlert is broadcast hospital-wide to all doctors and nurses,
// regardless of department.
type EmergencyAlert struct {
	PatientID   string    `json:"patientId,omitempty"`
	AlertType   string    `json:"alertType"`
	Message     string    `json:"message"`
	Priority    string    `json:"priority"`
	TriggeredBy string    `json:"triggeredBy,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Notification is a free-form system, department, or role notification.
type Notification struct {
	Title     string    `json:"title,omitempty"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
