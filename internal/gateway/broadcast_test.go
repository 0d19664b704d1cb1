package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardpulse/realtime-gateway/internal/models"
	"github.com/wardpulse/realtime-gateway/internal/redis"
	"github.com/wardpulse/realtime-gateway/internal/rooms"
)

func TestOnAlertCreatedReachesMedicalStaff(t *testing.T) {
	g := testGateway()

	doctor := connect(g, "d1", models.RoleDoctor, "ICU")
	nurse := connect(g, "n1", models.RoleNurse, "ER")
	admin := connect(g, "a1", models.RoleAdmin, "IT")

	// Critical alert for a patient no one is watching: role rooms still get
	// it, patient room fanout is a no-op.
	delivered := g.OnAlertCreated(models.Alert{ID: "al1", PatientID: "p1", Priority: "Critical"})

	assert.Equal(t, 2, delivered)
	assert.Equal(t, []string{models.EventNewAlert}, eventNames(received(t, doctor)))
	assert.Equal(t, []string{models.EventNewAlert}, eventNames(received(t, nurse)))
	assert.Empty(t, received(t, admin))
}

func TestOnAlertCreatedWithoutPatient(t *testing.T) {
	g := testGateway()
	doctor := connect(g, "d1", models.RoleDoctor, "ICU")

	delivered := g.OnAlertCreated(models.Alert{ID: "al1", Priority: "High"})

	assert.Equal(t, 1, delivered)
	assert.Len(t, received(t, doctor), 1)
}

func TestOnAlertUpdatedDeduplicatesAcrossRooms(t *testing.T) {
	g := testGateway()

	watcher := connect(g, "a1", models.RoleAdmin, "IT")
	g.Registry().Join(watcher.ID, rooms.Alert("al1"))
	g.Registry().Join(watcher.ID, rooms.Patient("p1"))

	delivered := g.OnAlertUpdated(models.Alert{ID: "al1", PatientID: "p1"})

	// one connection in both target rooms receives a single copy
	assert.Equal(t, 1, delivered)
	assert.Len(t, received(t, watcher), 1)
}

func TestPublishToEmptyRoomIsNoOp(t *testing.T) {
	g := testGateway()
	connect(g, "a1", models.RoleAdmin, "IT")

	delivered := g.OnAlertResolved(models.Alert{ID: "ghost"})

	assert.Equal(t, 0, delivered)
}

func TestVitalSignsTargetPatientRoom(t *testing.T) {
	g := testGateway()

	watcher := connect(g, "n1", models.RoleNurse, "ICU")
	other := connect(g, "n2", models.RoleNurse, "ICU")
	g.Registry().Join(watcher.ID, rooms.Patient("p1"))

	delivered := g.PublishVitalSigns(models.VitalSignsUpdate{
		PatientID:  "p1",
		VitalSigns: map[string]any{"heartRate": 72},
		UpdatedBy:  "n9",
	})

	assert.Equal(t, 1, delivered)
	envs := received(t, watcher)
	require.Len(t, envs, 1)
	assert.Equal(t, models.EventVitalSignsUpdated, envs[0].Event)
	assert.Empty(t, received(t, other))
}

func TestOnPatientUpdatedNotifiesAssignedStaff(t *testing.T) {
	g := testGateway()

	watcher := connect(g, "x1", models.RoleAdmin, "IT")
	g.Registry().Join(watcher.ID, rooms.Patient("p1"))
	staffTab1 := connect(g, "s1", models.RoleNurse, "ICU")
	staffTab2 := connect(g, "s1", models.RoleNurse, "ICU")

	delivered := g.OnPatientUpdated(models.Patient{ID: "p1", AssignedStaff: []string{"s1"}})

	// patient room plus both connections of the assigned staff member
	assert.Equal(t, 3, delivered)
	assert.Equal(t, []string{models.EventPatientUpdated}, eventNames(received(t, watcher)))
	assert.Equal(t, []string{models.EventAssignedPatientUpdated}, eventNames(received(t, staffTab1)))
	assert.Equal(t, []string{models.EventAssignedPatientUpdated}, eventNames(received(t, staffTab2)))
}

func TestEmergencyIgnoresDepartments(t *testing.T) {
	g := testGateway()

	icuDoctor := connect(g, "d1", models.RoleDoctor, "ICU")
	erNurse := connect(g, "n1", models.RoleNurse, "ER")
	admin := connect(g, "a1", models.RoleAdmin, "IT")

	delivered := g.PublishEmergency(models.EmergencyAlert{AlertType: "codeBlue", Priority: "Critical"})

	assert.Equal(t, 2, delivered)
	assert.Len(t, received(t, icuDoctor), 1)
	assert.Len(t, received(t, erNurse), 1)
	assert.Empty(t, received(t, admin))
}

func TestSystemNotificationReachesEveryone(t *testing.T) {
	g := testGateway()

	a := connect(g, "d1", models.RoleDoctor, "ICU")
	b := connect(g, "a1", models.RoleAdmin, "IT")

	delivered := g.SystemNotification(models.Notification{Message: "maintenance at 2am"})

	assert.Equal(t, 2, delivered)
	assert.Len(t, received(t, a), 1)
	assert.Len(t, received(t, b), 1)
}

func TestDepartmentAndRoleNotifications(t *testing.T) {
	g := testGateway()

	icuNurse := connect(g, "n1", models.RoleNurse, "ICU")
	erNurse := connect(g, "n2", models.RoleNurse, "ER")

	assert.Equal(t, 1, g.DepartmentNotification("ICU", models.Notification{Message: "rounds"}))
	assert.Equal(t, 2, g.RoleNotification(models.RoleNurse, models.Notification{Message: "shift"}))

	assert.Equal(t, []string{
		models.EventDepartmentNotification,
		models.EventRoleNotification,
	}, eventNames(received(t, icuNurse)))
	assert.Equal(t, []string{models.EventRoleNotification}, eventNames(received(t, erNurse)))
}

func TestPublishRecordsToOutbox(t *testing.T) {
	sink := &captureSink{}
	g := New(sink, (*redis.Mirror)(nil))

	connect(g, "d1", models.RoleDoctor, "ICU")
	g.OnAlertCreated(models.Alert{ID: "al1"})

	recs := sink.records()
	require.Len(t, recs, 1)
	assert.Equal(t, models.EventNewAlert, recs[0].Event)
	assert.Equal(t, 1, recs[0].Delivered)
	assert.Contains(t, recs[0].Rooms, rooms.Role(models.RoleDoctor))
	assert.False(t, recs[0].Timestamp.IsZero())
}
