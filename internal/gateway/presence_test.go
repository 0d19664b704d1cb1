package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wardpulse/realtime-gateway/internal/models"
)

func TestPresenceCounts(t *testing.T) {
	g := testGateway()

	d1 := connect(g, "d1", models.RoleDoctor, "ICU")
	connect(g, "d2", models.RoleDoctor, "ER")
	connect(g, "n1", models.RoleNurse, "ICU")

	assert.Equal(t, 3, g.Count())
	assert.Equal(t, 2, g.CountByRole(models.RoleDoctor))
	assert.Equal(t, 1, g.CountByRole(models.RoleNurse))
	assert.Equal(t, 0, g.CountByRole(models.RoleAdmin))
	assert.Equal(t, 2, g.CountByDepartment("ICU"))
	assert.Equal(t, 0, g.CountByDepartment("Oncology"))

	g.Disconnect(d1)

	assert.Equal(t, 2, g.Count())
	assert.Equal(t, 1, g.CountByRole(models.RoleDoctor))
	assert.Equal(t, 1, g.CountByDepartment("ICU"))
}

func TestPresenceReport(t *testing.T) {
	g := testGateway()

	connect(g, "d1", models.RoleDoctor, "ICU")
	connect(g, "n1", models.RoleNurse, "ICU")
	connect(g, "n2", models.RoleNurse, "ER")

	report := g.PresenceReport()

	assert.Equal(t, 3, report.Online)
	assert.Equal(t, map[string]int{models.RoleDoctor: 1, models.RoleNurse: 2}, report.Roles)
	assert.Equal(t, map[string]int{"ICU": 2, "ER": 1}, report.Departments)
}
