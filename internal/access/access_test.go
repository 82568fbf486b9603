package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexus/workspace/internal/models"
)

func TestCapabilityTable(t *testing.T) {
	cases := []struct {
		role models.UserRole
		cap  Capability
		want bool
	}{
		{models.RoleSuperAdmin, CreateWorkspace, true},
		{models.RoleAdmin, CreateWorkspace, true},
		{models.RoleManager, CreateWorkspace, false},
		{models.RoleUser, CreateWorkspace, false},

		{models.RoleSuperAdmin, DeleteTeam, true},
		{models.RoleAdmin, DeleteTeam, false},
		{models.RoleManager, DeleteTeam, false},

		{models.RoleManager, ArchiveWorkspace, true},
		{models.RoleManager, DeleteTask, true},
		{models.RoleManager, BulkDelete, true},
		{models.RoleManager, ManageTeam, true},
		{models.RoleUser, DeleteTask, false},
		{models.RoleUser, AssignOthers, false},
		{models.RoleUser, ManageTeam, false},

		{models.UserRole("Guest"), EditAnyTask, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Capabilities(tc.role).Has(tc.cap), "%s / %s", tc.role, tc.cap)
	}
}

func TestCanEditTask(t *testing.T) {
	user := models.User{ID: "u", Role: models.RoleUser}
	manager := models.User{ID: "m", Role: models.RoleManager}
	mine := models.Task{ID: "t1", Assignees: []models.User{user}}
	other := models.Task{ID: "t2"}
	active := models.Project{ID: "p"}
	archived := models.Project{ID: "p", IsArchived: true}

	assert.True(t, CanEditTask(user, mine, active))
	assert.False(t, CanEditTask(user, other, active))
	assert.True(t, CanEditTask(manager, other, active))
	assert.False(t, CanEditTask(manager, other, archived))
	assert.False(t, CanEditTask(user, mine, archived))
}
