// Package access maps roles to the actions they may perform.
package access

import "github.com/nexus/workspace/internal/models"

type Capability string

const (
	CreateWorkspace  Capability = "create_workspace"
	ArchiveWorkspace Capability = "archive_workspace"
	DeleteTask       Capability = "delete_task"
	BulkDelete       Capability = "bulk_delete"
	ManageTeam       Capability = "manage_team"
	DeleteTeam       Capability = "delete_team"
	AssignOthers     Capability = "assign_others"
	EditAnyTask      Capability = "edit_any_task"
)

type Set map[Capability]bool

func (s Set) Has(c Capability) bool {
	return s[c]
}

var (
	staff = []Capability{ArchiveWorkspace, DeleteTask, BulkDelete, ManageTeam, AssignOthers, EditAnyTask}

	table = map[models.UserRole][]Capability{
		models.RoleSuperAdmin: append([]Capability{CreateWorkspace, DeleteTeam}, staff...),
		models.RoleAdmin:      append([]Capability{CreateWorkspace}, staff...),
		models.RoleManager:    staff,
		models.RoleUser:       nil,
	}
)

// Capabilities returns the capability set of role. Unknown roles get none.
func Capabilities(role models.UserRole) Set {
	set := Set{}
	for _, c := range table[role] {
		set[c] = true
	}
	return set
}

func Can(user models.User, c Capability) bool {
	return Capabilities(user.Role).Has(c)
}

// CanEditTask reports whether user may change task. Tasks of archived
// projects are read-only for everyone; plain users may only edit tasks
// assigned to them.
func CanEditTask(user models.User, task models.Task, project models.Project) bool {
	if project.IsArchived {
		return false
	}
	if Can(user, EditAnyTask) {
		return true
	}
	return task.IsAssigned(user.ID)
}
