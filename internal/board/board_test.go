package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus/workspace/internal/models"
)

var (
	alice = models.User{ID: "a", Name: "Alice", Role: models.RoleManager}
	bob   = models.User{ID: "b", Name: "Bob", Role: models.RoleUser}
	carol = models.User{ID: "c", Name: "Carol", Role: models.RoleUser}
)

func fixture() State {
	return State{
		Users: []models.User{alice, bob, carol},
		Projects: []models.Project{
			{ID: "p1", Name: "One", Members: []models.User{alice, bob}},
			{ID: "p2", Name: "Two", Members: []models.User{carol}},
			{ID: "p3", Name: "Three", Members: []models.User{alice}, IsArchived: true},
		},
		Tasks: []models.Task{
			{ID: "t1", ProjectID: "p1", Title: "first", Status: models.StatusTodo},
			{ID: "t2", ProjectID: "p2", Title: "second", Status: models.StatusDone},
			{ID: "t3", ProjectID: "p1", Title: "third", Status: models.StatusReview},
			{ID: "t4", ProjectID: "p3", Title: "fourth", Status: models.StatusTodo},
		},
		Teams: []models.Team{{ID: "team1", Members: []models.User{alice}}},
	}
}

func taskIDs(tasks []models.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func TestCreateTaskStoresExactlyOneEqualRecord(t *testing.T) {
	task := models.Task{
		ID:        "new",
		ProjectID: "p1",
		Title:     "write docs",
		Status:    models.StatusInProgress,
		Priority:  models.PriorityHigh,
		Assignees: []models.User{alice},
	}
	s := CreateTask(fixture(), task)

	count := 0
	for _, stored := range s.Tasks {
		if stored.ID == task.ID {
			count++
			assert.Equal(t, task, stored)
		}
	}
	assert.Equal(t, 1, count)
}

func TestCreateTaskDoesNotMutateInput(t *testing.T) {
	before := fixture()
	_ = CreateTask(before, models.Task{ID: "x"})
	assert.Len(t, before.Tasks, 4)
}

func TestDeleteMissingTaskIsNoop(t *testing.T) {
	before := fixture()
	after := DeleteTask(before, "missing")
	assert.Equal(t, before.Tasks, after.Tasks)
}

func TestDeleteTaskRemovesRecord(t *testing.T) {
	s := DeleteTask(fixture(), "t2")
	assert.Equal(t, []string{"t1", "t3", "t4"}, taskIDs(s.Tasks))
}

func TestBulkDelete(t *testing.T) {
	s := BulkDelete(fixture(), []string{"t1", "t4", "zzz"})
	assert.Equal(t, []string{"t2", "t3"}, taskIDs(s.Tasks))

	unchanged := BulkDelete(fixture(), nil)
	assert.Equal(t, fixture().Tasks, unchanged.Tasks)
}

func TestBulkUpdateEmptyIsNoop(t *testing.T) {
	before := fixture()
	assert.Equal(t, before, BulkUpdate(before, nil))
	assert.Equal(t, before, BulkUpdate(before, []models.Task{}))
}

func TestBulkUpdateTouchesOnlyListedRecords(t *testing.T) {
	before := fixture()
	after := BulkUpdate(before, []models.Task{
		{ID: "t3", ProjectID: "p1", Title: "third!", Status: models.StatusDone},
		{ID: "ghost", Title: "ignored"},
	})

	require.Equal(t, taskIDs(before.Tasks), taskIDs(after.Tasks))
	for i := range before.Tasks {
		if before.Tasks[i].ID == "t3" {
			assert.Equal(t, "third!", after.Tasks[i].Title)
			assert.Equal(t, models.StatusDone, after.Tasks[i].Status)
			continue
		}
		assert.Equal(t, before.Tasks[i], after.Tasks[i])
	}
	assert.Equal(t, "third", before.Tasks[2].Title)
}

func TestUpdateTaskReplacesByID(t *testing.T) {
	s := UpdateTask(fixture(), models.Task{ID: "t1", ProjectID: "p1", Title: "renamed"})
	got, ok := FindTask(s, "t1")
	require.True(t, ok)
	assert.Equal(t, "renamed", got.Title)

	same := UpdateTask(fixture(), models.Task{ID: "nope"})
	assert.Equal(t, fixture().Tasks, same.Tasks)
}

func TestVisibleTasksNeverLeaksOtherProjects(t *testing.T) {
	s := fixture()
	for _, u := range s.Users {
		visible := VisibleProjects(u, s.Projects)
		allowed := map[string]bool{}
		for _, p := range visible {
			assert.True(t, p.HasMember(u.ID))
			allowed[p.ID] = true
		}
		for _, task := range VisibleTasks(s.Tasks, visible) {
			assert.True(t, allowed[task.ProjectID], "user %s sees task %s", u.ID, task.ID)
		}
	}
}

func TestVisibleProjectsForAlice(t *testing.T) {
	s := fixture()
	visible := VisibleProjects(alice, s.Projects)
	require.Len(t, visible, 2)
	assert.Equal(t, []string{"t1", "t3", "t4"}, taskIDs(VisibleTasks(s.Tasks, visible)))

	assert.Empty(t, VisibleProjects(models.User{ID: "stranger"}, s.Projects))
}

func TestDefaultProjectPrefersActive(t *testing.T) {
	archived := models.Project{ID: "old", IsArchived: true}
	active := models.Project{ID: "live"}

	p, ok := DefaultProject([]models.Project{archived, active})
	require.True(t, ok)
	assert.Equal(t, "live", p.ID)

	p, ok = DefaultProject([]models.Project{archived})
	require.True(t, ok)
	assert.Equal(t, "old", p.ID)

	_, ok = DefaultProject(nil)
	assert.False(t, ok)
}

func TestAddedAssignees(t *testing.T) {
	added := AddedAssignees([]models.User{alice}, []models.User{alice, bob})
	require.Len(t, added, 1)
	assert.Equal(t, "b", added[0].ID)

	assert.Empty(t, AddedAssignees([]models.User{alice, bob}, []models.User{alice}))
	assert.Len(t, AddedAssignees(nil, []models.User{alice, bob, bob}), 2)
}

func TestAddProjectAddsCreator(t *testing.T) {
	s := AddProject(fixture(), models.Project{ID: "p9", Members: []models.User{bob}}, carol)
	p, ok := FindProject(s, "p9")
	require.True(t, ok)
	assert.True(t, p.HasMember("c"))
	assert.True(t, p.HasMember("b"))

	again := AddProject(fixture(), models.Project{ID: "p9", Members: []models.User{carol}}, carol)
	p, _ = FindProject(again, "p9")
	assert.Len(t, p.Members, 1)
}

func TestToggleArchive(t *testing.T) {
	s := ToggleArchive(fixture(), "p1")
	p, _ := FindProject(s, "p1")
	assert.True(t, p.IsArchived)

	s = ToggleArchive(s, "p1")
	p, _ = FindProject(s, "p1")
	assert.False(t, p.IsArchived)

	orig, _ := FindProject(fixture(), "p1")
	assert.False(t, orig.IsArchived)
}

func TestTeamMembership(t *testing.T) {
	s := AddTeamMember(fixture(), "team1", "b")
	team, _ := FindTeam(s, "team1")
	assert.Len(t, team.Members, 2)

	s = AddTeamMember(s, "team1", "b")
	team, _ = FindTeam(s, "team1")
	assert.Len(t, team.Members, 2)

	s = AddTeamMember(s, "team1", "unknown")
	team, _ = FindTeam(s, "team1")
	assert.Len(t, team.Members, 2)

	s = DeleteTeam(s, "team1")
	assert.Empty(t, s.Teams)
}

func TestUpsertUser(t *testing.T) {
	renamed := alice
	renamed.Name = "Alicia"
	s := UpsertUser(fixture(), renamed)
	require.Len(t, s.Users, 3)
	got, _ := FindUser(s, "a")
	assert.Equal(t, "Alicia", got.Name)

	s = UpsertUser(s, models.User{ID: "d"})
	assert.Len(t, s.Users, 4)

	s = UpsertUser(s, models.User{ID: "e", Role: "Owner"})
	got, _ = FindUser(s, "e")
	assert.Equal(t, models.RoleUser, got.Role)
	got, _ = FindUser(s, "d")
	assert.Equal(t, models.RoleUser, got.Role)
}

func TestChannelMessages(t *testing.T) {
	s := fixture()
	s = AppendMessage(s, models.ChatMessage{ID: "m1", ProjectID: "p1"})
	s = AppendMessage(s, models.ChatMessage{ID: "m2", ProjectID: models.GlobalProjectID})
	s = AppendMessage(s, models.ChatMessage{ID: "m3", ProjectID: "p1"})

	msgs := ChannelMessages(s.Messages, "p1")
	require.Len(t, msgs, 2)
	assert.Equal(t, "m1", msgs[0].ID)
	assert.Equal(t, "m3", msgs[1].ID)
}
