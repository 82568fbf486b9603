package stats

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus/workspace/internal/models"
)

func tasksFor(u models.User, done, open int) []models.Task {
	var tasks []models.Task
	for i := 0; i < done; i++ {
		tasks = append(tasks, models.Task{ID: u.ID + "-d" + string(rune('a'+i)), Status: models.StatusDone, Assignees: []models.User{u}})
	}
	for i := 0; i < open; i++ {
		tasks = append(tasks, models.Task{ID: u.ID + "-o" + string(rune('a'+i)), Status: models.StatusTodo, Assignees: []models.User{u}})
	}
	return tasks
}

func TestUserWithoutTasks(t *testing.T) {
	p := UserPerformance(models.User{ID: "idle"}, tasksFor(models.User{ID: "x"}, 2, 2))
	assert.Equal(t, 0, p.Total)
	assert.Equal(t, 0, p.Rate)
	assert.Equal(t, 0.0, p.Score)
	assert.Equal(t, BadgeMember, p.Badge)
}

func TestAllDoneIsSpeedster(t *testing.T) {
	u := models.User{ID: "fast"}
	p := UserPerformance(u, tasksFor(u, 3, 0))
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 3, p.Completed)
	assert.Equal(t, 100, p.Rate)
	assert.Equal(t, 40.0, p.Score)
	assert.Equal(t, BadgeSpeedster, p.Badge)
}

func TestBadgeTable(t *testing.T) {
	cases := []struct {
		total, rate int
		want        string
	}{
		{0, 0, BadgeMember},
		{2, 100, BadgeAchiever},
		{3, 80, BadgeSpeedster},
		{4, 50, BadgeAchiever},
		{6, 49, BadgeBusyBee},
		{5, 20, BadgeMember},
		{1, 0, BadgeMember},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Badge(tc.total, tc.rate), "total=%d rate=%d", tc.total, tc.rate)
	}
}

func TestRateRoundsToWholePercent(t *testing.T) {
	u := models.User{ID: "r"}
	p := UserPerformance(u, tasksFor(u, 2, 1))
	assert.Equal(t, 67, p.Rate)
	assert.InDelta(t, 26.7, p.Score, 1e-9)
	assert.Equal(t, BadgeAchiever, p.Badge)
}

func TestLeaderboardOrderAndFilter(t *testing.T) {
	a := models.User{ID: "a"}
	b := models.User{ID: "b"}
	c := models.User{ID: "c"}
	idle := models.User{ID: "idle"}

	var tasks []models.Task
	tasks = append(tasks, tasksFor(a, 1, 1)...)
	tasks = append(tasks, tasksFor(b, 3, 0)...)
	tasks = append(tasks, tasksFor(c, 1, 1)...)

	board := Leaderboard(tasks, []models.User{a, idle, b, c})
	require.Len(t, board, 3)
	assert.Equal(t, "b", board[0].User.ID)
	// a and c tie on score and keep input order.
	assert.Equal(t, "a", board[1].User.ID)
	assert.Equal(t, "c", board[2].User.ID)
}

func TestSummarize(t *testing.T) {
	today := civil.Date{Year: 2024, Month: 5, Day: 10}
	tasks := []models.Task{
		{ID: "1", Status: models.StatusDone, DueDate: today.AddDays(-5)},
		{ID: "2", Status: models.StatusTodo, DueDate: today.AddDays(-1)},
		{ID: "3", Status: models.StatusReview, DueDate: today},
		{ID: "4", Status: models.StatusInProgress},
	}
	o := Summarize(tasks, today)
	assert.Equal(t, Overview{Total: 4, Completed: 1, Overdue: 1, Progress: 25}, o)

	assert.Equal(t, Overview{}, Summarize(nil, today))
}

func TestRecentCompletions(t *testing.T) {
	var tasks []models.Task
	for _, id := range []string{"t1", "t7", "t3", "t9", "t2", "t5", "t4"} {
		tasks = append(tasks, models.Task{ID: id, Status: models.StatusDone})
	}
	tasks = append(tasks, models.Task{ID: "t8", Status: models.StatusTodo})

	recent := RecentCompletions(tasks, 5)
	require.Len(t, recent, 5)
	ids := make([]string, len(recent))
	for i, r := range recent {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"t9", "t7", "t5", "t4", "t3"}, ids)
}

func TestSummarizeTeam(t *testing.T) {
	a := models.User{ID: "a"}
	b := models.User{ID: "b"}
	outsider := models.User{ID: "z"}
	tasks := []models.Task{
		{ID: "1", Status: models.StatusDone, Assignees: []models.User{a}},
		{ID: "2", Status: models.StatusReview, Assignees: []models.User{a, b}},
		{ID: "3", Status: models.StatusDone, Assignees: []models.User{outsider}},
	}
	s := SummarizeTeam(models.Team{ID: "t", Members: []models.User{a, b}}, tasks)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 50, s.Progress)
	assert.Equal(t, 1, s.ByStatus[models.StatusReview])
	assert.Equal(t, 0, s.ByStatus[models.StatusTodo])
	require.Len(t, s.Members, 2)
	assert.Equal(t, 2, s.Members[0].Total)
	assert.Equal(t, 1, s.Members[1].Total)
}
